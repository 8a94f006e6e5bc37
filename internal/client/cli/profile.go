package cli

import (
	"context"
	"os"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
)

// Profile shows the account profile and offers to update it. Enter keeps
// the current value; only changed fields are sent, and the local cached
// profile is refreshed from the backend's response.
func (a *App) Profile(ctx context.Context) error {
	user, err := a.api.CurrentUser(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	printlnFn("Name:    ", user.FullName())
	printlnFn("Email:   ", user.Email)
	printlnFn("Phone:   ", user.Phone)
	printlnFn("Timezone:", user.Timezone)
	printlnFn("Currency:", user.Currency)

	edit, err := a.prompt("Type 'edit' to update the profile, anything else to go back")
	if err != nil {
		return err
	}
	if edit != "edit" {
		return nil
	}

	var req models.UpdateProfileRequest

	firstName, err := a.promptDefault("First name", user.FirstName)
	if err != nil {
		return err
	}
	if firstName != user.FirstName {
		req.FirstName = &firstName
	}

	lastName, err := a.promptDefault("Last name", user.LastName)
	if err != nil {
		return err
	}
	if lastName != user.LastName {
		req.LastName = &lastName
	}

	phone, err := a.promptDefault("Phone", user.Phone)
	if err != nil {
		return err
	}
	if phone != user.Phone {
		req.Phone = &phone
	}

	timezone, err := a.promptDefault("Timezone", user.Timezone)
	if err != nil {
		return err
	}
	if timezone != user.Timezone {
		req.Timezone = &timezone
	}

	currency, err := a.promptDefault("Currency", user.Currency)
	if err != nil {
		return err
	}
	if currency != user.Currency {
		req.Currency = &currency
	}

	updated, err := a.api.UpdateProfile(ctx, req)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	a.user = updated
	if err := a.session.UpdateCachedProfile(ctx, updated); err != nil {
		a.log.Warn(ctx, "failed to refresh cached profile", "error", err)
	}
	printlnFn("Profile updated.")
	return nil
}

// ChangePassword asks for the current and a new password and submits the
// change. The session stays valid; the backend only swaps the credential.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := a.promptPassword(os.Stdout, "Current password")
	if err != nil {
		return err
	}
	replacement, err := a.promptPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	confirm, err := a.promptPassword(os.Stdout, "Repeat new password")
	if err != nil {
		return err
	}
	if replacement != confirm {
		printlnFn("Passwords do not match.")
		return nil
	}

	err = a.api.ChangePassword(ctx, models.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     replacement,
	})
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Password changed.")
	return nil
}
