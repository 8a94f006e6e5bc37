package cli

import (
	"context"
	"io"
	"os"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getTextWithDefault = GetTextWithDefault
var getPassword = GetPassword

func (a *App) prompt(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, os.Stdout)
}

func (a *App) promptDefault(prompt, current string) (string, error) {
	return getTextWithDefault(a.reader, prompt, current, os.Stdout)
}

func (a *App) promptPassword(w io.Writer, label string) (string, error) {
	if w == nil {
		w = os.Stdout
	}
	return getPassword(w, label)
}

// Register prompts for the account fields and creates a new account. The
// backend logs the account in right away, so a successful registration
// leaves the user authenticated.
func (a *App) Register(ctx context.Context) error {
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	firstName, err := a.prompt("Enter first name")
	if err != nil {
		return err
	}
	lastName, err := a.prompt("Enter last name")
	if err != nil {
		return err
	}
	password, err := a.promptPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.session.Register(ctx, email, firstName, lastName, password)
	if err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	a.user = user
	printlnFn("Welcome,", user.FullName())
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// On success the session token and profile are persisted locally so the
// next start can resume without another login.
func (a *App) Login(ctx context.Context) error {
	email, err := a.prompt("Enter email")
	if err != nil {
		return err
	}
	password, err := a.promptPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}

	a.user = user
	printlnFn("Welcome,", user.FullName())
	return nil
}

// Logout ends the session. Local credentials are removed even when the
// backend call fails; the next start simply begins logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.user = nil
	printlnFn("Logged out.")
	return nil
}
