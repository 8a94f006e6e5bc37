package models

import (
	"errors"
	"fmt"
)

// FuelType classifies a vehicle's fuel.
type FuelType string

const (
	FuelTypePetrol   FuelType = "petrol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeElectric FuelType = "electric"
	FuelTypeHybrid   FuelType = "hybrid"
)

var ErrUnknownFuelType = errors.New("unknown fuel type")

// ParseFuelType validates a raw string against the fixed enumeration.
func ParseFuelType(s string) (FuelType, error) {
	switch FuelType(s) {
	case FuelTypePetrol, FuelTypeDiesel, FuelTypeElectric, FuelTypeHybrid:
		return FuelType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFuelType, s)
}

// Car is an owned vehicle. At most one car per account carries
// IsDefault=true; the backend arbitrates that invariant.
type Car struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Color        string   `json:"color,omitempty"`
	LicensePlate string   `json:"licensePlate,omitempty"`
	FuelType     FuelType `json:"fuelType"`
	TankCapacity int      `json:"tankCapacity,omitempty"`
	IsDefault    bool     `json:"isDefault"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

// Description renders "2019 Toyota Corolla" style summaries for listings.
func (c Car) Description() string {
	return fmt.Sprintf("%d %s %s", c.Year, c.Make, c.Model)
}

// CreateCarRequest is the payload for creating a vehicle.
type CreateCarRequest struct {
	Name         string   `json:"name"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Color        string   `json:"color,omitempty"`
	LicensePlate string   `json:"licensePlate,omitempty"`
	FuelType     FuelType `json:"fuelType"`
	TankCapacity int      `json:"tankCapacity,omitempty"`
	IsDefault    bool     `json:"isDefault,omitempty"`
}

// UpdateCarRequest is a partial vehicle update; only non-nil fields are sent.
// The diffable field set is deliberately an explicit list.
type UpdateCarRequest struct {
	Name         *string   `json:"name,omitempty"`
	Make         *string   `json:"make,omitempty"`
	Model        *string   `json:"model,omitempty"`
	Year         *int      `json:"year,omitempty"`
	Color        *string   `json:"color,omitempty"`
	LicensePlate *string   `json:"licensePlate,omitempty"`
	FuelType     *FuelType `json:"fuelType,omitempty"`
	TankCapacity *int      `json:"tankCapacity,omitempty"`
}
