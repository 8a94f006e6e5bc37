package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/client/services"
)

// Cars lists the user's vehicles.
func (a *App) Cars(ctx context.Context) error {
	cars, err := a.vehicles.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(cars) == 0 {
		printlnFn("No vehicles yet, use 'addcar' to register one.")
		return nil
	}

	for _, car := range cars {
		marker := " "
		if car.IsDefault {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s %s  %s (%s, %s)", marker, car.ID, car.Name, car.Description(), car.FuelType))
	}
	return nil
}

// AddCar registers a new vehicle.
func (a *App) AddCar(ctx context.Context) error {
	var req models.CreateCarRequest
	var err error

	if req.Name, err = a.prompt("Vehicle name"); err != nil {
		return err
	}
	if req.Make, err = a.prompt("Make"); err != nil {
		return err
	}
	if req.Model, err = a.prompt("Model"); err != nil {
		return err
	}

	yearText, err := a.prompt("Year")
	if err != nil {
		return err
	}
	req.Year, _ = strconv.Atoi(yearText)

	fuelType, err := a.prompt("Fuel type (petrol, diesel, electric, hybrid)")
	if err != nil {
		return err
	}
	req.FuelType = models.FuelType(fuelType)

	if req.LicensePlate, err = a.prompt("License plate (optional)"); err != nil {
		return err
	}

	car, err := a.vehicles.Create(ctx, req)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Added vehicle", car.ID)
	return nil
}

// EditCar updates selected fields of a vehicle. Enter keeps the current
// value; only fields the user actually changed are sent.
func (a *App) EditCar(ctx context.Context) error {
	id, err := a.prompt("Enter vehicle id to edit")
	if err != nil {
		return err
	}

	car, err := a.vehicles.Get(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	var req models.UpdateCarRequest

	name, err := a.promptDefault("Vehicle name", car.Name)
	if err != nil {
		return err
	}
	if name != car.Name {
		req.Name = &name
	}

	carMake, err := a.promptDefault("Make", car.Make)
	if err != nil {
		return err
	}
	if carMake != car.Make {
		req.Make = &carMake
	}

	model, err := a.promptDefault("Model", car.Model)
	if err != nil {
		return err
	}
	if model != car.Model {
		req.Model = &model
	}

	yearText, err := a.promptDefault("Year", strconv.Itoa(car.Year))
	if err != nil {
		return err
	}
	if year, convErr := strconv.Atoi(yearText); convErr == nil && year != car.Year {
		req.Year = &year
	}

	fuelText, err := a.promptDefault("Fuel type", string(car.FuelType))
	if err != nil {
		return err
	}
	if fuelText != string(car.FuelType) {
		ft := models.FuelType(fuelText)
		req.FuelType = &ft
	}

	plate, err := a.promptDefault("License plate", car.LicensePlate)
	if err != nil {
		return err
	}
	if plate != car.LicensePlate {
		req.LicensePlate = &plate
	}

	updated, err := a.vehicles.Update(ctx, id, req)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Updated vehicle", updated.ID)
	return nil
}

// DeleteCar removes a vehicle. The current default cannot be deleted while
// other vehicles exist.
func (a *App) DeleteCar(ctx context.Context) error {
	id, err := a.prompt("Enter vehicle id to delete")
	if err != nil {
		return err
	}

	cars, err := a.vehicles.List(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	if err := a.vehicles.Delete(ctx, id, cars); err != nil {
		if errors.Is(err, services.ErrDefaultVehicle) {
			printlnFn("This is the default vehicle; set another default first.")
			return err
		}
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Deleted.")
	return nil
}

// SetDefaultCar moves the default flag to the given vehicle.
func (a *App) SetDefaultCar(ctx context.Context) error {
	id, err := a.prompt("Enter vehicle id to make default")
	if err != nil {
		return err
	}

	car, err := a.vehicles.SetDefault(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn(car.Name, "is now the default vehicle.")
	return nil
}
