package services

import (
	"context"

	"github.com/dmitrijs2005/fueltrack/internal/client/api"
	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/logging"
)

// VehicleService wraps the vehicle endpoints with the client-side rules the
// backend expects to already hold: payload validation and the refusal to
// delete the current default vehicle while others exist. The backend stays
// the arbiter of the single-default invariant; the client never flips the
// flag on two vehicles itself.
type VehicleService struct {
	client api.Client
	log    logging.Logger
}

func NewVehicleService(client api.Client, log logging.Logger) *VehicleService {
	return &VehicleService{client: client, log: log}
}

func validateCarFields(name, carMake, model string, year int, fuelType string) (models.FuelType, error) {
	if name == "" {
		return "", &ValidationError{Field: "name", Reason: "is required"}
	}
	if carMake == "" {
		return "", &ValidationError{Field: "make", Reason: "is required"}
	}
	if model == "" {
		return "", &ValidationError{Field: "model", Reason: "is required"}
	}
	if year <= 0 {
		return "", &ValidationError{Field: "year", Reason: "must be a positive number"}
	}
	ft, err := models.ParseFuelType(fuelType)
	if err != nil {
		return "", &ValidationError{Field: "fuelType", Reason: "must be one of petrol, diesel, electric, hybrid"}
	}
	return ft, nil
}

// Create validates and persists a new vehicle.
func (s *VehicleService) Create(ctx context.Context, req models.CreateCarRequest) (*models.Car, error) {
	ft, err := validateCarFields(req.Name, req.Make, req.Model, req.Year, string(req.FuelType))
	if err != nil {
		return nil, err
	}
	req.FuelType = ft
	return s.client.CreateCar(ctx, req)
}

// Update sends a partial vehicle update. Fields are already pointers; the
// caller decides what changed.
func (s *VehicleService) Update(ctx context.Context, id string, req models.UpdateCarRequest) (*models.Car, error) {
	if req.FuelType != nil {
		if _, err := models.ParseFuelType(string(*req.FuelType)); err != nil {
			return nil, &ValidationError{Field: "fuelType", Reason: "must be one of petrol, diesel, electric, hybrid"}
		}
	}
	if req.Year != nil && *req.Year <= 0 {
		return nil, &ValidationError{Field: "year", Reason: "must be a positive number"}
	}
	return s.client.UpdateCar(ctx, id, req)
}

// Delete removes a vehicle. Deleting the flagged default is refused while
// other vehicles exist, so the account is never left without an obvious
// pre-selection target; the last remaining vehicle may always be deleted.
func (s *VehicleService) Delete(ctx context.Context, id string, cars []models.Car) error {
	for _, car := range cars {
		if car.ID == id && car.IsDefault && len(cars) > 1 {
			return ErrDefaultVehicle
		}
	}
	return s.client.DeleteCar(ctx, id)
}

// SetDefault asks the backend to move the default flag to the given
// vehicle.
func (s *VehicleService) SetDefault(ctx context.Context, id string) (*models.Car, error) {
	return s.client.SetDefaultCar(ctx, id)
}

// List returns all vehicles of the current user.
func (s *VehicleService) List(ctx context.Context) ([]models.Car, error) {
	return s.client.ListCars(ctx)
}

// Get returns one vehicle.
func (s *VehicleService) Get(ctx context.Context, id string) (*models.Car, error) {
	return s.client.GetCar(ctx, id)
}
