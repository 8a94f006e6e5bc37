package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/fueltrack/internal/client/api"
	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/logging"
)

// fakeClient implements api.Client for service tests and counts every
// network-touching call so tests can assert "no network" outcomes.
type fakeClient struct {
	receipts []models.FuelReceipt
	cars     []models.Car

	createReceiptResp *models.FuelReceipt
	createReceiptErr  error
	updateReceiptResp *models.FuelReceipt
	updateReceiptErr  error
	uploadResp        *models.UploadResponse
	uploadErr         error
	deleteCarErr      error

	lastCreateReceipt models.CreateReceiptRequest
	lastUpdateID      string
	lastUpdate        models.UpdateReceiptRequest
	lastDeletedCar    string
	lastDefaultCar    string

	createCalls int
	updateCalls int
	totalCalls  int
}

var _ api.Client = (*fakeClient)(nil)

func testLog() logging.Logger {
	return logging.New(io.Discard, "error")
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.totalCalls++
	return nil, nil
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	f.totalCalls++
	return nil, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.totalCalls++
	return nil, nil
}

func (f *fakeClient) RefreshToken(ctx context.Context) (*models.AuthResponse, error) {
	f.totalCalls++
	return nil, nil
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.totalCalls++
	return nil
}

func (f *fakeClient) ListReceipts(ctx context.Context) ([]models.FuelReceipt, error) {
	f.totalCalls++
	return f.receipts, nil
}

func (f *fakeClient) GetReceipt(ctx context.Context, id string) (*models.FuelReceipt, error) {
	f.totalCalls++
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			return &f.receipts[i], nil
		}
	}
	return nil, &api.BackendError{StatusCode: 404, Detail: "receipt not found"}
}

func (f *fakeClient) CreateReceipt(ctx context.Context, req models.CreateReceiptRequest) (*models.FuelReceipt, error) {
	f.totalCalls++
	f.createCalls++
	f.lastCreateReceipt = req
	return f.createReceiptResp, f.createReceiptErr
}

func (f *fakeClient) UpdateReceipt(ctx context.Context, id string, req models.UpdateReceiptRequest) (*models.FuelReceipt, error) {
	f.totalCalls++
	f.updateCalls++
	f.lastUpdateID = id
	f.lastUpdate = req
	return f.updateReceiptResp, f.updateReceiptErr
}

func (f *fakeClient) DeleteReceipt(ctx context.Context, id string) error {
	f.totalCalls++
	return nil
}

func (f *fakeClient) UploadReceiptImage(ctx context.Context, filename string, image io.Reader) (*models.UploadResponse, error) {
	f.totalCalls++
	return f.uploadResp, f.uploadErr
}

func (f *fakeClient) ListCars(ctx context.Context) ([]models.Car, error) {
	f.totalCalls++
	return f.cars, nil
}

func (f *fakeClient) GetCar(ctx context.Context, id string) (*models.Car, error) {
	f.totalCalls++
	for i := range f.cars {
		if f.cars[i].ID == id {
			return &f.cars[i], nil
		}
	}
	return nil, &api.BackendError{StatusCode: 404, Detail: "car not found"}
}

func (f *fakeClient) CreateCar(ctx context.Context, req models.CreateCarRequest) (*models.Car, error) {
	f.totalCalls++
	car := models.Car{ID: "new-car", Name: req.Name, Make: req.Make, Model: req.Model,
		Year: req.Year, FuelType: req.FuelType, IsDefault: req.IsDefault}
	return &car, nil
}

func (f *fakeClient) UpdateCar(ctx context.Context, id string, req models.UpdateCarRequest) (*models.Car, error) {
	f.totalCalls++
	return &models.Car{ID: id}, nil
}

func (f *fakeClient) DeleteCar(ctx context.Context, id string) error {
	f.totalCalls++
	f.lastDeletedCar = id
	return f.deleteCarErr
}

func (f *fakeClient) SetDefaultCar(ctx context.Context, id string) (*models.Car, error) {
	f.totalCalls++
	f.lastDefaultCar = id
	return &models.Car{ID: id, IsDefault: true}, nil
}

func (f *fakeClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	f.totalCalls++
	return nil, nil
}

func (f *fakeClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	f.totalCalls++
	return nil
}

func (f *fakeClient) Health(ctx context.Context) (*models.HealthResponse, error) {
	f.totalCalls++
	return &models.HealthResponse{Status: "ok"}, nil
}
