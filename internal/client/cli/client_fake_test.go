package cli

import (
	"context"
	"io"

	"github.com/dmitrijs2005/fueltrack/internal/client/api"
	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/logging"
)

// fakeClient implements api.Client for CLI command tests.
type fakeClient struct {
	receipts []models.FuelReceipt
	cars     []models.Car

	healthErr error

	createCalls       int
	updateCalls       int
	deleteCalls       int
	lastCreateReceipt models.CreateReceiptRequest
	lastUpdate        models.UpdateReceiptRequest
	lastDeletedCar    string
	lastPasswordReq   models.ChangePasswordRequest
	passwordCalls     int
	healthCalls       int
}

var _ api.Client = (*fakeClient)(nil)

func testLog() logging.Logger {
	return logging.New(io.Discard, "error")
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	return nil, nil
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	return nil, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) { return nil, nil }

func (f *fakeClient) RefreshToken(ctx context.Context) (*models.AuthResponse, error) {
	return nil, nil
}

func (f *fakeClient) Logout(ctx context.Context) error { return nil }

func (f *fakeClient) ListReceipts(ctx context.Context) ([]models.FuelReceipt, error) {
	return f.receipts, nil
}

func (f *fakeClient) GetReceipt(ctx context.Context, id string) (*models.FuelReceipt, error) {
	for i := range f.receipts {
		if f.receipts[i].ID == id {
			return &f.receipts[i], nil
		}
	}
	return nil, &api.BackendError{StatusCode: 404, Detail: "receipt not found"}
}

func (f *fakeClient) CreateReceipt(ctx context.Context, req models.CreateReceiptRequest) (*models.FuelReceipt, error) {
	f.createCalls++
	f.lastCreateReceipt = req
	return &models.FuelReceipt{ID: "new-receipt", Date: req.Date, CarID: req.CarID}, nil
}

func (f *fakeClient) UpdateReceipt(ctx context.Context, id string, req models.UpdateReceiptRequest) (*models.FuelReceipt, error) {
	f.updateCalls++
	f.lastUpdate = req
	return &models.FuelReceipt{ID: id}, nil
}

func (f *fakeClient) DeleteReceipt(ctx context.Context, id string) error {
	f.deleteCalls++
	return nil
}

func (f *fakeClient) UploadReceiptImage(ctx context.Context, filename string, image io.Reader) (*models.UploadResponse, error) {
	return &models.UploadResponse{Success: false}, nil
}

func (f *fakeClient) ListCars(ctx context.Context) ([]models.Car, error) { return f.cars, nil }

func (f *fakeClient) GetCar(ctx context.Context, id string) (*models.Car, error) {
	for i := range f.cars {
		if f.cars[i].ID == id {
			return &f.cars[i], nil
		}
	}
	return nil, &api.BackendError{StatusCode: 404, Detail: "car not found"}
}

func (f *fakeClient) CreateCar(ctx context.Context, req models.CreateCarRequest) (*models.Car, error) {
	return &models.Car{ID: "new-car", Name: req.Name}, nil
}

func (f *fakeClient) UpdateCar(ctx context.Context, id string, req models.UpdateCarRequest) (*models.Car, error) {
	return &models.Car{ID: id}, nil
}

func (f *fakeClient) DeleteCar(ctx context.Context, id string) error {
	f.lastDeletedCar = id
	return nil
}

func (f *fakeClient) SetDefaultCar(ctx context.Context, id string) (*models.Car, error) {
	return &models.Car{ID: id, IsDefault: true}, nil
}

func (f *fakeClient) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error) {
	return nil, nil
}

func (f *fakeClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	f.passwordCalls++
	f.lastPasswordReq = req
	return nil
}

func (f *fakeClient) Health(ctx context.Context) (*models.HealthResponse, error) {
	f.healthCalls++
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	return &models.HealthResponse{Status: "ok"}, nil
}
