package api

import (
	"context"
	"io"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
)

// Client is the full catalogue of backend operations. Each method maps 1:1
// to one endpoint and HTTP verb and performs no business logic beyond
// method/path/payload shaping. Everything above the transport depends on
// this interface, never on the concrete HTTP client.
type Client interface {
	// Auth.
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	RefreshToken(ctx context.Context) (*models.AuthResponse, error)
	Logout(ctx context.Context) error

	// Fuel receipts.
	ListReceipts(ctx context.Context) ([]models.FuelReceipt, error)
	GetReceipt(ctx context.Context, id string) (*models.FuelReceipt, error)
	CreateReceipt(ctx context.Context, req models.CreateReceiptRequest) (*models.FuelReceipt, error)
	UpdateReceipt(ctx context.Context, id string, req models.UpdateReceiptRequest) (*models.FuelReceipt, error)
	DeleteReceipt(ctx context.Context, id string) error

	// OCR.
	UploadReceiptImage(ctx context.Context, filename string, image io.Reader) (*models.UploadResponse, error)

	// Cars.
	ListCars(ctx context.Context) ([]models.Car, error)
	GetCar(ctx context.Context, id string) (*models.Car, error)
	CreateCar(ctx context.Context, req models.CreateCarRequest) (*models.Car, error)
	UpdateCar(ctx context.Context, id string, req models.UpdateCarRequest) (*models.Car, error)
	DeleteCar(ctx context.Context, id string) error
	SetDefaultCar(ctx context.Context, id string) (*models.Car, error)

	// Profile.
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// Health.
	Health(ctx context.Context) (*models.HealthResponse, error)
}

// TokenSource supplies the bearer credential at dispatch time and owns the
// clear-on-rejection transition. The session manager implements it.
type TokenSource interface {
	// Token returns the current bearer token, or "" when the session is
	// unauthenticated. Absence is not an error.
	Token(ctx context.Context) (string, error)

	// Invalidate clears the stored session in response to an
	// authorization rejection. It is idempotent; the bool reports whether
	// this call performed the clear.
	Invalidate(ctx context.Context) (bool, error)
}
