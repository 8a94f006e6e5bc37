package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/logging"
	"github.com/google/uuid"
)

// HTTPClient is the authenticated request pipeline. Every domain call
// funnels through sendJSON or sendMultipart, which attach the bearer
// credential, normalize errors into the package taxonomy, and turn an
// authorization rejection into a store clear plus ErrSessionExpired.
//
// The pipeline never retries and enforces no deadline of its own; timeout
// policy is the transport's, cancellation is the caller's context. Any
// number of requests may be in flight at once; the only shared state is
// the single token read at dispatch time.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

type HTTPOption func(*HTTPClient)

// WithHTTPClient overrides the underlying transport, mainly for tests.
func WithHTTPClient(h *http.Client) HTTPOption {
	return func(c *HTTPClient) { c.http = h }
}

func NewHTTPClient(baseURL string, tokens TokenSource, log logging.Logger, opts ...HTTPOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  tokens,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// errorBody is the backend's structured error payload. Absence of a
// parseable body is tolerated.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and decodes a successful JSON response into out
// (skipped when out is nil or the response carries no content).
func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		cleared, invErr := c.tokens.Invalidate(req.Context())
		if invErr != nil {
			c.log.Error(req.Context(), "failed to clear rejected session", "error", invErr)
		}
		if cleared {
			c.log.Info(req.Context(), "session rejected by backend, cleared stored credentials",
				"method", req.Method, "path", req.URL.Path)
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) decodeError(resp *http.Response) error {
	apiErr := &BackendError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil {
			apiErr.Detail = eb.Detail
		}
	}
	return apiErr
}

func (c *HTTPClient) sendJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *HTTPClient) sendMultipart(ctx context.Context, path, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}

// --- auth ---

func (c *HTTPClient) Login(ctx context.Context, reqBody models.LoginRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/login", reqBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, reqBody models.RegisterRequest) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/register", reqBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.sendJSON(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RefreshToken(ctx context.Context) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/auth/refresh", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// --- fuel receipts ---

func (c *HTTPClient) ListReceipts(ctx context.Context) ([]models.FuelReceipt, error) {
	var out []models.FuelReceipt
	if err := c.sendJSON(ctx, http.MethodGet, "/api/fuel-receipts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetReceipt(ctx context.Context, id string) (*models.FuelReceipt, error) {
	var out models.FuelReceipt
	if err := c.sendJSON(ctx, http.MethodGet, "/api/fuel-receipts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateReceipt(ctx context.Context, reqBody models.CreateReceiptRequest) (*models.FuelReceipt, error) {
	var out models.FuelReceipt
	if err := c.sendJSON(ctx, http.MethodPost, "/api/fuel-receipts", reqBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateReceipt(ctx context.Context, id string, reqBody models.UpdateReceiptRequest) (*models.FuelReceipt, error) {
	var out models.FuelReceipt
	if err := c.sendJSON(ctx, http.MethodPut, "/api/fuel-receipts/"+url.PathEscape(id), reqBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteReceipt(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/api/fuel-receipts/"+url.PathEscape(id), nil, nil)
}

// --- OCR ---

func (c *HTTPClient) UploadReceiptImage(ctx context.Context, filename string, image io.Reader) (*models.UploadResponse, error) {
	var out models.UploadResponse
	if err := c.sendMultipart(ctx, "/api/ocr/process-receipt", filename, image, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- cars ---

func (c *HTTPClient) ListCars(ctx context.Context) ([]models.Car, error) {
	var out []models.Car
	if err := c.sendJSON(ctx, http.MethodGet, "/api/cars", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetCar(ctx context.Context, id string) (*models.Car, error) {
	var out models.Car
	if err := c.sendJSON(ctx, http.MethodGet, "/api/cars/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateCar(ctx context.Context, reqBody models.CreateCarRequest) (*models.Car, error) {
	var out models.Car
	if err := c.sendJSON(ctx, http.MethodPost, "/api/cars", reqBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCar(ctx context.Context, id string, reqBody models.UpdateCarRequest) (*models.Car, error) {
	var out models.Car
	if err := c.sendJSON(ctx, http.MethodPut, "/api/cars/"+url.PathEscape(id), reqBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteCar(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/api/cars/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) SetDefaultCar(ctx context.Context, id string) (*models.Car, error) {
	var out models.Car
	if err := c.sendJSON(ctx, http.MethodPost, "/api/cars/"+url.PathEscape(id)+"/set-default", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- profile ---

func (c *HTTPClient) UpdateProfile(ctx context.Context, reqBody models.UpdateProfileRequest) (*models.User, error) {
	var out models.User
	if err := c.sendJSON(ctx, http.MethodPut, "/api/users/profile", reqBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, reqBody models.ChangePasswordRequest) error {
	return c.sendJSON(ctx, http.MethodPost, "/api/users/change-password", reqBody, nil)
}

// --- health ---

func (c *HTTPClient) Health(ctx context.Context) (*models.HealthResponse, error) {
	var out models.HealthResponse
	if err := c.sendJSON(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
