package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokens is a minimal TokenSource with an idempotent check-and-clear,
// mirroring the session manager's contract.
type fakeTokens struct {
	mu          sync.Mutex
	token       string
	invalidated int
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token, nil
}

func (f *fakeTokens) Invalidate(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.token == "" {
		return false, nil
	}
	f.token = ""
	f.invalidated++
	return true, nil
}

func testLogger() logging.Logger {
	return logging.New(io.Discard, "error")
}

func newTestClient(t *testing.T, handler http.Handler, tokens TokenSource) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, tokens, testLogger()), srv
}

func TestHTTPClient_AttachesBearerAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})

	c, _ := newTestClient(t, handler, &fakeTokens{token: "tok-123"})

	_, err := c.ListReceipts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestHTTPClient_NoTokenMeansNoAuthHeader(t *testing.T) {
	var sawAuth bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"status":"ok","timestamp":"2024-01-01T00:00:00Z"}`))
	})

	c, _ := newTestClient(t, handler, &fakeTokens{})

	resp, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.False(t, sawAuth)
	assert.Equal(t, "ok", resp.Status)
}

func TestHTTPClient_401ClearsSessionAndReturnsSessionExpired(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &fakeTokens{token: "stale"}
	c, _ := newTestClient(t, handler, tokens)

	_, err := c.ListReceipts(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, tokens.invalidated)
	assert.Equal(t, "", tokens.token)
}

func TestHTTPClient_Concurrent401sClearOnce(t *testing.T) {
	release := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	})

	tokens := &fakeTokens{token: "stale"}
	c, _ := newTestClient(t, handler, tokens)

	const inflight = 5
	errs := make(chan error, inflight)
	for i := 0; i < inflight; i++ {
		go func() {
			_, err := c.ListReceipts(context.Background())
			errs <- err
		}()
	}
	close(release)

	for i := 0; i < inflight; i++ {
		assert.ErrorIs(t, <-errs, ErrSessionExpired)
	}
	assert.Equal(t, 1, tokens.invalidated)
}

func TestHTTPClient_StructuredBackendError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"default car cannot be deleted"}`))
	})

	c, _ := newTestClient(t, handler, &fakeTokens{token: "tok"})

	err := c.DeleteCar(context.Background(), "car-1")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusConflict, be.StatusCode)
	assert.Equal(t, "default car cannot be deleted", be.Error())
}

func TestHTTPClient_UnparseableErrorBodyKeepsStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	c, _ := newTestClient(t, handler, &fakeTokens{token: "tok"})

	_, err := c.GetReceipt(context.Background(), "r1")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadGateway, be.StatusCode)
	assert.Contains(t, be.Error(), "502")
}

func TestHTTPClient_NetworkFailureWrapsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, &fakeTokens{}, testLogger())

	_, err := c.Health(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_CreateReceipt_SendsPayloadAndDecodes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/fuel-receipts", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"amountPaid":45`)
		assert.Contains(t, string(body), `"carId":"V1"`)

		_, _ = w.Write([]byte(`{"id":"r1","date":"2024-01-05","amountPaid":45,"volumePurchased":30,"advertisedPrice":1.5,"odometer":10000,"carId":"V1","userId":"u1"}`))
	})

	c, _ := newTestClient(t, handler, &fakeTokens{token: "tok"})

	got, err := c.CreateReceipt(context.Background(), models.CreateReceiptRequest{
		Date:            "2024-01-05",
		AmountPaid:      45,
		VolumePurchased: 30,
		AdvertisedPrice: 1.5,
		Odometer:        10000,
		CarID:           "V1",
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.Equal(t, 45.0, got.AmountPaid)
}

func TestHTTPClient_UpdateReceipt_OmitsNilFields(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/fuel-receipts/r1", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"odometer":10500}`, string(body))

		_, _ = w.Write([]byte(`{"id":"r1","odometer":10500}`))
	})

	c, _ := newTestClient(t, handler, &fakeTokens{token: "tok"})

	odo := 10500
	got, err := c.UpdateReceipt(context.Background(), "r1", models.UpdateReceiptRequest{Odometer: &odo})
	require.NoError(t, err)
	assert.Equal(t, 10500, got.Odometer)
}

func TestHTTPClient_UploadReceiptImage_Multipart(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ocr/process-receipt", r.URL.Path)
		require.Contains(t, r.Header.Get("Content-Type"), "multipart/form-data")
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "receipt.jpg", header.Filename)

		content, _ := io.ReadAll(file)
		assert.Equal(t, "fake-image-bytes", string(content))

		_, _ = w.Write([]byte(`{"success":true,"ocrResult":{"amountPaid":45.0,"confidence":0.91}}`))
	})

	c, _ := newTestClient(t, handler, &fakeTokens{token: "tok"})

	resp, err := c.UploadReceiptImage(context.Background(), "receipt.jpg", strings.NewReader("fake-image-bytes"))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.OCRResult)
	assert.InDelta(t, 0.91, resp.OCRResult.Confidence, 1e-9)
	require.NotNil(t, resp.OCRResult.AmountPaid)
	assert.InDelta(t, 45.0, *resp.OCRResult.AmountPaid, 1e-9)
}

func TestHTTPClient_DeleteReceipt_NoContent(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	c, _ := newTestClient(t, handler, &fakeTokens{token: "tok"})
	require.NoError(t, c.DeleteReceipt(context.Background(), "r1"))
}

func TestHTTPClient_SetDefaultCar_Path(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/cars/car-2/set-default", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"car-2","isDefault":true,"fuelType":"petrol"}`))
	})

	c, _ := newTestClient(t, handler, &fakeTokens{token: "tok"})

	car, err := c.SetDefaultCar(context.Background(), "car-2")
	require.NoError(t, err)
	assert.True(t, car.IsDefault)
}

func TestBackendError_MessageFallback(t *testing.T) {
	assert.Equal(t, "quota exceeded", (&BackendError{StatusCode: 403, Detail: "quota exceeded"}).Error())
	assert.Equal(t, "request failed with status 500", (&BackendError{StatusCode: 500}).Error())
	assert.False(t, errors.Is(&BackendError{StatusCode: 401}, ErrSessionExpired))
}
