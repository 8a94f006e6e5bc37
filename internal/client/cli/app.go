package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/fueltrack/internal/client/api"
	"github.com/dmitrijs2005/fueltrack/internal/client/config"
	"github.com/dmitrijs2005/fueltrack/internal/client/models"
	"github.com/dmitrijs2005/fueltrack/internal/client/services"
	"github.com/dmitrijs2005/fueltrack/internal/client/session"
	"github.com/dmitrijs2005/fueltrack/internal/logging"
	"github.com/sethvargo/go-retry"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	session  *session.Manager
	api      api.Client
	receipts *services.ReceiptService
	vehicles *services.VehicleService
	log      logging.Logger
	reader   *bufio.Reader
	Mode     Mode

	// user mirrors the session's cached profile for prompt rendering; nil
	// while logged out.
	user *models.User
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := session.OpenStore(ctx, c.DatabaseFile)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	app := &App{config: c, log: log, reader: bufio.NewReader(os.Stdin)}

	mgr := session.NewManager(store, log, session.WithExpiryHook(func() {
		app.user = nil
		printlnFn("Session expired, please login again.")
	}))

	apiClient := api.NewHTTPClient(c.APIBaseURL, mgr, log)
	mgr.SetClient(apiClient)

	app.session = mgr
	app.api = apiClient
	app.receipts = services.NewReceiptService(apiClient, log)
	app.vehicles = services.NewVehicleService(apiClient, log)
	return app, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn("Switched to", string(mode), "mode")
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// probeBackend pings the health endpoint, retrying briefly with fibonacci
// backoff so a single dropped packet does not flip the connection status.
func (a *App) probeBackend(ctx context.Context) error {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := a.api.Health(ctx)
		return retry.RetryableError(err)
	})
}

// StartOnlineStatusWatcher periodically probes backend reachability and
// switches the Mode accordingly. It blocks until ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.probeBackend(probeCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
