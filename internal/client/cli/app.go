package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/caet/internal/client/client"
	"github.com/dmitrijs2005/caet/internal/client/config"
	"github.com/dmitrijs2005/caet/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// onlineCheckInterval is how often the watcher pings the server.
const onlineCheckInterval = 10 * time.Second

type App struct {
	config *config.Config
	api    client.Client
	logger logging.Logger
	reader *bufio.Reader
	out    io.Writer

	mu    sync.Mutex
	email string
	mode  Mode
}

func NewApp(c *config.Config) *App {
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	return &App{
		config: c,
		api:    client.NewHTTPClient(c.ServerURL, c.CSRFToken, c.RequestTimeout),
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "server connectivity changed", "mode", string(mode))
	}
}

func (a *App) setEmail(email string) {
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// prompt between online and offline until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(pctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
