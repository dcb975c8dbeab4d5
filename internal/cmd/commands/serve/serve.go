package serve

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp-forge/hermes-oai/internal/api"
	apiv2 "github.com/hashicorp-forge/hermes-oai/internal/api/v2"
	"github.com/hashicorp-forge/hermes-oai/internal/cmd/base"
	"github.com/hashicorp-forge/hermes-oai/internal/db"
	"github.com/hashicorp-forge/hermes-oai/internal/server"
	"github.com/hashicorp-forge/hermes-oai/pkg/setrepo"
)

type Command struct {
	*base.Command

	flagAddr   string
	flagConfig string

	// shutdownCh is closed to stop the server. Signals are used when nil.
	shutdownCh chan struct{}

	// readyCh receives the listen address once the server is accepting
	// connections.
	readyCh chan string
}

func (c *Command) Synopsis() string {
	return "Run the server"
}

func (c *Command) Help() string {
	return `Usage: hermes-oai serve [options]

  Run the hermes-oai HTTP server.

  Without -config the server uses an embedded SQLite database
  (hermes-oai.db in the working directory) and listens on ` +
		`127.0.0.1:8000.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("serve", flag.ContinueOnError))

	f.StringVar(
		&c.flagAddr, "addr", "",
		"[HERMES_OAI_SERVER_ADDRESS] Address to bind to for listening."+
			" Overrides server.address in the config file.",
	)
	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to config file.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading config: %v", err))
		return 1
	}

	// Flags and environment variables override the config file.
	if val, ok := os.LookupEnv("HERMES_OAI_SERVER_ADDRESS"); ok && val != "" {
		cfg.Server.Address = val
	}
	if c.flagAddr != "" {
		cfg.Server.Address = c.flagAddr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database.
	database, err := db.NewDB(ctx, cfg.Database, c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error initializing database: %v", err))
		return 1
	}
	defer func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	repo, err := setrepo.NewGormRepository(database, c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error initializing set repository: %v", err))
		return 1
	}

	srv := server.Server{
		Config: cfg,
		DB:     database,
		Logger: c.Log,
		Sets:   repo,
	}

	ln, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listening on %s: %v", cfg.Server.Address, err))
		return 1
	}

	httpServer := &http.Server{
		Handler:           NewMux(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	c.Log.Info("listening", "address", ln.Addr().String())
	if c.readyCh != nil {
		c.readyCh <- ln.Addr().String()
	}

	stop := c.shutdownCh
	if stop == nil {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		ch := make(chan struct{})
		go func() {
			<-sigCh
			close(ch)
		}()
		stop = ch
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			c.UI.Error(fmt.Sprintf("error running server: %v", err))
			return 1
		}
		return 0
	case <-stop:
	}

	c.UI.Output("Shutting down... press Ctrl-C again to force")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(), cfg.Server.ShutdownTimeoutDuration())
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		c.UI.Error(fmt.Sprintf("error shutting down server: %v", err))
		return 1
	}

	return 0
}

// NewMux returns the HTTP routes for srv.
func NewMux(srv server.Server) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/health", api.HealthHandler(srv))
	mux.Handle("/api/v2/sets", apiv2.SetsHandler(srv))
	mux.Handle("/api/v2/sets/", apiv2.SetHandler(srv))
	return mux
}
