package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"todolist/internal/api"
	"todolist/internal/config"
	"todolist/internal/logging"
	"todolist/internal/server"
)

// RootCommand represents the base command that runs the task service
type RootCommand struct {
	cmd *cobra.Command
}

// NewRootCommand creates the root cobra command with configuration flags
func NewRootCommand() *RootCommand {
	root := &RootCommand{}

	root.cmd = &cobra.Command{
		Use:   "todolist",
		Short: "A task-tracking web service",
		Long: `todolist serves a task list over HTTP: a browser interface for adding,
editing, completing and deleting named tasks with due dates, and a JSON
API over the same task store.

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  TODO_HTTP_ADDR                 Listen address (default: :5000)
  TODO_DB_DIR                    Database directory (default: ~/.todolist)
  TODO_DB_FILENAME               Database filename (default: todolist.db)
  TODO_DB_QUERY_TIMEOUT          Query timeout (default: 10s)
  TODO_DB_WRITE_TIMEOUT          Write timeout (default: 5s)
  TODO_HTTP_READ_TIMEOUT         HTTP read timeout (default: 15s)
  TODO_HTTP_WRITE_TIMEOUT        HTTP write timeout (default: 15s)
  TODO_HTTP_SHUTDOWN_TIMEOUT     Graceful shutdown timeout (default: 10s)
  TODO_CONFIG_FILE               Path to a TOML config file (default: ./todolist.toml if present)
  TODO_DEBUG                     Enable debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return root.runServe(cmd)
		},
	}

	flags := root.cmd.Flags()
	flags.String("addr", "", "Listen address (overrides TODO_HTTP_ADDR)")
	flags.String("db-dir", "", "Database directory (overrides TODO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides TODO_DB_FILENAME)")
	flags.String("config", "", "Path to a TOML config file (overrides TODO_CONFIG_FILE)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TODO_APP_VERBOSE)")

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// runServe loads configuration, opens the store and serves HTTP until
// the process receives an interrupt.
func (r *RootCommand) runServe(cmd *cobra.Command) error {
	overrides, err := r.overridesFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := config.NewLoader().LoadWithOverrides(overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	srv, err := server.New(api.New(repo))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logging.Debugf("listening on %s\n", cfg.Server.Addr)
		fmt.Printf("todolist listening on %s (database: %s)\n", cfg.Server.Addr, cfg.GetDatabasePath())
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

// overridesFromFlags collects config overrides from flags that were set
func (r *RootCommand) overridesFromFlags(cmd *cobra.Command) (*config.ConfigOverrides, error) {
	overrides := &config.ConfigOverrides{}
	flags := cmd.Flags()

	if addr, _ := flags.GetString("addr"); addr != "" {
		overrides.Addr = &addr
	}
	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		overrides.DBDir = &dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		overrides.DBFilename = &dbFilename
	}
	if configFile, _ := flags.GetString("config"); configFile != "" {
		// The loader reads TODO_CONFIG_FILE during Load.
		if err := os.Setenv("TODO_CONFIG_FILE", configFile); err != nil {
			return nil, err
		}
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		overrides.Verbose = &verbose
	}

	return overrides, nil
}
