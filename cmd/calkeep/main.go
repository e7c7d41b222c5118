package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"calkeep/internal/agent"
	"calkeep/internal/app"
	"calkeep/internal/calendar"
	"calkeep/internal/config"
	"calkeep/internal/store"
)

func main() {
	// Load .env first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "calkeep",
		Usage: "Local file-backed calendar record-keeper.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a YAML config file", EnvVars: []string{"CALKEEP_CONFIG"}},
			&cli.StringFlag{Name: "events", Usage: "path to the events JSON file"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Action: runREPL,
		Commands: []*cli.Command{
			{
				Name:      "exec",
				Usage:     "Run a single directive and print the response.",
				ArgsUsage: `'CALL_FUNCTION: <name>(<key>=<value>, ...)'`,
				Action:    runExec,
			},
		},
	}
}

func runREPL(c *cli.Context) error {
	ag, logger, err := setup(c)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return app.New(ag, os.Stdin, os.Stdout, logger).Run(ctx)
}

func runExec(c *cli.Context) error {
	ag, _, err := setup(c)
	if err != nil {
		return err
	}
	line := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if line == "" {
		return errors.New("exec requires a directive argument")
	}
	fmt.Fprintln(c.App.Writer, ag.Run(line))
	return nil
}

func setup(c *cli.Context) (*agent.Agent, *slog.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if v := c.String("events"); v != "" {
		cfg.EventsPath = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// Logs go to stderr; stdout belongs to the interactive loop.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level(cfg.LogLevel)}))
	svc := calendar.New(store.New(cfg.EventsPath), logger)
	logger.Debug("configured", "events_path", cfg.EventsPath)
	return agent.New(svc, logger), logger, nil
}

func level(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
