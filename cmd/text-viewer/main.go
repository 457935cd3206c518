package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"text-viewer/internal/app"
	"text-viewer/internal/config"
	"text-viewer/internal/logger"
	"text-viewer/internal/storage"
)

func run(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	cfg := config.NewDefaultConfig()
	if err := config.Load(configPath, !cmd.IsSet("config"), cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.IsSet("log-level") {
		cfg.Log.Level = strings.ToLower(cmd.String("log-level"))
	}
	if cmd.Bool("ephemeral") {
		cfg.Storage.Backend = storage.BackendMemory
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	application, err := app.NewApplication(cfg, app.Options{})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	if err := application.Run(ctx); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "text-viewer",
		Usage:   "Open .txt, .pim, .pit and .gcode files and keep a list of recent files",
		Version: app.AppVersion,
		Action:  run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config.yaml",
				Value:       "config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, warning, error)",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Keep the recent files list in memory only",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.New("error", logger.FormatConsole).Error("main", err, nil)
		os.Exit(1)
	}
}
