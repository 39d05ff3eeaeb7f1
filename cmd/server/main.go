// Package main is the entry point for the EasyBiz API server.
// It loads configuration, sets up logging, wires the content generation
// services and serves the HTTP API until a termination signal arrives.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/easybiz/easybiz-api/internal/config"
	"github.com/easybiz/easybiz-api/internal/platform/logger"
	"github.com/easybiz/easybiz-api/internal/service/auth"
)

// Version is the build version (set via ldflags); it overrides server.version when set.
var Version = ""

// Run parses args and executes the selected command.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	app := kingpin.New("easybiz-api", "EasyBiz AI content generation service.")
	app.DefaultEnvars()
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	configPath := app.Flag("config", "Path to a YAML configuration file.").Short('c').String()
	logLevel := app.Flag("log-level", "Overrides server.log_level (debug, info, warn, error).").
		Enum("debug", "info", "warn", "error")

	serveCmd := app.Command("serve", "Run the HTTP API server.").Default()
	tokenCmd := app.Command("token", "Issue a bearer token for an API client.")
	tokenSubject := tokenCmd.Flag("subject", "Client the token is issued for.").Required().String()

	cmd, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if *logLevel != "" {
		cfg.Server.LogLevel = *logLevel
	}
	if Version != "" {
		cfg.Server.Version = Version
	}

	switch cmd {
	case serveCmd.FullCommand():
		log, err := logger.Setup(cfg.Server)
		if err != nil {
			return fmt.Errorf("failed to set up logger: %w", err)
		}
		application, err := newApplication(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}
		return application.Run(ctx)

	case tokenCmd.FullCommand():
		return issueToken(ctx, cfg.Auth, *tokenSubject, stdout)
	}

	return fmt.Errorf("unknown command %q", cmd)
}

// issueToken prints a signed bearer token for subject.
func issueToken(ctx context.Context, cfg config.AuthConfig, subject string, out io.Writer) error {
	if !cfg.Enabled() {
		return fmt.Errorf("auth.jwt_secret is not configured")
	}
	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	token, err := jwtService.GenerateToken(ctx, subject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, token)
	return err
}

func main() {
	if err := Run(context.Background(), os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
