package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/benjaminschreck/go-scorecard/internal/config"
)

const (
	appName = "scorecard"
	version = "0.1.0"
)

// initializeAppContext loads the configuration and builds the logger once the
// command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	env := envFromContext(ctx)

	configFile := cmd.String("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		cfg.Logging.Level = "debug"
		cfg.Logging.Development = true
	}
	env.Cfg = cfg

	if env.Log, err = cfg.Logging.Build(); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.redirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version),
		zap.String("runtime", runtime.Version()))
	if configFile == "" {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, _ *cli.Command) error {
	env := envFromContext(ctx)
	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()))
	env.restore()
	return nil
}

var errWasHandled bool

// exitErrHandler logs subcommand errors before the logger is closed.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	env.Log.Error("Program ended with error", zap.Error(err))
	errWasHandled = env.Cfg.Logging.Level != "none"
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            appName,
		Usage:           "builds survey scorecards and remediation lists as DOCX documents",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level with caller information"},
		},
		Commands: []*cli.Command{
			{
				Name:      "splice",
				Usage:     "Replaces {{name}} placeholder paragraphs of a template with rendered markup files",
				ArgsUsage: "TEMPLATE DESTINATION",
				Action:    runSplice,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "set", Aliases: []string{"s"},
						Usage: "replace placeholder with markup from file, as `NAME=FILE` (repeatable)"},
				},
			},
			{
				Name:      "build",
				Usage:     "Builds the scorecard of a stored form submission",
				ArgsUsage: "TEMPLATE DESTINATION",
				Action:    runBuild,
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "form", Aliases: []string{"f"}, Required: true, Usage: "form submission `ID`"},
				},
			},
			{
				Name:      "remediation",
				Usage:     "Generates a remediation list document from a survey workbook",
				ArgsUsage: "WORKBOOK DESTINATION",
				Action:    runRemediation,
			},
			{
				Name:   "serve",
				Usage:  "Serves scorecard requests over HTTP",
				Action: runServe,
			},
			{
				Name:      "seed",
				Usage:     "Loads rules and form submissions from YAML into the database",
				ArgsUsage: "SEED",
				Action:    runSeed,
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps the effective configuration (YAML)",
				ArgsUsage: "[DESTINATION]",
				Action:    outputConfiguration,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}
