package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benjaminschreck/go-scorecard/internal/config"
	"github.com/benjaminschreck/go-scorecard/internal/server"
	"github.com/benjaminschreck/go-scorecard/internal/store"
	"github.com/benjaminschreck/go-scorecard/pkg/docx"
	"github.com/benjaminschreck/go-scorecard/pkg/htmldocx"
	"github.com/benjaminschreck/go-scorecard/pkg/narrative"
	"github.com/benjaminschreck/go-scorecard/pkg/remediation"
	"github.com/benjaminschreck/go-scorecard/pkg/scorecard"
)

var errArgs = errors.New("wrong number of arguments")

func twoArgs(cmd *cli.Command) (string, string, error) {
	if cmd.NArg() != 2 {
		return "", "", fmt.Errorf("%w: expected %s", errArgs, cmd.ArgsUsage)
	}
	return cmd.Args().Get(0), cmd.Args().Get(1), nil
}

// parseAssignments reads NAME=FILE pairs and loads the markup of each file.
func parseAssignments(sets []string) ([]htmldocx.Replacement, error) {
	reps := make([]htmldocx.Replacement, 0, len(sets))
	for _, set := range sets {
		name, file, ok := strings.Cut(set, "=")
		if !ok || name == "" || file == "" {
			return nil, fmt.Errorf("malformed replacement %q, expected NAME=FILE", set)
		}
		markup, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("unable to read markup for %s: %w", name, err)
		}
		reps = append(reps, htmldocx.Replacement{Name: name, Markup: string(markup)})
	}
	return reps, nil
}

func runSplice(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	src, dst, err := twoArgs(cmd)
	if err != nil {
		return err
	}
	reps, err := parseAssignments(cmd.StringSlice("set"))
	if err != nil {
		return err
	}

	doc, err := docx.OpenFile(src)
	if err != nil {
		return err
	}
	if err := htmldocx.NewOrchestrator(env.Log).Replace(doc, reps); err != nil {
		return err
	}
	if err := doc.SaveFile(dst); err != nil {
		return err
	}
	env.Log.Info("Template filled", zap.String("template", src), zap.String("destination", dst),
		zap.Int("replacements", len(reps)))
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database %s: %w", cfg.Database.Path, err)
	}
	return st, nil
}

func runBuild(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	src, dst, err := twoArgs(cmd)
	if err != nil {
		return err
	}
	template, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read template: %w", err)
	}

	st, err := openStore(ctx, env.Cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, st.Close()) }()

	out, err := scorecard.NewBuilder(st, env.Log).Build(ctx, template, cmd.Int64("form"))
	if err != nil {
		return err
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("unable to write scorecard: %w", err)
	}
	return nil
}

func newNarrator(ctx context.Context, cfg config.LLMConfig, log *zap.Logger) (narrative.Narrator, error) {
	switch cfg.Provider {
	case config.ProviderStatic:
		return narrative.Static(cfg.StaticText), nil
	case config.ProviderGenAI:
		g, err := narrative.NewGenAI(ctx, cfg.APIKey.Value(), cfg.Model, log)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown narrative provider %q", cfg.Provider)
	}
}

func runRemediation(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	src, dst, err := twoArgs(cmd)
	if err != nil {
		return err
	}

	findings, err := remediation.Load(src)
	if err != nil {
		return err
	}
	narrator, err := newNarrator(ctx, env.Cfg.LLM, env.Log)
	if err != nil {
		return err
	}
	doc, err := remediation.NewGenerator(narrator, env.Log).Generate(ctx, findings)
	if err != nil {
		return err
	}
	return doc.SaveFile(dst)
}

func runServe(ctx context.Context, _ *cli.Command) (err error) {
	env := envFromContext(ctx)
	st, err := openStore(ctx, env.Cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, st.Close()) }()

	srv := server.New(scorecard.NewBuilder(st, env.Log), env.Cfg.Server, env.Log)
	return srv.ListenAndServe(ctx)
}

func runSeed(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: expected %s", errArgs, cmd.ArgsUsage)
	}
	f, err := os.Open(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("unable to open seed file: %w", err)
	}
	defer f.Close()

	seed, err := store.ReadSeed(f)
	if err != nil {
		return err
	}
	st, err := openStore(ctx, env.Cfg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, st.Close()) }()

	if err := st.LoadSeed(ctx, seed); err != nil {
		return err
	}
	env.Log.Info("Database seeded", zap.String("database", env.Cfg.Database.Path),
		zap.Int("rules", len(seed.Rules)), zap.Int("forms", len(seed.Forms)))
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)
	if cmd.NArg() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	data, err := config.Dump(env.Cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	if fname == "" {
		_, err = os.Stdout.Write(data)
	} else {
		err = os.WriteFile(fname, data, 0644)
	}
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
