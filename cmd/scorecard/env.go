package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/benjaminschreck/go-scorecard/internal/config"
)

type envKey struct{}

// localEnv keeps everything the subcommands share.
type localEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	start         time.Time
	restoreStdLog func()
}

func envFromContext(ctx context.Context) *localEnv {
	if env, ok := ctx.Value(envKey{}).(*localEnv); ok {
		return env
	}
	panic("localenv not found in context")
}

func contextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &localEnv{
		Cfg:   config.DefaultConfig(),
		Log:   zap.NewNop(),
		start: time.Now(),
	})
}

func (e *localEnv) uptime() time.Duration {
	return time.Since(e.start)
}

func (e *localEnv) redirectStdLog() {
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *localEnv) restore() {
	_ = e.Log.Sync()
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
