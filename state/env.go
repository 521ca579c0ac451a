// Package state defines program state shared by commands.
package state

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fontget/config"
)

type envKey struct{}

// LocalEnv is everything a command needs: configuration, optional debug
// report and logger. Cfg and Log are nil until command line is parsed.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// RunID tags log lines of a single invocation, file logger may be
	// appending to the same file for many runs.
	RunID uuid.UUID

	start         time.Time
	restoreStdLog func()
}

// ContextWithEnv returns ctx carrying fresh LocalEnv.
func ContextWithEnv(ctx context.Context) context.Context {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return context.WithValue(ctx, envKey{}, &LocalEnv{RunID: id, start: time.Now()})
}

// EnvFromContext returns LocalEnv stored by ContextWithEnv.
func EnvFromContext(ctx context.Context) *LocalEnv {
	env, ok := ctx.Value(envKey{}).(*LocalEnv)
	if !ok {
		// this should never happen
		panic("localenv not found in context")
	}
	return env
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// RedirectStdLog sends output of standard library logger (net/http uses it
// for some transport errors) to program log at warning level.
func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	restore, err := zap.RedirectStdLogAt(e.Log.Named("stdlog"), zapcore.WarnLevel)
	if err != nil {
		e.Log.Warn("Unable to redirect standard logger", zap.Error(err))
		return
	}
	e.restoreStdLog = restore
}

// RestoreStdLog flushes program log and undoes RedirectStdLog.
func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
