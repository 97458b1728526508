// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"cblocks/blocks"
	"cblocks/collection"
	"cblocks/common"
	"cblocks/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by render and watch subcommands
	Overwrite bool
	Mode      common.RenderMode
	// replayed on every document before rendering, never persisted
	Ops []blocks.Op

	// used by apply subcommand
	Database string

	start         time.Time
	dumps         atomic.Int32
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

// ContextWithEnv returns context carrying fresh environment, rendering
// defaults to static mode.
func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now(), Mode: common.RenderModeStatic})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}

// Dump puts attribute state into debug report when one is requested. Dumps
// are numbered in the order they were taken.
func (e *LocalEnv) Dump(name string, f collection.Fields) {
	if e.Rpt == nil {
		return
	}
	n := e.dumps.Add(1)
	e.Rpt.StoreText(fmt.Sprintf("dumps/%d-%s.txt", n, name), collection.Dump(f))
}
