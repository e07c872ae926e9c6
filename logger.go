// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import (
	"context"
	"io"
	"log/slog"

	"github.com/tigerwill90/eqsat/internal/slogpretty"
)

// LevelTrace is one step more verbose than [slog.LevelDebug]. The engine logs
// full e-graph dumps at this level.
const LevelTrace = slog.Level(-8)

// NewPrettyHandler returns a human friendly [slog.Handler] writing to w,
// suitable for development. It renders records down to [LevelTrace].
func NewPrettyHandler(w io.Writer) slog.Handler {
	return slogpretty.New(w, w, LevelTrace)
}

// trace logs at [LevelTrace] when the logger has that level enabled. The
// arguments, such as a rendered dump, are evaluated by the caller before the
// check.
func (g *EGraph) trace(msg string, args ...any) {
	ctx := context.Background()
	if !g.log.Enabled(ctx, LevelTrace) {
		return
	}
	g.log.Log(ctx, LevelTrace, msg, args...)
}
