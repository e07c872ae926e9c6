// Copyright 2022 Sylvain Müller. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/tigerwill90/eqsat/blob/master/LICENSE.txt.

package eqsat

import "log/slog"

// Option configures an [EGraph] at construction time.
type Option interface {
	applyGraph(*EGraph)
}

type optionFunc func(*EGraph)

func (o optionFunc) applyGraph(g *EGraph) {
	o(g)
}

// WithLogger sets the handler used for the e-graph's structured logs. The
// engine logs retractions at debug level, per-rewrite summaries at info and
// full e-graph dumps at [LevelTrace]. By default, logs are discarded.
func WithLogger(handler slog.Handler) Option {
	return optionFunc(func(g *EGraph) {
		if handler != nil {
			g.log = slog.New(handler)
		}
	})
}

// WithExplanations flags the e-graph as tracking explanations. This engine
// does not implement explanation structures; the flag exists so operations
// that would corrupt them, such as [EGraph.UndoRewrites], refuse to run.
func WithExplanations() Option {
	return optionFunc(func(g *EGraph) {
		g.explain = true
	})
}

// UndoOption configures a single [EGraph.UndoRewrites] call.
type UndoOption interface {
	applyUndo(*undoConfig)
}

type undoOptionFunc func(*undoConfig)

func (o undoOptionFunc) applyUndo(c *undoConfig) {
	o(c)
}

type undoConfig struct {
	sizeGuard   bool
	strictRoots bool
}

// WithSizeGuard skips retracting rewrites whose right-hand side pattern is
// not longer than their left-hand side. When the right-hand side is contained
// in the left-hand side, retraction can strip an e-class of every leaf and
// leave terms that never terminate. Disabled by default.
func WithSizeGuard() UndoOption {
	return undoOptionFunc(func(c *undoConfig) {
		c.sizeGuard = true
	})
}

// WithStrictRoots makes [EGraph.UndoRewrites] fail when a root loses its best
// term after a retraction, instead of logging a warning. The graph is left in
// its intermediate state; there is no rollback.
func WithStrictRoots() UndoOption {
	return undoOptionFunc(func(c *undoConfig) {
		c.strictRoots = true
	})
}
