// Package stage composites scenes: it stages every layer a scene needs off
// to the side, swaps the finished set in atomically, and flattens the live
// set to pixels on demand. Swaps are generation-counted so a slow load can
// never clobber a newer scene.
package stage

import (
	"context"
	"errors"
	"sync"

	dressup "dressup-engine"
	"dressup-engine/internal/chroma"
	"dressup-engine/internal/sprite"
)

var (
	// ErrStageClosed is returned by operations on a closed stage.
	ErrStageClosed = errors.New("stage: closed")

	// ErrSurfaceLost is returned by renders between MarkLost and
	// RestoreSurface.
	ErrSurfaceLost = errors.New("stage: surface lost")
)

// Options configures a stage. The zero value works: a private sprite
// cache, the default filter chain, four load workers.
type Options struct {
	// Cache resolves bitmap sources. Stages sharing a cache share decoded
	// bitmaps; nil gives the stage its own.
	Cache *sprite.Cache

	// Chain is the filter chain run over every bitmap layer. Nil selects
	// chroma.DefaultChain.
	Chain *chroma.Chain

	// Workers bounds parallel sprite loads per Apply.
	Workers int

	// OnRestore runs after RestoreSurface clears a lost surface, before
	// the retained scene is resubmitted.
	OnRestore func()
}

// Stage owns one live composited scene. Apply is two-phase: every bitmap
// the new scene needs is loaded and filtered into a detached set first, and
// only then does the visible set swap, so a half-loaded outfit is never
// shown. A generation counter makes overlapping applies last-writer-wins.
type Stage struct {
	cache     *sprite.Cache
	chain     chroma.Chain
	workers   int
	onRestore func()

	mu         sync.Mutex
	scene      Scene
	live       *layerSet
	generation int64
	lost       bool
	destroyed  bool
}

func New(opts Options) *Stage {
	st := &Stage{
		cache:     opts.Cache,
		chain:     chroma.DefaultChain(),
		workers:   opts.Workers,
		onRestore: opts.OnRestore,
	}
	if st.cache == nil {
		st.cache = sprite.NewCache()
	}
	if opts.Chain != nil {
		st.chain = *opts.Chain
	}
	if st.workers <= 0 {
		st.workers = 4
	}
	return st
}

// Apply stages sc's layers and swaps them in. When applies overlap, only
// the newest commits: older ones finish loading, notice a newer generation
// at the swap point, and drop their work without error. Cancelling ctx
// aborts the load phase.
func (st *Stage) Apply(ctx context.Context, sc Scene) error {
	gen, err := st.begin()
	if err != nil {
		return err
	}
	set, err := st.buildLayers(ctx, sc)
	if err != nil {
		return err
	}
	return st.commit(gen, sc, set)
}

// begin claims the next generation for an apply, invalidating every apply
// still in flight.
func (st *Stage) begin() (int64, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.destroyed {
		return 0, ErrStageClosed
	}
	st.generation++
	return st.generation, nil
}

// commit publishes a staged layer set, unless the stage closed or a newer
// apply claimed it while this one was loading.
func (st *Stage) commit(gen int64, sc Scene, set *layerSet) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.destroyed {
		return ErrStageClosed
	}
	if gen != st.generation {
		dressup.Logger().Debug("stage: stale apply discarded",
			"generation", gen, "current", st.generation)
		return nil
	}
	st.scene = sc
	st.live = set
	dressup.Logger().Info("stage: scene swapped",
		"generation", gen, "layers", len(set.sprites))
	return nil
}

// Scene returns the last committed scene.
func (st *Stage) Scene() Scene {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.scene
}

// MarkLost records that the render surface is gone. Renders fail with
// ErrSurfaceLost until RestoreSurface; the committed scene is retained.
func (st *Stage) MarkLost() {
	st.mu.Lock()
	if !st.destroyed && !st.lost {
		st.lost = true
		dressup.Logger().Warn("stage: surface lost")
	}
	st.mu.Unlock()
}

// RestoreSurface clears the lost flag, runs the restore hook, and
// resubmits the retained scene, so the stage comes back showing exactly
// what it showed before the loss. No-op when the surface was never lost.
func (st *Stage) RestoreSurface(ctx context.Context) error {
	st.mu.Lock()
	if st.destroyed {
		st.mu.Unlock()
		return ErrStageClosed
	}
	if !st.lost {
		st.mu.Unlock()
		return nil
	}
	st.lost = false
	sc := st.scene
	st.mu.Unlock()

	if st.onRestore != nil {
		st.onRestore()
	}
	dressup.Logger().Info("stage: surface restored", "garments", len(sc.Garments))
	return st.Apply(ctx, sc)
}

// Close releases the stage. Idempotent, and safe to call with applies in
// flight: their commits observe the destroyed flag and return
// ErrStageClosed instead of touching released state.
func (st *Stage) Close() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.destroyed {
		return
	}
	st.destroyed = true
	st.live = nil
	st.scene = Scene{}
}
