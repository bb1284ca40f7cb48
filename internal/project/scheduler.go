// Package project implements the cross-project dependency scheduler spec §5
// calls for: "Processing of a dependency project ... runs to completion
// before the dependent project begins; the Data Manager's processed table
// memoizes by tsconfig path so diamond dependency graphs produce each
// project exactly once." Project bodies are still indexed one at a time —
// the checker is touched from a single logical actor — but which project
// becomes ready next, across a diamond of project references, is expressed
// with an errgroup-based walk rather than hand-rolled recursion, with a
// weight-1 semaphore serializing the actual indexing calls.
package project

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/tscodeintel/lsif-ecma/internal/checker"
)

// IndexFunc indexes a single Program's own files (not its references).
type IndexFunc func(ctx context.Context, p checker.Program) error

// Scheduler walks a Program's References() graph, indexing each dependency
// to completion before its dependents, and visiting every distinct
// ModulePath exactly once even when it is reachable via more than one path
// (a diamond dependency).
type Scheduler struct {
	mu        sync.Mutex
	processed map[string]bool
	sem       *semaphore.Weighted
}

// New returns an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		processed: map[string]bool{},
		sem:       semaphore.NewWeighted(1),
	}
}

// Run indexes root and every project it transitively references, each
// exactly once, dependencies before dependents. index is invoked with the
// semaphore held, so no two calls run concurrently regardless of how many
// goroutines the errgroup fans the walk out to.
func (s *Scheduler) Run(ctx context.Context, root checker.Program, index IndexFunc) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.visit(ctx, root, index)
	})
	return g.Wait()
}

func (s *Scheduler) visit(ctx context.Context, p checker.Program, index IndexFunc) error {
	if !s.claim(p.ModulePath()) {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, ref := range p.References() {
		ref := ref
		g.Go(func() error {
			return s.visit(ctx, ref, index)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer s.sem.Release(1)

	return index(ctx, p)
}

// claim reports whether p's ModulePath has not been seen before, marking it
// seen atomically with the check so two goroutines reaching the same
// diamond dependency race harmlessly: only one proceeds to index it.
func (s *Scheduler) claim(modulePath string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.processed[modulePath] {
		return false
	}
	s.processed[modulePath] = true
	return true
}
