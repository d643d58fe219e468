// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type deferredMatcher struct {
	logger  *zap.Logger
	workers int

	maxRounds int // zero derives the bound from the instance
}

type Option func(*deferredMatcher)

// WithLogger makes the matcher log every round at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(m *deferredMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithWorkers trims the held sets of different suiteds concurrently, using
// at most n goroutines. All proposals of a round are made before any suited
// trims, and the result does not depend on n.
func WithWorkers(n int) Option {
	return func(m *deferredMatcher) {
		m.workers = n
	}
}

// DeferredAcceptance returns the suitor-proposing capacitated deferred
// acceptance matcher. Its assignment is stable and suitor-optimal.
func DeferredAcceptance(opts ...Option) Matcher {
	m := deferredMatcher{
		logger:  zap.NewNop(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Match runs proposal rounds until no suitor is left unassigned:
// every unassigned suitor proposes to its current favorite, then every
// suited keeps its capacity-many most preferred holders and rejects the
// rest, and each rejected suitor moves on to its next choice.
func (m deferredMatcher) Match(inst *Instance) (Assignment, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}

	s := newRunState(inst)

	// Every round but the last rejects someone, and a suitor can be
	// rejected at most len(Prefs) times, so a validated instance runs out
	// of preferences before it reaches this bound.
	maxRounds := m.maxRounds
	if maxRounds <= 0 {
		maxRounds = 1
		for i := range inst.Suitors {
			maxRounds += len(inst.Suitors[i].Prefs)
		}
	}

	unassigned := make([]int, len(inst.Suitors))
	for i := range unassigned {
		unassigned[i] = i
	}

	for round := 1; len(unassigned) > 0; round++ {
		if round > maxRounds {
			return nil, wrapf(ErrNotConverged, "%d rounds", maxRounds)
		}

		if err := s.propose(unassigned); err != nil {
			return nil, err
		}

		rejected, err := m.reject(s)
		if err != nil {
			return nil, err
		}
		for _, i := range rejected {
			s.rejections[i]++
		}

		m.logger.Debug("deferred acceptance round",
			zap.Int("round", round),
			zap.Int("proposals", len(unassigned)),
			zap.Int("rejected", len(rejected)))

		unassigned = rejected
	}

	return s.assignment(), nil
}

func (s *runState) propose(unassigned []int) error {
	for _, i := range unassigned {
		suitedID, err := s.currentProposal(i)
		if err != nil {
			return err
		}
		j, ok := s.suitedIndex[suitedID]
		if !ok {
			return wrapf(ErrUnknownIdentity, "suitor %d proposes to suited %d", s.inst.Suitors[i].ID, suitedID)
		}
		s.held[j] = append(s.held[j], i)
	}
	return nil
}

// reject trims every held set and returns the rejected suitors in suited
// order.
func (m deferredMatcher) reject(s *runState) ([]int, error) {
	rejected := make([][]int, len(s.held))

	if m.workers > 1 {
		var g errgroup.Group
		g.SetLimit(m.workers)
		for j := range s.held {
			j := j // per-iteration copy (go 1.21 loop semantics)
			g.Go(func() error {
				rejected[j] = s.trim(j)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for j := range s.held {
			rejected[j] = s.trim(j)
		}
	}

	var all []int
	for _, r := range rejected {
		all = append(all, r...)
	}
	return all, nil
}

// trim cuts the held set of suited j down to its capacity, keeping the most
// preferred holders. Holders the suited does not rank are always rejected.
// Only s.held[j] is written.
func (s *runState) trim(j int) []int {
	held := s.held[j]
	if len(held) == 0 {
		return nil
	}

	rank := s.ranks[j]
	capacity := s.inst.Suiteds[j].Capacity()

	var acceptable, rejected []int
	for _, i := range held {
		if _, ok := rank[s.inst.Suitors[i].ID]; ok {
			acceptable = append(acceptable, i)
		} else {
			rejected = append(rejected, i)
		}
	}

	if len(acceptable) > capacity {
		sort.Slice(acceptable, func(a, b int) bool {
			return rank[s.inst.Suitors[acceptable[a]].ID] < rank[s.inst.Suitors[acceptable[b]].ID]
		})
		rejected = append(rejected, acceptable[capacity:]...)
		acceptable = acceptable[:capacity]
	}

	s.held[j] = acceptable
	return rejected
}

func (s *runState) assignment() Assignment {
	a := make(Assignment, len(s.held))
	for j, held := range s.held {
		ids := make([]int, len(held))
		for k, i := range held {
			ids[k] = s.inst.Suitors[i].ID
		}
		sort.Ints(ids)
		a[s.inst.Suiteds[j].ID] = ids
	}
	return a
}
