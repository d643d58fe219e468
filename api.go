// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stablematch computes stable assignments between unit-demand
// suitors and capacitated suiteds using deferred acceptance, and verifies
// that an assignment has no blocking pair.
package stablematch

import "sort"

type Matcher interface {
	Match(inst *Instance) (Assignment, error)
}

// Suitor occupies exactly one slot. Prefs lists suited IDs, most preferred
// first.
type Suitor struct {
	ID    int   `json:"id" yaml:"id"`
	Prefs []int `json:"prefs" yaml:"prefs"`
}

// Suited holds up to Cap suitors. Prefs lists suitor IDs, most preferred
// first; a suitor missing from Prefs is unacceptable to the suited.
type Suited struct {
	ID    int   `json:"id" yaml:"id"`
	Prefs []int `json:"prefs" yaml:"prefs"`
	Cap   int   `json:"cap,omitempty" yaml:"cap,omitempty"` // zero means 1
}

func NewSuitor(id int, prefs ...int) Suitor {
	return Suitor{ID: id, Prefs: prefs}
}

func NewSuited(id, capacity int, prefs ...int) Suited {
	return Suited{ID: id, Prefs: prefs, Cap: capacity}
}

// Capacity returns the effective capacity.
func (s *Suited) Capacity() int {
	if s.Cap == 0 {
		return 1
	}
	return s.Cap
}

// Instance is the immutable input of a matching run. Matchers never modify
// it, so one instance can be matched any number of times.
type Instance struct {
	Suitors []Suitor `json:"suitors" yaml:"suitors"`
	Suiteds []Suited `json:"suiteds" yaml:"suiteds"`
}

// Assignment maps each suited ID to its accepted suitor IDs, sorted by ID.
type Assignment map[int][]int

// PartnerOf scans the assignment for the suited holding suitorID.
func (a Assignment) PartnerOf(suitorID int) (int, error) {
	suitedIDs := make([]int, 0, len(a))
	for suitedID := range a {
		suitedIDs = append(suitedIDs, suitedID)
	}
	sort.Ints(suitedIDs)

	for _, suitedID := range suitedIDs {
		for _, id := range a[suitedID] {
			if id == suitorID {
				return suitedID, nil
			}
		}
	}
	return 0, wrapf(ErrNoPartnerFound, "suitor %d", suitorID)
}

// Partners returns the reverse index suitor ID -> suited ID. A suitor held
// by several suiteds keeps the smallest suited ID.
func (a Assignment) Partners() map[int]int {
	partners := make(map[int]int)
	for suitedID, suitorIDs := range a {
		for _, id := range suitorIDs {
			if prev, ok := partners[id]; !ok || suitedID < prev {
				partners[id] = suitedID
			}
		}
	}
	return partners
}

// BlockingPair is a suitor and a suited who both prefer each other to
// what the assignment gives them.
type BlockingPair struct {
	SuitorID int `json:"suitor"`
	SuitedID int `json:"suited"`
}
