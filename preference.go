// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

// RankOf returns the position of id within prefs.
func RankOf(prefs []int, id int) (int, error) {
	for i, p := range prefs {
		if p == id {
			return i, nil
		}
	}
	return -1, wrapf(ErrUnknownIdentity, "id %d not ranked", id)
}

// Validate checks that the instance is well formed: unique identities,
// non-negative capacities, no repeated entries within a preference list,
// and every ranked identity present in the instance.
func (inst *Instance) Validate() error {
	suitors := make(map[int]bool, len(inst.Suitors))
	for _, suitor := range inst.Suitors {
		if suitors[suitor.ID] {
			return wrapf(ErrDuplicateIdentity, "suitor %d", suitor.ID)
		}
		suitors[suitor.ID] = true
	}

	suiteds := make(map[int]bool, len(inst.Suiteds))
	for _, suited := range inst.Suiteds {
		if suiteds[suited.ID] {
			return wrapf(ErrDuplicateIdentity, "suited %d", suited.ID)
		}
		suiteds[suited.ID] = true
		if suited.Cap < 0 {
			return wrapf(ErrInvalidCapacity, "suited %d capacity %d", suited.ID, suited.Cap)
		}
	}

	for _, suitor := range inst.Suitors {
		if err := checkPrefs(suitor.Prefs, suiteds); err != nil {
			return wrapf(err, "suitor %d prefs", suitor.ID)
		}
	}
	for _, suited := range inst.Suiteds {
		if err := checkPrefs(suited.Prefs, suitors); err != nil {
			return wrapf(err, "suited %d prefs", suited.ID)
		}
	}

	return nil
}

func checkPrefs(prefs []int, known map[int]bool) error {
	seen := make(map[int]bool, len(prefs))
	for _, id := range prefs {
		if seen[id] {
			return wrapf(ErrDuplicateIdentity, "id %d", id)
		}
		seen[id] = true
		if !known[id] {
			return wrapf(ErrUnknownIdentity, "id %d", id)
		}
	}
	return nil
}

// runState is the mutable side of one matching run. It is created fresh by
// every Match call and indexes suitors and suiteds by their position in the
// instance.
type runState struct {
	inst *Instance

	suitedIndex map[int]int
	ranks       []map[int]int // per suited: suitor ID -> rank

	rejections []int   // per suitor
	held       [][]int // per suited: suitor positions
}

func newRunState(inst *Instance) *runState {
	s := &runState{
		inst:        inst,
		suitedIndex: make(map[int]int, len(inst.Suiteds)),
		ranks:       make([]map[int]int, len(inst.Suiteds)),
		rejections:  make([]int, len(inst.Suitors)),
		held:        make([][]int, len(inst.Suiteds)),
	}

	for i := range inst.Suiteds {
		suited := &inst.Suiteds[i]
		s.suitedIndex[suited.ID] = i
		rank := make(map[int]int, len(suited.Prefs))
		for r, id := range suited.Prefs {
			rank[id] = r
		}
		s.ranks[i] = rank
	}

	return s
}

// currentProposal returns the suited ID the suitor at position i proposes
// to next.
func (s *runState) currentProposal(i int) (int, error) {
	suitor := &s.inst.Suitors[i]
	if s.rejections[i] >= len(suitor.Prefs) {
		return 0, wrapf(ErrExhaustedPreferences, "suitor %d rejected %d times", suitor.ID, s.rejections[i])
	}
	return suitor.Prefs[s.rejections[i]], nil
}
