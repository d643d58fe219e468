// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import "errors"

// VerifyStable reports whether the assignment has no blocking pair.
//
// Every suitor of the instance must be held by exactly one suited of the
// assignment; otherwise ErrNoPartnerFound or ErrMultiplePartners is
// returned instead of a verdict.
func VerifyStable(inst *Instance, a Assignment) (bool, error) {
	_, found, err := FindBlockingPair(inst, a)
	if err != nil {
		return false, err
	}
	return !found, nil
}

// FindBlockingPair returns the first blocking pair, scanning suitors and
// then suiteds in instance order.
//
// A (suitor, suited) pair not matched together blocks when the suitor ranks
// the suited above its partner and the suited ranks the suitor above at
// least one of the suitors it holds. An unranked identity is never
// preferred.
func FindBlockingPair(inst *Instance, a Assignment) (BlockingPair, bool, error) {
	if err := inst.Validate(); err != nil {
		return BlockingPair{}, false, err
	}

	suitors := make(map[int]bool, len(inst.Suitors))
	for i := range inst.Suitors {
		suitors[inst.Suitors[i].ID] = true
	}

	suiteds := make(map[int]*Suited, len(inst.Suiteds))
	for i := range inst.Suiteds {
		suiteds[inst.Suiteds[i].ID] = &inst.Suiteds[i]
	}

	partners := make(map[int]int)
	for suitedID, suitorIDs := range a {
		if _, ok := suiteds[suitedID]; !ok {
			return BlockingPair{}, false, wrapf(ErrUnknownIdentity, "assigned suited %d", suitedID)
		}
		for _, id := range suitorIDs {
			if !suitors[id] {
				return BlockingPair{}, false, wrapf(ErrUnknownIdentity, "suited %d holds suitor %d", suitedID, id)
			}
			if prev, ok := partners[id]; ok {
				return BlockingPair{}, false, wrapf(ErrMultiplePartners, "suitor %d held by %d and %d", id, prev, suitedID)
			}
			partners[id] = suitedID
		}
	}

	for i := range inst.Suitors {
		suitor := &inst.Suitors[i]

		partnerID, ok := partners[suitor.ID]
		if !ok {
			return BlockingPair{}, false, wrapf(ErrNoPartnerFound, "suitor %d", suitor.ID)
		}
		partnerRank, err := RankOf(suitor.Prefs, partnerID)
		if err != nil {
			return BlockingPair{}, false, wrapf(err, "suitor %d partner", suitor.ID)
		}

		for j := range inst.Suiteds {
			suited := &inst.Suiteds[j]
			if suited.ID == partnerID {
				continue
			}
			if r, err := RankOf(suitor.Prefs, suited.ID); err != nil || r >= partnerRank {
				continue
			}

			prefers, err := suitedPrefers(suited, suitor.ID, a[suited.ID])
			if err != nil {
				return BlockingPair{}, false, err
			}
			if prefers {
				return BlockingPair{SuitorID: suitor.ID, SuitedID: suited.ID}, true, nil
			}
		}
	}

	return BlockingPair{}, false, nil
}

func suitedPrefers(suited *Suited, suitorID int, held []int) (bool, error) {
	r, err := RankOf(suited.Prefs, suitorID)
	if errors.Is(err, ErrUnknownIdentity) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	for _, id := range held {
		hr, err := RankOf(suited.Prefs, id)
		if err != nil {
			return false, wrapf(err, "suited %d holds", suited.ID)
		}
		if r < hr {
			return true, nil
		}
	}
	return false, nil
}

// CheckCapacity fails if some suited holds more suitors than its capacity.
func CheckCapacity(inst *Instance, a Assignment) error {
	for i := range inst.Suiteds {
		suited := &inst.Suiteds[i]
		if n := len(a[suited.ID]); n > suited.Capacity() {
			return wrapf(ErrCapacityExceeded, "suited %d holds %d of %d", suited.ID, n, suited.Capacity())
		}
	}
	return nil
}
