// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"errors"
	"fmt"
)

// All errors returned by this package wrap one of these sentinels; branch
// with errors.Is.
var (
	// ErrExhaustedPreferences: a suitor was rejected by every suited it ranks.
	ErrExhaustedPreferences = errors.New("stablematch: preferences exhausted")

	// ErrUnknownIdentity: an identity is missing from a preference list or
	// from the instance.
	ErrUnknownIdentity = errors.New("stablematch: unknown identity")

	// ErrNoPartnerFound: a suitor is not held by any suited of an assignment.
	ErrNoPartnerFound = errors.New("stablematch: no partner found")

	// ErrMultiplePartners: a suitor is held by more than one suited.
	ErrMultiplePartners = errors.New("stablematch: multiple partners")

	ErrDuplicateIdentity = errors.New("stablematch: duplicate identity")
	ErrInvalidCapacity   = errors.New("stablematch: invalid capacity")
	ErrCapacityExceeded  = errors.New("stablematch: capacity exceeded")

	// ErrNotConverged: the proposal loop ran past its round bound.
	ErrNotConverged = errors.New("stablematch: not converged")
)

func wrapf(sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
