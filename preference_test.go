// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOf(t *testing.T) {
	prefs := []int{3, 2, 1, 0}

	r, err := RankOf(prefs, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, r)

	r, err = RankOf(prefs, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, r)

	_, err = RankOf(prefs, 4)
	require.ErrorIs(t, err, ErrUnknownIdentity)

	_, err = RankOf(nil, 0)
	require.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestSuitedCapacity(t *testing.T) {
	assert.Equal(t, 1, (&Suited{ID: 0}).Capacity())
	assert.Equal(t, 3, (&Suited{ID: 0, Cap: 3}).Capacity())
}

func TestInstanceValidate(t *testing.T) {
	cases := []struct {
		name string
		inst Instance
		want error
	}{
		{
			name: "DuplicateSuitor",
			inst: Instance{
				Suitors: []Suitor{NewSuitor(0, 0), NewSuitor(0, 0)},
				Suiteds: []Suited{NewSuited(0, 2, 0)},
			},
			want: ErrDuplicateIdentity,
		},
		{
			name: "DuplicateSuited",
			inst: Instance{
				Suitors: []Suitor{NewSuitor(0, 0)},
				Suiteds: []Suited{NewSuited(0, 1, 0), NewSuited(0, 1, 0)},
			},
			want: ErrDuplicateIdentity,
		},
		{
			name: "RepeatedPref",
			inst: Instance{
				Suitors: []Suitor{NewSuitor(0, 0, 0)},
				Suiteds: []Suited{NewSuited(0, 1, 0)},
			},
			want: ErrDuplicateIdentity,
		},
		{
			name: "NegativeCapacity",
			inst: Instance{
				Suitors: []Suitor{NewSuitor(0, 0)},
				Suiteds: []Suited{NewSuited(0, -1, 0)},
			},
			want: ErrInvalidCapacity,
		},
		{
			name: "UnknownSuited",
			inst: Instance{
				Suitors: []Suitor{NewSuitor(0, 1)},
				Suiteds: []Suited{NewSuited(0, 1, 0)},
			},
			want: ErrUnknownIdentity,
		},
		{
			name: "UnknownSuitor",
			inst: Instance{
				Suitors: []Suitor{NewSuitor(0, 0)},
				Suiteds: []Suited{NewSuited(0, 1, 0, 1)},
			},
			want: ErrUnknownIdentity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.inst.Validate(), tc.want)
		})
	}

	t.Run("PartialPrefs", func(t *testing.T) {
		inst := Instance{
			Suitors: []Suitor{NewSuitor(0, 0), NewSuitor(1, 0)},
			Suiteds: []Suited{NewSuited(0, 2, 0)},
		}
		require.NoError(t, inst.Validate())
	})
}

func TestCurrentProposal(t *testing.T) {
	inst := &Instance{
		Suitors: []Suitor{NewSuitor(0, 1, 0)},
		Suiteds: []Suited{NewSuited(0, 1, 0), NewSuited(1, 1, 0)},
	}
	s := newRunState(inst)

	id, err := s.currentProposal(0)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	s.rejections[0] = 1
	id, err = s.currentProposal(0)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	s.rejections[0] = 2
	_, err = s.currentProposal(0)
	require.ErrorIs(t, err, ErrExhaustedPreferences)
}

func TestAssignmentPartners(t *testing.T) {
	a := Assignment{0: {1, 4}, 2: {0}, 3: {}}

	id, err := a.PartnerOf(4)
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	_, err = a.PartnerOf(9)
	require.ErrorIs(t, err, ErrNoPartnerFound)

	assert.Equal(t, map[int]int{1: 0, 4: 0, 0: 2}, a.Partners())
}
