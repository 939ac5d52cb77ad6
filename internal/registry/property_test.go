// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_AliasGeneration validates that alias generation is pure,
// deterministic, and always contains the guaranteed base forms.
func TestProperty_AliasGeneration(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	nameGen := gen.RegexMatch(`[a-z]{1,8}(-[a-z0-9.]{1,6}){0,3}`)

	properties.Property("repeated calls yield identical sets", prop.ForAll(
		func(name string) bool {
			first := ModelAliases(name)
			second := ModelAliases(name)
			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		nameGen,
	))

	properties.Property("multi-token names contain no-separator form and initialism", prop.ForAll(
		func(name string) bool {
			tokens := splitTokens(strings.ToLower(name))
			if len(tokens) < 2 {
				return true
			}
			aliases := ModelAliases(name)
			set := make(map[string]struct{}, len(aliases))
			for _, a := range aliases {
				set[a] = struct{}{}
			}
			if _, ok := set[StripSeparators(strings.ToLower(name))]; !ok {
				return false
			}
			ini := initialism(tokens)
			if len(ini) < 2 {
				return true
			}
			_, ok := set[ini]
			return ok
		},
		gen.RegexMatch(`[a-z]{1,8}(-[a-z0-9]{1,6}){1,3}`),
	))

	properties.Property("generation never produces empty aliases", prop.ForAll(
		func(name string) bool {
			for _, a := range ModelAliases(name) {
				if a == "" {
					return false
				}
			}
			return true
		},
		nameGen,
	))

	properties.TestingRun(t)
}

// TestProperty_MatchScores validates that the matcher only ever returns
// strictly positive scores, for arbitrary queries.
func TestProperty_MatchScores(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	entries := testEntries()

	properties.Property("all returned scores are positive", prop.ForAll(
		func(query string) bool {
			for _, m := range MatchModels(query, entries) {
				if m.Score <= 0 {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`[a-z0-9./ _-]{0,12}`),
	))

	properties.TestingRun(t)
}
