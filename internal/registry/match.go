// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import (
	"sort"
	"strings"
)

// Match is one scored candidate from a fuzzy query.
type Match struct {
	Entry ModelEntry
	Score float64
}

// Score constants for the exclusive ladder rules. The fallback rule below
// scoreProviderName awards partial credit per query token instead.
const (
	scoreExactFullName      = 100
	scoreExactModel         = 95
	scoreAliasHit           = 92
	scoreSlashBothLiteral   = 90
	scoreSlashProviderAlias = 85
	scoreModelSubstring     = 85
	scoreFullNameSubstring  = 80
	scoreModelNameSubstring = 75
	scoreFullNamePrefix     = 70
	scoreModelPrefix        = 68
	scoreProviderAlias      = 65
	scoreProviderName       = 60
	scorePerToken           = 20
)

// MatchModels scores a free-text query against a registry snapshot and
// returns candidates with score > 0, highest first. Ties keep the original
// snapshot order. Callers presenting results should pass them through
// Dedupe first.
func MatchModels(query string, entries []ModelEntry) []Match {
	catalog := BuildCatalog(entries)
	return catalog.Match(query)
}

// Match scores a query against this catalog. See MatchModels.
func (c *Catalog) Match(query string) []Match {
	lowerQ := strings.ToLower(strings.TrimSpace(query))
	if lowerQ == "" {
		return nil
	}
	strippedQ := StripSeparators(lowerQ)

	matches := make([]Match, 0, len(c.Entries))
	for _, e := range c.Entries {
		score := c.scoreCandidate(lowerQ, strippedQ, e)
		if score > 0 {
			matches = append(matches, Match{Entry: e, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// scoreCandidate walks the scoring ladder for one candidate. Rules are
// evaluated in priority order and the first hit wins.
func (c *Catalog) scoreCandidate(lowerQ, strippedQ string, e ModelEntry) float64 {
	lowerFull := strings.ToLower(e.FullName)
	lowerModel := strings.ToLower(e.Model)
	lowerProvider := strings.ToLower(e.Provider)
	strippedModel := StripSeparators(lowerModel)
	strippedFull := StripSeparators(lowerFull)

	// 1. Alias map resolution or exact full-name match.
	if resolved, ok := c.Resolve(strippedQ); ok && resolved == e.FullName {
		return scoreExactFullName
	}
	if lowerFull == lowerQ {
		return scoreExactFullName
	}

	// 2. Exact model-name match in either normalized form.
	if lowerModel == lowerQ || strippedModel == strippedQ {
		return scoreExactModel
	}

	// 3. Query appears in this model's freshly generated alias set.
	aliases := ModelAliases(e.Model)
	if containsString(aliases, lowerQ) || containsString(aliases, strippedQ) {
		return scoreAliasHit
	}

	// 4. provider/model split query.
	if providerPart, modelPart, ok := strings.Cut(lowerQ, "/"); ok {
		if providerPart != "" && modelPart != "" {
			modelHit := strings.Contains(lowerModel, modelPart)
			if modelHit && strings.Contains(lowerProvider, providerPart) {
				return scoreSlashBothLiteral
			}
			if modelHit && containsString(c.AliasesFor(e.Provider), providerPart) {
				return scoreSlashProviderAlias
			}
		}
	}

	// 5. Separator-free substring of the model name.
	if strings.Contains(strippedModel, strippedQ) {
		return scoreModelSubstring
	}

	// 6. Raw query as a substring of the full name, then the model name.
	if strings.Contains(lowerFull, lowerQ) {
		return scoreFullNameSubstring
	}
	if strings.Contains(lowerModel, lowerQ) {
		return scoreModelNameSubstring
	}

	// 7. Prefix matches in either normalized form.
	if strings.HasPrefix(lowerFull, lowerQ) || strings.HasPrefix(strippedFull, strippedQ) ||
		strings.HasPrefix(strippedModel, strippedQ) {
		return scoreFullNamePrefix
	}
	if strings.HasPrefix(lowerModel, lowerQ) {
		return scoreModelPrefix
	}

	// 8. Query matches one of the provider's aliases.
	providerAliases := c.AliasesFor(e.Provider)
	if containsString(providerAliases, lowerQ) || containsString(providerAliases, strippedQ) {
		return scoreProviderAlias
	}

	// 9. Provider name equals or contains the query.
	if lowerProvider == lowerQ || strings.Contains(lowerProvider, lowerQ) {
		return scoreProviderName
	}

	// 10. Token fallback: partial credit per query token found in the model
	// name or its aliases; provider-alias-only hits count half.
	return c.tokenFallbackScore(lowerQ, strippedModel, aliases, providerAliases)
}

func (c *Catalog) tokenFallbackScore(lowerQ, strippedModel string, aliases, providerAliases []string) float64 {
	tokens := strings.FieldsFunc(lowerQ, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '/' || r == '.'
	})

	var hits float64
	for _, tok := range tokens {
		if len(tok) < 2 {
			continue
		}
		if strings.Contains(strippedModel, tok) || anyContains(aliases, tok) {
			hits++
			continue
		}
		if anyContains(providerAliases, tok) {
			hits += 0.5
		}
	}
	return scorePerToken * hits
}

// Dedupe removes repeated full names, keeping the first (highest-scored)
// occurrence. A provider may be represented more than once across the raw
// registry list, so the same FullName can reach the ladder twice.
func Dedupe(matches []Match) []Match {
	seen := make(map[string]struct{}, len(matches))
	out := matches[:0]
	for _, m := range matches {
		if _, ok := seen[m.Entry.FullName]; ok {
			continue
		}
		seen[m.Entry.FullName] = struct{}{}
		out = append(out, m)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func anyContains(list []string, sub string) bool {
	for _, item := range list {
		if strings.Contains(item, sub) {
			return true
		}
	}
	return false
}
