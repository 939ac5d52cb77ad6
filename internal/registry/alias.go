// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package registry builds a queryable catalog from the provider/model list
// exposed by the routing daemon's configuration. It generates typed aliases
// for every model name on the fly, so short-hand queries like "s4" or "g2.5"
// resolve without a hand-maintained alias table.
package registry

import (
	"regexp"
	"strings"
)

// separatorReplacer strips the characters users treat as interchangeable
// when typing model names.
var separatorReplacer = strings.NewReplacer("-", "", "_", "", " ", "")

// bareVersionPattern matches a trailing version token such as "4" or "2.5".
var bareVersionPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// integerPattern matches a pure integer version token.
var integerPattern = regexp.MustCompile(`^\d+$`)

// StripSeparators removes hyphens, underscores and spaces from s.
// It is the normalization applied to both queries and model names before
// substring comparison.
func StripSeparators(s string) string {
	return separatorReplacer.Replace(s)
}

// aliasSet accumulates candidate strings while preserving insertion order,
// so alias generation stays deterministic for a given input.
type aliasSet struct {
	seen  map[string]struct{}
	order []string
}

func newAliasSet() *aliasSet {
	return &aliasSet{seen: make(map[string]struct{})}
}

func (s *aliasSet) add(alias string) {
	if alias == "" {
		return
	}
	if _, ok := s.seen[alias]; ok {
		return
	}
	s.seen[alias] = struct{}{}
	s.order = append(s.order, alias)
}

func (s *aliasSet) list() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// splitTokens splits a lowercased name on hyphen, underscore and space,
// dropping empty tokens.
func splitTokens(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
}

// initialism returns the first character of every token, concatenated.
func initialism(tokens []string) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteByte(tok[0])
	}
	return b.String()
}

func stripDots(s string) string {
	return strings.ReplaceAll(s, ".", "")
}

// ModelAliases generates every short form a user might plausibly type to
// mean the given model name. The result is deterministic for a given input
// and never empty: malformed or single-token names still yield the lowercase
// form and the separator-free form.
func ModelAliases(name string) []string {
	set := newAliasSet()
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return set.list()
	}

	set.add(lower)
	set.add(StripSeparators(lower))

	tokens := splitTokens(lower)
	if len(tokens) >= 2 {
		if ini := initialism(tokens); len(ini) >= 2 {
			set.add(ini)
		}

		last := tokens[len(tokens)-1]
		if bareVersionPattern.MatchString(last) {
			// Trailing version token: pair the version with the initials of
			// the leading tokens and with the first token alone.
			head := initialism(tokens[:len(tokens)-1])
			set.add(head + last)
			set.add(head + stripDots(last))
			set.add(tokens[0] + last)
			set.add(tokens[0] + stripDots(last))
		}

		if len(tokens) >= 3 && integerPattern.MatchString(last) {
			// Series+version short forms, e.g. "sonnet4" and "s4" for
			// claude-sonnet-4.
			set.add(tokens[1] + last)
			set.add(tokens[1][:1] + last)
			set.add(tokens[0][:1] + initialism(tokens[1:]))
		}

		if len(tokens) == 2 {
			combined := tokens[0][:1] + tokens[1]
			set.add(combined)
			set.add(stripDots(combined))
		}
	}

	// Dot-stripped variant of everything accumulated so far.
	for _, alias := range set.list() {
		set.add(stripDots(alias))
	}

	set.add(strings.ReplaceAll(lower, "-", ""))
	set.add(strings.ReplaceAll(lower, "-", "_"))

	return set.list()
}

// providerShortForms is a fixed enrichment table of conventional provider
// abbreviations, keyed by substring containment. It is not a source of
// truth: providers absent from the table still match through their
// lowercase, separator-free and initialism forms.
var providerShortForms = []struct {
	contains string
	alias    string
}{
	{"deepseek", "ds"},
	{"openai", "oai"},
	{"openrouter", "or"},
	{"anthropic", "ant"},
	{"siliconflow", "sf"},
	{"volcengine", "volc"},
	{"modelscope", "ms"},
	{"dashscope", "qwen"},
}

// ProviderAliases generates the short forms for a provider name: the
// lowercase form, the separator-free form, a multi-word initialism, and any
// conventional abbreviations from the enrichment table.
func ProviderAliases(name string) []string {
	set := newAliasSet()
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return set.list()
	}

	set.add(lower)
	set.add(StripSeparators(lower))

	tokens := splitTokens(lower)
	if len(tokens) >= 2 {
		if ini := initialism(tokens); len(ini) >= 2 {
			set.add(ini)
		}
	}

	for _, form := range providerShortForms {
		if strings.Contains(lower, form.contains) {
			set.add(form.alias)
		}
	}

	return set.list()
}
