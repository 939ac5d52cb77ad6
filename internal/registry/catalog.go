// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import (
	"hash/fnv"
	"strings"
	"sync"
)

// ModelEntry is one provider/model pair from a registry snapshot.
// Entries are immutable once built; FullName is always Provider + "/" + Model.
type ModelEntry struct {
	Provider string
	Model    string
	FullName string
}

// NewModelEntry builds a ModelEntry with its canonical full name.
func NewModelEntry(provider, model string) ModelEntry {
	return ModelEntry{
		Provider: provider,
		Model:    model,
		FullName: provider + "/" + model,
	}
}

// Catalog is the lookup structure derived from a registry snapshot: a flat
// alias map plus per-provider alias lists. It is rebuilt whenever the
// snapshot fingerprint changes and is read-only afterwards.
type Catalog struct {
	Entries []ModelEntry

	// aliases maps canonical full-name spellings to exactly one FullName.
	// The first entry to claim an alias keeps it; later collisions are
	// silently dropped. This is an accepted, deterministic ambiguity that
	// depends only on registry iteration order. Generated short forms are
	// deliberately excluded: they match through the scoring ladder instead,
	// so an exact-resolution hit is always a canonical spelling.
	aliases map[string]string

	// providerAliases caches the generated alias list per provider name.
	providerAliases map[string][]string

	fingerprint uint64
}

// Fingerprint computes a cheap, non-cryptographic summary of a registry
// snapshot. It only decides whether cached alias data must be rebuilt.
func Fingerprint(entries []ModelEntry) uint64 {
	h := fnv.New64a()
	for _, e := range entries {
		h.Write([]byte(e.Provider))
		h.Write([]byte{'/'})
		h.Write([]byte(e.Model))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// BuildCatalog constructs the alias lookup structures for a snapshot.
func BuildCatalog(entries []ModelEntry) *Catalog {
	c := &Catalog{
		Entries:         entries,
		aliases:         make(map[string]string),
		providerAliases: make(map[string][]string),
		fingerprint:     Fingerprint(entries),
	}

	for _, e := range entries {
		for _, alias := range canonicalAliases(e) {
			if _, taken := c.aliases[alias]; !taken {
				c.aliases[alias] = e.FullName
			}
		}
		key := strings.ToLower(e.Provider)
		if _, ok := c.providerAliases[key]; !ok {
			c.providerAliases[key] = ProviderAliases(e.Provider)
		}
	}

	return c
}

// canonicalAliases lists the full-name spellings that resolve directly to
// an entry: the lowercase full name and its separator/dot-normalized
// variants.
func canonicalAliases(e ModelEntry) []string {
	lowerFull := strings.ToLower(e.FullName)
	stripped := StripSeparators(lowerFull)
	return []string{
		lowerFull,
		stripped,
		stripDots(lowerFull),
		stripDots(stripped),
		strings.ReplaceAll(lowerFull, "-", "_"),
	}
}

// Resolve looks up a normalized alias in the flat alias map.
func (c *Catalog) Resolve(alias string) (string, bool) {
	full, ok := c.aliases[alias]
	return full, ok
}

// AliasesFor returns the generated alias list for a provider name.
func (c *Catalog) AliasesFor(provider string) []string {
	if aliases, ok := c.providerAliases[strings.ToLower(provider)]; ok {
		return aliases
	}
	return ProviderAliases(provider)
}

// CatalogCache keeps the most recently built catalog and rebuilds it only
// when the snapshot fingerprint changes. Safe for concurrent readers,
// though in practice one CLI invocation builds it once.
type CatalogCache struct {
	mu      sync.Mutex
	current *Catalog
}

// Get returns a catalog for the snapshot, reusing the cached one when the
// fingerprint is unchanged.
func (cc *CatalogCache) Get(entries []ModelEntry) *Catalog {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if cc.current != nil && cc.current.fingerprint == Fingerprint(entries) {
		return cc.current
	}
	cc.current = BuildCatalog(entries)
	return cc.current
}

// Invalidate drops the cached catalog so the next Get rebuilds it.
func (cc *CatalogCache) Invalidate() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.current = nil
}
