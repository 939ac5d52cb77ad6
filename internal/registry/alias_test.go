// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelAliases_SeriesAndVersion(t *testing.T) {
	aliases := ModelAliases("claude-sonnet-4")

	for _, want := range []string{
		"claude-sonnet-4", // lowercase original
		"claudesonnet4",   // separator-free
		"cs4",             // initialism
		"claude4",         // first token + version
		"sonnet4",         // series + version
		"s4",              // series initial + version
		"claude_sonnet_4", // underscore substitution
	} {
		assert.Contains(t, aliases, want)
	}
}

func TestModelAliases_DecimalVersion(t *testing.T) {
	aliases := ModelAliases("gemini-2.5-pro")

	assert.Contains(t, aliases, "gemini-2.5-pro")
	assert.Contains(t, aliases, "gemini2.5pro")
	assert.Contains(t, aliases, "g2p")
	// Dot-stripped variants of every accumulated alias.
	assert.Contains(t, aliases, "gemini-25-pro")
	assert.Contains(t, aliases, "gemini25pro")
}

func TestModelAliases_TwoTokens(t *testing.T) {
	aliases := ModelAliases("glm-5")

	assert.Contains(t, aliases, "glm-5")
	assert.Contains(t, aliases, "glm5")
	assert.Contains(t, aliases, "g5")

	aliases = ModelAliases("MiniMax-M2.5")
	assert.Contains(t, aliases, "minimax-m2.5")
	assert.Contains(t, aliases, "minimaxm2.5")
	assert.Contains(t, aliases, "mm")
	assert.Contains(t, aliases, "mm2.5")
	assert.Contains(t, aliases, "mm25")
	assert.Contains(t, aliases, "minimaxm25")
}

func TestModelAliases_VersionSuffix(t *testing.T) {
	aliases := ModelAliases("kimi-k2-0905")

	// Last token is a pure integer, so series+version forms apply.
	assert.Contains(t, aliases, "k20905")
	assert.Contains(t, aliases, "kimi0905")
	assert.Contains(t, aliases, "kk0905")
}

func TestModelAliases_SingleToken(t *testing.T) {
	aliases := ModelAliases("o3")
	require.NotEmpty(t, aliases)
	assert.Contains(t, aliases, "o3")

	// Single-token names still yield the minimal set, never an error.
	assert.NotContains(t, aliases, "")
}

func TestModelAliases_EmptyInput(t *testing.T) {
	assert.Empty(t, ModelAliases(""))
	assert.Empty(t, ModelAliases("   "))
}

func TestModelAliases_Deterministic(t *testing.T) {
	first := ModelAliases("deepseek-chat-v3.1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ModelAliases("deepseek-chat-v3.1"))
	}
}

func TestProviderAliases(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     []string
	}{
		{"enrichment table", "deepseek", []string{"deepseek", "ds"}},
		{"initialism", "open router", []string{"open router", "openrouter", "or"}},
		{"unknown provider still matches", "zhipuai", []string{"zhipuai"}},
		{"openai short form", "openai", []string{"openai", "oai"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProviderAliases(tt.provider)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
		})
	}
}
