// Copyright 2026 The routerctl Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traylinx/routerctl/internal/identity"
	"github.com/traylinx/routerctl/internal/util"
)

// resolverFixture wires a resolver against temp directories with a fully
// resolvable project and session identity.
func resolverFixture(t *testing.T) (*Resolver, *util.StateBox) {
	t.Helper()

	env := &identity.Environ{
		Home:        t.TempDir(),
		TempDir:     t.TempDir(),
		LogStoreDir: t.TempDir(),
		Pid:         1000,
		Getenv: func(key string) string {
			if key == identity.SessionEnvVar {
				return "sess-1"
			}
			return ""
		},
		Now:          time.Now,
		ParentPid:    func(int) (int, bool) { return 0, false },
		ProcessAlive: func(int) bool { return false },
	}
	require.NoError(t, os.MkdirAll(filepath.Join(env.LogStoreDir, "-home-u-proj"), 0o755))

	sb := util.NewStateBoxAt(t.TempDir())
	return NewResolver(sb, env), sb
}

func writeDoc(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolve_GlobalOnly(t *testing.T) {
	r, sb := resolverFixture(t)
	writeDoc(t, sb.GlobalConfigPath(), `{"Router":{"default":"glm,glm-5"}}`)

	res := r.Resolve("/home/u/proj")
	assert.Equal(t, LevelGlobal, res.Level)
	assert.Equal(t, "glm,glm-5", res.Router.Default)
}

func TestResolve_ProjectPromotes(t *testing.T) {
	r, sb := resolverFixture(t)
	writeDoc(t, sb.GlobalConfigPath(), `{"Router":{"default":"glm,glm-5"}}`)
	writeDoc(t, sb.ProjectConfigPath("-home-u-proj"), `{"Router":{"default":"minimax,MiniMax-M2.5"}}`)

	res := r.Resolve("/home/u/proj")
	assert.Equal(t, LevelProject, res.Level)
	// The winning layer replaces the routing section wholesale.
	assert.Equal(t, "minimax,MiniMax-M2.5", res.Router.Default)
	assert.Equal(t, "", res.Router.Think)
}

func TestResolve_EmptySessionRouterDoesNotPromote(t *testing.T) {
	r, sb := resolverFixture(t)
	writeDoc(t, sb.GlobalConfigPath(), `{"Router":{"default":"glm,glm-5"}}`)
	writeDoc(t, sb.ProjectConfigPath("-home-u-proj"), `{"Router":{"default":"minimax,MiniMax-M2.5"}}`)
	writeDoc(t, sb.SessionConfigPath("-home-u-proj", "sess-1"), `{"Router":{}}`)

	res := r.Resolve("/home/u/proj")
	assert.Equal(t, LevelProject, res.Level, "empty session layer must be skipped")
}

func TestResolve_SessionWins(t *testing.T) {
	r, sb := resolverFixture(t)
	writeDoc(t, sb.GlobalConfigPath(), `{"Router":{"default":"glm,glm-5"}}`)
	writeDoc(t, sb.SessionConfigPath("-home-u-proj", "sess-1"), `{"Router":{"think":"deepseek,deepseek-reasoner"}}`)

	res := r.Resolve("/home/u/proj")
	assert.Equal(t, LevelSession, res.Level)
	assert.Equal(t, "deepseek,deepseek-reasoner", res.Router.Think)
	assert.Equal(t, "", res.Router.Default, "no per-field merge across layers")
	assert.Equal(t, identity.SourceEnv, res.Identity.SessionSource)
}

func TestResolve_CorruptLayerTreatedAsAbsent(t *testing.T) {
	r, sb := resolverFixture(t)
	writeDoc(t, sb.GlobalConfigPath(), `{"Router":{"default":"glm,glm-5"}}`)
	writeDoc(t, sb.ProjectConfigPath("-home-u-proj"), `{Router: broken`)

	res := r.Resolve("/home/u/proj")
	assert.Equal(t, LevelGlobal, res.Level)
	assert.Equal(t, "glm,glm-5", res.Router.Default)
}

func TestResolve_NothingPresentStillProducesResult(t *testing.T) {
	r, _ := resolverFixture(t)

	res := r.Resolve("/home/u/proj")
	assert.Equal(t, LevelGlobal, res.Level)
	assert.False(t, res.Router.HasValues())
}

func TestResolve_NoProjectIdentitySkipsOverrides(t *testing.T) {
	r, sb := resolverFixture(t)
	r.Env.LogStoreDir = t.TempDir() // no known projects
	writeDoc(t, sb.GlobalConfigPath(), `{"Router":{"default":"glm,glm-5"}}`)
	writeDoc(t, sb.ProjectConfigPath("-home-u-proj"), `{"Router":{"default":"minimax,MiniMax-M2.5"}}`)

	res := r.Resolve("/home/u/proj")
	assert.Equal(t, LevelGlobal, res.Level)
	assert.Equal(t, "", res.Identity.ProjectID)
}

func TestRouterHasValues(t *testing.T) {
	assert.False(t, Router{}.HasValues())
	assert.False(t, Router{Default: "  "}.HasValues())
	assert.True(t, Router{Image: "p,m"}.HasValues())
}

func TestParseModelRef(t *testing.T) {
	provider, model, ok := ParseModelRef("glm,glm-5")
	require.True(t, ok)
	assert.Equal(t, "glm", provider)
	assert.Equal(t, "glm-5", model)

	_, _, ok = ParseModelRef("no-comma")
	assert.False(t, ok)
	_, _, ok = ParseModelRef(",model")
	assert.False(t, ok)

	assert.Equal(t, "glm,glm-5", FormatModelRef("glm", "glm-5"))
}

func TestGlobalConfigModelEntries(t *testing.T) {
	cfg := GlobalConfig{Providers: []Provider{
		{Name: "glm", Models: []string{"glm-5", "glm-5-air"}},
		{Name: "minimax", Models: []string{"MiniMax-M2.5"}},
	}}
	entries := cfg.ModelEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, "glm/glm-5", entries[0].FullName)
	assert.Equal(t, "minimax/MiniMax-M2.5", entries[2].FullName)
}
