package marketplace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pluginFixture lays out a marketplace directory with a plugin source
// directory and returns (marketplaceDir, sourceDir).
func pluginFixture(t *testing.T) (string, string) {
	t.Helper()
	marketplaceDir := t.TempDir()
	sourceDir := filepath.Join(marketplaceDir, "plugins", "demo")
	require.NoError(t, os.MkdirAll(sourceDir, 0755))
	return marketplaceDir, sourceDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestResolveElementPath_SkillFileByStemAndVerbatim(t *testing.T) {
	marketplaceDir, sourceDir := pluginFixture(t)
	writeFile(t, filepath.Join(sourceDir, "SKILL.md"), "# Demo")

	svc := newTestService(t, t.TempDir())
	entries := []ElementEntry{{Path: "./SKILL.md"}}

	// Both the filename stem and the raw entry string must match.
	for _, requested := range []string{"SKILL", "./SKILL.md"} {
		got := svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategorySkills, entries, requested)
		require.NotEmpty(t, got, "requested name %q", requested)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "SKILL.md", filepath.Base(got))
	}
}

func TestResolveElementPath_SkillDirectoryResolvesToManifest(t *testing.T) {
	marketplaceDir, sourceDir := pluginFixture(t)
	writeFile(t, filepath.Join(sourceDir, "skills", "review", "SKILL.md"), "# Review")

	svc := newTestService(t, t.TempDir())
	entries := []ElementEntry{{Path: "./skills/review"}}

	got := svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategorySkills, entries, "review")
	require.NotEmpty(t, got)
	assert.Equal(t, "SKILL.md", filepath.Base(got))
}

func TestResolveElementPath_SkillDirectoryWithoutManifestIsNoMatch(t *testing.T) {
	marketplaceDir, sourceDir := pluginFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "skills", "empty"), 0755))

	svc := newTestService(t, t.TempDir())
	entries := []ElementEntry{{Path: "./skills/empty"}}

	got := svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategorySkills, entries, "empty")
	assert.Empty(t, got)
}

func TestResolveElementPath_AgentsRequireRegularFile(t *testing.T) {
	marketplaceDir, sourceDir := pluginFixture(t)
	writeFile(t, filepath.Join(sourceDir, "agents", "helper.md"), "helper")
	require.NoError(t, os.MkdirAll(filepath.Join(sourceDir, "agents", "dir-agent"), 0755))

	svc := newTestService(t, t.TempDir())

	got := svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategoryAgents,
		[]ElementEntry{{Path: "./agents/helper.md"}}, "helper")
	assert.NotEmpty(t, got)

	// A directory never satisfies agents/commands.
	got = svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategoryAgents,
		[]ElementEntry{{Path: "./agents/dir-agent"}}, "dir-agent")
	assert.Empty(t, got)
}

func TestResolveElementPath_MissingFileIsNoMatch(t *testing.T) {
	marketplaceDir, _ := pluginFixture(t)

	svc := newTestService(t, t.TempDir())
	got := svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategoryCommands,
		[]ElementEntry{{Path: "./commands/gone.md"}}, "gone")
	assert.Empty(t, got)
}

func TestResolveElementPath_EscapingEntryIsSkippedNotFatal(t *testing.T) {
	marketplaceDir, sourceDir := pluginFixture(t)
	writeFile(t, filepath.Join(sourceDir, "run.md"), "safe")

	svc := newTestService(t, t.TempDir())

	// The escaping entry matches the requested name first but must be
	// skipped; the later safe entry with the same stem still resolves.
	entries := []ElementEntry{
		{Path: "../../../run.md"},
		{Path: "./run.md"},
	}
	got := svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategoryCommands, entries, "run")
	require.NotEmpty(t, got)
	assert.Contains(t, got, filepath.Join("plugins", "demo", "run.md"))
}

func TestResolveElementPath_ObjectEntriesSkipped(t *testing.T) {
	marketplaceDir, sourceDir := pluginFixture(t)
	writeFile(t, filepath.Join(sourceDir, "x.md"), "x")

	svc := newTestService(t, t.TempDir())
	entries := []ElementEntry{
		{Name: "x"}, // object variant, never resolvable
		{Path: "./x.md"},
	}
	got := svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategoryCommands, entries, "x")
	require.NotEmpty(t, got)
	assert.Equal(t, "x.md", filepath.Base(got))
}

func TestResolveElementPath_FirstMatchWins(t *testing.T) {
	marketplaceDir, sourceDir := pluginFixture(t)
	writeFile(t, filepath.Join(sourceDir, "a", "dup.md"), "first")
	writeFile(t, filepath.Join(sourceDir, "b", "dup.md"), "second")

	svc := newTestService(t, t.TempDir())
	entries := []ElementEntry{
		{Path: "./a/dup.md"},
		{Path: "./b/dup.md"},
	}
	got := svc.resolveElementPath(marketplaceDir, "./plugins/demo", CategoryCommands, entries, "dup")
	require.NotEmpty(t, got)
	assert.Contains(t, got, filepath.Join("a", "dup.md"))
}
