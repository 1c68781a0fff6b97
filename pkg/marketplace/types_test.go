package marketplace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"skills", false},
		{"agents", false},
		{"commands", false},
		{"scripts", true},
		{"", true},
		{"Skills", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCategory)
			} else {
				require.NoError(t, err)
				assert.Equal(t, Category(tt.input), c)
			}
		})
	}
}

func TestElementEntry_UnmarshalVariants(t *testing.T) {
	var def PluginDefinition
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "mixed",
		"skills": [
			"./skills/review",
			{"name": "inline-skill", "extra": true},
			{"description": "nameless object"}
		]
	}`), &def))

	require.Len(t, def.Skills, 3)

	assert.True(t, def.Skills[0].IsPath())
	name, ok := def.Skills[0].DisplayName()
	require.True(t, ok)
	assert.Equal(t, "review", name)

	assert.False(t, def.Skills[1].IsPath())
	name, ok = def.Skills[1].DisplayName()
	require.True(t, ok)
	assert.Equal(t, "inline-skill", name)

	_, ok = def.Skills[2].DisplayName()
	assert.False(t, ok, "object entries without a name contribute nothing")
}

func TestElementEntry_ToleratesUnknownShapes(t *testing.T) {
	var def PluginDefinition
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "odd",
		"skills": ["./real.md", 42, ["nested"], {"name": "obj"}]
	}`), &def))

	require.Len(t, def.Skills, 4)

	// The odd entries resolve to nothing and contribute no names, but they
	// never invalidate the manifest around them.
	for _, i := range []int{1, 2} {
		assert.False(t, def.Skills[i].IsPath(), "entry %d", i)
		_, ok := def.Skills[i].DisplayName()
		assert.False(t, ok, "entry %d", i)
	}

	name, ok := def.Skills[0].DisplayName()
	require.True(t, ok)
	assert.Equal(t, "real", name)

	// Round-trip keeps the odd entries byte for byte.
	out, err := json.Marshal(def.Skills)
	require.NoError(t, err)
	assert.JSONEq(t, `["./real.md", 42, ["nested"], {"name": "obj"}]`, string(out))
}

func TestElementEntry_EmptyStringIsStillPathVariant(t *testing.T) {
	var entries []ElementEntry
	require.NoError(t, json.Unmarshal([]byte(`[""]`), &entries))

	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsPath())
	_, ok := entries[0].DisplayName()
	assert.False(t, ok, "an empty path has no stem to contribute")
}

func TestElementEntry_MarshalRoundTripsRaw(t *testing.T) {
	raw := []byte(`["./a.md",{"name":"b","extra":1}]`)
	var entries []ElementEntry
	require.NoError(t, json.Unmarshal(raw, &entries))

	out, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}

func TestSummarize(t *testing.T) {
	var def PluginDefinition
	require.NoError(t, json.Unmarshal([]byte(`{
		"name": "demo",
		"description": "a demo",
		"agents": ["./agents/helper.md"],
		"commands": ["./commands/run.md", {"name": "named-cmd"}],
		"skills": [{"nope": true}]
	}`), &def))

	summary := Summarize(&def)
	assert.Equal(t, "demo", summary.Name)
	assert.Equal(t, "a demo", summary.Description)
	assert.Equal(t, []string{"helper"}, summary.Agents)
	assert.Equal(t, []string{"run", "named-cmd"}, summary.Commands)
	assert.Empty(t, summary.Skills)
}

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"./SKILL.md", "SKILL"},
		{"skills/code-review", "code-review"},
		{"a/b/c.tar", "c"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stem(tt.path), tt.path)
	}
}
