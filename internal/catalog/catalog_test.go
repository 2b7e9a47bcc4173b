package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/lookbook/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, 10, c.Len())
	assert.Len(t, c.Styles(), 5)
	assert.Len(t, c.Settings(), 2)

	img, ok := c.Image("outfit-04")
	require.True(t, ok)
	assert.Equal(t, domain.StyleElegant, img.Style)
	assert.Equal(t, domain.SettingLuxuryInterior, img.Setting)
	assert.Equal(t, 4, img.Hotness)

	assert.Equal(t, domain.StyleConservative, c.Styles()[0].Style)
	assert.Equal(t, "Heiß", c.Style(domain.StyleHot).LabelDE)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
styles:
  - {key: clean, label: Clean, label_de: Clean, color: "#10B981"}
settings:
  - {key: studio-grey, label: Studio}
images:
  - {id: a, title: A, src: /a.jpg, style: clean, setting: studio-grey, hotness: 2, tags: [x]}
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.HasSetting(domain.SettingStudioGrey))
	assert.False(t, c.HasSetting(domain.SettingLuxuryInterior))
}

func TestLoadEmptyPathUsesEmbedded(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "duplicate id",
			data: `
styles: [{key: clean}]
settings: [{key: studio-grey}]
images:
  - {id: a, style: clean, setting: studio-grey, hotness: 1}
  - {id: a, style: clean, setting: studio-grey, hotness: 1}
`,
		},
		{
			name: "unknown style",
			data: `
styles: [{key: clean}]
settings: [{key: studio-grey}]
images: [{id: a, style: hot, setting: studio-grey, hotness: 1}]
`,
		},
		{
			name: "unknown setting",
			data: `
styles: [{key: clean}]
settings: [{key: studio-grey}]
images: [{id: a, style: clean, setting: beach, hotness: 1}]
`,
		},
		{
			name: "hotness out of range",
			data: `
styles: [{key: clean}]
settings: [{key: studio-grey}]
images: [{id: a, style: clean, setting: studio-grey, hotness: 6}]
`,
		},
		{
			name: "reserved setting key",
			data: `
styles: [{key: clean}]
settings: [{key: all}]
`,
		},
		{
			name: "malformed yaml",
			data: "styles: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestStyleFallbackForUnknownStyle(t *testing.T) {
	info := Default().Style("neon")
	assert.Equal(t, "neon", info.Label)
	assert.NotEmpty(t, info.Color)
}
