package styleconf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/mdpdf"
)

const sampleConfig = `
[heading-1]
size = 28
bold = true
alignment = "center"
textcolor = { r = 10, g = 20, b = 30 }

[paragraph]
size = 9.5
afterspacing = 0.8

[link]
underline = false

["list-item.italic"]
textcolor = { r = 96, g = 96, b = 96 }
`

func TestParse(t *testing.T) {
	table, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	require.Len(t, table, 4)

	h1 := table["heading-1"]
	require.NotNil(t, h1.Size)
	assert.Equal(t, 28.0, *h1.Size)
	require.NotNil(t, h1.Bold)
	assert.True(t, *h1.Bold)
	require.NotNil(t, h1.Alignment)
	assert.Equal(t, mdpdf.AlignCenter, *h1.Alignment)
	require.NotNil(t, h1.Color)
	assert.Equal(t, mdpdf.RGB{R: 10, G: 20, B: 30}, *h1.Color)
	// Unset properties stay nil so resolution inherits them.
	assert.Nil(t, h1.FontFamily)
	assert.Nil(t, h1.Italic)

	p := table["paragraph"]
	require.NotNil(t, p.Spacing)
	assert.Equal(t, 0.8, *p.Spacing)

	composite, ok := table["list-item.italic"]
	require.True(t, ok)
	require.NotNil(t, composite.Color)
}

func TestParseAppliesThroughResolution(t *testing.T) {
	table, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	s := mdpdf.Resolve(&mdpdf.Token{Kind: mdpdf.KindHeading, Level: 1}, nil, table)
	assert.Equal(t, 28.0, s.Size)
	assert.Equal(t, mdpdf.AlignCenter, s.Alignment)
	assert.Equal(t, mdpdf.RGB{R: 10, G: 20, B: 30}, s.Color)
	// Spacing was not set for heading-1; the builtin applies.
	assert.Equal(t, 1.5, s.Spacing)
}

func TestParseInvalidTOML(t *testing.T) {
	_, err := Parse([]byte("[broken\nsize = 1"))
	require.Error(t, err)
}

func TestParseUnknownAlignmentFallsBackToLeft(t *testing.T) {
	table, err := Parse([]byte("[paragraph]\nalignment = \"diagonal\"\n"))
	require.NoError(t, err)
	require.NotNil(t, table["paragraph"].Alignment)
	assert.Equal(t, mdpdf.AlignLeft, *table["paragraph"].Alignment)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))
	table, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, table, 4)
}
