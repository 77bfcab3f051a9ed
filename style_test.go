package mdpdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBaseDefaults(t *testing.T) {
	tok := &Token{Kind: KindText}
	s := Resolve(tok, []string{"paragraph"}, DefaultStyleTable())
	assert.Equal(t, "Helvetica", s.FontFamily)
	assert.Equal(t, 11.0, s.Size)
	assert.Equal(t, RGB{0, 0, 0}, s.Color)
	assert.Equal(t, AlignLeft, s.Alignment)
	assert.False(t, s.Bold)
}

func TestResolveBuiltinHeading(t *testing.T) {
	tok := &Token{Kind: KindHeading, Level: 1}
	s := Resolve(tok, nil, DefaultStyleTable())
	assert.Equal(t, 22.0, s.Size)
	assert.True(t, s.Bold)
	assert.Equal(t, 1.5, s.Spacing)
}

func TestResolveIdempotent(t *testing.T) {
	table := StyleTable{"heading-2": {Size: ptrF64(40)}}
	tok := &Token{Kind: KindText}
	ancestry := []string{"heading-2"}
	first := Resolve(tok, ancestry, table)
	second := Resolve(tok, ancestry, table)
	require.Equal(t, first, second)
	require.Len(t, table, 1)
}

func TestResolveContextInheritance(t *testing.T) {
	// Text inside a heading keeps the heading's size; emphasis inside
	// keeps it too while adding its own flag.
	table := DefaultStyleTable()
	text := Resolve(&Token{Kind: KindText}, []string{"heading-1"}, table)
	assert.Equal(t, 22.0, text.Size)
	assert.True(t, text.Bold)

	em := Resolve(&Token{Kind: KindEmphasis, Level: 1}, []string{"paragraph"}, table)
	assert.True(t, em.Italic)
	assert.Equal(t, 11.0, em.Size)
}

func TestResolveTableOverridesBuiltin(t *testing.T) {
	table := StyleTable{"heading-1": {Size: ptrF64(30), Bold: ptrBool(false)}}
	s := Resolve(&Token{Kind: KindHeading, Level: 1}, nil, table)
	assert.Equal(t, 30.0, s.Size)
	assert.False(t, s.Bold)
	// Untouched properties keep their defaults.
	assert.Equal(t, "Helvetica", s.FontFamily)
}

func TestResolveLastWriterWins(t *testing.T) {
	// The child entry replaces the inherited size outright, no
	// accumulation across levels.
	table := StyleTable{
		"heading-1": {Size: ptrF64(30)},
		"italic":    {Size: ptrF64(9)},
	}
	s := Resolve(&Token{Kind: KindEmphasis, Level: 1}, []string{"heading-1"}, table)
	assert.Equal(t, 9.0, s.Size)
}

func TestResolveCompositeKeyBeatsKindKey(t *testing.T) {
	red := RGB{200, 0, 0}
	blue := RGB{0, 0, 200}
	table := StyleTable{
		"italic":           {Color: &red},
		"list-item.italic": {Color: &blue},
	}
	inList := Resolve(&Token{Kind: KindEmphasis, Level: 1}, []string{"list", "list-item"}, table)
	assert.Equal(t, blue, inList.Color)

	plain := Resolve(&Token{Kind: KindEmphasis, Level: 1}, []string{"paragraph"}, table)
	assert.Equal(t, red, plain.Color)
}

func TestResolveLongestCompositeWins(t *testing.T) {
	a := RGB{1, 1, 1}
	b := RGB{2, 2, 2}
	table := StyleTable{
		"list-item.italic":      {Color: &a},
		"list.list-item.italic": {Color: &b},
	}
	s := Resolve(&Token{Kind: KindEmphasis, Level: 1}, []string{"list", "list-item"}, table)
	assert.Equal(t, b, s.Color)
}

func TestResolveUnknownKeyFallsBack(t *testing.T) {
	table := StyleTable{"no-such-key": {Size: ptrF64(99)}}
	s := Resolve(&Token{Kind: KindParagraph}, nil, table)
	assert.Equal(t, 11.0, s.Size)
}

func TestResolveTokenOverrideWinsOverAll(t *testing.T) {
	table := StyleTable{"link": {Size: ptrF64(20)}}
	tok := &Token{Kind: KindLink, Override: &StyleEntry{Size: ptrF64(7)}}
	s := Resolve(tok, []string{"paragraph"}, table)
	assert.Equal(t, 7.0, s.Size)
	// Builtin link decoration still applies underneath.
	assert.True(t, s.Underline)
}

func TestResolveEmphasisKeysByLevel(t *testing.T) {
	cases := []struct {
		level int
		key   string
	}{
		{1, "italic"},
		{2, "bold"},
		{3, "bold-italic"},
	}
	for _, tc := range cases {
		tok := &Token{Kind: KindEmphasis, Level: tc.level}
		assert.Equal(t, tc.key, tok.StyleKey())
	}
	s := Resolve(&Token{Kind: KindEmphasis, Level: 3}, nil, DefaultStyleTable())
	assert.True(t, s.Bold)
	assert.True(t, s.Italic)
}
