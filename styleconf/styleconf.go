// Package styleconf loads style tables from TOML configuration files.
//
// Each top-level table names a style key ("heading-1", "paragraph",
// "link", ...) and sets only the properties it wants to override;
// everything left out inherits through normal resolution. Composite
// ancestry keys must be quoted:
//
//	["list-item.italic"]
//	textcolor = { r = 96, g = 96, b = 96 }
package styleconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"pkt.systems/mdpdf"
)

// DefaultFileName is the per-user configuration file looked up in the
// home directory by LoadDefault.
const DefaultFileName = "mdpdfrc.toml"

type fileColor struct {
	R uint8 `toml:"r"`
	G uint8 `toml:"g"`
	B uint8 `toml:"b"`
}

type fileStyle struct {
	FontFamily   *string    `toml:"fontfamily"`
	Size         *float64   `toml:"size"`
	Bold         *bool      `toml:"bold"`
	Italic       *bool      `toml:"italic"`
	Underline    *bool      `toml:"underline"`
	TextColor    *fileColor `toml:"textcolor"`
	AfterSpacing *float64   `toml:"afterspacing"`
	Alignment    *string    `toml:"alignment"`
}

// Parse decodes TOML configuration bytes into a style table.
func Parse(data []byte) (mdpdf.StyleTable, error) {
	var raw map[string]fileStyle
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("styleconf: parse: %w", err)
	}
	table := make(mdpdf.StyleTable, len(raw))
	for key, st := range raw {
		table[key] = st.entry()
	}
	return table, nil
}

// Load reads and parses the configuration file at path. A missing file
// is not an error; the built-in defaults apply and an empty table is
// returned.
func Load(path string) (mdpdf.StyleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return mdpdf.DefaultStyleTable(), nil
		}
		return nil, fmt.Errorf("styleconf: read %s: %w", path, err)
	}
	return Parse(data)
}

// LoadDefault loads the per-user configuration from the home
// directory, falling back to the current directory when no home is
// known.
func LoadDefault() (mdpdf.StyleTable, error) {
	path := DefaultFileName
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, DefaultFileName)
	}
	return Load(path)
}

func (f fileStyle) entry() mdpdf.StyleEntry {
	e := mdpdf.StyleEntry{
		FontFamily: f.FontFamily,
		Size:       f.Size,
		Bold:       f.Bold,
		Italic:     f.Italic,
		Underline:  f.Underline,
		Spacing:    f.AfterSpacing,
	}
	if f.TextColor != nil {
		c := mdpdf.RGB{R: f.TextColor.R, G: f.TextColor.G, B: f.TextColor.B}
		e.Color = &c
	}
	if f.Alignment != nil {
		a := parseAlignment(*f.Alignment)
		e.Alignment = &a
	}
	return e
}

// parseAlignment maps an alignment name to its value; unknown names
// fall back to left.
func parseAlignment(s string) mdpdf.Alignment {
	switch s {
	case "center":
		return mdpdf.AlignCenter
	case "right":
		return mdpdf.AlignRight
	case "justify":
		return mdpdf.AlignJustify
	default:
		return mdpdf.AlignLeft
	}
}
