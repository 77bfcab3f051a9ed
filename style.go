package mdpdf

import "strings"

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Alignment selects horizontal text alignment.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// Style is the merged, concrete style applied to one output element.
// It is never mutated after resolution and is owned exclusively by the
// element it decorates.
type Style struct {
	FontFamily string
	Size       float64
	Bold       bool
	Italic     bool
	Underline  bool
	Color      RGB
	Spacing    float64 // vertical spacing after the element
	Alignment  Alignment
}

// StyleEntry is one style table entry. Nil fields leave the value
// written by lower-precedence entries untouched; set fields replace it
// (last writer wins, never summation).
type StyleEntry struct {
	FontFamily *string
	Size       *float64
	Bold       *bool
	Italic     *bool
	Underline  *bool
	Color      *RGB
	Spacing    *float64
	Alignment  *Alignment
}

func (e StyleEntry) applyTo(s *Style) {
	if e.FontFamily != nil {
		s.FontFamily = *e.FontFamily
	}
	if e.Size != nil {
		s.Size = *e.Size
	}
	if e.Bold != nil {
		s.Bold = *e.Bold
	}
	if e.Italic != nil {
		s.Italic = *e.Italic
	}
	if e.Underline != nil {
		s.Underline = *e.Underline
	}
	if e.Color != nil {
		s.Color = *e.Color
	}
	if e.Spacing != nil {
		s.Spacing = *e.Spacing
	}
	if e.Alignment != nil {
		s.Alignment = *e.Alignment
	}
}

// StyleTable maps element-kind keys (and dot-joined composite ancestry
// keys such as "list-item.italic") to style entries. It is loaded once
// before resolution begins and is read-only during a conversion, so one
// table may be shared across concurrent conversions.
type StyleTable map[string]StyleEntry

// DefaultStyleTable returns an empty table; resolution falls back to
// the built-in per-kind defaults.
func DefaultStyleTable() StyleTable {
	return StyleTable{}
}

const (
	defaultFontFamily = "Helvetica"
	monoFontFamily    = "Courier"
)

// baseStyle is the built-in body text style every resolution starts
// from.
func baseStyle() Style {
	return Style{
		FontFamily: defaultFontFamily,
		Size:       11,
		Color:      RGB{0, 0, 0},
		Spacing:    1.0,
		Alignment:  AlignLeft,
	}
}

func ptrStr(v string) *string   { return &v }
func ptrF64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool      { return &v }
func ptrRGB(v RGB) *RGB         { return &v }

// builtinEntries holds the sparse built-in deltas per element kind.
// Each entry sets only the properties that kind defines; everything
// else inherits from the enclosing context.
var builtinEntries = map[string]StyleEntry{
	"heading-1": {Size: ptrF64(22), Bold: ptrBool(true), Spacing: ptrF64(1.5)},
	"heading-2": {Size: ptrF64(18), Bold: ptrBool(true), Spacing: ptrF64(1.3)},
	"heading-3": {Size: ptrF64(14), Bold: ptrBool(true), Spacing: ptrF64(1.2)},
	"heading-4": {Size: ptrF64(12), Bold: ptrBool(true), Spacing: ptrF64(1.1)},
	"heading-5": {Size: ptrF64(11), Bold: ptrBool(true), Spacing: ptrF64(1.1)},
	"heading-6": {Size: ptrF64(11), Bold: ptrBool(true), Spacing: ptrF64(1.1)},
	"italic":    {Italic: ptrBool(true)},
	"bold":      {Bold: ptrBool(true)},
	"bold-italic": {
		Bold:   ptrBool(true),
		Italic: ptrBool(true),
	},
	"code-span": {FontFamily: ptrStr(monoFontFamily)},
	"code-block": {
		FontFamily: ptrStr(monoFontFamily),
		Size:       ptrF64(10),
		Spacing:    ptrF64(1.2),
	},
	"link": {
		Color:     ptrRGB(RGB{0, 0, 238}),
		Underline: ptrBool(true),
	},
	"image": {
		Italic: ptrBool(true),
		Color:  ptrRGB(RGB{96, 96, 96}),
	},
	"block-quote": {
		Italic: ptrBool(true),
		Color:  ptrRGB(RGB{96, 96, 96}),
	},
	"thematic-break": {Spacing: ptrF64(1.5)},
}

// Resolve computes the concrete style of a token given the ordered
// chain of enclosing token kind keys from the document root. It is a
// pure function: the same token, ancestry, and table always yield the
// same Style, and the table is never mutated.
//
// Precedence, later overriding earlier per property: built-in default
// for each kind along the chain, table entry for that kind key, the
// most specific composite ancestry key present in the table, and
// finally a one-off override carried by the token itself.
func Resolve(tok *Token, ancestry []string, table StyleTable) Style {
	s := baseStyle()
	chain := make([]string, 0, len(ancestry)+1)
	chain = append(chain, ancestry...)
	chain = append(chain, tok.StyleKey())
	for i, key := range chain {
		if e, ok := builtinEntries[key]; ok {
			e.applyTo(&s)
		}
		if e, ok := table[key]; ok {
			e.applyTo(&s)
		}
		if ck := compositeKey(chain[:i+1], table); ck != "" {
			e := table[ck]
			e.applyTo(&s)
		}
	}
	if tok.Override != nil {
		tok.Override.applyTo(&s)
	}
	return s
}

// compositeKey returns the longest dot-joined suffix of chain (at least
// two segments) present in the table, or "".
func compositeKey(chain []string, table StyleTable) string {
	for start := 0; start < len(chain)-1; start++ {
		key := strings.Join(chain[start:], ".")
		if _, ok := table[key]; ok {
			return key
		}
	}
	return ""
}
