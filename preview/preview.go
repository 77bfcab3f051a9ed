// Package preview renders a styled element sequence as wrapped plain
// text. It is a quick terminal approximation of the document; layout
// fidelity belongs to the PDF renderer.
package preview

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"

	"pkt.systems/mdpdf"
)

// DefaultWidth is used when the caller passes a non-positive width.
const DefaultWidth = 80

type renderer struct {
	out    strings.Builder
	para   strings.Builder
	prefix string // first-line prefix of the current paragraph
	width  int
}

// Render flattens elements into wrapped plain text. Links render as
// "text (url)", images as "[alt]", and list items keep their markers
// with hanging indentation.
func Render(elements []mdpdf.Element, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	r := &renderer{width: width}
	for _, el := range elements {
		switch el.Kind {
		case mdpdf.ElementBreak:
			r.flush()
		case mdpdf.ElementText:
			r.para.WriteString(el.Text)
		case mdpdf.ElementLink:
			r.para.WriteString(el.Text)
			r.para.WriteString(" (")
			r.para.WriteString(el.URL)
			r.para.WriteString(")")
		case mdpdf.ElementImage:
			r.para.WriteString("[")
			r.para.WriteString(el.Text)
			r.para.WriteString("]")
		case mdpdf.ElementCodeBlock:
			r.flush()
			r.codeBlock(el.Text)
		case mdpdf.ElementRule:
			r.flush()
			r.out.WriteString(strings.Repeat("-", width))
			r.out.WriteString("\n\n")
		case mdpdf.ElementIndent:
			r.flush()
			r.prefix = strings.Repeat("  ", el.Indent-1) + el.Marker + " "
		}
	}
	r.flush()
	return strings.TrimRight(r.out.String(), "\n") + "\n"
}

// flush wraps the accumulated paragraph, applies the list prefix with
// hanging indentation, and appends it to the output.
func (r *renderer) flush() {
	text := strings.TrimSpace(r.para.String())
	r.para.Reset()
	prefix := r.prefix
	r.prefix = ""
	if text == "" {
		return
	}
	hang := strings.Repeat(" ", ansi.PrintableRuneWidth(prefix))
	wrapped := wordwrap.String(text, r.width-len(hang))
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			r.out.WriteString(prefix)
		} else {
			r.out.WriteString(hang)
		}
		r.out.WriteString(line)
		r.out.WriteString("\n")
	}
	if prefix == "" {
		r.out.WriteString("\n")
	}
}

func (r *renderer) codeBlock(content string) {
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		r.out.WriteString("    ")
		r.out.WriteString(line)
		r.out.WriteString("\n")
	}
	r.out.WriteString("\n")
}
