package mdpdf

import "strconv"

// Kind identifies the structural type of a Token.
type Kind uint8

const (
	// KindDocument is the synthetic root wrapping block-level children.
	KindDocument Kind = iota
	// KindHeading is an ATX heading, level 1 through 6.
	KindHeading
	// KindParagraph is a run of inline content between blank lines.
	KindParagraph
	// KindEmphasis is leveled emphasis: 1=italic, 2=bold, 3=bold-italic.
	KindEmphasis
	// KindCodeBlock is a fenced code block with verbatim content.
	KindCodeBlock
	// KindCodeSpan is inline code.
	KindCodeSpan
	// KindLink is a hyperlink with a tokenized label.
	KindLink
	// KindImage is an image reference with alt text.
	KindImage
	// KindList is an ordered or unordered list of items.
	KindList
	// KindListItem is one list item.
	KindListItem
	// KindBlockQuote is a quoted block.
	KindBlockQuote
	// KindThematicBreak is a horizontal rule.
	KindThematicBreak
	// KindText is a literal text run.
	KindText
)

// Token is one structurally typed node of the document tree. A tree is
// built once per parse call and never mutated afterwards; every child
// is owned by exactly one parent.
type Token struct {
	Kind     Kind
	Level    int    // heading level 1..6 or cumulative emphasis level 1..3
	Ordered  bool   // list only
	Language string // code block only, may be empty
	Content  string // text, code span, and code block (verbatim) payload
	URL      string // link and image destination
	Children []*Token

	// Override carries a one-off style override attached to this token.
	// It has the highest resolution precedence. Usually nil.
	Override *StyleEntry
}

// StyleKey returns the element-kind key used for style table lookup.
func (t *Token) StyleKey() string {
	switch t.Kind {
	case KindHeading:
		level := t.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return "heading-" + strconv.Itoa(level)
	case KindParagraph:
		return "paragraph"
	case KindEmphasis:
		switch {
		case t.Level <= 1:
			return "italic"
		case t.Level == 2:
			return "bold"
		default:
			return "bold-italic"
		}
	case KindCodeBlock:
		return "code-block"
	case KindCodeSpan:
		return "code-span"
	case KindLink:
		return "link"
	case KindImage:
		return "image"
	case KindList:
		return "list"
	case KindListItem:
		return "list-item"
	case KindBlockQuote:
		return "block-quote"
	case KindThematicBreak:
		return "thematic-break"
	case KindText:
		return "text"
	default:
		return "document"
	}
}

// PlainText returns the token's textual content with all structure
// stripped, preserving document order. Link labels contribute their
// text, not their URL.
func (t *Token) PlainText() string {
	switch t.Kind {
	case KindText, KindCodeSpan, KindCodeBlock:
		return t.Content
	}
	var out []byte
	type frame struct {
		nodes []*Token
		idx   int
	}
	stack := []frame{{nodes: t.Children}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.idx >= len(f.nodes) {
			stack = stack[:len(stack)-1]
			continue
		}
		node := f.nodes[f.idx]
		f.idx++
		switch node.Kind {
		case KindText, KindCodeSpan, KindCodeBlock:
			out = append(out, node.Content...)
		default:
			if len(node.Children) > 0 {
				stack = append(stack, frame{nodes: node.Children})
			}
		}
	}
	return string(out)
}
