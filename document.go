package mdpdf

import "strconv"

// ElementKind classifies a styled drawing element.
type ElementKind uint8

const (
	// ElementText is a styled text run.
	ElementText ElementKind = iota
	// ElementBreak separates blocks in vertical flow.
	ElementBreak
	// ElementCodeBlock is a verbatim code block with a language hint.
	ElementCodeBlock
	// ElementLink is a text run paired with its destination URL. The
	// text and URL always travel in one element so the renderer can
	// align the clickable region with the drawn text.
	ElementLink
	// ElementImage is an image reference with alt text.
	ElementImage
	// ElementRule is a horizontal rule.
	ElementRule
	// ElementIndent opens one list item's indent-scoped group and
	// carries the item marker ("-" or "3.").
	ElementIndent
)

// Element is one positioned, styled drawing instruction. The ordered
// sequence of elements forms the document handed to the external
// page-layout renderer.
type Element struct {
	Kind     ElementKind
	Text     string
	Style    Style
	URL      string // link and image destination
	Language string // code block language hint, may be empty
	Indent   int    // list nesting depth, 1-based
	Marker   string // list item marker text
}

type docBuilder struct {
	table    StyleTable
	elements []Element
}

// BuildDocument walks the token tree in document order and emits the
// flat styled element sequence. Block tokens are framed by block
// breaks; consecutive breaks collapse into one and breaks never lead
// or trail the sequence.
func BuildDocument(root *Token, table StyleTable) []Element {
	if table == nil {
		table = DefaultStyleTable()
	}
	d := &docBuilder{table: table}
	d.blocks(root.Children, nil)
	if n := len(d.elements); n > 0 && d.elements[n-1].Kind == ElementBreak {
		d.elements = d.elements[:n-1]
	}
	return d.elements
}

func (d *docBuilder) breakElement() {
	if n := len(d.elements); n == 0 || d.elements[n-1].Kind == ElementBreak {
		return
	}
	d.elements = append(d.elements, Element{Kind: ElementBreak})
}

func (d *docBuilder) blocks(tokens []*Token, ancestry []string) {
	for _, tok := range tokens {
		switch tok.Kind {
		case KindHeading, KindParagraph, KindBlockQuote:
			d.breakElement()
			d.inline(tok.Children, append(ancestry, tok.StyleKey()))
			d.breakElement()
		case KindCodeBlock:
			d.breakElement()
			d.elements = append(d.elements, Element{
				Kind:     ElementCodeBlock,
				Text:     tok.Content,
				Language: tok.Language,
				Style:    Resolve(tok, ancestry, d.table),
			})
			d.breakElement()
		case KindThematicBreak:
			d.breakElement()
			d.elements = append(d.elements, Element{
				Kind:  ElementRule,
				Style: Resolve(tok, ancestry, d.table),
			})
			d.breakElement()
		case KindList:
			d.breakElement()
			d.list(tok, ancestry, 1)
			d.breakElement()
		default:
			d.inline([]*Token{tok}, ancestry)
		}
	}
}

// list emits one indent-scoped group per item. Ordered lists number
// sequentially from 1 and restart per list, never per document.
func (d *docBuilder) list(list *Token, ancestry []string, depth int) {
	itemAncestry := append(ancestry, list.StyleKey())
	number := 1
	for _, item := range list.Children {
		if item.Kind != KindListItem {
			continue
		}
		marker := "-"
		if list.Ordered {
			marker = strconv.Itoa(number) + "."
			number++
		}
		d.elements = append(d.elements, Element{
			Kind:   ElementIndent,
			Indent: depth,
			Marker: marker,
			Style:  Resolve(item, itemAncestry, d.table),
		})
		contentAncestry := append(itemAncestry, item.StyleKey())
		var run []*Token
		flush := func() {
			if len(run) > 0 {
				d.inline(run, contentAncestry)
				run = run[:0]
			}
		}
		for _, child := range item.Children {
			if child.Kind == KindList {
				flush()
				d.list(child, contentAncestry, depth+1)
				continue
			}
			run = append(run, child)
		}
		flush()
	}
}

// inline walks inline tokens with an explicit stack, resolving each
// leaf against the style table in its full structural context.
func (d *docBuilder) inline(tokens []*Token, base []string) {
	type frame struct {
		nodes  []*Token
		idx    int
		pushed bool
	}
	ancestry := make([]string, len(base), len(base)+8)
	copy(ancestry, base)
	stack := []frame{{nodes: tokens}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.idx >= len(f.nodes) {
			if f.pushed {
				ancestry = ancestry[:len(ancestry)-1]
			}
			stack = stack[:len(stack)-1]
			continue
		}
		tok := f.nodes[f.idx]
		f.idx++
		switch tok.Kind {
		case KindText:
			d.elements = append(d.elements, Element{
				Kind:  ElementText,
				Text:  tok.Content,
				Style: Resolve(tok, ancestry, d.table),
			})
		case KindCodeSpan:
			d.elements = append(d.elements, Element{
				Kind:  ElementText,
				Text:  tok.Content,
				Style: Resolve(tok, ancestry, d.table),
			})
		case KindLink:
			d.elements = append(d.elements, Element{
				Kind:  ElementLink,
				Text:  tok.PlainText(),
				URL:   tok.URL,
				Style: Resolve(tok, ancestry, d.table),
			})
		case KindImage:
			d.elements = append(d.elements, Element{
				Kind:  ElementImage,
				Text:  tok.Content,
				URL:   tok.URL,
				Style: Resolve(tok, ancestry, d.table),
			})
		case KindEmphasis, KindBlockQuote:
			if len(tok.Children) == 0 {
				continue
			}
			ancestry = append(ancestry, tok.StyleKey())
			stack = append(stack, frame{nodes: tok.Children, pushed: true})
		default:
			if len(tok.Children) > 0 {
				stack = append(stack, frame{nodes: tok.Children})
			}
		}
	}
}
