package mdpdf

import (
	"fmt"
	"strings"
)

// maxEmphasisLevel caps cumulative emphasis: 1=italic, 2=bold,
// 3=bold-italic. Deeper nesting stays at 3.
const maxEmphasisLevel = 3

// Build consumes a scanner unit sequence and assembles the nested token
// tree under a synthetic Document root. Malformed Markdown never fails;
// it degrades to literal text. An error indicates a broken unit stream,
// which is a bug in the scanner/builder pairing, not bad input.
func Build(units []Unit) (*Token, error) {
	doc := &Token{Kind: KindDocument}
	i := 0
	for i < len(units) {
		u := units[i]
		switch u.Kind {
		case UnitBlank:
			i++
		case UnitHeading:
			line, next := collectLine(units, i+1)
			doc.Children = append(doc.Children, &Token{
				Kind:     KindHeading,
				Level:    u.Level,
				Children: buildInline(line),
			})
			i = next
		case UnitQuoteMarker:
			tok, next := buildQuote(units, i)
			doc.Children = append(doc.Children, tok)
			i = next
		case UnitFence:
			tok, next := buildCodeBlock(units, i)
			doc.Children = append(doc.Children, tok)
			i = next
		case UnitRule:
			doc.Children = append(doc.Children, &Token{Kind: KindThematicBreak})
			i++
		case UnitListMarker:
			tok, next := buildList(units, i, u.Indent, u.Ordered)
			doc.Children = append(doc.Children, tok)
			i = next
		case UnitRaw:
			return nil, fmt.Errorf("build: raw unit outside code fence at offset %d: %w", u.Offset, ErrInternal)
		default:
			tok, next := buildParagraph(units, i)
			if tok != nil {
				doc.Children = append(doc.Children, tok)
			}
			if next <= i {
				return nil, fmt.Errorf("build: no progress at offset %d: %w", u.Offset, ErrInternal)
			}
			i = next
		}
	}
	return doc, nil
}

// collectLine gathers inline units up to the terminating newline and
// returns the index just past it.
func collectLine(units []Unit, i int) ([]Unit, int) {
	start := i
	for i < len(units) && units[i].Kind != UnitNewline {
		i++
	}
	line := units[start:i]
	if i < len(units) {
		i++
	}
	return line, i
}

func isBlockStart(k UnitKind) bool {
	switch k {
	case UnitHeading, UnitFence, UnitListMarker, UnitQuoteMarker, UnitRule, UnitBlank, UnitRaw:
		return true
	default:
		return false
	}
}

// buildParagraph collects inline units until a blank line or the start
// of another block. Single newlines inside the run are soft breaks.
func buildParagraph(units []Unit, i int) (*Token, int) {
	start := i
	for i < len(units) && !isBlockStart(units[i].Kind) {
		i++
	}
	run := units[start:i]
	for len(run) > 0 && run[len(run)-1].Kind == UnitNewline {
		run = run[:len(run)-1]
	}
	children := buildInline(run)
	if len(children) == 0 {
		return nil, i
	}
	return &Token{Kind: KindParagraph, Children: children}, i
}

// buildQuote merges consecutive quote-prefixed lines into one block
// quote whose content is inline-tokenized. Additional '>' levels on the
// opening line nest quotes.
func buildQuote(units []Unit, i int) (*Token, int) {
	depth := units[i].Level
	var inline []Unit
	first := true
	for i < len(units) && units[i].Kind == UnitQuoteMarker {
		if !first {
			inline = append(inline, Unit{Kind: UnitNewline, Offset: units[i].Offset})
		}
		first = false
		i++
		for i < len(units) && units[i].Kind != UnitNewline {
			inline = append(inline, units[i])
			i++
		}
		if i < len(units) {
			i++
		}
	}
	tok := &Token{Kind: KindBlockQuote, Children: buildInline(inline)}
	for level := 1; level < depth; level++ {
		tok = &Token{Kind: KindBlockQuote, Children: []*Token{tok}}
	}
	return tok, i
}

// buildCodeBlock copies everything between the opening fence and the
// next fence of equal or greater length byte for byte. A missing
// closing fence implicitly closes at end of input.
func buildCodeBlock(units []Unit, i int) (*Token, int) {
	open := units[i]
	i++
	var content strings.Builder
	for i < len(units) && units[i].Kind == UnitRaw {
		content.WriteString(units[i].Text)
		i++
	}
	if i < len(units) && units[i].Kind == UnitFence {
		i++
	}
	return &Token{Kind: KindCodeBlock, Language: open.Info, Content: content.String()}, i
}

// buildList groups consecutive marker lines of one class and indent
// into a list; a deeper indent nests a sublist under the previous item.
func buildList(units []Unit, i int, indent int, ordered bool) (*Token, int) {
	list := &Token{Kind: KindList, Ordered: ordered}
	for i < len(units) && units[i].Kind == UnitListMarker {
		u := units[i]
		if u.Indent < indent {
			break
		}
		if u.Indent > indent {
			sub, next := buildList(units, i, u.Indent, u.Ordered)
			if n := len(list.Children); n > 0 {
				item := list.Children[n-1]
				item.Children = append(item.Children, sub)
			} else {
				list.Children = append(list.Children, &Token{Kind: KindListItem, Children: []*Token{sub}})
			}
			i = next
			continue
		}
		if u.Ordered != ordered {
			break
		}
		line, next := collectLine(units, i+1)
		list.Children = append(list.Children, &Token{Kind: KindListItem, Children: buildInline(line)})
		i = next
	}
	return list, i
}

// inlineFrame is one open emphasis span during inline assembly. The
// builder uses an explicit frame stack instead of call recursion so
// adversarial nesting depth is heap-bounded.
type inlineFrame struct {
	level    int    // cumulative emphasis level of content in this frame
	count    int    // marker run length required to close
	delim    byte   // '*' or '_'
	marker   string // raw marker text, kept for degradation
	children []*Token
}

func appendText(f *inlineFrame, s string) {
	if s == "" {
		return
	}
	if n := len(f.children); n > 0 && f.children[n-1].Kind == KindText {
		f.children[n-1].Content += s
		return
	}
	f.children = append(f.children, &Token{Kind: KindText, Content: s})
}

// buildInline assembles one block's inline units into tokens. Emphasis
// pairing is greedy and symmetric: an opening run of length n pairs
// with the next unescaped run of the same character and length >= n.
// Anything unmatched at end of block degrades to literal text.
func buildInline(units []Unit) []*Token {
	frames := []inlineFrame{{}}
	top := func() *inlineFrame { return &frames[len(frames)-1] }
	i := 0
	for i < len(units) {
		u := units[i]
		switch u.Kind {
		case UnitText:
			appendText(top(), u.Text)
			i++
		case UnitNewline:
			appendText(top(), " ")
			i++
		case UnitEmphasis:
			delim := u.Text[0]
			f := top()
			if len(frames) > 1 && f.delim == delim && u.Level >= f.count {
				closed := *f
				frames = frames[:len(frames)-1]
				parent := top()
				parent.children = append(parent.children, &Token{
					Kind:     KindEmphasis,
					Level:    closed.level,
					Children: closed.children,
				})
				if leftover := u.Level - closed.count; leftover > 0 {
					appendText(parent, strings.Repeat(string(delim), leftover))
				}
				i++
				continue
			}
			if hasEmphasisCloser(units, i+1, delim, u.Level) {
				level := f.level + u.Level
				if level > maxEmphasisLevel {
					level = maxEmphasisLevel
				}
				frames = append(frames, inlineFrame{
					level:  level,
					count:  u.Level,
					delim:  delim,
					marker: u.Text,
				})
				i++
				continue
			}
			appendText(f, u.Text)
			i++
		case UnitBacktick:
			if j := findBacktickCloser(units, i+1, u.Level); j >= 0 {
				top().children = append(top().children, &Token{
					Kind:    KindCodeSpan,
					Content: rawJoin(units[i+1 : j]),
				})
				i = j + 1
				continue
			}
			appendText(top(), u.Text)
			i++
		case UnitBracketOpen, UnitImageOpen:
			if label, url, end, ok := parseLinkSyntax(units, i); ok {
				var tok *Token
				if u.Kind == UnitImageOpen {
					tok = &Token{Kind: KindImage, Content: rawJoin(label), URL: url}
				} else {
					tok = &Token{Kind: KindLink, URL: url, Children: buildInline(label)}
				}
				top().children = append(top().children, tok)
				i = end
				continue
			}
			appendText(top(), u.Text)
			i++
		default:
			appendText(top(), u.Text)
			i++
		}
	}
	// Unmatched openers degrade: marker plus content flatten into the
	// parent frame so the original characters survive.
	for len(frames) > 1 {
		closed := *top()
		frames = frames[:len(frames)-1]
		parent := top()
		appendText(parent, closed.marker)
		for _, child := range closed.children {
			if child.Kind == KindText {
				appendText(parent, child.Content)
			} else {
				parent.children = append(parent.children, child)
			}
		}
	}
	return frames[0].children
}

func hasEmphasisCloser(units []Unit, from int, delim byte, count int) bool {
	for j := from; j < len(units); j++ {
		u := units[j]
		if u.Kind == UnitEmphasis && u.Text[0] == delim && u.Level >= count {
			return true
		}
	}
	return false
}

func findBacktickCloser(units []Unit, from int, count int) int {
	for j := from; j < len(units); j++ {
		if units[j].Kind == UnitBacktick && units[j].Level == count {
			return j
		}
	}
	return -1
}

// rawJoin reconstructs the literal source text of a unit run; soft
// breaks become single spaces.
func rawJoin(units []Unit) string {
	var b strings.Builder
	for _, u := range units {
		if u.Kind == UnitNewline {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(u.Text)
	}
	return b.String()
}

// parseLinkSyntax validates [label](url) starting at the opening
// bracket. Any malformation (no closing bracket on the line, missing
// paren pair, empty URL) fails the parse and the caller degrades the
// whole sequence to literal text.
func parseLinkSyntax(units []Unit, i int) (label []Unit, url string, end int, ok bool) {
	depth := 1
	j := i + 1
	for j < len(units) {
		switch units[j].Kind {
		case UnitBracketOpen, UnitImageOpen:
			depth++
		case UnitBracketClose:
			depth--
		case UnitNewline:
			return nil, "", 0, false
		}
		if depth == 0 {
			break
		}
		j++
	}
	if j >= len(units) || depth != 0 {
		return nil, "", 0, false
	}
	if j+1 >= len(units) || units[j+1].Kind != UnitParenOpen {
		return nil, "", 0, false
	}
	var b strings.Builder
	k := j + 2
	for k < len(units) && units[k].Kind != UnitParenClose {
		if units[k].Kind == UnitNewline {
			return nil, "", 0, false
		}
		b.WriteString(units[k].Text)
		k++
	}
	if k >= len(units) {
		return nil, "", 0, false
	}
	url = strings.TrimSpace(b.String())
	if url == "" {
		return nil, "", 0, false
	}
	return units[i+1 : j], url, k + 1, true
}
