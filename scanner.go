package mdpdf

import "strings"

// UnitKind classifies a lexical unit.
type UnitKind uint8

const (
	// UnitText is a literal text run.
	UnitText UnitKind = iota
	// UnitHeading is a run of '#' plus trailing space at line start.
	UnitHeading
	// UnitEmphasis is an inline run of '*' or '_'.
	UnitEmphasis
	// UnitBacktick is an inline run of '`'.
	UnitBacktick
	// UnitFence is a code fence line, opening or closing.
	UnitFence
	// UnitRaw is a verbatim line inside an open code fence.
	UnitRaw
	// UnitListMarker is a bullet or ordered list marker at line start.
	UnitListMarker
	// UnitQuoteMarker is one or more '>' prefixes at line start.
	UnitQuoteMarker
	// UnitBracketOpen is '['.
	UnitBracketOpen
	// UnitBracketClose is ']'.
	UnitBracketClose
	// UnitParenOpen is '(' immediately following ']'.
	UnitParenOpen
	// UnitParenClose is ')'.
	UnitParenClose
	// UnitImageOpen is '!['.
	UnitImageOpen
	// UnitNewline terminates a non-blank line.
	UnitNewline
	// UnitBlank is a blank line.
	UnitBlank
	// UnitRule is a thematic break line.
	UnitRule
)

// Unit is a classified span of the input. Units are transient: the
// token builder consumes them and they are discarded.
type Unit struct {
	Kind    UnitKind
	Text    string // exact source substring, markers included
	Offset  int    // byte offset into the scanned source
	Level   int    // heading level, marker run length, or quote depth
	Indent  int    // list marker leading indent in columns
	Number  int    // ordered list marker start number
	Ordered bool   // list marker class
	Info    string // fence info string (language), may be empty
}

type scanner struct {
	src       string
	units     []Unit
	inFence   bool
	fenceChar byte
	fenceLen  int
}

// Scan walks the raw text and emits a flat sequence of lexical units
// with position metadata. It fails only on malformed UTF-8 or binary
// input; unknown Markdown syntax degrades to plain text units.
func Scan(src string) ([]Unit, error) {
	if err := ValidateInput([]byte(src)); err != nil {
		return nil, err
	}
	s := &scanner{src: src, units: make([]Unit, 0, 64)}
	pos := 0
	for pos < len(src) {
		end := strings.IndexByte(src[pos:], '\n')
		var line string
		next := len(src)
		if end >= 0 {
			line = src[pos : pos+end]
			next = pos + end + 1
		} else {
			line = src[pos:]
		}
		line = strings.TrimSuffix(line, "\r")
		s.scanLine(line, pos)
		pos = next
	}
	return s.units, nil
}

func (s *scanner) emit(u Unit) {
	s.units = append(s.units, u)
}

func (s *scanner) scanLine(line string, off int) {
	if s.inFence {
		if runLen, ok := fenceClose(line, s.fenceChar, s.fenceLen); ok {
			s.emit(Unit{Kind: UnitFence, Text: line, Offset: off, Level: runLen})
			s.inFence = false
			return
		}
		s.emit(Unit{Kind: UnitRaw, Text: line + "\n", Offset: off})
		return
	}
	if strings.TrimSpace(line) == "" {
		s.emit(Unit{Kind: UnitBlank, Offset: off})
		return
	}
	if depth, rest, restOff := quotePrefix(line); depth > 0 {
		s.emit(Unit{Kind: UnitQuoteMarker, Text: line[:restOff], Offset: off, Level: depth})
		s.scanInline(rest, off+restOff)
		s.emit(Unit{Kind: UnitNewline, Offset: off + len(line)})
		return
	}
	indent, indentEnd := leadingIndent(line)
	trimmed := line[indentEnd:]
	if level, content, ok := headingMarker(trimmed); ok {
		markerEnd := indentEnd + len(trimmed) - len(content)
		s.emit(Unit{Kind: UnitHeading, Text: line[indentEnd:markerEnd], Offset: off + indentEnd, Level: level})
		s.scanInline(content, off+markerEnd)
		s.emit(Unit{Kind: UnitNewline, Offset: off + len(line)})
		return
	}
	if isThematicBreak(trimmed) {
		s.emit(Unit{Kind: UnitRule, Text: trimmed, Offset: off + indentEnd})
		return
	}
	if ch, runLen, info, ok := fenceOpen(trimmed); ok {
		s.emit(Unit{Kind: UnitFence, Text: trimmed, Offset: off + indentEnd, Level: runLen, Info: info})
		s.inFence = true
		s.fenceChar = ch
		s.fenceLen = runLen
		return
	}
	if ordered, number, content, markerLen, ok := listMarker(trimmed); ok {
		markerEnd := indentEnd + markerLen
		s.emit(Unit{
			Kind:    UnitListMarker,
			Text:    line[indentEnd:markerEnd],
			Offset:  off + indentEnd,
			Indent:  indent,
			Number:  number,
			Ordered: ordered,
		})
		s.scanInline(content, off+indentEnd+len(trimmed)-len(content))
		s.emit(Unit{Kind: UnitNewline, Offset: off + len(line)})
		return
	}
	s.scanInline(trimmed, off+indentEnd)
	s.emit(Unit{Kind: UnitNewline, Offset: off + len(line)})
}

// scanInline recognizes run boundaries for emphasis markers, backticks,
// and link syntax. Escaped characters are emitted as literal text.
func (s *scanner) scanInline(text string, off int) {
	var buf []byte
	runStart := 0
	flush := func(end int) {
		if len(buf) > 0 {
			s.emit(Unit{Kind: UnitText, Text: string(buf), Offset: off + runStart})
			buf = buf[:0]
		}
		runStart = end
	}
	i := 0
	for i < len(text) {
		c := text[i]
		switch c {
		case '\\':
			// Escape suppresses marker interpretation for the next
			// character and keeps it as literal text.
			if i+1 < len(text) {
				buf = append(buf, text[i+1])
				i += 2
			} else {
				buf = append(buf, '\\')
				i++
			}
		case '*', '_':
			run := markerRun(text[i:], c)
			flush(i)
			s.emit(Unit{Kind: UnitEmphasis, Text: text[i : i+run], Offset: off + i, Level: run})
			i += run
			runStart = i
		case '`':
			run := markerRun(text[i:], c)
			flush(i)
			s.emit(Unit{Kind: UnitBacktick, Text: text[i : i+run], Offset: off + i, Level: run})
			i += run
			runStart = i
		case '!':
			if i+1 < len(text) && text[i+1] == '[' {
				flush(i)
				s.emit(Unit{Kind: UnitImageOpen, Text: "![", Offset: off + i})
				i += 2
				runStart = i
			} else {
				buf = append(buf, c)
				i++
			}
		case '[':
			flush(i)
			s.emit(Unit{Kind: UnitBracketOpen, Text: "[", Offset: off + i})
			i++
			runStart = i
		case ']':
			flush(i)
			s.emit(Unit{Kind: UnitBracketClose, Text: "]", Offset: off + i})
			i++
			runStart = i
		case '(':
			// Only meaningful directly after a closing bracket; plain
			// parentheses stay in the text run.
			if n := len(s.units); n > 0 && s.units[n-1].Kind == UnitBracketClose && len(buf) == 0 {
				s.emit(Unit{Kind: UnitParenOpen, Text: "(", Offset: off + i})
				i++
				runStart = i
			} else {
				buf = append(buf, c)
				i++
			}
		case ')':
			flush(i)
			s.emit(Unit{Kind: UnitParenClose, Text: ")", Offset: off + i})
			i++
			runStart = i
		default:
			buf = append(buf, c)
			i++
		}
	}
	flush(len(text))
}

func markerRun(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

func headingMarker(text string) (int, string, bool) {
	level := 0
	for level < len(text) && text[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level >= len(text) || (text[level] != ' ' && text[level] != '\t') {
		return 0, "", false
	}
	return level, strings.TrimLeft(text[level:], " \t"), true
}

func quotePrefix(line string) (int, string, int) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	depth := 0
	for i < len(line) && line[i] == '>' {
		depth++
		i++
		if i < len(line) && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
	}
	if depth == 0 {
		return 0, line, 0
	}
	return depth, line[i:], i
}

func listMarker(text string) (ordered bool, number int, content string, markerLen int, ok bool) {
	if text == "" {
		return false, 0, "", 0, false
	}
	switch text[0] {
	case '-', '*', '+':
		if len(text) < 2 || !isSpace(text[1]) {
			return false, 0, "", 0, false
		}
		return false, 0, strings.TrimLeft(text[1:], " \t"), 1, true
	}
	i := 0
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == 0 || i >= len(text) {
		return false, 0, "", 0, false
	}
	if text[i] != '.' && text[i] != ')' {
		return false, 0, "", 0, false
	}
	if i+1 >= len(text) || !isSpace(text[i+1]) {
		return false, 0, "", 0, false
	}
	number = 0
	for j := 0; j < i; j++ {
		number = number*10 + int(text[j]-'0')
	}
	return true, number, strings.TrimLeft(text[i+1:], " \t"), i + 1, true
}

func fenceOpen(text string) (byte, int, string, bool) {
	if text == "" {
		return 0, 0, "", false
	}
	ch := text[0]
	if ch != '`' && ch != '~' {
		return 0, 0, "", false
	}
	runLen := markerRun(text, ch)
	if runLen < 3 {
		return 0, 0, "", false
	}
	info := strings.TrimSpace(text[runLen:])
	if idx := strings.IndexAny(info, " \t"); idx >= 0 {
		info = info[:idx]
	}
	if ch == '`' && strings.Contains(info, "`") {
		return 0, 0, "", false
	}
	return ch, runLen, info, true
}

// fenceClose reports whether line closes a fence opened with openLen
// markers: a run of the same character of equal or greater length with
// nothing else on the line.
func fenceClose(line string, ch byte, openLen int) (int, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	runLen := markerRun(trimmed, ch)
	if runLen < openLen {
		return 0, false
	}
	if strings.TrimSpace(trimmed[runLen:]) != "" {
		return 0, false
	}
	return runLen, true
}

func isThematicBreak(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 3 {
		return false
	}
	ch := trimmed[0]
	if ch != '-' && ch != '*' && ch != '_' {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != ch {
			return false
		}
	}
	return true
}

func leadingIndent(s string) (int, int) {
	count := 0
	i := 0
	for i < len(s) {
		if s[i] == ' ' {
			count++
			i++
			continue
		}
		if s[i] == '\t' {
			count += 4
			i++
			continue
		}
		break
	}
	return count, i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
