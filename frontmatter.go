package mdpdf

import "strings"

// StripFrontMatter removes a leading front matter block delimited by
// ---, +++, or ;;; lines. The block is only stripped when the line
// after the opening delimiter looks like metadata; otherwise the input
// is returned unchanged. An unclosed block is left alone too, since a
// lone --- line is a plausible document opener.
func StripFrontMatter(src string) string {
	body := trimByteOrderMark(src)
	openLine, rest, ok := splitLine(body)
	if !ok {
		return src
	}
	delim := strings.TrimSpace(openLine)
	switch delim {
	case "---", "+++", ";;;":
	default:
		return src
	}
	secondLine, _, ok := splitLine(rest)
	if !ok || !metadataLikely(secondLine) {
		return src
	}
	scan := rest
	for {
		line, next, ok := splitLine(scan)
		if !ok {
			return src
		}
		if strings.TrimSpace(line) == delim {
			return next
		}
		if next == scan {
			return src
		}
		scan = next
	}
}

// splitLine returns the first line without its terminator and the
// remainder after it. ok is false when src is empty.
func splitLine(src string) (line, rest string, ok bool) {
	if src == "" {
		return "", "", false
	}
	if i := strings.IndexByte(src, '\n'); i >= 0 {
		return strings.TrimSuffix(src[:i], "\r"), src[i+1:], true
	}
	return strings.TrimSuffix(src, "\r"), "", true
}

// metadataLikely reports whether a line plausibly starts a metadata
// body: a key-value pair or a JSON-ish opener. A blank or plain prose
// line means the delimiter was just a thematic break.
func metadataLikely(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return true
	}
	return strings.ContainsAny(trimmed, ":=")
}

func trimByteOrderMark(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
