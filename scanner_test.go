package mdpdf

import "testing"

func kinds(units []Unit) []UnitKind {
	out := make([]UnitKind, len(units))
	for i, u := range units {
		out[i] = u.Kind
	}
	return out
}

func TestScanHeading(t *testing.T) {
	units, err := Scan("## Title\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d: %v", len(units), kinds(units))
	}
	if units[0].Kind != UnitHeading || units[0].Level != 2 {
		t.Fatalf("expected heading level 2, got %+v", units[0])
	}
	if units[1].Kind != UnitText || units[1].Text != "Title" {
		t.Fatalf("expected text Title, got %+v", units[1])
	}
	if units[2].Kind != UnitNewline {
		t.Fatalf("expected newline, got %+v", units[2])
	}
}

func TestScanHeadingRequiresSpace(t *testing.T) {
	units, err := Scan("#hashtag\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind != UnitText || units[0].Text != "#hashtag" {
		t.Fatalf("expected literal text, got %+v", units[0])
	}
}

func TestScanSevenHashesIsText(t *testing.T) {
	units, err := Scan("####### deep\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind == UnitHeading {
		t.Fatalf("seven hashes must not scan as a heading: %+v", units[0])
	}
}

func TestScanEmphasisRuns(t *testing.T) {
	units, err := Scan("a **b** c\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []UnitKind{UnitText, UnitEmphasis, UnitText, UnitEmphasis, UnitText, UnitNewline}
	got := kinds(units)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unit %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if units[1].Level != 2 || units[1].Text != "**" {
		t.Fatalf("expected run of 2, got %+v", units[1])
	}
}

func TestScanEscapeSuppressesMarker(t *testing.T) {
	units, err := Scan("\\*not emphasis\\*\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind != UnitText || units[0].Text != "*not emphasis*" {
		t.Fatalf("expected escaped literal, got %+v", units[0])
	}
}

func TestScanFenceInterior(t *testing.T) {
	units, err := Scan("```go\n# not a heading\n```\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind != UnitFence || units[0].Info != "go" {
		t.Fatalf("expected opening fence with info go, got %+v", units[0])
	}
	if units[1].Kind != UnitRaw || units[1].Text != "# not a heading\n" {
		t.Fatalf("fence interior must stay raw, got %+v", units[1])
	}
	if units[2].Kind != UnitFence {
		t.Fatalf("expected closing fence, got %+v", units[2])
	}
}

func TestScanFenceCloserNeedsEqualLength(t *testing.T) {
	units, err := Scan("````\n```\n````\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[1].Kind != UnitRaw {
		t.Fatalf("shorter run inside fence must stay raw, got %+v", units[1])
	}
	if units[2].Kind != UnitFence {
		t.Fatalf("expected closing fence, got %+v", units[2])
	}
}

func TestScanListMarkers(t *testing.T) {
	units, err := Scan("- bullet\n2. ordered\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind != UnitListMarker || units[0].Ordered {
		t.Fatalf("expected bullet marker, got %+v", units[0])
	}
	var ordered *Unit
	for i := range units {
		if units[i].Kind == UnitListMarker && units[i].Ordered {
			ordered = &units[i]
		}
	}
	if ordered == nil || ordered.Number != 2 {
		t.Fatalf("expected ordered marker number 2, got %+v", ordered)
	}
}

func TestScanListMarkerNeedsSpace(t *testing.T) {
	units, err := Scan("-not a list\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind != UnitText {
		t.Fatalf("marker without space must be text, got %+v", units[0])
	}
}

func TestScanQuoteDepth(t *testing.T) {
	units, err := Scan("> > nested\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind != UnitQuoteMarker || units[0].Level != 2 {
		t.Fatalf("expected quote depth 2, got %+v", units[0])
	}
}

func TestScanThematicBreak(t *testing.T) {
	for _, line := range []string{"---\n", "***\n", "___\n", "-----\n"} {
		units, err := Scan(line)
		if err != nil {
			t.Fatal(err)
		}
		if units[0].Kind != UnitRule {
			t.Fatalf("%q: expected rule, got %+v", line, units[0])
		}
	}
	units, err := Scan("--\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind == UnitRule {
		t.Fatal("two dashes must not scan as a rule")
	}
}

func TestScanLinkPunctuation(t *testing.T) {
	units, err := Scan("[label](url)\n")
	if err != nil {
		t.Fatal(err)
	}
	want := []UnitKind{UnitBracketOpen, UnitText, UnitBracketClose, UnitParenOpen, UnitText, UnitParenClose, UnitNewline}
	got := kinds(units)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unit %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestScanPlainParenStaysText(t *testing.T) {
	units, err := Scan("call (aside) here\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind != UnitText || units[0].Text != "call (aside" {
		t.Fatalf("plain open paren must stay in the text run, got %+v", units[0])
	}
}

func TestScanImageOpen(t *testing.T) {
	units, err := Scan("![alt](pic.png)\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Kind != UnitImageOpen {
		t.Fatalf("expected image open, got %+v", units[0])
	}
}

func TestScanOffsets(t *testing.T) {
	units, err := Scan("ab *c*\n")
	if err != nil {
		t.Fatal(err)
	}
	if units[0].Offset != 0 || units[1].Offset != 3 {
		t.Fatalf("unexpected offsets: %+v %+v", units[0], units[1])
	}
}

func TestScanRejectsBinary(t *testing.T) {
	if _, err := Scan("a\x00b"); err == nil {
		t.Fatal("expected binary input error")
	}
	if _, err := Scan(string([]byte{0xff, 0xfe, 0xfd})); err == nil {
		t.Fatal("expected invalid utf-8 error")
	}
}
