// File path: internal/analysis/sections_test.go
package analysis

import (
	"strings"
	"testing"
	"unicode/utf8"
)

const completeSummary = `**EXECUTIVE OVERVIEW:**
The city transit authority requests a rider portal.

**FUNCTIONAL REQUIREMENTS:**
Route search, fare purchase and account management.

**TECHNICAL REQUIREMENTS:**
Cloud hosted services with a relational database.

**OPERATIONAL REQUIREMENTS:**
Roughly forty thousand daily riders during peak season.

**BUSINESS CONTEXT & CONSTRAINTS:**
A fixed grant budget and an eight month deadline.

**SUCCESS CRITERIA & DELIVERABLES:**
Production launch plus documentation and training.`

func TestEnsureSectionsCompleteResponseUnchanged(t *testing.T) {
	got := EnsureSections(completeSummary)
	if got != completeSummary {
		t.Fatalf("complete response should pass through unchanged")
	}
}

func TestEnsureSectionsAddsMissing(t *testing.T) {
	partial := "**EXECUTIVE OVERVIEW:**\nA short overview only."
	got := EnsureSections(partial)
	for _, marker := range sectionMarkers {
		if !strings.Contains(got, marker) {
			t.Fatalf("expected marker %q after enhancement", marker)
		}
	}
	// Idempotent: a second pass changes nothing.
	if again := EnsureSections(got); again != got {
		t.Fatalf("enhancement should be idempotent")
	}
}

func TestParseSectionsMapsFields(t *testing.T) {
	sections := ParseSections(completeSummary)
	cases := []struct {
		field string
		got   string
		want  string
	}{
		{"summary", sections.Summary, "The city transit authority requests a rider portal."},
		{"requirements", sections.Requirements, "Route search, fare purchase and account management."},
		{"scope", sections.Scope, "Cloud hosted services with a relational database."},
		{"timeline", sections.Timeline, "Roughly forty thousand daily riders during peak season."},
		{"risks", sections.Risks, "A fixed grant budget and an eight month deadline."},
		{"deliverables", sections.Deliverables, "Production launch plus documentation and training."},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.field, tc.got, tc.want)
		}
	}
}

func TestParseSectionsEmptyWhenNoHeaders(t *testing.T) {
	sections := ParseSections("prose with no headers at all")
	if !sections.Empty() {
		t.Fatalf("expected empty sections, got %+v", sections)
	}
}

func TestClampSectionCollapsesAndCaps(t *testing.T) {
	if got := clampSection("  a\n\nb\t c  "); got != "a b c" {
		t.Fatalf("expected collapsed whitespace, got %q", got)
	}
	long := strings.Repeat("x", 1500)
	got := clampSection(long)
	if len(got) != 1003 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 1000-char cap with ellipsis, got len %d", len(got))
	}
}

func TestClampSectionKeepsRunesIntact(t *testing.T) {
	long := strings.Repeat("é", 1500)
	got := clampSection(long)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8")
	}
	if utf8.RuneCountInString(got) != 1003 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 1000-rune cap with ellipsis, got %d runes", utf8.RuneCountInString(got))
	}
	if got != strings.Repeat("é", 1000)+"..." {
		t.Fatalf("truncation cut mid-rune")
	}
}

func TestSectionBoundaryIgnoresInlineBold(t *testing.T) {
	text := "**EXECUTIVE OVERVIEW:**\nUses **bold emphasis** inline.\n\n**FUNCTIONAL REQUIREMENTS:**\nNext section."
	sections := ParseSections(text)
	if sections.Summary != "Uses **bold emphasis** inline." {
		t.Fatalf("inline lowercase bold should not end a section, got %q", sections.Summary)
	}
}
