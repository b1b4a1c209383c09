// File path: internal/analysis/sections.go
package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// The six headers a well-formed summary carries, in canonical order.
var sectionMarkers = []string{
	"**EXECUTIVE OVERVIEW:**",
	"**FUNCTIONAL REQUIREMENTS:**",
	"**TECHNICAL REQUIREMENTS:**",
	"**OPERATIONAL REQUIREMENTS:**",
	"**BUSINESS CONTEXT & CONSTRAINTS:**",
	"**SUCCESS CRITERIA & DELIVERABLES:**",
}

// defaultSectionText supplies placeholder prose for sections a provider
// response left out.
var defaultSectionText = map[string]string{
	"**EXECUTIVE OVERVIEW:**":              "This RFP outlines a comprehensive project initiative designed to address specific organizational needs and strategic objectives. The requesting organization seeks to implement a solution that will significantly improve operational efficiency and service delivery. The project represents a critical investment in technology infrastructure and process optimization. Success will drive measurable improvements in organizational performance and stakeholder satisfaction.",
	"**FUNCTIONAL REQUIREMENTS:**":         "The solution must provide comprehensive functionality supporting core business processes and user workflows. Key capabilities include user management, data processing, reporting, and integration with existing systems. The system should offer intuitive user interfaces with role-based access controls and automated workflow management. Real-time processing and responsive design across multiple platforms are essential requirements.",
	"**TECHNICAL REQUIREMENTS:**":          "The technical architecture must support scalable, secure, and reliable operations with modern technology standards. Integration capabilities with existing enterprise systems and third-party services are required. Performance specifications include high availability, data security, and compliance with industry standards. The solution should leverage cloud-native technologies with appropriate backup and disaster recovery capabilities.",
	"**OPERATIONAL REQUIREMENTS:**":        "The system will serve multiple user groups with varying access levels and operational responsibilities. Deployment must accommodate existing infrastructure while minimizing disruption to current operations. Ongoing maintenance and support requirements include monitoring, updates, and user assistance. Training and change management support will be necessary for successful implementation and adoption.",
	"**BUSINESS CONTEXT & CONSTRAINTS:**":  "This initiative operates within specific budget parameters and timeline constraints established by organizational priorities. Regulatory compliance and governance requirements must be maintained throughout implementation and operations. The project aligns with broader digital transformation goals and strategic business objectives. Resource allocation and stakeholder coordination will be critical success factors.",
	"**SUCCESS CRITERIA & DELIVERABLES:**": "Project success will be measured through specific performance metrics, user adoption rates, and operational efficiency improvements. Key deliverables include fully functional system, comprehensive documentation, user training, and ongoing support arrangements. Acceptance criteria focus on meeting functional requirements, performance benchmarks, and user satisfaction targets. Final delivery includes production deployment with validated performance and compliance standards.",
}

// EnsureSections appends placeholder content for any of the six required
// headers the response is missing. A complete response passes through
// untouched, so the operation is idempotent.
func EnsureSections(response string) string {
	enhanced := strings.TrimSpace(response)
	for _, marker := range sectionMarkers {
		if !strings.Contains(enhanced, marker) {
			enhanced += "\n\n" + marker + "\n" + defaultSectionText[marker]
		}
	}
	return enhanced
}

// Sections holds the per-field text extracted from a summary response.
type Sections struct {
	Summary      string
	Requirements string
	Scope        string
	Deliverables string
	Risks        string
	Timeline     string
}

// Empty reports whether no section header was found at all.
func (s Sections) Empty() bool {
	return s.Summary == "" && s.Requirements == "" && s.Scope == "" &&
		s.Deliverables == "" && s.Risks == "" && s.Timeline == ""
}

// ParseSections extracts the six summary sections from a response. Each
// section runs from its header to the next bold uppercase header or the
// end of text. When nothing parses, the caller should fall back to using
// the full response as the summary.
func ParseSections(response string) Sections {
	return Sections{
		Summary:      sectionText(response, "**EXECUTIVE OVERVIEW:**"),
		Requirements: sectionText(response, "**FUNCTIONAL REQUIREMENTS:**"),
		Scope:        sectionText(response, "**TECHNICAL REQUIREMENTS:**"),
		Deliverables: sectionText(response, "**SUCCESS CRITERIA & DELIVERABLES:**"),
		Risks:        sectionText(response, "**BUSINESS CONTEXT & CONSTRAINTS:**"),
		Timeline:     sectionText(response, "**OPERATIONAL REQUIREMENTS:**"),
	}
}

func sectionText(response, marker string) string {
	start := strings.Index(response, marker)
	if start < 0 {
		return ""
	}
	body := response[start+len(marker):]
	if end := nextMarkerIndex(body); end >= 0 {
		body = body[:end]
	}
	return clampSection(body)
}

// nextMarkerIndex finds the offset of the next "**" immediately followed
// by an uppercase letter, the boundary that starts the following section.
func nextMarkerIndex(s string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], "**")
		if i < 0 {
			return -1
		}
		pos := offset + i
		rest := s[pos+2:]
		if len(rest) > 0 && unicode.IsUpper(rune(rest[0])) {
			return pos
		}
		offset = pos + 2
	}
}

// clampSection collapses whitespace runs and caps the text at 1000
// characters with an ellipsis. The cap counts runes so a multi-byte
// character is never split.
func clampSection(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) > 1000 {
		s = string([]rune(s)[:1000]) + "..."
	}
	return s
}
