// File path: internal/analysis/fallback_test.go
package analysis

import (
	"strings"
	"testing"
)

func TestFallbackSummaryCarriesAllSections(t *testing.T) {
	summary := FallbackSummary("A web portal with login, payment checkout and reporting dashboards.")
	for _, marker := range sectionMarkers {
		if !strings.Contains(summary, marker) {
			t.Fatalf("fallback summary missing %q", marker)
		}
	}
	if !strings.Contains(summary, "web application") {
		t.Fatalf("expected detected project type in overview")
	}
	sections := ParseSections(summary)
	if sections.Empty() {
		t.Fatalf("fallback summary should parse into sections")
	}
}

func TestFallbackSummaryDeterministic(t *testing.T) {
	doc := "Mobile app for field inspections with offline sync."
	if FallbackSummary(doc) != FallbackSummary(doc) {
		t.Fatalf("fallback summary should be deterministic")
	}
}

func TestFallbackBreakdownSatisfiesAcceptance(t *testing.T) {
	text := FallbackBreakdown(DefaultTechnologyConfig())
	if !DefaultBreakdownConfig().Accept(text) {
		t.Fatalf("fallback breakdown must clear default thresholds")
	}
	modules := SplitModules(text)
	if len(modules) != 8 {
		t.Fatalf("expected 8 modules, got %d", len(modules))
	}
	total := 0
	for _, m := range modules {
		total += len(m.Tasks)
	}
	if total != 25 {
		t.Fatalf("expected 25 tasks, got %d", total)
	}
}

func TestFallbackBreakdownUsesTechnologyNames(t *testing.T) {
	text := FallbackBreakdown(TechnologyConfig{
		Frontend: "vue", Backend: "nodejs", Database: "mongodb", Cloud: "gcp", ApplicationType: "web",
	})
	for _, want := range []string{"Node.js/Express", "Vue.js", "MongoDB", "GCP"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in templated breakdown", want)
		}
	}
}

func TestFallbackBreakdownSubtasksParse(t *testing.T) {
	tasks := AssembleTasks(FallbackBreakdown(DefaultTechnologyConfig()), 100)
	if len(tasks) != 25 {
		t.Fatalf("expected 25 assembled tasks, got %d", len(tasks))
	}
	withSubtasks := 0
	for _, task := range tasks {
		if len(task.Subtasks) > 0 {
			withSubtasks++
		}
	}
	if withSubtasks != len(tasks) {
		t.Fatalf("every fallback task should carry subtasks, %d/%d did", withSubtasks, len(tasks))
	}
}

func TestDetectFeaturesAndComplexity(t *testing.T) {
	features := detectFeatures("login page, database backend and report exports")
	if len(features) != 3 {
		t.Fatalf("expected 3 features, got %v", features)
	}
	if complexityByFeatures(100, 1) != "standard" {
		t.Fatalf("small doc should be standard")
	}
	if complexityByFeatures(1500, 4) != "medium" {
		t.Fatalf("mid doc should be medium")
	}
	if complexityByFeatures(2500, 9) != "high" {
		t.Fatalf("large doc should be high")
	}
}
