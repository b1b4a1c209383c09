// File path: internal/analysis/breakdown_test.go
package analysis

import (
	"strings"
	"testing"
)

const sampleBreakdown = `**TASK BREAKDOWN:**

**Module 1: Project Setup**
Task 1.1: Environment Setup
- Description: Configure the development environment and tooling
- Estimated Hours: 16
- Priority: High
- Subtasks:
  * Repo bootstrap: Initialize repository and tooling - 4 hours - High
  * CI wiring: Configure pipeline and checks - 4 hours - Medium

Task 1.2: Infrastructure Planning
- Description: Plan cloud resources and deployment strategy
- Estimated Hours: 12
- Priority: Medium

**Module 2: Backend Development**
Task 2.1: API Framework
- Description: Build the service skeleton and routing
- Estimated Hours: 30
- Priority: High
- Subtasks:
  * Routing: Wire endpoint handlers - 10 hours - Critical

**Module 3: Testing**
Task 3.1: Test Suite
- Description: Build the automated test suite
- Estimated Hours: 8
- Priority: Low
`

func TestAcceptThresholds(t *testing.T) {
	cfg := DefaultBreakdownConfig()
	if cfg.Accept(sampleBreakdown) {
		t.Fatalf("4 tasks should fail the default 5-task floor")
	}
	relaxed := BreakdownConfig{MinModules: 3, MinTasks: 4, MinResponseLength: 500}
	if !relaxed.Accept(sampleBreakdown) {
		t.Fatalf("expected acceptance under relaxed thresholds")
	}
	if relaxed.Accept("**Module 1: A**\nTask 1.1: short") {
		t.Fatalf("short response should fail the length floor")
	}
}

func TestSplitModules(t *testing.T) {
	modules := SplitModules(sampleBreakdown)
	if len(modules) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(modules))
	}
	if modules[0].Name != "Project Setup" || modules[0].Number != 1 {
		t.Fatalf("unexpected first module %+v", modules[0])
	}
	if len(modules[0].Tasks) != 2 || len(modules[1].Tasks) != 1 {
		t.Fatalf("unexpected task counts: %d/%d", len(modules[0].Tasks), len(modules[1].Tasks))
	}
}

func TestParseTaskBlocksSkipsIncomplete(t *testing.T) {
	body := `Task 1.1: Complete Task
- Description: Has everything it needs
- Estimated Hours: 10
- Priority: High

Task 1.2: Missing Hours
- Description: No estimate given
- Priority: Low
`
	tasks := parseTaskBlocks(body)
	if len(tasks) != 1 {
		t.Fatalf("expected incomplete block skipped, got %d tasks", len(tasks))
	}
	if tasks[0].Title != "Complete Task" {
		t.Fatalf("unexpected surviving task %q", tasks[0].Title)
	}
}

func TestParseSubtaskLine(t *testing.T) {
	sub, ok := parseSubtaskLine("  * Schema design: Model core entities - 6 hours - High")
	if !ok {
		t.Fatalf("expected parse success")
	}
	if sub.Title != "Schema design" || sub.Description != "Model core entities" {
		t.Fatalf("unexpected subtask %+v", sub)
	}
	if sub.Hours != 6 || sub.Priority != PriorityHigh {
		t.Fatalf("unexpected hours/priority %+v", sub)
	}
	if _, ok := parseSubtaskLine("regular prose line"); ok {
		t.Fatalf("prose should not parse as a subtask")
	}
}

func TestAssembleTasksOrderingAndCost(t *testing.T) {
	tasks := AssembleTasks(sampleBreakdown, 100)
	if len(tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(tasks))
	}
	for i, task := range tasks {
		if task.OrderIndex != i+1 {
			t.Fatalf("expected contiguous order index %d, got %d", i+1, task.OrderIndex)
		}
	}
	first := tasks[0]
	if first.Module != "Project Setup" || first.EstimatedCost != 1600.00 {
		t.Fatalf("unexpected first task %+v", first)
	}
	if first.Complexity != "moderate" {
		t.Fatalf("16h task should be moderate, got %q", first.Complexity)
	}
	if len(first.Subtasks) != 2 || first.Subtasks[1].OrderIndex != 2 {
		t.Fatalf("unexpected subtasks %+v", first.Subtasks)
	}
	if first.Subtasks[0].EstimatedCost != 400.00 {
		t.Fatalf("4h subtask at rate 100 should cost 400, got %v", first.Subtasks[0].EstimatedCost)
	}

	api := tasks[2]
	if api.Complexity != "complex" {
		t.Fatalf("30h task should be complex, got %q", api.Complexity)
	}
	if !api.Subtasks[0].IsCritical {
		t.Fatalf("critical subtask should be flagged")
	}
	if tasks[3].Complexity != "simple" {
		t.Fatalf("8h task should be simple, got %q", tasks[3].Complexity)
	}
}

func TestFormatBreakdownRoundTrips(t *testing.T) {
	original := AssembleTasks(sampleBreakdown, 100)
	formatted := FormatBreakdown(original)
	if !strings.Contains(formatted, "**Module 1: Project Setup**") {
		t.Fatalf("formatted output missing module header:\n%s", formatted)
	}
	reparsed := AssembleTasks(formatted, 100)
	if len(reparsed) != len(original) {
		t.Fatalf("round trip lost tasks: %d vs %d", len(reparsed), len(original))
	}
	for i := range original {
		if reparsed[i].Title != original[i].Title || reparsed[i].EstimatedHours != original[i].EstimatedHours {
			t.Fatalf("round trip drifted at %d: %+v vs %+v", i, reparsed[i], original[i])
		}
		if len(reparsed[i].Subtasks) != len(original[i].Subtasks) {
			t.Fatalf("round trip lost subtasks at %d", i)
		}
	}
}
