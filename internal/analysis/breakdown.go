// File path: internal/analysis/breakdown.go
package analysis

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// BreakdownConfig sets the acceptance thresholds for a generated
// breakdown. Responses below any threshold are rejected in favor of the
// canned fallback.
type BreakdownConfig struct {
	MinModules        int
	MinTasks          int
	MinResponseLength int
}

func DefaultBreakdownConfig() BreakdownConfig {
	return BreakdownConfig{MinModules: 3, MinTasks: 5, MinResponseLength: 500}
}

var (
	moduleHeaderPattern = regexp.MustCompile(`(?i)\*\*Module\s+(\d+):\s+([^*]+)\*\*`)
	taskCountPattern    = regexp.MustCompile(`(?i)Task\s+[\d.]+`)
	taskHeaderPattern   = regexp.MustCompile(`(?im)^\s*Task\s+([\d.]+):\s*(.+)$`)
	descriptionPattern  = regexp.MustCompile(`(?i)^[-\s]*Description:\s*(.+)$`)
	hoursPattern        = regexp.MustCompile(`(?i)^[-\s]*Estimated Hours:\s*(\d+)`)
	priorityPattern     = regexp.MustCompile(`(?i)^[-\s]*Priority:\s*(\S+)`)
	subtasksLabel       = regexp.MustCompile(`(?i)^[-\s]*Subtasks:\s*$`)
	subtaskLinePattern  = regexp.MustCompile(`(?i)^\s*\*\s+([^:]+):\s+([^-]+?)\s+-\s+(\d+)\s+hours\s+-\s+(\S+)`)
)

// Accept reports whether a generated breakdown is dense enough to parse:
// it must clear the length floor and carry at least MinModules module
// headers and MinTasks task headers.
func (c BreakdownConfig) Accept(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < c.MinResponseLength {
		return false
	}
	modules := len(moduleHeaderPattern.FindAllString(trimmed, -1))
	tasks := len(taskCountPattern.FindAllString(trimmed, -1))
	return modules >= c.MinModules && tasks >= c.MinTasks
}

// Module is a named group of parsed tasks.
type Module struct {
	Number int
	Name   string
	Tasks  []parsedTask
}

type parsedTask struct {
	Label       string
	Title       string
	Description string
	Hours       float64
	Priority    string
	Subtasks    []parsedSubtask
}

type parsedSubtask struct {
	Title       string
	Description string
	Hours       float64
	Priority    string
}

// SplitModules slices the breakdown into modules by their bold headers.
// Each module's body runs until the next header or end of text.
func SplitModules(text string) []Module {
	headers := moduleHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	modules := make([]Module, 0, len(headers))
	for i, loc := range headers {
		number, _ := strconv.Atoi(text[loc[2]:loc[3]])
		name := strings.TrimSpace(text[loc[4]:loc[5]])
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		body := text[loc[1]:end]
		modules = append(modules, Module{
			Number: number,
			Name:   name,
			Tasks:  parseTaskBlocks(body),
		})
	}
	return modules
}

// parseTaskBlocks scans a module body for task blocks. A block starts at
// a "Task N.M:" header and collects its labeled lines; blocks missing a
// description, hour figure or priority are skipped.
func parseTaskBlocks(body string) []parsedTask {
	headers := taskHeaderPattern.FindAllStringSubmatchIndex(body, -1)
	tasks := make([]parsedTask, 0, len(headers))
	for i, loc := range headers {
		end := len(body)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}
		block := body[loc[1]:end]

		task := parsedTask{
			Label: body[loc[2]:loc[3]],
			Title: strings.TrimSpace(body[loc[4]:loc[5]]),
		}
		inSubtasks := false
		hasHours := false
		for _, line := range strings.Split(block, "\n") {
			switch {
			case subtasksLabel.MatchString(line):
				inSubtasks = true
			case inSubtasks:
				if sub, ok := parseSubtaskLine(line); ok {
					task.Subtasks = append(task.Subtasks, sub)
				}
			case descriptionPattern.MatchString(line):
				task.Description = strings.TrimSpace(descriptionPattern.FindStringSubmatch(line)[1])
			case hoursPattern.MatchString(line):
				hours, _ := strconv.Atoi(hoursPattern.FindStringSubmatch(line)[1])
				task.Hours = float64(hours)
				hasHours = true
			case priorityPattern.MatchString(line):
				task.Priority = NormalizePriority(priorityPattern.FindStringSubmatch(line)[1])
			}
		}
		if task.Description == "" || !hasHours || task.Priority == "" {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func parseSubtaskLine(line string) (parsedSubtask, bool) {
	m := subtaskLinePattern.FindStringSubmatch(line)
	if m == nil {
		return parsedSubtask{}, false
	}
	hours, _ := strconv.Atoi(m[3])
	return parsedSubtask{
		Title:       strings.TrimSpace(m[1]),
		Description: strings.TrimSpace(m[2]),
		Hours:       float64(hours),
		Priority:    NormalizePriority(m[4]),
	}, true
}

// taskComplexity buckets a task by its hour estimate.
func taskComplexity(hours float64) string {
	switch {
	case hours > 24:
		return "complex"
	case hours > 8:
		return "moderate"
	default:
		return "simple"
	}
}

// AssembleTasks parses a breakdown and flattens it into storable task
// records. Order indexes are contiguous and 1-based across modules;
// subtask indexes restart per task. Cost is priced at the given hourly
// rate.
func AssembleTasks(text string, hourlyRate float64) []Task {
	var tasks []Task
	order := 1
	for _, module := range SplitModules(text) {
		for _, pt := range module.Tasks {
			task := Task{
				Title:          pt.Title,
				Description:    pt.Description,
				Category:       "Development",
				Module:         module.Name,
				Priority:       pt.Priority,
				EstimatedHours: pt.Hours,
				EstimatedCost:  math.Round(pt.Hours*hourlyRate*100) / 100,
				Complexity:     taskComplexity(pt.Hours),
				OrderIndex:     order,
			}
			for i, ps := range pt.Subtasks {
				task.Subtasks = append(task.Subtasks, Subtask{
					Title:          ps.Title,
					Description:    ps.Description,
					Priority:       ps.Priority,
					EstimatedHours: ps.Hours,
					EstimatedCost:  math.Round(ps.Hours*hourlyRate*100) / 100,
					IsCritical:     ps.Priority == PriorityCritical,
					OrderIndex:     i + 1,
				})
			}
			tasks = append(tasks, task)
			order++
		}
	}
	return tasks
}

// FormatBreakdown re-serializes stored tasks into the same grammar the
// parser accepts, grouped by module in order-index order.
func FormatBreakdown(tasks []Task) string {
	var b strings.Builder
	b.WriteString("**TASK BREAKDOWN:**\n\n")
	currentModule := ""
	moduleNumber := 0
	taskInModule := 0
	for _, task := range tasks {
		module := task.Module
		if module == "" {
			module = "General"
		}
		if module != currentModule {
			currentModule = module
			moduleNumber++
			taskInModule = 0
			b.WriteString("**Module " + strconv.Itoa(moduleNumber) + ": " + module + "**\n")
		}
		taskInModule++
		b.WriteString("Task " + strconv.Itoa(moduleNumber) + "." + strconv.Itoa(taskInModule) + ": " + task.Title + "\n")
		b.WriteString("- Description: " + task.Description + "\n")
		b.WriteString("- Estimated Hours: " + strconv.Itoa(int(math.Round(task.EstimatedHours))) + "\n")
		b.WriteString("- Priority: " + task.Priority + "\n")
		if len(task.Subtasks) > 0 {
			b.WriteString("- Subtasks:\n")
			for _, sub := range task.Subtasks {
				b.WriteString("  * " + sub.Title + ": " + sub.Description +
					" - " + strconv.Itoa(int(math.Round(sub.EstimatedHours))) + " hours - " + sub.Priority + "\n")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
