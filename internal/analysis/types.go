// File path: internal/analysis/types.go
package analysis

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrDocumentNotFound = errors.New("analysis: document not found")
	ErrAnalysisNotFound = errors.New("analysis: analysis not found")
	ErrNoTasks          = errors.New("analysis: no tasks recorded")
)

// Priority levels used across tasks and subtasks.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// NormalizePriority folds free-form priority text into the known set,
// defaulting to medium.
func NormalizePriority(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	case PriorityCritical:
		return PriorityCritical
	default:
		return PriorityMedium
	}
}

// Document is an uploaded project request awaiting or holding analysis.
type Document struct {
	ID        string    `db:"id" json:"id"`
	Filename  string    `db:"filename" json:"filename"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Analysis is the structured result produced for a single document.
type Analysis struct {
	ID                  int64     `db:"id" json:"id"`
	DocumentID          string    `db:"document_id" json:"document_id"`
	Summary             string    `db:"summary" json:"summary"`
	Scope               string    `db:"scope" json:"scope"`
	Requirements        string    `db:"requirements" json:"requirements"`
	Deliverables        string    `db:"deliverables" json:"deliverables"`
	Timeline            string    `db:"timeline" json:"timeline"`
	Risks               string    `db:"risks" json:"risks"`
	ComplexityLevel     string    `db:"complexity_level" json:"complexity_level"`
	TechnologyStack     string    `db:"technology_stack" json:"technology_stack"`
	TotalEstimatedHours float64   `db:"total_estimated_hours" json:"total_estimated_hours"`
	TotalEstimatedCost  float64   `db:"total_estimated_cost" json:"total_estimated_cost"`
	ConfidenceLevel     float64   `db:"confidence_level" json:"confidence_level"`
	Provider            string    `db:"provider" json:"provider"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// Task is one work item inside an analysis breakdown.
type Task struct {
	ID             int64     `db:"id" json:"id"`
	AnalysisID     int64     `db:"analysis_id" json:"analysis_id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	Category       string    `db:"category" json:"category"`
	Module         string    `db:"module" json:"module"`
	Priority       string    `db:"priority" json:"priority"`
	EstimatedHours float64   `db:"estimated_hours" json:"estimated_hours"`
	EstimatedCost  float64   `db:"estimated_cost" json:"estimated_cost"`
	Complexity     string    `db:"complexity" json:"complexity"`
	OrderIndex     int       `db:"order_index" json:"order_index"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	Subtasks       []Subtask `db:"-" json:"subtasks,omitempty"`
}

// Subtask is a fine-grained step under a task.
type Subtask struct {
	ID             int64     `db:"id" json:"id"`
	TaskID         int64     `db:"task_id" json:"task_id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	Priority       string    `db:"priority" json:"priority"`
	EstimatedHours float64   `db:"estimated_hours" json:"estimated_hours"`
	EstimatedCost  float64   `db:"estimated_cost" json:"estimated_cost"`
	Comments       string    `db:"comments" json:"comments"`
	IsCritical     bool      `db:"is_critical" json:"is_critical"`
	OrderIndex     int       `db:"order_index" json:"order_index"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// TechnologyConfig names the stack an analysis should assume when the
// request does not pin one down.
type TechnologyConfig struct {
	Frontend        string `json:"frontend"`
	Backend         string `json:"backend"`
	Database        string `json:"database"`
	Cloud           string `json:"cloud"`
	ApplicationType string `json:"application_type"`
}

// DefaultTechnologyConfig mirrors the platform defaults applied when a
// request omits explicit technology choices.
func DefaultTechnologyConfig() TechnologyConfig {
	return TechnologyConfig{
		Frontend:        "react",
		Backend:         "python",
		Database:        "postgresql",
		Cloud:           "aws",
		ApplicationType: "web",
	}
}

// RateTable maps role names to hourly rates used for cost estimation.
type RateTable map[string]float64

// DefaultRateTable is the standard rate card applied when a request does
// not override rates.
func DefaultRateTable() RateTable {
	return RateTable{
		"senior_developer":       90,
		"mid_developer":          75,
		"junior_developer":       55,
		"tech_lead":              110,
		"project_manager":        85,
		"business_analyst":       70,
		"ui_ux_designer":         80,
		"qa_engineer":            65,
		"devops_engineer":        95,
		"blockchain_developer":   120,
		"smart_contract_auditor": 150,
	}
}

// Mean returns the average hourly rate, or fallback when the table is empty.
func (r RateTable) Mean(fallback float64) float64 {
	if len(r) == 0 {
		return fallback
	}
	var total float64
	for _, rate := range r {
		total += rate
	}
	return total / float64(len(r))
}

// Store is the persistence surface the analysis service depends on.
type Store interface {
	CreateDocument(ctx context.Context, doc Document) error
	Document(ctx context.Context, id string) (Document, error)
	Documents(ctx context.Context) ([]Document, error)
	DeleteDocument(ctx context.Context, id string) error

	UpsertAnalysis(ctx context.Context, rec Analysis) (Analysis, error)
	AnalysisForDocument(ctx context.Context, documentID string) (Analysis, error)
	DeleteAnalysis(ctx context.Context, documentID string) error

	ReplaceTasks(ctx context.Context, analysisID int64, tasks []Task) ([]Task, error)
	Tasks(ctx context.Context, analysisID int64) ([]Task, error)
	HasTasks(ctx context.Context, analysisID int64) (bool, error)
	Subtasks(ctx context.Context, taskID int64) ([]Subtask, error)
	ModuleEfforts(ctx context.Context, analysisID int64) ([]ModuleEffort, error)
}

// ModuleEffort is a per-module rollup of an analysis' tasks, in module
// first-appearance order.
type ModuleEffort struct {
	Module     string  `db:"module" json:"module"`
	TaskCount  int     `db:"task_count" json:"task_count"`
	TotalHours float64 `db:"total_hours" json:"total_hours"`
	TotalCost  float64 `db:"total_cost" json:"total_cost"`
}
