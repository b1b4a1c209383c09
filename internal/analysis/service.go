// File path: internal/analysis/service.go
package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/bidscope/bidscope/internal/common"
	"github.com/bidscope/bidscope/internal/llm"
)

// Generator abstracts the provider chain so the service can be exercised
// without live credentials.
type Generator interface {
	Generate(ctx context.Context, prompt llm.Prompt, minLength int) (llm.Result, error)
}

const fallbackProviderName = "fallback"

// Default field text applied when a summary section cannot be parsed.
const (
	defaultScope        = "Project scope analysis completed"
	defaultRequirements = "Key requirements extracted from RFP document"
	defaultDeliverables = "Project deliverables identified from analysis"
	defaultRisks        = "Risk assessment completed based on project requirements"
)

// Service runs document analysis and task breakdown generation against a
// store and a generation chain.
type Service struct {
	store     Store
	gen       Generator
	breakdown BreakdownConfig
}

func NewService(store Store, gen Generator, breakdown BreakdownConfig) *Service {
	if breakdown.MinModules == 0 && breakdown.MinTasks == 0 && breakdown.MinResponseLength == 0 {
		breakdown = DefaultBreakdownConfig()
	}
	return &Service{store: store, gen: gen, breakdown: breakdown}
}

// AnalyzeRequest carries the per-request knobs for an analysis run. Zero
// values fall back to platform defaults.
type AnalyzeRequest struct {
	ApplicationType string            `json:"application_type"`
	Technology      *TechnologyConfig `json:"technology,omitempty"`
	Rates           RateTable         `json:"rates,omitempty"`
}

func (r AnalyzeRequest) technology() TechnologyConfig {
	tech := DefaultTechnologyConfig()
	if r.Technology != nil {
		if r.Technology.Frontend != "" {
			tech.Frontend = r.Technology.Frontend
		}
		if r.Technology.Backend != "" {
			tech.Backend = r.Technology.Backend
		}
		if r.Technology.Database != "" {
			tech.Database = r.Technology.Database
		}
		if r.Technology.Cloud != "" {
			tech.Cloud = r.Technology.Cloud
		}
		if r.Technology.ApplicationType != "" {
			tech.ApplicationType = r.Technology.ApplicationType
		}
	}
	if r.ApplicationType != "" {
		tech.ApplicationType = r.ApplicationType
	}
	return tech
}

func (r AnalyzeRequest) rates() RateTable {
	if len(r.Rates) > 0 {
		return r.Rates
	}
	return DefaultRateTable()
}

// Analyze generates, parses and persists the analysis for a document.
// Provider failure degrades to the deterministic offline summary rather
// than failing the operation.
func (s *Service) Analyze(ctx context.Context, documentID string, req AnalyzeRequest) (Analysis, error) {
	log := common.Logger()

	doc, err := s.store.Document(ctx, documentID)
	if err != nil {
		return Analysis{}, err
	}

	tech := req.technology()
	rates := req.rates()

	text := ""
	provider := fallbackProviderName
	result, err := s.gen.Generate(ctx, llm.Prompt{
		System: summarySystemPrompt,
		User:   SummaryPrompt(doc.Content, tech),
	}, 0)
	if err != nil {
		log.Warn(fmt.Sprintf("analysis: generation unavailable, using offline summary: %v", err))
		text = FallbackSummary(doc.Content)
	} else {
		text = result.Text
		provider = result.Provider
	}

	text = EnsureSections(text)
	sections := ParseSections(text)
	if sections.Empty() {
		sections.Summary = clampSection(text)
	}

	hours := EstimateHours(doc.Content, tech.ApplicationType)
	cost := EstimateCost(hours, rates)
	complexity := AssessComplexity(doc.Content, hours)

	rec := Analysis{
		DocumentID:          doc.ID,
		Summary:             sections.Summary,
		Scope:               fallbackText(sections.Scope, defaultScope),
		Requirements:        fallbackText(sections.Requirements, defaultRequirements),
		Deliverables:        fallbackText(sections.Deliverables, defaultDeliverables),
		Timeline:            fallbackText(sections.Timeline, defaultTimeline(hours)),
		Risks:               fallbackText(sections.Risks, defaultRisks),
		ComplexityLevel:     complexity,
		TechnologyStack:     describeStack(tech),
		TotalEstimatedHours: hours,
		TotalEstimatedCost:  cost,
		ConfidenceLevel:     0.8,
		Provider:            provider,
	}

	stored, err := s.store.UpsertAnalysis(ctx, rec)
	if err != nil {
		return Analysis{}, fmt.Errorf("analysis: persist: %w", err)
	}
	log.Info(fmt.Sprintf("analysis: document %s analyzed via %s (%.1fh, %s complexity)",
		doc.ID, provider, hours, complexity))
	return stored, nil
}

func fallbackText(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func defaultTimeline(hours float64) string {
	weeks := int(hours / 40)
	if weeks < 1 {
		weeks = 1
	}
	return fmt.Sprintf("%d to %d weeks", weeks, weeks+4)
}

func describeStack(tech TechnologyConfig) string {
	return fmt.Sprintf("%s app: %s + %s + %s on %s",
		titleCase(tech.ApplicationType), tech.Frontend, tech.Backend, tech.Database, tech.Cloud)
}

// GenerateBreakdown produces and persists the task breakdown for a
// document's analysis. With force unset, an existing breakdown is
// re-serialized instead of regenerated. The returned text always follows
// the breakdown grammar.
func (s *Service) GenerateBreakdown(ctx context.Context, documentID string, force bool) (string, error) {
	log := common.Logger()

	rec, err := s.store.AnalysisForDocument(ctx, documentID)
	if err != nil {
		return "", err
	}

	if !force {
		has, err := s.store.HasTasks(ctx, rec.ID)
		if err != nil {
			return "", fmt.Errorf("analysis: check tasks: %w", err)
		}
		if has {
			tasks, err := s.tasksWithSubtasks(ctx, rec.ID)
			if err != nil {
				return "", err
			}
			log.Info(fmt.Sprintf("analysis: returning existing breakdown for document %s (%d tasks)", documentID, len(tasks)))
			return FormatBreakdown(tasks), nil
		}
	}

	doc, err := s.store.Document(ctx, documentID)
	if err != nil {
		return "", err
	}
	tech := TechStackFromAnalysis(rec)

	text := ""
	result, err := s.gen.Generate(ctx, llm.Prompt{
		System: breakdownSystemPrompt,
		User:   BreakdownPrompt(doc.Content, rec.Summary, tech, rec.ComplexityLevel),
	}, s.breakdown.MinResponseLength)
	switch {
	case err != nil:
		log.Warn(fmt.Sprintf("analysis: breakdown generation unavailable, using template: %v", err))
		text = FallbackBreakdown(tech)
	case !s.breakdown.Accept(result.Text):
		log.Warn("analysis: generated breakdown below density thresholds, using template")
		text = FallbackBreakdown(tech)
	default:
		text = result.Text
	}

	tasks := AssembleTasks(text, s.hourlyRate(rec))
	if len(tasks) == 0 {
		// Provider output passed the density gate but none of its task
		// blocks were well-formed.
		text = FallbackBreakdown(tech)
		tasks = AssembleTasks(text, s.hourlyRate(rec))
	}

	if _, err := s.store.ReplaceTasks(ctx, rec.ID, tasks); err != nil {
		return "", fmt.Errorf("analysis: store tasks: %w", err)
	}
	log.Info(fmt.Sprintf("analysis: stored %d tasks for document %s", len(tasks), documentID))
	return text, nil
}

// hourlyRate backs task costing out of the analysis-level estimate,
// defaulting to 100 when no estimate exists.
func (s *Service) hourlyRate(rec Analysis) float64 {
	if rec.TotalEstimatedHours > 0 && rec.TotalEstimatedCost > 0 {
		return math.Round(rec.TotalEstimatedCost/rec.TotalEstimatedHours*100) / 100
	}
	return 100
}

func (s *Service) tasksWithSubtasks(ctx context.Context, analysisID int64) ([]Task, error) {
	tasks, err := s.store.Tasks(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("analysis: load tasks: %w", err)
	}
	return tasks, nil
}

// AnalysisForDocument returns the stored analysis for a document.
func (s *Service) AnalysisForDocument(ctx context.Context, documentID string) (Analysis, error) {
	return s.store.AnalysisForDocument(ctx, documentID)
}

// DeleteAnalysis removes a document's analysis along with its tasks.
func (s *Service) DeleteAnalysis(ctx context.Context, documentID string) error {
	return s.store.DeleteAnalysis(ctx, documentID)
}

// Tasks returns the stored breakdown tasks for a document in order.
func (s *Service) Tasks(ctx context.Context, documentID string) ([]Task, error) {
	rec, err := s.store.AnalysisForDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	return tasks, nil
}

// Subtasks returns the stored subtasks of a task in order.
func (s *Service) Subtasks(ctx context.Context, taskID int64) ([]Subtask, error) {
	return s.store.Subtasks(ctx, taskID)
}

// Status summarizes where a document sits in the pipeline. Module
// rollups come from the store's aggregate view once tasks exist.
type Status struct {
	DocumentID  string         `json:"document_id"`
	HasAnalysis bool           `json:"has_analysis"`
	HasTasks    bool           `json:"has_tasks"`
	TaskCount   int            `json:"task_count"`
	Modules     []ModuleEffort `json:"modules,omitempty"`
}

// StatusForDocument reports analysis and breakdown progress for a
// document.
func (s *Service) StatusForDocument(ctx context.Context, documentID string) (Status, error) {
	if _, err := s.store.Document(ctx, documentID); err != nil {
		return Status{}, err
	}
	status := Status{DocumentID: documentID}
	rec, err := s.store.AnalysisForDocument(ctx, documentID)
	if errors.Is(err, ErrAnalysisNotFound) {
		return status, nil
	}
	if err != nil {
		return Status{}, err
	}
	status.HasAnalysis = true
	tasks, err := s.store.Tasks(ctx, rec.ID)
	if err != nil {
		return Status{}, err
	}
	status.HasTasks = len(tasks) > 0
	status.TaskCount = len(tasks)
	if status.HasTasks {
		efforts, err := s.store.ModuleEfforts(ctx, rec.ID)
		if err != nil {
			return Status{}, err
		}
		status.Modules = efforts
	}
	return status, nil
}
