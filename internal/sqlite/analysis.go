// File path: internal/sqlite/analysis.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bidscope/bidscope/internal/analysis"
)

var _ analysis.Store = (*Store)(nil)

// CreateDocument stores an uploaded document.
func (s *Store) CreateDocument(ctx context.Context, doc analysis.Document) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, content, created_at) VALUES (?, ?, ?, ?)`,
		doc.ID, doc.Filename, doc.Content, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// Document loads a single document by id.
func (s *Store) Document(ctx context.Context, id string) (analysis.Document, error) {
	var doc analysis.Document
	err := s.db.GetContext(ctx, &doc,
		`SELECT id, filename, content, created_at FROM documents WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return analysis.Document{}, analysis.ErrDocumentNotFound
	}
	if err != nil {
		return analysis.Document{}, fmt.Errorf("load document: %w", err)
	}
	return doc, nil
}

// Documents lists all documents, newest first.
func (s *Store) Documents(ctx context.Context) ([]analysis.Document, error) {
	var docs []analysis.Document
	err := s.db.SelectContext(ctx, &docs,
		`SELECT id, filename, content, created_at FROM documents ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document; its analysis and tasks cascade.
func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return analysis.ErrDocumentNotFound
	}
	return nil
}

// UpsertAnalysis inserts the analysis for a document or replaces the
// existing row in place, preserving the row id and created_at.
func (s *Store) UpsertAnalysis(ctx context.Context, rec analysis.Analysis) (analysis.Analysis, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO analyses (
                        document_id, summary, scope, requirements, deliverables,
                        timeline, risks, complexity_level, technology_stack,
                        total_estimated_hours, total_estimated_cost, confidence_level,
                        provider, created_at, updated_at
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(document_id) DO UPDATE SET
                        summary = excluded.summary,
                        scope = excluded.scope,
                        requirements = excluded.requirements,
                        deliverables = excluded.deliverables,
                        timeline = excluded.timeline,
                        risks = excluded.risks,
                        complexity_level = excluded.complexity_level,
                        technology_stack = excluded.technology_stack,
                        total_estimated_hours = excluded.total_estimated_hours,
                        total_estimated_cost = excluded.total_estimated_cost,
                        confidence_level = excluded.confidence_level,
                        provider = excluded.provider,
                        updated_at = excluded.updated_at`,
		rec.DocumentID, rec.Summary, rec.Scope, rec.Requirements, rec.Deliverables,
		rec.Timeline, rec.Risks, rec.ComplexityLevel, rec.TechnologyStack,
		rec.TotalEstimatedHours, rec.TotalEstimatedCost, rec.ConfidenceLevel,
		rec.Provider, now, now)
	if err != nil {
		return analysis.Analysis{}, fmt.Errorf("upsert analysis: %w", err)
	}
	return s.AnalysisForDocument(ctx, rec.DocumentID)
}

// AnalysisForDocument loads the analysis row for a document.
func (s *Store) AnalysisForDocument(ctx context.Context, documentID string) (analysis.Analysis, error) {
	var rec analysis.Analysis
	err := s.db.GetContext(ctx, &rec, `
                SELECT id, document_id, summary, scope, requirements, deliverables,
                       timeline, risks, complexity_level, technology_stack,
                       total_estimated_hours, total_estimated_cost, confidence_level,
                       provider, created_at, updated_at
                FROM analyses WHERE document_id = ?`, documentID)
	if errors.Is(err, sql.ErrNoRows) {
		return analysis.Analysis{}, analysis.ErrAnalysisNotFound
	}
	if err != nil {
		return analysis.Analysis{}, fmt.Errorf("load analysis: %w", err)
	}
	return rec, nil
}

// DeleteAnalysis removes a document's analysis; tasks cascade.
func (s *Store) DeleteAnalysis(ctx context.Context, documentID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE document_id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return analysis.ErrAnalysisNotFound
	}
	return nil
}

// ReplaceTasks atomically swaps the full task set of an analysis:
// existing tasks and their subtasks are removed before the new set is
// inserted in order.
func (s *Store) ReplaceTasks(ctx context.Context, analysisID int64, tasks []analysis.Task) ([]analysis.Task, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin replace tasks: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE analysis_id = ?`, analysisID); err != nil {
		return nil, fmt.Errorf("clear tasks: %w", err)
	}

	now := time.Now().UTC()
	stored := make([]analysis.Task, 0, len(tasks))
	for _, task := range tasks {
		res, err := tx.ExecContext(ctx, `
                        INSERT INTO tasks (
                                analysis_id, title, description, category, module, priority,
                                estimated_hours, estimated_cost, complexity, order_index, created_at
                        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			analysisID, task.Title, task.Description, task.Category, task.Module, task.Priority,
			task.EstimatedHours, task.EstimatedCost, task.Complexity, task.OrderIndex, now)
		if err != nil {
			return nil, fmt.Errorf("insert task %d: %w", task.OrderIndex, err)
		}
		taskID, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("task id: %w", err)
		}
		task.ID = taskID
		task.AnalysisID = analysisID
		task.CreatedAt = now

		for i := range task.Subtasks {
			sub := &task.Subtasks[i]
			res, err := tx.ExecContext(ctx, `
                                INSERT INTO subtasks (
                                        task_id, title, description, priority, estimated_hours,
                                        estimated_cost, comments, is_critical, order_index, created_at
                                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				taskID, sub.Title, sub.Description, sub.Priority, sub.EstimatedHours,
				sub.EstimatedCost, sub.Comments, sub.IsCritical, sub.OrderIndex, now)
			if err != nil {
				return nil, fmt.Errorf("insert subtask %d.%d: %w", task.OrderIndex, sub.OrderIndex, err)
			}
			subID, err := res.LastInsertId()
			if err != nil {
				return nil, fmt.Errorf("subtask id: %w", err)
			}
			sub.ID = subID
			sub.TaskID = taskID
			sub.CreatedAt = now
		}
		stored = append(stored, task)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace tasks: %w", err)
	}
	committed = true
	return stored, nil
}

// Tasks loads the ordered task set of an analysis with subtasks attached.
func (s *Store) Tasks(ctx context.Context, analysisID int64) ([]analysis.Task, error) {
	var tasks []analysis.Task
	err := s.db.SelectContext(ctx, &tasks, `
                SELECT id, analysis_id, title, description, category, module, priority,
                       estimated_hours, estimated_cost, complexity, order_index, created_at
                FROM tasks WHERE analysis_id = ? ORDER BY order_index`, analysisID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	ids := make([]int64, len(tasks))
	index := make(map[int64]*analysis.Task, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
		index[tasks[i].ID] = &tasks[i]
	}
	query, args, err := sqlx.In(`
                SELECT id, task_id, title, description, priority, estimated_hours,
                       estimated_cost, comments, is_critical, order_index, created_at
                FROM subtasks WHERE task_id IN (?) ORDER BY task_id, order_index`, ids)
	if err != nil {
		return nil, fmt.Errorf("expand subtask query: %w", err)
	}
	var subtasks []analysis.Subtask
	if err := s.db.SelectContext(ctx, &subtasks, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("load subtasks: %w", err)
	}
	for _, sub := range subtasks {
		if task, ok := index[sub.TaskID]; ok {
			task.Subtasks = append(task.Subtasks, sub)
		}
	}
	return tasks, nil
}

// HasTasks reports whether any tasks exist for an analysis.
func (s *Store) HasTasks(ctx context.Context, analysisID int64) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM tasks WHERE analysis_id = ?`, analysisID)
	if err != nil {
		return false, fmt.Errorf("count tasks: %w", err)
	}
	return count > 0, nil
}

// ModuleEfforts reads the per-module rollups of an analysis from the
// module_effort_view, in module first-appearance order.
func (s *Store) ModuleEfforts(ctx context.Context, analysisID int64) ([]analysis.ModuleEffort, error) {
	var efforts []analysis.ModuleEffort
	err := s.db.SelectContext(ctx, &efforts, `
                SELECT module, task_count, total_hours, total_cost
                FROM module_effort_view WHERE analysis_id = ? ORDER BY first_order`, analysisID)
	if err != nil {
		return nil, fmt.Errorf("load module efforts: %w", err)
	}
	return efforts, nil
}

// Subtasks loads the ordered subtasks of a task.
func (s *Store) Subtasks(ctx context.Context, taskID int64) ([]analysis.Subtask, error) {
	var subtasks []analysis.Subtask
	err := s.db.SelectContext(ctx, &subtasks, `
                SELECT id, task_id, title, description, priority, estimated_hours,
                       estimated_cost, comments, is_critical, order_index, created_at
                FROM subtasks WHERE task_id = ? ORDER BY order_index`, taskID)
	if err != nil {
		return nil, fmt.Errorf("load subtasks: %w", err)
	}
	return subtasks, nil
}
