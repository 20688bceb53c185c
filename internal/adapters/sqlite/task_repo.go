package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/task"
	"github.com/jalonhq/jalon/internal/ports"
)

// Compile-time check that TaskRepo implements ports.TaskRepository.
var _ ports.TaskRepository = (*TaskRepo)(nil)

// TaskRepo persists tasks in the tasks table.
type TaskRepo struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// NewTaskRepo creates a TaskRepo over the given database handle.
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db, now: time.Now, newID: uuid.NewString}
}

const taskColumns = `id, project_id, COALESCE(stage_id,''), title, COALESCE(description,''), status,
	COALESCE(priority,''), due_date, completed_at, COALESCE(assigned_to,''), COALESCE(created_by,''),
	COALESCE(refusal_reason,''), created_at, updated_at`

func scanTaskRow(scan func(dest ...any) error) (task.Task, error) {
	var t task.Task
	var due, completed sql.NullTime
	err := scan(&t.ID, &t.ProjectID, &t.StageID, &t.Title, &t.Description, &t.Status,
		&t.Priority, &due, &completed, &t.AssignedTo, &t.CreatedBy,
		&t.RefusalReason, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	if completed.Valid {
		c := completed.Time
		t.CompletedAt = &c
	}
	return t, nil
}

func insertTask(ctx context.Context, ex interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, t *task.Task) error {
	_, err := ex.ExecContext(ctx,
		`INSERT INTO tasks(id, project_id, stage_id, title, description, status, priority,
		 due_date, completed_at, assigned_to, created_by, refusal_reason, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, t.ProjectID, nullable(t.StageID), t.Title, nullable(t.Description), t.Status,
		nullable(string(t.Priority)), t.DueDate, t.CompletedAt, nullable(t.AssignedTo),
		nullable(t.CreatedBy), nullable(t.RefusalReason), t.CreatedAt, t.UpdatedAt)
	return err
}

// Create inserts a new task.
func (r *TaskRepo) Create(ctx context.Context, t *task.Task) error {
	if err := insertTask(ctx, r.db, t); err != nil {
		return fmt.Errorf("inserting task %s: %w", t.ID, err)
	}
	return nil
}

// FindByID returns the task with the given ID, or domain.ErrNotFound.
func (r *TaskRepo) FindByID(ctx context.Context, id string) (*task.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id=?`, id)
	t, err := scanTaskRow(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Save updates an existing task.
func (r *TaskRepo) Save(ctx context.Context, t *task.Task) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title=?, description=?, status=?, priority=?, due_date=?,
		 completed_at=?, assigned_to=?, refusal_reason=?, updated_at=?
		 WHERE id=?`,
		t.Title, nullable(t.Description), t.Status, nullable(string(t.Priority)), t.DueDate,
		t.CompletedAt, nullable(t.AssignedTo), nullable(t.RefusalReason), t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", t.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

// CreateMany inserts a batch of specs in a single transaction. If any insert
// fails the transaction rolls back and no task is created.
func (r *TaskRepo) CreateMany(ctx context.Context, specs []task.Spec) ([]task.Task, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := r.now().UTC()
	created := make([]task.Task, 0, len(specs))
	for _, sp := range specs {
		t := task.Task{
			ID:          r.newID(),
			ProjectID:   sp.ProjectID,
			StageID:     sp.StageID,
			Title:       sp.Title,
			Description: sp.Description,
			Status:      task.StatusTodo,
			Priority:    sp.Priority,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := insertTask(ctx, tx, &t); err != nil {
			return nil, fmt.Errorf("inserting task batch: %w", err)
		}
		created = append(created, t)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// ListByStage returns the tasks scoped to a stage, oldest first.
func (r *TaskRepo) ListByStage(ctx context.Context, stageID string) ([]task.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE stage_id=? ORDER BY created_at`, stageID)
}

// ListDueBefore returns open tasks due before the given instant.
func (r *TaskRepo) ListDueBefore(ctx context.Context, deadline time.Time) ([]task.Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE due_date IS NOT NULL AND due_date < ? AND status IN (?, ?)
		 ORDER BY due_date`,
		deadline, task.StatusTodo, task.StatusInProgress)
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []task.Task
	for rows.Next() {
		t, err := scanTaskRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
