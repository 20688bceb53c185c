package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/ports"
)

// Compile-time check that StageRepo implements ports.StageRepository.
var _ ports.StageRepository = (*StageRepo)(nil)

// StageRepo persists stages in the stages table.
type StageRepo struct {
	db *sql.DB
}

// NewStageRepo creates a StageRepo over the given database handle.
func NewStageRepo(db *sql.DB) *StageRepo {
	return &StageRepo{db: db}
}

const stageColumns = `id, project_id, name, COALESCE(description,''), position, duration, status, created_by, created_at, updated_at`

func scanStage(row *sql.Row) (*stage.Stage, error) {
	var st stage.Stage
	err := row.Scan(&st.ID, &st.ProjectID, &st.Name, &st.Description, &st.Position,
		&st.Duration, &st.Status, &st.CreatedBy, &st.CreatedAt, &st.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Create inserts a new stage.
func (r *StageRepo) Create(ctx context.Context, st *stage.Stage) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stages(id, project_id, name, description, position, duration, status, created_by, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		st.ID, st.ProjectID, st.Name, nullable(st.Description), st.Position,
		st.Duration, st.Status, st.CreatedBy, st.CreatedAt, st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting stage %s: %w", st.ID, err)
	}
	return nil
}

// FindByID returns the stage with the given ID, or domain.ErrNotFound.
func (r *StageRepo) FindByID(ctx context.Context, id string) (*stage.Stage, error) {
	st, err := scanStage(r.db.QueryRowContext(ctx,
		`SELECT `+stageColumns+` FROM stages WHERE id=?`, id))
	if err == domain.ErrNotFound {
		return nil, fmt.Errorf("stage %s: %w", id, domain.ErrNotFound)
	}
	return st, err
}

// Save updates a stage only if its stored status still equals expected. A
// zero-row update means another writer changed the row first, which is
// reported as domain.ErrConflict.
func (r *StageRepo) Save(ctx context.Context, st *stage.Stage, expected stage.Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stages SET name=?, description=?, position=?, duration=?, status=?, updated_at=?
		 WHERE id=? AND status=?`,
		st.Name, nullable(st.Description), st.Position, st.Duration, st.Status,
		st.UpdatedAt, st.ID, expected)
	if err != nil {
		return fmt.Errorf("updating stage %s: %w", st.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM stages WHERE id=?)`, st.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("stage %s: %w", st.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("stage %s changed concurrently: %w", st.ID, domain.ErrConflict)
	}
	return nil
}

// ListByProject returns a project's stages ordered by position.
func (r *StageRepo) ListByProject(ctx context.Context, projectID string) ([]stage.Stage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+stageColumns+` FROM stages WHERE project_id=? ORDER BY position, created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing stages for project %s: %w", projectID, err)
	}
	defer rows.Close()

	var out []stage.Stage
	for rows.Next() {
		var st stage.Stage
		if err := rows.Scan(&st.ID, &st.ProjectID, &st.Name, &st.Description, &st.Position,
			&st.Duration, &st.Status, &st.CreatedBy, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
