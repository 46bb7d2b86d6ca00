package timeline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"cropadvisor-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, input TimelineInput) (*Timeline, error)
	GetByID(ctx context.Context, id uint) (*Timeline, error)
	GetByScientificName(ctx context.Context, name string) (*Timeline, error)
	List(ctx context.Context) ([]*Timeline, error)
	Update(ctx context.Context, id uint, input TimelineInput) (*Timeline, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const timelineColumns = `
	id, scientific_name, tasks, created_at, updated_at`

func (r *repository) Create(ctx context.Context, input TimelineInput) (*Timeline, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("scientific_name", input.ScientificName),
	)

	tasks, err := json.Marshal(input.Tasks)
	if err != nil {
		return nil, err
	}

	q := `
	INSERT INTO crop_timelines (scientific_name, tasks)
	VALUES ($1, $2)
	RETURNING` + timelineColumns + `;`

	t, err := scanTimeline(r.db.QueryRowContext(ctx, q, input.ScientificName, tasks))
	if err := mapConstraint(err); err != nil {
		log.Warn("failed to insert timeline", zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Timeline, error) {
	q := `SELECT` + timelineColumns + `
	FROM crop_timelines
	WHERE id = $1;`

	return r.getOne(ctx, q, id)
}

func (r *repository) GetByScientificName(ctx context.Context, name string) (*Timeline, error) {
	q := `SELECT` + timelineColumns + `
	FROM crop_timelines
	WHERE scientific_name = $1;`

	return r.getOne(ctx, q, name)
}

func (r *repository) getOne(ctx context.Context, q string, arg any) (*Timeline, error) {
	t, err := scanTimeline(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimelineNotFound
	}
	return t, err
}

func (r *repository) List(ctx context.Context) ([]*Timeline, error) {
	q := `SELECT` + timelineColumns + `
	FROM crop_timelines
	ORDER BY scientific_name;`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timelines := []*Timeline{}
	for rows.Next() {
		t, err := scanTimeline(rows)
		if err != nil {
			return nil, err
		}
		timelines = append(timelines, t)
	}
	return timelines, rows.Err()
}

func (r *repository) Update(ctx context.Context, id uint, input TimelineInput) (*Timeline, error) {
	tasks, err := json.Marshal(input.Tasks)
	if err != nil {
		return nil, err
	}

	q := `
	UPDATE crop_timelines
	SET scientific_name = $1, tasks = $2, updated_at = NOW()
	WHERE id = $3
	RETURNING` + timelineColumns + `;`

	t, err := scanTimeline(r.db.QueryRowContext(ctx, q, input.ScientificName, tasks, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTimelineNotFound
	}
	if err := mapConstraint(err); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crop_timelines WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTimelineNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimeline(row rowScanner) (*Timeline, error) {
	var (
		t     Timeline
		tasks []byte
	)
	if err := row.Scan(&t.ID, &t.ScientificName, &tasks, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tasks, &t.Tasks); err != nil {
		return nil, err
	}
	return &t, nil
}

// mapConstraint turns the unique and foreign key violations on
// crop_timelines into domain errors.
func mapConstraint(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "23505":
		return ErrDuplicateTimeline
	case "23503":
		return ErrCropNotFound
	}
	return err
}
