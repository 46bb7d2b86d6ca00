package land

import (
	"context"
	"database/sql"
	"errors"

	"cropadvisor-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, userID uint, input CreateLandInput) (*Land, error)
	GetByID(ctx context.Context, userID, id uint) (*Land, error)
	ListByUser(ctx context.Context, userID uint) ([]*Land, error)
	Delete(ctx context.Context, userID, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const landColumns = `
	id, user_id, area_size, unit, soil_type, ph, n_level, p_level, k_level,
	temperature, rainfall, humidity, irrigated, created_at`

func (r *repository) Create(ctx context.Context, userID uint, input CreateLandInput) (*Land, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("user_id", userID),
	)

	q := `
	INSERT INTO lands (
		user_id, area_size, unit, soil_type, ph, n_level, p_level, k_level,
		temperature, rainfall, humidity, irrigated
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	RETURNING` + landColumns + `;`

	l, err := scanLand(r.db.QueryRowContext(ctx, q,
		userID,
		input.AreaSize,
		string(input.Unit),
		input.SoilType,
		input.PH,
		input.NLevel,
		input.PLevel,
		input.KLevel,
		input.Temperature,
		input.Rainfall,
		input.Humidity,
		input.Irrigated,
	))
	if err != nil {
		log.Error("failed to insert land", zap.Error(err))
		return nil, err
	}

	return l, nil
}

func (r *repository) GetByID(ctx context.Context, userID, id uint) (*Land, error) {
	q := `SELECT` + landColumns + `
	FROM lands
	WHERE id = $1 AND user_id = $2;`

	l, err := scanLand(r.db.QueryRowContext(ctx, q, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLandNotFound
	}
	return l, err
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Land, error) {
	q := `SELECT` + landColumns + `
	FROM lands
	WHERE user_id = $1
	ORDER BY created_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lands := []*Land{}
	for rows.Next() {
		l, err := scanLand(rows)
		if err != nil {
			return nil, err
		}
		lands = append(lands, l)
	}
	return lands, rows.Err()
}

func (r *repository) Delete(ctx context.Context, userID, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lands WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLandNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLand(row rowScanner) (*Land, error) {
	var (
		l    Land
		unit string
	)
	err := row.Scan(
		&l.ID, &l.UserID, &l.AreaSize, &unit, &l.SoilType, &l.PH, &l.NLevel, &l.PLevel, &l.KLevel,
		&l.Temperature, &l.Rainfall, &l.Humidity, &l.Irrigated, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Unit = Unit(unit)
	return &l, nil
}
