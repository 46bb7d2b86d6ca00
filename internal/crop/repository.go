package crop

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cropadvisor-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, input CropInput) (*Crop, error)
	GetByID(ctx context.Context, id uint) (*Crop, error)
	List(ctx context.Context, filter ListFilter) ([]*Crop, error)
	Update(ctx context.Context, id uint, input CropInput) (*Crop, error)
	Delete(ctx context.Context, id uint) error
	ExistsByScientificName(ctx context.Context, name string) (bool, error)
}

// ListFilter narrows the catalogue. Empty fields match everything.
type ListFilter struct {
	Category string
	Season   string
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const cropColumns = `
	id, crop_name, COALESCE(scientific_name, ''), category, season, growth_period,
	nitrogen_required, phosphorus_required, potassium_required,
	weather, temperature, rainfall, humidity, soil_ph, market_value,
	soil_type, climate, fertilizer, pest_control, harvesting, storage,
	spacing, sunlight, description, tips, created_at, updated_at`

var cropWriteColumns = []string{
	"crop_name", "scientific_name", "category", "season", "growth_period",
	"nitrogen_required", "phosphorus_required", "potassium_required",
	"weather", "temperature", "rainfall", "humidity", "soil_ph", "market_value",
	"soil_type", "climate", "fertilizer", "pest_control", "harvesting", "storage",
	"spacing", "sunlight", "description", "tips",
}

// placeholder renders $n for column i; an empty scientific name is stored as
// NULL so the unique index only applies to named crops.
func placeholder(i int) string {
	if cropWriteColumns[i] == "scientific_name" {
		return fmt.Sprintf("NULLIF($%d, '')", i+1)
	}
	return fmt.Sprintf("$%d", i+1)
}

func (r *repository) Create(ctx context.Context, input CropInput) (*Crop, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.String("crop_name", input.CropName),
	)

	holders := make([]string, len(cropWriteColumns))
	for i := range cropWriteColumns {
		holders[i] = placeholder(i)
	}

	q := `INSERT INTO crops (` + strings.Join(cropWriteColumns, ", ") + `)
	VALUES (` + strings.Join(holders, ", ") + `)
	RETURNING` + cropColumns + `;`

	c, err := scanCrop(r.db.QueryRowContext(ctx, q, input.values()...))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateCrop
	}
	if err != nil {
		log.Error("failed to insert crop", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Crop, error) {
	q := `SELECT` + cropColumns + `
	FROM crops
	WHERE id = $1;`

	c, err := scanCrop(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCropNotFound
	}
	return c, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Crop, error) {
	q := `SELECT` + cropColumns + `
	FROM crops
	WHERE ($1 = '' OR LOWER(category) = LOWER($1))
	  AND ($2 = '' OR LOWER(season) = LOWER($2))
	ORDER BY crop_name;`

	rows, err := r.db.QueryContext(ctx, q, filter.Category, filter.Season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crops := []*Crop{}
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		crops = append(crops, c)
	}
	return crops, rows.Err()
}

func (r *repository) Update(ctx context.Context, id uint, input CropInput) (*Crop, error) {
	sets := make([]string, len(cropWriteColumns))
	for i, col := range cropWriteColumns {
		sets[i] = col + " = " + placeholder(i)
	}

	q := `UPDATE crops SET ` + strings.Join(sets, ", ") + `, updated_at = NOW()
	WHERE id = $` + fmt.Sprint(len(cropWriteColumns)+1) + `
	RETURNING` + cropColumns + `;`

	args := append(input.values(), id)
	c, err := scanCrop(r.db.QueryRowContext(ctx, q, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrCropNotFound
	case isUniqueViolation(err):
		return nil, ErrDuplicateCrop
	}
	return c, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM crops WHERE id = $1`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCropNotFound
	}
	return nil
}

func (r *repository) ExistsByScientificName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM crops WHERE scientific_name = $1)`, name,
	).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCrop(row rowScanner) (*Crop, error) {
	var c Crop
	err := row.Scan(
		&c.ID, &c.CropName, &c.ScientificName, &c.Category, &c.Season, &c.GrowthPeriod,
		&c.NitrogenRequired, &c.PhosphorusRequired, &c.PotassiumRequired,
		&c.Weather, &c.Temperature, &c.Rainfall, &c.Humidity, &c.SoilPH, &c.MarketValue,
		&c.SoilType, &c.Climate, &c.Fertilizer, &c.PestControl, &c.Harvesting, &c.Storage,
		&c.Spacing, &c.Sunlight, &c.Description, &c.Tips, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// isUniqueViolation reports a Postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
