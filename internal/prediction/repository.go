package prediction

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"cropadvisor-be/internal/logger"

	"go.uber.org/zap"
)

// Repository stores predictions and the crops picked from them. Every call
// is scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, userID uint, input PredictionInput) (*Prediction, error)
	GetByID(ctx context.Context, userID, id uint) (*Prediction, error)
	ListByUser(ctx context.Context, userID uint) ([]*Prediction, error)
	Update(ctx context.Context, userID, id uint, input PredictionInput) (*Prediction, error)
	Delete(ctx context.Context, userID, id uint) error

	CreateSelection(ctx context.Context, userID uint, input SelectCropInput) (*SelectedCrop, error)
	ListSelections(ctx context.Context, userID uint) ([]*SelectedCrop, error)
	LatestSelection(ctx context.Context, userID, predictionID uint) (*SelectedCrop, error)
	UpdateSelection(ctx context.Context, userID, id uint, input UpdateSelectionInput) (*SelectedCrop, error)
	DeleteSelection(ctx context.Context, userID, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const predictionColumns = `
	id, user_id, input_data, recommended_crops, predicted_at`

const selectionColumns = `
	s.id, s.prediction_id, s.crop_name, s.scientific_name, s.selected_at`

func (r *repository) Create(ctx context.Context, userID uint, input PredictionInput) (*Prediction, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Create"),
		zap.Uint("user_id", userID),
	)

	inputData, crops, err := marshalInput(input)
	if err != nil {
		return nil, err
	}

	q := `
	INSERT INTO predictions (user_id, input_data, recommended_crops)
	VALUES ($1, $2, $3)
	RETURNING` + predictionColumns + `;`

	p, err := scanPrediction(r.db.QueryRowContext(ctx, q, userID, inputData, crops))
	if err != nil {
		log.Error("failed to insert prediction", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, userID, id uint) (*Prediction, error) {
	q := `SELECT` + predictionColumns + `
	FROM predictions
	WHERE id = $1 AND user_id = $2;`

	p, err := scanPrediction(r.db.QueryRowContext(ctx, q, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPredictionNotFound
	}
	return p, err
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Prediction, error) {
	q := `SELECT` + predictionColumns + `
	FROM predictions
	WHERE user_id = $1
	ORDER BY predicted_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	predictions := []*Prediction{}
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, rows.Err()
}

func (r *repository) Update(ctx context.Context, userID, id uint, input PredictionInput) (*Prediction, error) {
	inputData, crops, err := marshalInput(input)
	if err != nil {
		return nil, err
	}

	q := `
	UPDATE predictions
	SET input_data = $1, recommended_crops = $2
	WHERE id = $3 AND user_id = $4
	RETURNING` + predictionColumns + `;`

	p, err := scanPrediction(r.db.QueryRowContext(ctx, q, inputData, crops, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPredictionNotFound
	}
	return p, err
}

func (r *repository) Delete(ctx context.Context, userID, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM predictions WHERE id = $1 AND user_id = $2`, id, userID)
	return affectedOrNotFound(res, err, ErrPredictionNotFound)
}

// CreateSelection inserts only when the prediction belongs to userID.
func (r *repository) CreateSelection(ctx context.Context, userID uint, input SelectCropInput) (*SelectedCrop, error) {
	q := `
	INSERT INTO selected_crops AS s (prediction_id, crop_name, scientific_name)
	SELECT p.id, $2, $3
	FROM predictions p
	WHERE p.id = $1 AND p.user_id = $4
	RETURNING` + selectionColumns + `;`

	sc, err := scanSelection(r.db.QueryRowContext(ctx, q,
		input.PredictionID, input.CropName, input.ScientificName, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPredictionNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert selected crop",
			zap.Uint("prediction_id", input.PredictionID), zap.Error(err))
		return nil, err
	}
	return sc, nil
}

func (r *repository) ListSelections(ctx context.Context, userID uint) ([]*SelectedCrop, error) {
	q := `SELECT` + selectionColumns + `
	FROM selected_crops s
	JOIN predictions p ON p.id = s.prediction_id
	WHERE p.user_id = $1
	ORDER BY s.selected_at DESC;`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	selections := []*SelectedCrop{}
	for rows.Next() {
		sc, err := scanSelection(rows)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sc)
	}
	return selections, rows.Err()
}

func (r *repository) LatestSelection(ctx context.Context, userID, predictionID uint) (*SelectedCrop, error) {
	q := `SELECT` + selectionColumns + `
	FROM selected_crops s
	JOIN predictions p ON p.id = s.prediction_id
	WHERE s.prediction_id = $1 AND p.user_id = $2
	ORDER BY s.selected_at DESC, s.id DESC
	LIMIT 1;`

	sc, err := scanSelection(r.db.QueryRowContext(ctx, q, predictionID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSelectionNotFound
	}
	return sc, err
}

func (r *repository) UpdateSelection(ctx context.Context, userID, id uint, input UpdateSelectionInput) (*SelectedCrop, error) {
	q := `
	UPDATE selected_crops s
	SET crop_name = $1, scientific_name = $2, selected_at = NOW()
	FROM predictions p
	WHERE s.id = $3 AND p.id = s.prediction_id AND p.user_id = $4
	RETURNING` + selectionColumns + `;`

	sc, err := scanSelection(r.db.QueryRowContext(ctx, q, input.CropName, input.ScientificName, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSelectionNotFound
	}
	return sc, err
}

func (r *repository) DeleteSelection(ctx context.Context, userID, id uint) error {
	res, err := r.db.ExecContext(ctx, `
	DELETE FROM selected_crops s
	USING predictions p
	WHERE s.id = $1 AND p.id = s.prediction_id AND p.user_id = $2`, id, userID)
	return affectedOrNotFound(res, err, ErrSelectionNotFound)
}

func affectedOrNotFound(res sql.Result, err error, notFound error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func marshalInput(input PredictionInput) ([]byte, []byte, error) {
	inputData, err := json.Marshal(input.InputData)
	if err != nil {
		return nil, nil, err
	}
	crops, err := json.Marshal(input.RecommendedCrops)
	if err != nil {
		return nil, nil, err
	}
	return inputData, crops, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (*Prediction, error) {
	var (
		p                Prediction
		inputData, crops []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &inputData, &crops, &p.PredictedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputData, &p.InputData); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(crops, &p.RecommendedCrops); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanSelection(row rowScanner) (*SelectedCrop, error) {
	var sc SelectedCrop
	err := row.Scan(&sc.ID, &sc.PredictionID, &sc.CropName, &sc.ScientificName, &sc.SelectedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}
