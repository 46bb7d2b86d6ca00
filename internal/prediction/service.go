package prediction

import (
	"context"
	"fmt"
	"strings"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error)

	Save(ctx context.Context, input PredictionInput) (*Prediction, error)
	Get(ctx context.Context, id uint) (*Prediction, error)
	List(ctx context.Context) ([]*Prediction, error)
	Update(ctx context.Context, id uint, input PredictionInput) (*Prediction, error)
	Delete(ctx context.Context, id uint) error

	Select(ctx context.Context, input SelectCropInput) (*SelectedCrop, error)
	ListSelections(ctx context.Context) ([]*SelectedCrop, error)
	LatestSelection(ctx context.Context, predictionID uint) (*SelectedCrop, error)
	UpdateSelection(ctx context.Context, id uint, input UpdateSelectionInput) (*SelectedCrop, error)
	DeleteSelection(ctx context.Context, id uint) error
}

type service struct {
	repo      Repository
	predictor Predictor
}

func NewService(repo Repository, predictor Predictor) Service {
	return &service{repo: repo, predictor: predictor}
}

func (s *service) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Predict"),
	)

	if err := utils.Validate(req); err != nil {
		log.Warn("invalid reading", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	res, err := s.predictor.Predict(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Info("crop predicted", zap.String("recommended_crop", res.RecommendedCrop))
	return res, nil
}

func (s *service) Save(ctx context.Context, input PredictionInput) (*Prediction, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Save"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	input = trimCrops(input)
	if err := utils.Validate(input); err != nil {
		log.Warn("invalid prediction", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	p, err := s.repo.Create(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	log.Info("prediction saved", zap.Uint("user_id", userID), zap.Uint("prediction_id", p.ID))
	return p, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Prediction, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *service) List(ctx context.Context) ([]*Prediction, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	predictions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list predictions", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return predictions, nil
}

func (s *service) Update(ctx context.Context, id uint, input PredictionInput) (*Prediction, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	input = trimCrops(input)
	if err := utils.Validate(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.Update(ctx, userID, id, input)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	return s.repo.Delete(ctx, userID, id)
}

func (s *service) Select(ctx context.Context, input SelectCropInput) (*SelectedCrop, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Select"),
		zap.Uint("prediction_id", input.PredictionID),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	input.CropName = strings.TrimSpace(input.CropName)
	input.ScientificName = strings.TrimSpace(input.ScientificName)
	if err := utils.Validate(input); err != nil {
		log.Warn("invalid selection", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sc, err := s.repo.CreateSelection(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	log.Info("crop selected", zap.String("crop_name", sc.CropName))
	return sc, nil
}

func (s *service) ListSelections(ctx context.Context) ([]*SelectedCrop, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListSelections(ctx, userID)
}

func (s *service) LatestSelection(ctx context.Context, predictionID uint) (*SelectedCrop, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.LatestSelection(ctx, userID, predictionID)
}

func (s *service) UpdateSelection(ctx context.Context, id uint, input UpdateSelectionInput) (*SelectedCrop, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	input.CropName = strings.TrimSpace(input.CropName)
	input.ScientificName = strings.TrimSpace(input.ScientificName)
	if err := utils.Validate(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.repo.UpdateSelection(ctx, userID, id, input)
}

func (s *service) DeleteSelection(ctx context.Context, id uint) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}
	return s.repo.DeleteSelection(ctx, userID, id)
}

// trimCrops copies the crop list so the caller's slice is left untouched.
func trimCrops(input PredictionInput) PredictionInput {
	if input.RecommendedCrops == nil {
		return input
	}
	crops := make([]RecommendedCrop, len(input.RecommendedCrops))
	for i, c := range input.RecommendedCrops {
		c.CropName = strings.TrimSpace(c.CropName)
		c.ScientificName = strings.TrimSpace(c.ScientificName)
		crops[i] = c
	}
	input.RecommendedCrops = crops
	return input
}
