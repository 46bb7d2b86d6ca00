package crop

import (
	"context"
	"fmt"
	"strings"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CropInput) (*Crop, error)
	Get(ctx context.Context, id uint) (*Crop, error)
	List(ctx context.Context, filter ListFilter) ([]*Crop, error)
	Update(ctx context.Context, id uint, input CropInput) (*Crop, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CropInput) (*Crop, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)
	log.Info("start create crop")

	input, err := normalise(input)
	if err != nil {
		log.Warn("invalid crop input", zap.Error(err))
		return nil, err
	}

	c, err := s.repo.Create(ctx, input)
	if err != nil {
		log.Warn("failed to create crop", zap.String("crop_name", input.CropName), zap.Error(err))
		return nil, err
	}

	log.Info("success create crop", zap.Uint("crop_id", c.ID))
	return c, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Crop, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Crop, error) {
	filter.Category = strings.TrimSpace(filter.Category)
	filter.Season = strings.TrimSpace(filter.Season)

	crops, err := s.repo.List(ctx, filter)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list crops", zap.Error(err))
		return nil, err
	}
	return crops, nil
}

func (s *service) Update(ctx context.Context, id uint, input CropInput) (*Crop, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Uint("crop_id", id),
	)

	input, err := normalise(input)
	if err != nil {
		log.Warn("invalid crop input", zap.Error(err))
		return nil, err
	}

	c, err := s.repo.Update(ctx, id, input)
	if err != nil {
		log.Warn("failed to update crop", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		logger.FromCtx(ctx).Warn("failed to delete crop", zap.Uint("crop_id", id), zap.Error(err))
		return err
	}
	return nil
}

func normalise(input CropInput) (CropInput, error) {
	input.CropName = strings.TrimSpace(input.CropName)
	input.ScientificName = strings.TrimSpace(input.ScientificName)
	input.Category = strings.TrimSpace(input.Category)
	input.Season = strings.TrimSpace(input.Season)

	if err := utils.Validate(input); err != nil {
		return input, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return input, nil
}
