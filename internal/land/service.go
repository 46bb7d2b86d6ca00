package land

import (
	"context"
	"fmt"
	"strings"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateLandInput) (*Land, error)
	Get(ctx context.Context, id uint) (*Land, error)
	List(ctx context.Context) ([]*Land, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateLandInput) (*Land, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
		zap.String("unit", string(input.Unit)),
		zap.Float64("area_size", input.AreaSize),
	)
	log.Info("start create land")

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Warn("unauthenticated")
		return nil, ErrUnauthenticated
	}

	input.Unit = Unit(strings.ToLower(strings.TrimSpace(string(input.Unit))))
	if input.SoilType != nil {
		soil := strings.TrimSpace(*input.SoilType)
		input.SoilType = &soil
	}

	if err := utils.Validate(input); err != nil {
		log.Warn("invalid land input", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	l, err := s.repo.Create(ctx, userID, input)
	if err != nil {
		log.Error("failed to create land", zap.Error(err))
		return nil, err
	}

	log.Info("success create land", zap.Uint("land_id", l.ID))
	return l, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Land, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *service) List(ctx context.Context) ([]*Land, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Warn("unauthenticated")
		return nil, ErrUnauthenticated
	}

	lands, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list lands", zap.Error(err))
		return nil, err
	}

	log.Debug("success list lands", zap.Int("count", len(lands)))
	return lands, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		logger.FromCtx(ctx).Warn("failed to delete land",
			zap.Uint("land_id", id), zap.Error(err))
		return err
	}
	return nil
}
