package timeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/utils"

	"go.uber.org/zap"
)

// CropChecker reports whether the catalogue knows a scientific name.
type CropChecker interface {
	ExistsByScientificName(ctx context.Context, name string) (bool, error)
}

type Service interface {
	Create(ctx context.Context, input TimelineInput) (*Timeline, error)
	Get(ctx context.Context, id uint) (*Timeline, error)
	GetByScientificName(ctx context.Context, name string) (*Timeline, error)
	List(ctx context.Context) ([]*Timeline, error)
	Update(ctx context.Context, id uint, input TimelineInput) (*Timeline, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo  Repository
	crops CropChecker
}

func NewService(repo Repository, crops CropChecker) Service {
	return &service{repo: repo, crops: crops}
}

func (s *service) Create(ctx context.Context, input TimelineInput) (*Timeline, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Create"),
	)
	log.Info("start create timeline")

	input, err := s.prepare(ctx, input)
	if err != nil {
		log.Warn("rejected timeline", zap.Error(err))
		return nil, err
	}

	t, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	log.Info("success create timeline", zap.Uint("timeline_id", t.ID), zap.Int("tasks", len(t.Tasks)))
	return t, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Timeline, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByScientificName(ctx context.Context, name string) (*Timeline, error) {
	return s.repo.GetByScientificName(ctx, strings.TrimSpace(name))
}

func (s *service) List(ctx context.Context) ([]*Timeline, error) {
	timelines, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list timelines", zap.Error(err))
		return nil, err
	}
	return timelines, nil
}

func (s *service) Update(ctx context.Context, id uint, input TimelineInput) (*Timeline, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Update"),
		zap.Uint("timeline_id", id),
	)

	input, err := s.prepare(ctx, input)
	if err != nil {
		log.Warn("rejected timeline", zap.Error(err))
		return nil, err
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// prepare validates input, orders tasks by day and checks the crop exists.
func (s *service) prepare(ctx context.Context, input TimelineInput) (TimelineInput, error) {
	input.ScientificName = strings.TrimSpace(input.ScientificName)
	for i := range input.Tasks {
		input.Tasks[i].Title = strings.TrimSpace(input.Tasks[i].Title)
	}

	if err := utils.Validate(input); err != nil {
		return input, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sort.SliceStable(input.Tasks, func(i, j int) bool {
		return input.Tasks[i].Day < input.Tasks[j].Day
	})

	ok, err := s.crops.ExistsByScientificName(ctx, input.ScientificName)
	if err != nil {
		return input, err
	}
	if !ok {
		return input, ErrCropNotFound
	}
	return input, nil
}
