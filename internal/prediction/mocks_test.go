package prediction

import (
	"context"

	"cropadvisor-be/internal/utils"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, userID uint, input PredictionInput) (*Prediction, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Prediction), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, userID, id uint) (*Prediction, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Prediction), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uint) ([]*Prediction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Prediction), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, userID, id uint, input PredictionInput) (*Prediction, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Prediction), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockRepository) CreateSelection(ctx context.Context, userID uint, input SelectCropInput) (*SelectedCrop, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SelectedCrop), args.Error(1)
}

func (m *MockRepository) ListSelections(ctx context.Context, userID uint) ([]*SelectedCrop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*SelectedCrop), args.Error(1)
}

func (m *MockRepository) LatestSelection(ctx context.Context, userID, predictionID uint) (*SelectedCrop, error) {
	args := m.Called(ctx, userID, predictionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SelectedCrop), args.Error(1)
}

func (m *MockRepository) UpdateSelection(ctx context.Context, userID, id uint, input UpdateSelectionInput) (*SelectedCrop, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SelectedCrop), args.Error(1)
}

func (m *MockRepository) DeleteSelection(ctx context.Context, userID, id uint) error {
	return m.Called(ctx, userID, id).Error(0)
}

type MockPredictor struct {
	mock.Mock
}

func (m *MockPredictor) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PredictResponse), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PredictResponse), args.Error(1)
}

func (m *MockService) Save(ctx context.Context, input PredictionInput) (*Prediction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Prediction), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id uint) (*Prediction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Prediction), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]*Prediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Prediction), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id uint, input PredictionInput) (*Prediction, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Prediction), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockService) Select(ctx context.Context, input SelectCropInput) (*SelectedCrop, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SelectedCrop), args.Error(1)
}

func (m *MockService) ListSelections(ctx context.Context) ([]*SelectedCrop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*SelectedCrop), args.Error(1)
}

func (m *MockService) LatestSelection(ctx context.Context, predictionID uint) (*SelectedCrop, error) {
	args := m.Called(ctx, predictionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SelectedCrop), args.Error(1)
}

func (m *MockService) UpdateSelection(ctx context.Context, id uint, input UpdateSelectionInput) (*SelectedCrop, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SelectedCrop), args.Error(1)
}

func (m *MockService) DeleteSelection(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func userCtx(id uint) context.Context {
	return utils.SetUserContext(context.Background(), id, "farmer@example.com", "USER")
}
