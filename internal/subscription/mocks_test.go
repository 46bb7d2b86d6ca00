package subscription

import (
	"context"
	"encoding/json"
	"time"

	"cropadvisor-be/internal/payment"

	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, item *PurchasedItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) FindByTransaction(ctx context.Context, provider payment.Provider, transactionID string) (*PurchasedItem, error) {
	args := m.Called(ctx, provider, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PurchasedItem), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uint) ([]*PurchasedItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*PurchasedItem), args.Error(1)
}

func (m *MockRepository) FindCurrent(ctx context.Context, userID uint, at time.Time) (*PurchasedItem, error) {
	args := m.Called(ctx, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PurchasedItem), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SaveVerification(ctx context.Context, provider payment.Provider, transactionID, status string, payload json.RawMessage) (int64, error) {
	args := m.Called(ctx, provider, transactionID, status, payload)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) MarkVerificationProcessed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPaymentRepository) MarkVerificationFailed(ctx context.Context, id int64, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

type MockGateway struct {
	mock.Mock
	provider payment.Provider
}

func (m *MockGateway) Provider() payment.Provider { return m.provider }

func (m *MockGateway) Verify(ctx context.Context, req payment.VerifyRequest) (*payment.VerifyResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.VerifyResult), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Activate(ctx context.Context, input ActivateInput) (*PurchasedItem, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PurchasedItem), args.Error(1)
}

func (m *MockService) ListByUser(ctx context.Context, userID uint) ([]*PurchasedItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*PurchasedItem), args.Error(1)
}

func (m *MockService) Current(ctx context.Context, userID uint) (*PurchasedItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PurchasedItem), args.Error(1)
}
