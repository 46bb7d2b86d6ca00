package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/payment"
	"cropadvisor-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Activate(ctx context.Context, input ActivateInput) (*PurchasedItem, error)
	ListByUser(ctx context.Context, userID uint) ([]*PurchasedItem, error)
	Current(ctx context.Context, userID uint) (*PurchasedItem, error)
}

type service struct {
	repo     Repository
	payRepo  payment.Repository
	gateways map[payment.Provider]payment.Gateway
	now      func() time.Time
}

func NewService(repo Repository, payRepo payment.Repository, gateways ...payment.Gateway) Service {
	byProvider := make(map[payment.Provider]payment.Gateway, len(gateways))
	for _, gw := range gateways {
		byProvider[gw.Provider()] = gw
	}
	return &service{
		repo:     repo,
		payRepo:  payRepo,
		gateways: byProvider,
		now:      time.Now,
	}
}

func (s *service) Activate(ctx context.Context, input ActivateInput) (*PurchasedItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Activate"),
		zap.Uint("user_id", input.UserID),
		zap.String("provider", string(input.Provider)),
		zap.String("plan_id", input.PlanID),
	)
	log.Info("start activate subscription")

	if err := utils.Validate(input); err != nil {
		log.Warn("invalid input", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	plan, ok := LookupPlan(input.PlanID)
	if !ok {
		log.Warn("unknown plan")
		return nil, ErrUnknownPlan
	}
	if want := plan.ChargeFor(input.Provider, input.BillingCycle); input.Amount != want {
		log.Warn("amount does not match plan price", zap.Float64("amount", input.Amount), zap.Float64("price", want))
		return nil, fmt.Errorf("%w: plan %s %s costs %v, got %v", ErrAmountMismatch, plan.ID, input.BillingCycle, want, input.Amount)
	}

	gw, ok := s.gateways[input.Provider]
	if !ok {
		log.Warn("no gateway for provider")
		return nil, payment.ErrUnknownProvider
	}

	// eSewa's id is known before verifying, so a replayed callback can be
	// answered without calling the gateway again.
	if input.TransactionID != "" {
		existing, err := s.repo.FindByTransaction(ctx, input.Provider, input.TransactionID)
		if err == nil {
			return s.replay(log, existing, input.UserID)
		}
		if !errors.Is(err, ErrNotFound) {
			log.Error("failed to look up transaction", zap.Error(err))
			return nil, err
		}
	}

	res, verifyErr := gw.Verify(ctx, payment.VerifyRequest{
		TransactionID: input.TransactionID,
		Token:         input.Token,
		Amount:        input.Amount,
	})

	var verificationID int64
	if res != nil {
		id, err := s.payRepo.SaveVerification(ctx, input.Provider, res.TransactionID, res.Status, res.Raw)
		if err != nil {
			log.Error("failed to record verification", zap.Error(err))
			return nil, err
		}
		verificationID = id
	}

	if verifyErr != nil {
		log.Warn("payment verification failed", zap.Error(verifyErr))
		s.markFailed(ctx, log, verificationID, verifyErr.Error())
		return nil, verifyErr
	}

	if res.Amount != input.Amount {
		reason := fmt.Sprintf("amount mismatch: gateway=%v request=%v", res.Amount, input.Amount)
		log.Warn(reason)
		s.markFailed(ctx, log, verificationID, reason)
		return nil, fmt.Errorf("%w: %s", ErrAmountMismatch, reason)
	}

	now := s.now().UTC()
	item := &PurchasedItem{
		UserID:        input.UserID,
		PlanID:        input.PlanID,
		BillingCycle:  input.BillingCycle,
		TransactionID: res.TransactionID,
		ReferenceCode: res.ReferenceCode,
		Amount:        toRupees(input.Provider, res.Amount),
		Provider:      input.Provider,
		Status:        StatusActive,
		StartDate:     now,
		EndDate:       now.Add(input.BillingCycle.Duration()),
	}

	duplicate, err := s.repo.Save(ctx, item)
	if err != nil {
		s.markFailed(ctx, log, verificationID, err.Error())
		return nil, err
	}
	if duplicate {
		existing, err := s.repo.FindByTransaction(ctx, input.Provider, item.TransactionID)
		if err != nil {
			log.Error("failed to load recorded purchase", zap.Error(err))
			return nil, err
		}
		s.markProcessed(ctx, log, verificationID)
		return s.replay(log, existing, input.UserID)
	}

	s.markProcessed(ctx, log, verificationID)

	log.Info("subscription activated",
		zap.Uint("purchase_id", item.ID),
		zap.Time("end_date", item.EndDate),
	)
	return item, nil
}

func (s *service) replay(log *zap.Logger, existing *PurchasedItem, userID uint) (*PurchasedItem, error) {
	if existing.UserID != userID {
		log.Warn("transaction belongs to another user", zap.Uint("owner_id", existing.UserID))
		return nil, ErrTransactionClaimed
	}
	log.Info("purchase already recorded, returning it", zap.Uint("purchase_id", existing.ID))
	return existing, nil
}

func (s *service) markProcessed(ctx context.Context, log *zap.Logger, id int64) {
	if id == 0 {
		return
	}
	if err := s.payRepo.MarkVerificationProcessed(ctx, id); err != nil {
		log.Error("failed to mark verification processed", zap.Error(err))
	}
}

func (s *service) markFailed(ctx context.Context, log *zap.Logger, id int64, reason string) {
	if id == 0 {
		return
	}
	if err := s.payRepo.MarkVerificationFailed(ctx, id, reason); err != nil {
		log.Error("failed to mark verification failed", zap.Error(err))
	}
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*PurchasedItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListByUser"),
		zap.Uint("user_id", userID),
	)

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list purchased items", zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (s *service) Current(ctx context.Context, userID uint) (*PurchasedItem, error) {
	item, err := s.repo.FindCurrent(ctx, userID, s.now().UTC())
	if err != nil && !errors.Is(err, ErrNotFound) {
		logger.FromCtx(ctx).Error("failed to load current subscription",
			zap.Uint("user_id", userID), zap.Error(err))
	}
	return item, err
}

// toRupees normalises provider amounts; Khalti reports paisa.
func toRupees(provider payment.Provider, amount float64) float64 {
	if provider == payment.ProviderKhalti {
		return amount / 100
	}
	return amount
}
