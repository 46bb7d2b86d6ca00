package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/payment"

	"go.uber.org/zap"
)

type Repository interface {
	// Save inserts item and fills its ID and timestamps. duplicate is true when
	// the (provider, transaction_id) pair was already stored; item is untouched then.
	Save(ctx context.Context, item *PurchasedItem) (duplicate bool, err error)
	FindByTransaction(ctx context.Context, provider payment.Provider, transactionID string) (*PurchasedItem, error)
	ListByUser(ctx context.Context, userID uint) ([]*PurchasedItem, error)
	FindCurrent(ctx context.Context, userID uint, at time.Time) (*PurchasedItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `
	id, user_id, plan_id, billing_cycle, transaction_id, reference_code,
	amount, provider, status, start_date, end_date, created_at, updated_at`

func (r *repository) Save(ctx context.Context, item *PurchasedItem) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
		zap.Uint("user_id", item.UserID),
		zap.String("provider", string(item.Provider)),
	)

	const q = `
	INSERT INTO purchased_items (
		user_id,
		plan_id,
		billing_cycle,
		transaction_id,
		reference_code,
		amount,
		provider,
		status,
		start_date,
		end_date
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (provider, transaction_id)
	DO NOTHING
	RETURNING id, created_at, updated_at;
	`

	err := r.db.QueryRowContext(
		ctx,
		q,
		item.UserID,
		item.PlanID,
		string(item.BillingCycle),
		item.TransactionID,
		item.ReferenceCode,
		item.Amount,
		string(item.Provider),
		item.Status,
		item.StartDate,
		item.EndDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		// Conflict → no row returned; the purchase was recorded earlier.
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("purchase already recorded")
			return true, nil
		}
		log.Error("failed to insert purchased item", zap.Error(err))
		return false, err
	}

	return false, nil
}

func (r *repository) FindByTransaction(ctx context.Context, provider payment.Provider, transactionID string) (*PurchasedItem, error) {
	q := `SELECT` + selectColumns + `
	FROM purchased_items
	WHERE provider = $1 AND transaction_id = $2;
	`

	item, err := scanItem(r.db.QueryRowContext(ctx, q, string(provider), transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*PurchasedItem, error) {
	q := `SELECT` + selectColumns + `
	FROM purchased_items
	WHERE user_id = $1
	ORDER BY created_at DESC;
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*PurchasedItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *repository) FindCurrent(ctx context.Context, userID uint, at time.Time) (*PurchasedItem, error) {
	q := `SELECT` + selectColumns + `
	FROM purchased_items
	WHERE user_id = $1 AND status = $2 AND end_date > $3
	ORDER BY end_date DESC
	LIMIT 1;
	`

	item, err := scanItem(r.db.QueryRowContext(ctx, q, userID, StatusActive, at))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*PurchasedItem, error) {
	var (
		item     PurchasedItem
		cycle    string
		provider string
	)
	err := row.Scan(
		&item.ID, &item.UserID, &item.PlanID, &cycle, &item.TransactionID, &item.ReferenceCode,
		&item.Amount, &provider, &item.Status, &item.StartDate, &item.EndDate,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.BillingCycle = BillingCycle(cycle)
	item.Provider = payment.Provider(provider)
	return &item, nil
}
