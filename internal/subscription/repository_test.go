package subscription

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"cropadvisor-be/internal/payment"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemColumns = []string{
	"id", "user_id", "plan_id", "billing_cycle", "transaction_id", "reference_code",
	"amount", "provider", "status", "start_date", "end_date", "created_at", "updated_at",
}

func TestRepository_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	newItem := func() *PurchasedItem {
		return &PurchasedItem{
			UserID: 1, PlanID: "pro", BillingCycle: BillingMonthly,
			TransactionID: "11-201-13", ReferenceCode: "000AE01", Amount: 100,
			Provider: payment.ProviderESewa, Status: StatusActive,
			StartDate: now, EndDate: now.Add(30 * 24 * time.Hour),
		}
	}

	t.Run("Inserted", func(t *testing.T) {
		item := newItem()
		mock.ExpectQuery(`INSERT INTO purchased_items`).
			WithArgs(uint(1), "pro", "monthly", "11-201-13", "000AE01", 100.0, "ESEWA", "active", item.StartDate, item.EndDate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(10, now, now))

		dup, err := repo.Save(ctx, item)
		require.NoError(t, err)
		assert.False(t, dup)
		assert.Equal(t, uint(10), item.ID)
	})

	t.Run("Duplicate", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO purchased_items .* ON CONFLICT \(provider, transaction_id\)`).
			WillReturnError(sql.ErrNoRows)

		item := newItem()
		dup, err := repo.Save(ctx, item)
		require.NoError(t, err)
		assert.True(t, dup)
		assert.Zero(t, item.ID)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO purchased_items`).
			WillReturnError(errors.New("database error"))

		_, err := repo.Save(ctx, newItem())
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM purchased_items\s+WHERE provider = \$1 AND transaction_id = \$2`).
			WithArgs("ESEWA", "11-201-13").
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(
				3, 1, "pro", "yearly", "11-201-13", "000AE01", 100.0, "ESEWA", "active", now, now, now, now,
			))

		item, err := repo.FindByTransaction(ctx, payment.ProviderESewa, "11-201-13")
		require.NoError(t, err)
		assert.Equal(t, uint(3), item.ID)
		assert.Equal(t, BillingYearly, item.BillingCycle)
		assert.Equal(t, payment.ProviderESewa, item.Provider)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM purchased_items`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByTransaction(ctx, payment.ProviderESewa, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(itemColumns).
			AddRow(2, 1, "pro", "monthly", "b", "", 100.0, "ESEWA", "active", now, now, now, now).
			AddRow(1, 1, "pro", "monthly", "a", "", 10.0, "KHALTI", "active", now, now, now, now)
		mock.ExpectQuery(`SELECT .* FROM purchased_items\s+WHERE user_id = \$1\s+ORDER BY created_at DESC`).
			WithArgs(uint(1)).
			WillReturnRows(rows)

		items, err := repo.ListByUser(ctx, 1)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, payment.ProviderKhalti, items[1].Provider)
	})

	t.Run("Empty", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM purchased_items`).
			WillReturnRows(sqlmock.NewRows(itemColumns))

		items, err := repo.ListByUser(ctx, 1)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM purchased_items`).
			WillReturnError(errors.New("db error"))

		_, err := repo.ListByUser(ctx, 1)
		assert.Error(t, err)
	})
}

func TestRepository_FindCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Active", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM purchased_items\s+WHERE user_id = \$1 AND status = \$2 AND end_date > \$3`).
			WithArgs(uint(1), "active", now).
			WillReturnRows(sqlmock.NewRows(itemColumns).AddRow(
				4, 1, "pro", "monthly", "a", "", 100.0, "ESEWA", "active", now, now.Add(time.Hour), now, now,
			))

		item, err := repo.FindCurrent(ctx, 1, now)
		require.NoError(t, err)
		assert.Equal(t, uint(4), item.ID)
	})

	t.Run("None", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM purchased_items`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindCurrent(ctx, 1, now)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
