package payment

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Repository records every provider verification so a payment can be traced
// even when activating the purchase afterwards fails.
type Repository interface {
	SaveVerification(
		ctx context.Context,
		provider Provider,
		transactionID string,
		status string,
		payload json.RawMessage,
	) (int64, error)
	MarkVerificationProcessed(ctx context.Context, id int64) error
	MarkVerificationFailed(ctx context.Context, id int64, reason string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveVerification(
	ctx context.Context,
	provider Provider,
	transactionID string,
	status string,
	payload json.RawMessage,
) (int64, error) {

	const q = `
	INSERT INTO payment_verifications (
		provider,
		transaction_id,
		status,
		payload
	)
	VALUES ($1, $2, $3, $4)
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx,
		q,
		string(provider),
		transactionID,
		status,
		[]byte(normalizePayload(payload)),
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *repository) MarkVerificationProcessed(ctx context.Context, id int64) error {
	const q = `
	UPDATE payment_verifications
	SET processed_at = now()
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repository) MarkVerificationFailed(ctx context.Context, id int64, reason string) error {
	const q = `
	UPDATE payment_verifications
	SET process_error = $2
	WHERE id = $1;
	`

	_, err := r.db.ExecContext(ctx, q, id, reason)
	return err
}

// normalizePayload keeps the JSONB column valid when a provider answers with
// something other than JSON.
func normalizePayload(payload json.RawMessage) json.RawMessage {
	if len(payload) == 0 {
		return json.RawMessage(`{}`)
	}
	if json.Valid(payload) {
		return payload
	}
	wrapped, _ := json.Marshal(map[string]string{"raw": string(payload)})
	return wrapped
}
