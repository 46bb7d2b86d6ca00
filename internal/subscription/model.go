package subscription

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cropadvisor-be/internal/payment"
)

type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// Duration is how long one paid cycle keeps the plan active.
func (b BillingCycle) Duration() time.Duration {
	if b == BillingYearly {
		return 365 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

const (
	StatusActive = "active"
)

type PurchasedItem struct {
	ID            uint             `json:"id"`
	UserID        uint             `json:"user_id"`
	PlanID        string           `json:"plan_id"`
	BillingCycle  BillingCycle     `json:"billing_cycle"`
	TransactionID string           `json:"transaction_id"`
	ReferenceCode string           `json:"transaction_ref,omitempty"`
	Amount        float64          `json:"amount"`
	Provider      payment.Provider `json:"provider"`
	Status        string           `json:"status"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       time.Time        `json:"end_date"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

type ActivateInput struct {
	UserID        uint             `validate:"required"`
	PlanID        string           `validate:"required,max=64"`
	BillingCycle  BillingCycle     `validate:"required,oneof=monthly yearly"`
	Provider      payment.Provider `validate:"required,oneof=ESEWA KHALTI"`
	TransactionID string
	Token         string
	// Amount is rupees for eSewa and paisa for Khalti.
	Amount float64 `validate:"gt=0"`
}

// Amount accepts both JSON numbers and numeric strings such as "1,000.0".
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = Amount(f)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// ESewaVerifyRequest carries the base64 data eSewa appended to the success
// redirect, untouched.
type ESewaVerifyRequest struct {
	Data         string       `json:"data"`
	PlanID       string       `json:"plan_id"`
	BillingCycle BillingCycle `json:"billing_cycle"`
}

type KhaltiVerifyRequest struct {
	Token        string       `json:"token"`
	Amount       Amount       `json:"amount"`
	PlanID       string       `json:"plan_id"`
	BillingCycle BillingCycle `json:"billing_cycle"`
}

type VerifyResponse struct {
	Success      bool           `json:"success"`
	Message      string         `json:"message"`
	Subscription *PurchasedItem `json:"subscription"`
}
