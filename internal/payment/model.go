package payment

type esewaStatusResponse struct {
	ProductCode     string  `json:"product_code"`
	TransactionUUID string  `json:"transaction_uuid"`
	TotalAmount     float64 `json:"total_amount"`
	Status          string  `json:"status"`
	RefID           *string `json:"ref_id"`
	TransactionCode string  `json:"transaction_code"`
}

type khaltiVerifyResponse struct {
	Idx    string `json:"idx"`
	Amount int64  `json:"amount"`
	State  struct {
		Name string `json:"name"`
	} `json:"state"`
}
