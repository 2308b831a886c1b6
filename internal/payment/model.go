package payment

type InitiateTopUpRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,gt=0"`
}

type InitiateTopUpResponse struct {
	PaymentRef  string `json:"payment_ref"`
	CheckoutURL string `json:"checkout_url"`
	AmountCents int64  `json:"amount_cents"`
}

// GatewayCallback is the payload the payment gateway posts back after a
// checkout completes. TransactionID is the dedup key; the gateway may
// deliver the same callback more than once.
type GatewayCallback struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	UserID        int    `json:"user_id" binding:"required"`
	AmountCents   int64  `json:"amount_cents" binding:"required,gt=0"`
	Status        string `json:"status" binding:"required"`
}

type CallbackResponse struct {
	NewBalanceCents int64 `json:"new_balance_cents"`
}
