package redemption

import "time"

// Token is the persisted redemption record for a booking. A booking has at
// most one token; the consumed flag is the unit of mutual exclusion for
// staff-side verification.
type Token struct {
	ID         int        `db:"id" json:"id"`
	BookingID  int        `db:"booking_id" json:"booking_id"`
	Payload    string     `db:"payload" json:"payload"`
	Consumed   bool       `db:"consumed" json:"consumed"`
	ConsumedAt *time.Time `db:"consumed_at" json:"consumed_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

type RedeemRequest struct {
	Payload string `json:"payload" binding:"required"`
}
