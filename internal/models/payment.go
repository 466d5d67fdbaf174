package models

import "time"

// PaymentOrder is returned by the create-order endpoint and handed to the
// payment provider for checkout.
type PaymentOrder struct {
	ID       string `json:"_id"`
	OrderID  string `json:"orderId"`
	Amount   int    `json:"amount"` // smallest currency unit
	Currency string `json:"currency"`
	PlanID   string `json:"planId"`
}

type Payment struct {
	ID        string    `json:"_id"`
	OrderID   string    `json:"orderId"`
	PaymentID string    `json:"paymentId"`
	Amount    int       `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"` // created, verified, failed, refunded
	PlanName  string    `json:"planName"`
	CreatedAt time.Time `json:"createdAt"`
}
