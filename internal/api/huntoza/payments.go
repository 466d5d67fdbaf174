package huntoza

import (
	"context"
	"fmt"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type createOrderRequest struct {
	PlanID       string `json:"planId"`
	BillingCycle string `json:"billingCycle"`
}

type orderResponse struct {
	Order models.PaymentOrder `json:"order"`
}

type VerifyPaymentInput struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type paymentResponse struct {
	Payment models.Payment `json:"payment"`
}

type paymentHistoryResponse struct {
	Payments []models.Payment `json:"payments"`
}

func (c *Client) CreateOrder(ctx context.Context, planID, billingCycle string) (*models.PaymentOrder, error) {
	var resp orderResponse
	req := createOrderRequest{PlanID: planID, BillingCycle: billingCycle}
	if err := c.post(ctx, "/payments/create-order", req, &resp); err != nil {
		c.logger.Error("failed to create payment order", zap.String("plan_id", planID), zap.Error(err))
		return nil, fmt.Errorf("create order: %w", err)
	}

	c.logger.Info("payment order created",
		zap.String("order_id", resp.Order.OrderID),
		zap.Int("amount", resp.Order.Amount),
	)

	return &resp.Order, nil
}

func (c *Client) VerifyPayment(ctx context.Context, input VerifyPaymentInput) (*models.Payment, error) {
	var resp paymentResponse
	if err := c.post(ctx, "/payments/verify", input, &resp); err != nil {
		c.logger.Error("failed to verify payment",
			zap.String("order_id", input.OrderID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("verify payment: %w", err)
	}

	c.logger.Info("payment verified", zap.String("payment_id", resp.Payment.PaymentID))

	return &resp.Payment, nil
}

func (c *Client) PaymentHistory(ctx context.Context) ([]models.Payment, error) {
	var resp paymentHistoryResponse
	if err := c.get(ctx, "/payments/history", nil, &resp); err != nil {
		c.logger.Error("failed to get payment history", zap.Error(err))
		return nil, fmt.Errorf("payment history: %w", err)
	}
	return resp.Payments, nil
}
