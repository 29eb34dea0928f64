package api

import (
	"context"
	"net/http"
)

// ListCoinPayments loads every coin purchase.
func (c *Client) ListCoinPayments(ctx context.Context) ([]CoinPayment, error) {
	root, err := c.do(ctx, http.MethodGet, "/coin-payments", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "payments", "coinPayments")
	if err != nil {
		return nil, err
	}
	return decodeList("coin payment", items, decodeCoinPayment)
}

// GetCoinPayment loads one coin purchase.
func (c *Client) GetCoinPayment(ctx context.Context, id string) (CoinPayment, error) {
	root, err := c.do(ctx, http.MethodGet, "/payment/{id}", nil, id)
	if err != nil {
		return CoinPayment{}, err
	}
	item, err := payload(root, "payment")
	if err != nil {
		return CoinPayment{}, err
	}
	return decodeOne("coin payment", item, decodeCoinPayment)
}

// DeleteCoinPayment removes one coin purchase record.
func (c *Client) DeleteCoinPayment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/payment/{id}", nil, id)
	return err
}

// ListCampaignOrders loads every campaign order payment.
func (c *Client) ListCampaignOrders(ctx context.Context) ([]CampaignOrder, error) {
	root, err := c.do(ctx, http.MethodGet, "/campaigns/payment/orderpayments", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "orders", "payments", "orderPayments")
	if err != nil {
		return nil, err
	}
	return decodeList("campaign order", items, decodeCampaignOrder)
}

// DeleteCampaignOrder removes one campaign order.
func (c *Client) DeleteCampaignOrder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/campaigns/deletecamporder/{id}", nil, id)
	return err
}
