package api

import (
	"context"
	"net/http"
)

// ListNotifications loads every admin notification.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	root, err := c.do(ctx, http.MethodGet, "/allnotifications", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "notifications")
	if err != nil {
		return nil, err
	}
	return decodeList("notification", items, decodeNotification)
}

// ClearNotifications deletes every notification.
func (c *Client) ClearNotifications(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/allnotifications", nil)
	return err
}

// DeleteNotification removes one notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/deletenotification/{id}", nil, id)
	return err
}
