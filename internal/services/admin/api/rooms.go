package api

import (
	"context"
	"net/http"
)

// ListRooms loads every room.
func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	root, err := c.do(ctx, http.MethodGet, "/allrooms", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "rooms")
	if err != nil {
		return nil, err
	}
	return decodeList("room", items, decodeRoom)
}

// GetRoom loads one room.
func (c *Client) GetRoom(ctx context.Context, id string) (Room, error) {
	root, err := c.do(ctx, http.MethodGet, "/room/{id}", nil, id)
	if err != nil {
		return Room{}, err
	}
	item, err := payload(root, "room")
	if err != nil {
		return Room{}, err
	}
	return decodeOne("room", item, decodeRoom)
}

// DeleteRoom closes and removes a room.
func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/deleteroom/{id}", nil, id)
	return err
}
