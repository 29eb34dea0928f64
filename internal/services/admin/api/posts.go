package api

import (
	"context"
	"net/http"
)

// ListPosts loads every post.
func (c *Client) ListPosts(ctx context.Context) ([]Post, error) {
	root, err := c.do(ctx, http.MethodGet, "/posts", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "posts")
	if err != nil {
		return nil, err
	}
	return decodeList("post", items, decodePost)
}

// DeletePost removes a post; the API addresses posts through their owner.
func (c *Client) DeletePost(ctx context.Context, ownerID, postID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/deletePost/{owner}/{post}", nil, ownerID, postID)
	return err
}
