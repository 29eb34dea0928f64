package api

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
)

// UserInput carries the editable user fields. Empty strings and a nil Coins
// are left out of update bodies.
type UserInput struct {
	FullName string
	Username string
	Email    string
	Phone    string
	Password string
	Role     string
	Status   string
	Coins    *float64
}

func (in UserInput) validate(create bool) error {
	if create {
		if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
			return apperrors.New(apperrors.CodeValidation, "full name, email and password are required")
		}
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return apperrors.WithMetadata(apperrors.CodeValidation, "email is not valid", map[string]string{"field": "email"})
		}
	}
	if in.Coins != nil && *in.Coins < 0 {
		return apperrors.WithMetadata(apperrors.CodeValidation, "coins must not be negative", map[string]string{"field": "coins"})
	}
	return nil
}

func (in UserInput) body() ([]byte, error) {
	var coins any
	if in.Coins != nil {
		coins = *in.Coins
	}
	return encodeBody(
		field{"fullName", optional(in.FullName)},
		field{"username", optional(in.Username)},
		field{"email", optional(in.Email)},
		field{"phone", optional(in.Phone)},
		field{"password", optional(in.Password)},
		field{"role", optional(in.Role)},
		field{"status", optional(in.Status)},
		field{"coins", coins},
	)
}

// ListUsers loads every user.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	root, err := c.do(ctx, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	items, err := payload(root, "users")
	if err != nil {
		return nil, err
	}
	return decodeList("user", items, decodeUser)
}

// GetUser loads one user.
func (c *Client) GetUser(ctx context.Context, id string) (User, error) {
	root, err := c.do(ctx, http.MethodGet, "/users/{id}", nil, id)
	if err != nil {
		return User{}, err
	}
	item, err := payload(root, "user")
	if err != nil {
		return User{}, err
	}
	return decodeOne("user", item, decodeUser)
}

// CreateUser creates a user. ok reports whether the API echoed the record.
func (c *Client) CreateUser(ctx context.Context, in UserInput) (user User, ok bool, err error) {
	if err := in.validate(true); err != nil {
		return User{}, false, err
	}
	body, err := in.body()
	if err != nil {
		return User{}, false, err
	}
	root, err := c.do(ctx, http.MethodPost, "/users", body)
	if err != nil {
		return User{}, false, err
	}
	return decodeResult("user", root, decodeUser, "user")
}

// UpdateUser applies a partial update. ok reports whether the API echoed the
// record.
func (c *Client) UpdateUser(ctx context.Context, id string, in UserInput) (user User, ok bool, err error) {
	if err := in.validate(false); err != nil {
		return User{}, false, err
	}
	body, err := in.body()
	if err != nil {
		return User{}, false, err
	}
	root, err := c.do(ctx, http.MethodPut, "/users/{id}", body, id)
	if err != nil {
		return User{}, false, err
	}
	return decodeResult("user", root, decodeUser, "user")
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/{id}", nil, id)
	return err
}
