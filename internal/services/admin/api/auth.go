package api

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
)

// LoginResult is what /adminlogin hands back for a successful sign-in.
type LoginResult struct {
	Token   string
	Role    string
	Email   string
	AdminID string
}

// Login exchanges admin credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, apperrors.New(apperrors.CodeValidation, "email and password are required")
	}
	body, err := encodeBody(field{"email", email}, field{"password", password})
	if err != nil {
		return LoginResult{}, err
	}
	root, err := c.do(ctx, http.MethodPost, "/adminlogin", body)
	if err != nil {
		return LoginResult{}, err
	}
	result := LoginResult{
		Token:   str(root, "token", "data.token", "accessToken", "data.accessToken"),
		Role:    strings.ToLower(str(root, "role", "data.role", "admin.role", "user.role", "data.admin.role", "data.user.role")),
		Email:   str(root, "email", "data.email", "admin.email", "user.email", "data.admin.email", "data.user.email"),
		AdminID: str(root, "id", "_id", "data._id", "data.id", "admin._id", "user._id", "data.admin._id", "data.user._id"),
	}
	if result.Token == "" {
		return LoginResult{}, apperrors.New(apperrors.CodeInvalidResponse, "login response has no token")
	}
	if result.Email == "" {
		result.Email = email
	}
	return result, nil
}

// UpdatePassword changes the signed-in admin's password.
func (c *Client) UpdatePassword(ctx context.Context, email, current, next string) error {
	switch {
	case current == "" || next == "":
		return apperrors.New(apperrors.CodeValidation, "current and new password are required")
	case len(next) < 8:
		return apperrors.New(apperrors.CodeValidation, "new password must have at least 8 characters")
	case current == next:
		return apperrors.New(apperrors.CodeValidation, "new password must differ from the current one")
	}
	body, err := encodeBody(
		field{"email", optional(email)},
		field{"oldPassword", current},
		field{"newPassword", next},
	)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPut, "/updatepassword", body)
	return err
}
