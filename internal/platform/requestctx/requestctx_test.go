package requestctx

import (
	"context"
	"testing"
)

func TestUserIDFromContextRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "admin-42")
	got := UserIDFromContext(ctx)
	if got != "admin-42" {
		t.Fatalf("UserIDFromContext = %q, want %q", got, "admin-42")
	}
}

func TestUserIDFromContextNil(t *testing.T) {
	if got := UserIDFromContext(nil); got != "" {
		t.Fatalf("expected empty string for nil context, got %q", got)
	}
}

func TestWithUserIDNilContext(t *testing.T) {
	ctx := WithUserID(nil, "admin-99")
	if ctx == nil {
		t.Fatalf("expected non-nil context")
	}
	if got := UserIDFromContext(ctx); got != "admin-99" {
		t.Fatalf("UserIDFromContext = %q, want %q", got, "admin-99")
	}
}

func TestTokenFromContext(t *testing.T) {
	ctx := WithToken(WithUserID(context.Background(), "admin-1"), "tok-abc")
	if got := TokenFromContext(ctx); got != "tok-abc" {
		t.Fatalf("TokenFromContext = %q, want %q", got, "tok-abc")
	}
	if got := UserIDFromContext(ctx); got != "admin-1" {
		t.Fatalf("UserIDFromContext = %q, want %q", got, "admin-1")
	}
	if got := TokenFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}
}
