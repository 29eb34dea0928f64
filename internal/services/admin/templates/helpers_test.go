package templates

import (
	"testing"

	"golang.org/x/text/message"
)

type fakeLocalizer struct {
	value string
}

func (f fakeLocalizer) Sprintf(key message.Reference, args ...any) string {
	return f.value
}

func TestTranslateFallback(t *testing.T) {
	if T(nil, "hello") != "hello" {
		t.Fatal("expected key fallback")
	}
	if T(nil, message.Reference(123)) != "" {
		t.Fatal("expected empty string for non-string key")
	}
}

func TestTranslateLocalizer(t *testing.T) {
	if T(fakeLocalizer{value: "translated"}, "hello") != "translated" {
		t.Fatal("expected translated value")
	}
}

func TestAppendQueryParam(t *testing.T) {
	if got := AppendQueryParam("/users", "q", "a b"); got != "/users?q=a+b" {
		t.Fatalf("AppendQueryParam = %q", got)
	}
	if got := AppendQueryParam("/users?q=a", "page", "2"); got != "/users?q=a&page=2" {
		t.Fatalf("AppendQueryParam = %q", got)
	}
}

func TestPageTitle(t *testing.T) {
	if got := PageTitle("Users"); got != "Users | Social Admin" {
		t.Fatalf("PageTitle = %q", got)
	}
	if got := PageTitle(" "); got != AppName() {
		t.Fatalf("PageTitle blank = %q", got)
	}
}
