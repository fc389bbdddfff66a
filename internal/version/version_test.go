package version

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	v := Get()
	if v == "" {
		t.Fatal("expected non-empty version")
	}
	if strings.ContainsAny(v, " \n\t") {
		t.Errorf("expected trimmed version, got %q", v)
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "labelcrew/"+Get(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
