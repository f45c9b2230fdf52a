package ui

import (
	"strings"
	"testing"
)

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("classic") })

	SetTheme("mono")
	if Current().SymOK != "ok" {
		t.Fatalf("mono SymOK = %q", Current().SymOK)
	}
	out := PanelString("hello.png")
	if !strings.Contains(out, "hello.png") || !strings.Contains(out, "┌") {
		t.Fatalf("panel = %q", out)
	}

	SetTheme("unknown")
	if Current().SymOK != "✔" {
		t.Fatalf("fallback SymOK = %q", Current().SymOK)
	}
}
