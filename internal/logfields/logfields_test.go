package logfields

import (
	"errors"
	"testing"
)

func TestErrorAttr(t *testing.T) {
	if got := Error(nil); got.Value.String() != "" {
		t.Errorf("Error(nil) = %q, want empty", got.Value.String())
	}
	if got := Error(errors.New("boom")); got.Key != KeyError || got.Value.String() != "boom" {
		t.Errorf("Error(boom) = %v", got)
	}
}

func TestPathAttr(t *testing.T) {
	a := Path("/tmp/staging")
	if a.Key != KeyPath || a.Value.String() != "/tmp/staging" {
		t.Errorf("Path() = %v", a)
	}
}
