package errors

import (
	stderrors "errors"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeDegenerateInput, "tree has no root"),
			want: "DEGENERATE_INPUT: tree has no root",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeFileNotFound, stderrors.New("no such file"), "open map.json"),
			want: "FILE_NOT_FOUND: open map.json: no such file",
		},
		{
			name: "formatted message",
			err:  New(ErrCodeCircularReference, "node %s cannot adopt %s", "a", "b"),
			want: "CIRCULAR_REFERENCE: node a cannot adopt b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeCircularReference, "cycle")

	if !Is(err, ErrCodeCircularReference) {
		t.Error("Is() should match the error's own code")
	}
	if Is(err, ErrCodeDegenerateInput) {
		t.Error("Is() should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() should not match plain errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeDegenerateInput, "dangling parent")
	outer := Wrap(ErrCodeInternal, inner, "layout failed")

	// errors.As finds the outermost *Error first.
	if !Is(outer, ErrCodeInternal) {
		t.Error("Is() should report the outermost code")
	}
	if !stderrors.Is(outer, inner) {
		t.Error("wrapped cause should remain reachable via errors.Is")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidOrientation, "x")); got != ErrCodeInvalidOrientation {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeInvalidOrientation)
	}
	if got := GetCode(stderrors.New("plain")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %q, want %q", got, ErrCodeInternal)
	}
}
