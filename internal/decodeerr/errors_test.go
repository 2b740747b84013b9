package decodeerr

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  &Error{Kind: KindMalformedContainer},
			want: "malformed_container",
		},
		{
			name: "full context",
			err: &Error{
				Kind:    KindUnsupportedBlock,
				Section: "logic",
				Screen:  "MainActivity",
				Handler: "button1_onClick",
				Tag:     "launchRocket",
				Line:    7,
				Err:     errors.New("block has no template entry"),
			},
			want: `unsupported_block section="logic" screen="MainActivity" handler="button1_onClick" tag="launchRocket" line=7: block has no template entry`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_IsSentinel(t *testing.T) {
	t.Parallel()

	for kind, sentinel := range sentinels {
		err := fmt.Errorf("stage: %w", &Error{Kind: kind})
		if !errors.Is(err, sentinel) {
			t.Errorf("%s: errors.Is should match its sentinel", kind)
		}
		for other, s := range sentinels {
			if other != kind && errors.Is(err, s) {
				t.Errorf("%s: matched the %s sentinel", kind, other)
			}
		}
	}
}

func TestError_UnwrapsCause(t *testing.T) {
	t.Parallel()

	err := &Error{Kind: KindDecryptionFailed, Section: "view", Err: io.ErrUnexpectedEOF}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("cause should be reachable through errors.Is")
	}
	if !errors.Is(err, ErrDecryptionFailed) {
		t.Error("kind sentinel should still match")
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ""},
		{"direct", &Error{Kind: KindMalformedViewTree}, KindMalformedViewTree},
		{"wrapped", fmt.Errorf("run: %w", &Error{Kind: KindUnresolvedReference}), KindUnresolvedReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %q, want %q", got, tt.want)
			}
		})
	}
}
