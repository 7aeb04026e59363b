package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"invalid phone", ErrInvalidPhoneNumber, KindInvalidArgument},
		{"wrapped not found", fmt.Errorf("claim play: %w", ErrParticipantNotFound), KindNotFound},
		{"exists", ErrParticipantExists, KindConflict},
		{"store timeout", fmt.Errorf("find: %w", ErrStoreTimeout), KindTimeout},
		{"context deadline", context.DeadlineExceeded, KindTimeout},
		{"unavailable", ErrStoreUnavailable, KindUnavailable},
		{"client gone", fmt.Errorf("find participant: %w", context.Canceled), KindCanceled},
		{"canceled under store error", fmt.Errorf("%w: %w", ErrStoreUnavailable, context.Canceled), KindCanceled},
		{"unknown", errors.New("boom"), KindInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}
