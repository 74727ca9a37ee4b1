package install

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubRegistry struct {
	installs map[string]*Installation
	err      error
}

func (s *stubRegistry) GetByID(_ context.Context, id string) (*Installation, error) {
	if s.err != nil {
		return nil, s.err
	}
	inst, ok := s.installs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return inst, nil
}

func TestAuthorize(t *testing.T) {
	t.Parallel()

	registered := &Installation{ID: "abc123", CreatedAt: time.Now()}
	svc := NewService(&stubRegistry{installs: map[string]*Installation{"abc123": registered}})

	tests := []struct {
		name        string
		header      string
		wantErr     error
		wantMessage string
	}{
		{
			name:        "absent header",
			header:      "",
			wantErr:     ErrNoHeader,
			wantMessage: "No authorization header present.",
		},
		{
			name:        "single token",
			header:      "abc123",
			wantErr:     ErrMalformedHeader,
			wantMessage: "Invalid authorization header present.",
		},
		{
			name:        "three tokens",
			header:      "Install abc123 extra",
			wantErr:     ErrMalformedHeader,
			wantMessage: "Invalid authorization header present.",
		},
		{
			name:        "unknown installation",
			header:      "Install nope",
			wantErr:     ErrUnknownID,
			wantMessage: "Invalid installation ID.",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			inst, err := svc.Authorize(context.Background(), tc.header)
			require.Nil(t, inst)
			require.ErrorIs(t, err, tc.wantErr)

			msg, ok := FailureMessage(err)
			require.True(t, ok, "gate failures must map to a client message")
			require.Equal(t, tc.wantMessage, msg)
		})
	}
}

func TestAuthorizeValidCredential(t *testing.T) {
	t.Parallel()

	registered := &Installation{ID: "abc123", CreatedAt: time.Now()}
	svc := NewService(&stubRegistry{installs: map[string]*Installation{"abc123": registered}})

	// The scheme token is opaque: any first token is accepted.
	for _, header := range []string{"Install abc123", "Bearer abc123", "x abc123"} {
		inst, err := svc.Authorize(context.Background(), header)
		require.NoError(t, err, "header %q", header)
		require.Equal(t, "abc123", inst.ID)
	}
}

func TestAuthorizeRegistryFailure(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubRegistry{err: errors.New("connection refused")})

	inst, err := svc.Authorize(context.Background(), "Install abc123")
	require.Nil(t, inst)
	require.Error(t, err)

	// Infrastructure failures are not client mistakes and carry no 400 message.
	_, ok := FailureMessage(err)
	require.False(t, ok)
}
