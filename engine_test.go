package harakat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallEngine(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		engine   DiacritizerFunc
		timeout  time.Duration
		wantOK   bool
		wantKind FailureKind
		wantErr  error
	}{
		{
			name:   "success",
			engine: func(_ context.Context, s string) (string, error) { return s + "َ", nil },
			wantOK: true,
		},
		{
			name:     "internal error",
			engine:   func(context.Context, string) (string, error) { return "", errBoom },
			wantKind: FailureInternal,
			wantErr:  errBoom,
		},
		{
			name: "invalid input",
			engine: func(context.Context, string) (string, error) {
				return "", fmt.Errorf("bad rune: %w", ErrInvalidInput)
			},
			wantKind: FailureInput,
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "panic",
			engine:   func(context.Context, string) (string, error) { panic("nil map") },
			wantKind: FailurePanic,
			wantErr:  ErrEnginePanic,
		},
		{
			name: "deadline",
			engine: func(ctx context.Context, _ string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			},
			timeout:  5 * time.Millisecond,
			wantKind: FailureTimeout,
			wantErr:  context.DeadlineExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callEngine(context.Background(), tt.engine, "كتب", tt.timeout)
			if tt.wantOK {
				require.True(t, res.OK())
				assert.Equal(t, "كتبَ", res.Output)
				return
			}

			require.False(t, res.OK())
			assert.Equal(t, tt.wantKind, res.Failure.Kind)
			assert.ErrorIs(t, res.Failure, tt.wantErr)
			if tt.wantKind != FailurePanic {
				assert.ErrorIs(t, res.Failure, ErrEngineFailed)
			}
		})
	}
}
