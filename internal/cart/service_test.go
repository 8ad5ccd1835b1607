package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"stitchmart.org/internal/auth"
)

func TestAddRequiresUser(t *testing.T) {
	svc := NewService(NewMemoryStore())
	_, err := svc.Add(context.Background(), "", "item-1")
	require.ErrorIs(t, err, auth.ErrAuthenticationRequired)
}

func TestAddMergesRepeatedItem(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	first, err := svc.Add(ctx, "u1", "item-1")
	require.NoError(t, err)
	require.Equal(t, 1, first.Quantity)

	second, err := svc.Add(ctx, "u1", "item-1")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 2, second.Quantity)

	lines, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
}

func TestAddConcurrentMergesToOneLine(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Add(ctx, "u1", "item-1")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	lines, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, n, lines[0].Quantity)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	_, err := svc.Add(ctx, "u1", "item-1")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "u2", "item-1")
	require.NoError(t, err)

	lines, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "u1", lines[0].UserID)
}

func TestRemoveChecksOwnership(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	line, err := svc.Add(ctx, "u1", "item-1")
	require.NoError(t, err)

	err = svc.Remove(ctx, "u2", line.ID)
	require.ErrorIs(t, err, ErrNotOwner)

	// Attempt by the wrong user must not remove the line.
	lines, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, lines, 1)

	require.NoError(t, svc.Remove(ctx, "u1", line.ID))
	_, err = svc.List(ctx, "u1")
	require.NoError(t, err)
}

func TestRemoveMissingLine(t *testing.T) {
	svc := NewService(NewMemoryStore())
	err := svc.Remove(context.Background(), "u1", "nope")
	if !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
}
