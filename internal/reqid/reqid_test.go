package reqid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	ctx, id := NewContext(t.Context())
	require.NotEmpty(t, id)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestAbsent(t *testing.T) {
	_, ok := FromContext(t.Context())
	require.False(t, ok)
}

func TestUnique(t *testing.T) {
	_, a := NewContext(t.Context())
	_, b := NewContext(t.Context())
	require.NotEqual(t, a, b)
}
