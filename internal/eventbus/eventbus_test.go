package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ N int }
type pong struct{ N int }

func TestPublishReachesSubscribers(t *testing.T) {
	Use(New())
	defer Use(nil)

	var got []int
	unsub := Subscribe(func(_ context.Context, e ping) { got = append(got, e.N) })
	defer unsub()

	Publish(t.Context(), ping{N: 1})
	Publish(t.Context(), ping{N: 2})
	require.Equal(t, []int{1, 2}, got)
}

func TestDispatchByEventType(t *testing.T) {
	Use(New())
	defer Use(nil)

	var pings, pongs int
	defer Subscribe(func(context.Context, ping) { pings++ })()
	defer Subscribe(func(context.Context, pong) { pongs++ })()

	Publish(t.Context(), ping{})
	Publish(t.Context(), ping{})
	Publish(t.Context(), pong{})
	require.Equal(t, 2, pings)
	require.Equal(t, 1, pongs)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	Use(New())
	defer Use(nil)

	var n int
	unsub := Subscribe(func(context.Context, ping) { n++ })
	Publish(t.Context(), ping{})
	unsub()
	Publish(t.Context(), ping{})
	require.Equal(t, 1, n)
}

func TestNoBusIsNoop(t *testing.T) {
	Use(nil)

	unsub := Subscribe(func(context.Context, ping) { t.Fatal("handler called with no bus") })
	Publish(t.Context(), ping{})
	unsub()
}
