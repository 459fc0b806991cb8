package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestOrdering_ErrorsFollowDocumentOrder(t *testing.T) {
	resp := run(t, `{ broken whoami thing { name } }`, Options{})

	require.Equal(t, []string{
		"Field `broken': Did not resolve to match ok/error tagged result",
		"Context key `user': Not provided",
		"Field `thing': 1 required argument (`id') not provided",
		"Argument `id' (String!): Not provided",
	}, messages(resp))
}

func TestOrdering_DuplicateResponseKeyOverwrites(t *testing.T) {
	// Both nodes are validated; the later write wins at the shared key
	// without changing its position.
	resp := run(t, `{ thing { name } thing(id: "foo") { name } }`, Options{})

	require.Equal(t, []string{
		"Field `thing': 1 required argument (`id') not provided",
		"Argument `id' (String!): Not provided",
	}, messages(resp))
	wantData := map[string]any{"thing": map[string]any{"name": "Foo"}}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestOrdering_ParallelMatchesSequential(t *testing.T) {
	const query = `{
		a: thing(id: "foo") { name owner { name } }
		b: things { name }
		broken
		c: thing(id: "bar") { name oldName }
		whoami
	}`

	seq := run(t, query, Options{})
	par := run(t, query, Options{}, WithWorkers(4))

	if diff := cmp.Diff(seq, par); diff != "" {
		t.Fatalf("parallel result diverged (-sequential +parallel):\n%s", diff)
	}
}

func TestOrderedMap_MarshalKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	out, err := m.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"b":3,"a":2}`, string(out))
	require.Equal(t, []string{"b", "a"}, m.Keys())
}
