package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/queryfold/queryfold/schema"
)

func TestVariables_SuppliedValueBinds(t *testing.T) {
	resp := run(t, `query Q($id: String!) { thing(id: $id) { name } }`, Options{
		Variables: map[string]any{"id": "foo"},
	})

	require.Empty(t, resp.Errors)
	want := map[string]any{"thing": map[string]any{"name": "Foo"}}
	if diff := cmp.Diff(want, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestVariables_DefaultApplies(t *testing.T) {
	resp := run(t, `query Q($id: String = "foo") { thing(id: $id) { name } }`, Options{})

	require.Empty(t, resp.Errors)
	want := map[string]any{"thing": map[string]any{"name": "Foo"}}
	if diff := cmp.Diff(want, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestVariables_MissingRequiredVariable(t *testing.T) {
	resp := run(t, `query Q($id: String!) { thing(id: $id) { name } }`, Options{})

	want := []string{
		"Variable `id' (String!): Not provided",
		"Field `thing': 1 required argument (`id') not provided",
		"Argument `id' (String!): Not provided",
	}
	require.Equal(t, want, messages(resp))
	wantData := map[string]any{"thing": nil}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestVariables_EachUnsatisfiedVariableReported(t *testing.T) {
	// Declaration alone triggers the check, referenced or not; supplying
	// one required variable silences only that one.
	resp := run(t, `query Q($id: String!, $other: Int!) { thing(id: $id) { name } }`, Options{
		Variables: map[string]any{"id": "foo"},
	})

	require.Equal(t, []string{"Variable `other' (Int!): Not provided"}, messages(resp))
	want := map[string]any{"thing": map[string]any{"name": "Foo"}}
	if diff := cmp.Diff(want, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestVariables_NullableUnsetStaysAbsent(t *testing.T) {
	// An unresolved reference on an optional argument is a malformed
	// value rather than a missing one.
	resp := run(t, `query Q($v: Int) { thing(id: "foo", verbose: $v) { name } }`, Options{})

	want := []string{
		"Field `thing': 1 badly formed argument (`verbose') provided",
		"Argument `verbose' (Int): Invalid value provided",
		"Argument `verbose' (Int): Deprecated",
	}
	require.Equal(t, want, messages(resp))
}

func TestVariables_VariableInsideInputObjectLiteral(t *testing.T) {
	// A reference nested inside an object literal substitutes the bound
	// value before coercion.
	resp := run(t, `mutation M($v: Value!) { updateThing(id: "foo", thing: {value: $v}) { name } }`, Options{
		Variables: map[string]any{"v": "GOOD"},
	})

	require.Empty(t, resp.Errors)
	want := map[string]any{"updateThing": map[string]any{"name": "Foo"}}
	if diff := cmp.Diff(want, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestVariables_UnboundReferenceInsideLiteral(t *testing.T) {
	// The argument itself is provided as a literal, so the unbound nested
	// reference surfaces as a coercion failure at the dotted path.
	resp := run(t, `mutation M($v: Value!) { updateThing(id: "foo", thing: {value: $v}) { name } }`, Options{})

	want := []string{
		"Variable `v' (Value!): Not provided",
		"Field `updateThing': 1 badly formed argument (`thing') provided",
		"Argument `thing.value' (Value!): Invalid value provided",
	}
	require.Equal(t, want, messages(resp))
}

func TestVariables_VariableInsideListLiteral(t *testing.T) {
	var got map[string]any
	sch := testSchema()
	field := sch.Type("Query").Field("things")
	orig := field.Resolver
	field.Resolver = func(p schema.ResolveParams) schema.Result {
		got = p.Args
		return orig(p)
	}
	exec := NewExecutor(sch)
	doc := mustParseQuery(t, `query Q($t: String) { things(tags: ["a", $t]) { name } }`)
	exec.ExecuteDocument(t.Context(), doc, Options{Variables: map[string]any{"t": "b"}})

	require.Equal(t, []any{"a", "b"}, got["tags"])
}

func TestVariables_VariableInsideInputObject(t *testing.T) {
	resp := run(t, `mutation M($t: ThingInput!) { updateThing(id: "foo", thing: $t) { name } }`, Options{
		Variables: map[string]any{"t": map[string]any{"value": "GOOD"}},
	})

	require.Empty(t, resp.Errors)
	want := map[string]any{"updateThing": map[string]any{"name": "Foo"}}
	if diff := cmp.Diff(want, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}
