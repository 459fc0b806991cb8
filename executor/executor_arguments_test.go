package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/queryfold/queryfold/schema"
)

func TestArguments_MissingRequired(t *testing.T) {
	resp := run(t, `{ thing { name } }`, Options{})

	want := []string{
		"Field `thing': 1 required argument (`id') not provided",
		"Argument `id' (String!): Not provided",
	}
	require.Equal(t, want, messages(resp))
	// The field is not resolved; its key stays, null.
	wantData := map[string]any{"thing": nil}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	for _, e := range resp.Errors {
		require.Equal(t, Path{"thing"}, e.Path)
	}
}

func TestArguments_MissingRequiredPlural(t *testing.T) {
	resp := run(t, `mutation { updateThing { name } }`, Options{})

	want := []string{
		"Field `updateThing': 2 required arguments (`id', `thing') not provided",
		"Argument `id' (String!): Not provided",
		"Argument `thing' (ThingInput!): Not provided",
	}
	require.Equal(t, want, messages(resp))
}

func TestArguments_ExtraArgumentDropped(t *testing.T) {
	resp := run(t, `{ thing(id: "foo", bogus: 1) { name } }`, Options{})

	require.Equal(t, []string{"Argument `bogus': Not present in schema"}, messages(resp))
	// The field still resolves with its recognized arguments.
	wantData := map[string]any{"thing": map[string]any{"name": "Foo"}}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestArguments_BadlyFormedNestedInput(t *testing.T) {
	resp := run(t, `mutation { updateThing(id: "foo", thing: {value: "BAD"}) { name } }`, Options{})

	want := []string{
		"Field `updateThing': 1 badly formed argument (`thing') provided",
		"Argument `thing.value' (Value!): Invalid value provided",
	}
	require.Equal(t, want, messages(resp))
	wantData := map[string]any{"updateThing": nil}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestArguments_MissingRequiredNestedInputField(t *testing.T) {
	resp := run(t, `mutation { updateThing(id: "foo", thing: {note: "hi"}) { name } }`, Options{})

	want := []string{
		"Field `updateThing': 1 badly formed argument (`thing') provided",
		"Argument `thing.value' (Value!): Invalid value provided",
	}
	require.Equal(t, want, messages(resp))
}

func TestArguments_ScalarTypeMismatch(t *testing.T) {
	resp := run(t, `{ thing(id: 42) { name } }`, Options{})

	want := []string{
		"Field `thing': 1 badly formed argument (`id') provided",
		"Argument `id' (String!): Invalid value provided",
	}
	require.Equal(t, want, messages(resp))
}

func TestArguments_SiblingArgumentsSurviveFailure(t *testing.T) {
	// id coerces fine while thing fails; only thing is counted in the
	// summary and id appears in neither error.
	resp := run(t, `mutation { updateThing(id: "foo", thing: {value: "BAD", note: 7}) { name } }`, Options{})

	require.Equal(t, "Field `updateThing': 1 badly formed argument (`thing') provided", resp.Errors[0].Message)
	for _, e := range resp.Errors {
		require.NotContains(t, e.Message, "`id'")
	}
}

func TestArguments_DefaultFillsUnprovided(t *testing.T) {
	var got map[string]any
	sch := testSchema()
	field := sch.Type("Query").Field("things")
	orig := field.Resolver
	field.Resolver = func(p schema.ResolveParams) schema.Result {
		got = p.Args
		return orig(p)
	}
	exec := NewExecutor(sch)
	resp := exec.ExecuteDocument(t.Context(), mustParseQuery(t, `{ things { name } }`), Options{})

	require.NotNil(t, resp.Data)
	require.Equal(t, 10, got["limit"])
}

func TestArguments_DeprecatedArgumentNotice(t *testing.T) {
	resp := run(t, `{ thing(id: "foo", verbose: 1) { name } }`, Options{})

	require.Equal(t, []string{"Argument `verbose' (Int): Deprecated"}, messages(resp))
	// The notice never blocks the value.
	wantData := map[string]any{"thing": map[string]any{"name": "Foo"}}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}
