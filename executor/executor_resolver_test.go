package executor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestResolver_BusinessErrorPassedVerbatim(t *testing.T) {
	resp := run(t, `{ whoami }`, Options{})

	require.Equal(t, []string{"Context key `user': Not provided"}, messages(resp))
	require.Equal(t, Path{"whoami"}, resp.Errors[0].Path)
	wantData := map[string]any{"whoami": nil}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_UntaggedResultIsContractViolation(t *testing.T) {
	resp := run(t, `{ broken }`, Options{})

	require.Equal(t, []string{"Field `broken': Did not resolve to match ok/error tagged result"}, messages(resp))
	wantData := map[string]any{"broken": nil}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_PanicIsContained(t *testing.T) {
	resp := run(t, `{ panics name: thing(id: "foo") { name } }`, Options{})

	require.Equal(t, []string{"Field `panics': Did not resolve to match ok/error tagged result"}, messages(resp))
	wantData := map[string]any{
		"panics": nil,
		"name":   map[string]any{"name": "Foo"},
	}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_NilResolverIsContractViolation(t *testing.T) {
	resp := run(t, `{ stub }`, Options{})

	require.Equal(t, []string{"Field `stub': Did not resolve to match ok/error tagged result"}, messages(resp))
}

func TestResolver_FailureContainedToSubtree(t *testing.T) {
	resp := run(t, `{ thing(id: "nope") { name } other: thing(id: "foo") { name } }`, Options{})

	require.Equal(t, []string{"Thing `nope': Not found"}, messages(resp))
	wantData := map[string]any{
		"thing": nil,
		"other": map[string]any{"name": "Foo"},
	}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_DeprecatedFieldStillResolves(t *testing.T) {
	resp := run(t, `{ thing(id: "foo") { oldName legacy } }`, Options{})

	want := []string{
		"Field `oldName': Deprecated",
		"Field `legacy': Deprecated; use name instead",
	}
	require.Equal(t, want, messages(resp))
	wantData := map[string]any{
		"thing": map[string]any{"oldName": "Foo", "legacy": "Foo"},
	}
	if diff := cmp.Diff(wantData, resp.Data.Map()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
}
