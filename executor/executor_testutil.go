package executor

import (
	"fmt"
	"testing"

	"github.com/queryfold/queryfold/language"
	"github.com/queryfold/queryfold/schema"
)

// mustParseQuery parses a query document and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	doc, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return doc
}

var thingFixtures = map[string]map[string]any{
	"foo": {
		"name":  "Foo",
		"owner": map[string]any{"name": "Alice"},
	},
	"bar": {
		"name": "Bar",
	},
}

// testSchema builds the schema the executor tests run against: a Thing
// catalog with required arguments, a strict custom scalar, deprecated
// members, and resolvers exercising every outcome the dispatcher knows.
func testSchema() *schema.Schema {
	valueScalar := schema.NewScalar("Value", func(v any) (any, error) {
		s, ok := v.(string)
		if !ok || s == "BAD" {
			return nil, fmt.Errorf("cannot coerce %v to Value", v)
		}
		return s, nil
	})

	thingInput := schema.NewInputObject("ThingInput").
		AddInputField(schema.NewInputValue("value", schema.NonNullType(schema.NamedType("Value")))).
		AddInputField(schema.NewInputValue("note", schema.NamedType("String")))

	owner := schema.NewObject("Owner").
		AddField(schema.NewField("name", schema.NamedType("String"), parentKeyResolver("name")))

	thing := schema.NewObject("Thing").
		AddField(schema.NewField("name", schema.NamedType("String"), func(p schema.ResolveParams) schema.Result {
			m := p.Parent.(map[string]any)
			if m["name"] == nil {
				return schema.Fail("Thing: No name set")
			}
			return schema.OK(m["name"])
		})).
		AddField(schema.NewField("owner", schema.NamedType("Owner"), parentKeyResolver("owner"))).
		AddField(schema.NewField("oldName", schema.NamedType("String"), parentKeyResolver("name")).Deprecate("")).
		AddField(schema.NewField("legacy", schema.NamedType("String"), parentKeyResolver("name")).Deprecate("use name instead"))

	query := schema.NewObject("Query").
		AddField(schema.NewField("thing", schema.NamedType("Thing"), func(p schema.ResolveParams) schema.Result {
			id := p.Args["id"].(string)
			m, ok := thingFixtures[id]
			if !ok {
				return schema.Fail(fmt.Sprintf("Thing `%s': Not found", id))
			}
			return schema.OK(m)
		}).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(schema.NamedType("String")))).
			AddArgument(schema.NewInputValue("verbose", schema.NamedType("Int")).Deprecate(""))).
		AddField(schema.NewField("things", schema.ListType(schema.NamedType("Thing")), func(p schema.ResolveParams) schema.Result {
			return schema.OK([]any{thingFixtures["foo"], map[string]any{}})
		}).
			AddArgument(schema.NewInputValue("limit", schema.NamedType("Int")).WithDefault(10)).
			AddArgument(schema.NewInputValue("tags", schema.ListType(schema.NamedType("String"))))).
		AddField(schema.NewField("whoami", schema.NamedType("String"), func(p schema.ResolveParams) schema.Result {
			user, ok := p.Context["user"]
			if !ok {
				return schema.Fail("Context key `user': Not provided")
			}
			return schema.OK(user)
		})).
		AddField(schema.NewField("broken", schema.NamedType("String"), func(p schema.ResolveParams) schema.Result {
			return schema.Result{}
		})).
		AddField(schema.NewField("panics", schema.NamedType("String"), func(p schema.ResolveParams) schema.Result {
			panic("resolver blew up")
		})).
		AddField(schema.NewField("stub", schema.NamedType("String"), nil))

	mutation := schema.NewObject("Mutation").
		AddField(schema.NewField("updateThing", schema.NamedType("Thing"), func(p schema.ResolveParams) schema.Result {
			id := p.Args["id"].(string)
			m, ok := thingFixtures[id]
			if !ok {
				return schema.Fail(fmt.Sprintf("Thing `%s': Not found", id))
			}
			return schema.OK(m)
		}).
			AddArgument(schema.NewInputValue("id", schema.NonNullType(schema.NamedType("String")))).
			AddArgument(schema.NewInputValue("thing", schema.NonNullType(schema.NamedType("ThingInput")))))

	return schema.NewSchema().
		SetQueryType("Query").
		SetMutationType("Mutation").
		AddType(valueScalar).
		AddType(thingInput).
		AddType(owner).
		AddType(thing).
		AddType(query).
		AddType(mutation)
}

func parentKeyResolver(key string) schema.Resolver {
	return func(p schema.ResolveParams) schema.Result {
		m, ok := p.Parent.(map[string]any)
		if !ok {
			return schema.Fail(fmt.Sprintf("Key `%s': No parent value", key))
		}
		return schema.OK(m[key])
	}
}

// run executes q against the shared test schema.
func run(t *testing.T, q string, opts Options, execOpts ...Option) *Response {
	t.Helper()
	exec := NewExecutor(testSchema(), execOpts...)
	return exec.ExecuteDocument(t.Context(), mustParseQuery(t, q), opts)
}

// messages flattens the response's error messages in order.
func messages(resp *Response) []string {
	out := make([]string, len(resp.Errors))
	for i, e := range resp.Errors {
		out[i] = e.Message
	}
	return out
}
