package executor

import (
	"context"
	"reflect"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/queryfold/queryfold/internal/eventbus"
	"github.com/queryfold/queryfold/internal/events"
	"github.com/queryfold/queryfold/language"
	"github.com/queryfold/queryfold/schema"
)

// Executor runs parsed documents against one schema. It is stateless
// between requests and safe for concurrent use.
type Executor struct {
	schema  *schema.Schema
	workers int
}

// Option configures an Executor.
type Option func(*Executor)

// WithWorkers lets up to n sibling fields of query operations resolve
// concurrently. Results and errors still merge in document order, so the
// response is identical to sequential execution.
func WithWorkers(n int) Option {
	return func(e *Executor) {
		if n > 1 {
			e.workers = n
		}
	}
}

// NewExecutor creates an Executor bound to sch.
func NewExecutor(sch *schema.Schema, opts ...Option) *Executor {
	e := &Executor{schema: sch, workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Options carries the per-request inputs recognized by the engine: the
// opaque context values handed to every resolver untouched, and the
// caller-supplied variable values.
type Options struct {
	Context   map[string]any
	Variables map[string]any
}

// requestState is the read-only execution context of one request.
type requestState struct {
	ctx        context.Context
	sch        *schema.Schema
	vars       map[string]any
	reqContext map[string]any
	workers    int // effective sibling parallelism for this operation
}

// ExecuteDocument executes every operation in the document in document
// order, merging results into one data mapping. It never fails as a
// whole: problems surface in the returned error list next to whatever
// data resolved.
func (e *Executor) ExecuteDocument(ctx context.Context, doc *language.QueryDocument, opts Options) *Response {
	data := NewOrderedMap()
	var errs []GraphQLError

	for _, op := range doc.Operations {
		rootName, kind := e.schema.QueryType, "query"
		if op.Operation == language.Mutation {
			rootName, kind = e.schema.MutationType, "mutation"
		}
		root := e.schema.Type(rootName)
		if root == nil {
			errs = append(errs, GraphQLError{Message: noRootTypeMsg(operationDisplayName(op), kind)})
			continue
		}

		vars, verrs := bindVariables(op.VariableDefinitions, opts.Variables)
		errs = append(errs, verrs...)

		workers := e.workers
		if op.Operation == language.Mutation {
			workers = 1
		}
		st := &requestState{
			ctx:        ctx,
			sch:        e.schema,
			vars:       vars,
			reqContext: opts.Context,
			workers:    workers,
		}
		errs = append(errs, st.executeSelectionSet(root, op.SelectionSet, nil, Path{}, data)...)
	}

	return &Response{Data: data, Errors: errs}
}

func operationDisplayName(op *language.OperationDefinition) string {
	if op.Name != "" {
		return op.Name
	}
	return string(op.Operation)
}

// fieldOutcome is the complete result of one field node: its response
// key, resolved value, whether the key appears in data at all, and the
// errors it produced, kept separate so sibling outcomes merge in
// document order regardless of scheduling.
type fieldOutcome struct {
	key     string
	value   any
	include bool
	errs    []GraphQLError
}

func (st *requestState) executeSelectionSet(parentType *schema.Type, sel language.SelectionSet, parent any, path Path, out *OrderedMap) []GraphQLError {
	nodes := fieldNodes(sel)

	outcomes := make([]fieldOutcome, len(nodes))
	if st.workers > 1 && len(nodes) > 1 {
		g := new(errgroup.Group)
		g.SetLimit(st.workers)
		for i, node := range nodes {
			g.Go(func() error {
				outcomes[i] = st.executeField(parentType, node, parent, path)
				return nil
			})
		}
		g.Wait()
	} else {
		for i, node := range nodes {
			outcomes[i] = st.executeField(parentType, node, parent, path)
		}
	}

	var errs []GraphQLError
	for _, oc := range outcomes {
		errs = append(errs, oc.errs...)
		if oc.include {
			// Later siblings with the same response key overwrite
			// earlier ones; both were validated above.
			out.Set(oc.key, oc.value)
		}
	}
	return errs
}

// fieldNodes filters a selection set down to its field nodes. Fragments
// parse but are outside the engine's selection surface.
func fieldNodes(sel language.SelectionSet) []*language.Field {
	nodes := make([]*language.Field, 0, len(sel))
	for _, s := range sel {
		if f, ok := s.(*language.Field); ok {
			nodes = append(nodes, f)
		}
	}
	return nodes
}

func (st *requestState) executeField(parentType *schema.Type, node *language.Field, parent any, path Path) fieldOutcome {
	key := node.Alias
	if key == "" {
		key = node.Name
	}
	fieldPath := appendPath(path, key)

	fieldDef := parentType.Field(node.Name)
	if fieldDef == nil {
		return fieldOutcome{key: key, errs: []GraphQLError{{
			Message:   fieldNotPresentMsg(node.Name),
			Locations: locationsOf(node.Position),
			Path:      fieldPath,
		}}}
	}

	args, errs, ok := validateArguments(st.sch, fieldDef, node, fieldPath, st.vars)
	if !ok {
		// The field is not resolved; its key stays, null.
		return fieldOutcome{key: key, include: true, errs: errs}
	}

	if fieldDef.Deprecated {
		errs = append(errs, GraphQLError{
			Message:   fieldDeprecatedMsg(node.Name, fieldDef.DeprecationReason),
			Locations: locationsOf(node.Position),
			Path:      fieldPath,
		})
	}

	value, derrs := st.dispatch(parentType, fieldDef, node, parent, args, fieldPath)
	errs = append(errs, derrs...)

	if value != nil && len(node.SelectionSet) > 0 {
		completed, cerrs := st.completeValue(fieldDef.Type, node.SelectionSet, value, fieldPath)
		value = completed
		errs = append(errs, cerrs...)
	}

	return fieldOutcome{key: key, value: value, include: true, errs: errs}
}

// dispatch invokes the field's resolver and enforces its result
// contract. A failure message passes through verbatim; an untagged
// result, a nil resolver, or a panic is a contract violation. Either way
// the field's value is null and no error escapes the subtree.
func (st *requestState) dispatch(parentType *schema.Type, fieldDef *schema.Field, node *language.Field, parent any, args map[string]any, fieldPath Path) (any, []GraphQLError) {
	eventbus.Publish(st.ctx, events.FieldResolveStart{
		ParentType: parentType.Name,
		Field:      fieldDef.Name,
		Path:       fieldPath.String(),
	})
	start := time.Now()

	result := safeResolve(fieldDef.Resolver, schema.ResolveParams{
		Ctx:     st.ctx,
		Context: st.reqContext,
		Parent:  parent,
		Args:    args,
	})

	var errs []GraphQLError
	var value any
	switch {
	case !result.Tagged():
		errs = append(errs, GraphQLError{
			Message:   untaggedResultMsg(node.Name),
			Locations: locationsOf(node.Position),
			Path:      fieldPath,
		})
	default:
		if msg, failed := result.Failed(); failed {
			errs = append(errs, GraphQLError{
				Message:   msg,
				Locations: locationsOf(node.Position),
				Path:      fieldPath,
			})
		} else {
			value = result.Value()
		}
	}

	eventbus.Publish(st.ctx, events.FieldResolveFinish{
		ParentType: parentType.Name,
		Field:      fieldDef.Name,
		Path:       fieldPath.String(),
		Failed:     len(errs) > 0,
		Duration:   time.Since(start),
	})
	return value, errs
}

// safeResolve contains resolver panics: a panicking resolver has not
// conclusively produced a tagged result, so the zero Result comes back
// and is reported as a contract violation.
func safeResolve(r schema.Resolver, p schema.ResolveParams) (result schema.Result) {
	if r == nil {
		return schema.Result{}
	}
	defer func() {
		if recover() != nil {
			result = schema.Result{}
		}
	}()
	return r(p)
}

// completeValue recurses into the resolved value: lists element-wise with
// the index appended to the path, objects through their selection set.
// Leaf values pass through unchanged.
func (st *requestState) completeValue(t *schema.TypeRef, sel language.SelectionSet, value any, path Path) (any, []GraphQLError) {
	if value == nil {
		return nil, nil
	}
	for schema.IsNonNull(t) {
		t = t.Unwrap()
	}
	if schema.IsList(t) {
		return st.completeListValue(t, sel, value, path)
	}
	named := st.sch.Type(t.NamedTypeName())
	if named == nil || named.Kind != schema.TypeKindObject {
		return value, nil
	}
	sub := NewOrderedMap()
	errs := st.executeSelectionSet(named, sel, value, path, sub)
	return sub, errs
}

func (st *requestState) completeListValue(t *schema.TypeRef, sel language.SelectionSet, value any, path Path) (any, []GraphQLError) {
	inner := t.Unwrap()
	items := listItems(value)
	if items == nil {
		// A single value completes as a one-element list.
		completed, errs := st.completeValue(inner, sel, value, appendPath(path, 0))
		return []any{completed}, errs
	}
	out := make([]any, len(items))
	var errs []GraphQLError
	for i, item := range items {
		completed, cerrs := st.completeValue(inner, sel, item, appendPath(path, i))
		out[i] = completed
		errs = append(errs, cerrs...)
	}
	return out, errs
}

func listItems(value any) []any {
	if direct, ok := value.([]any); ok {
		return direct
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	items := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		items[i] = rv.Index(i).Interface()
	}
	return items
}
