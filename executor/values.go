package executor

import (
	"strconv"

	"github.com/queryfold/queryfold/language"
	"github.com/queryfold/queryfold/schema"
)

// bindVariables merges an operation's variable declarations with the
// caller-supplied values. Every declared variable is checked, whether
// referenced or not: a supplied value wins, then the declared default,
// and a remaining non-null declaration records a "Not provided" error and
// leaves the variable absent so later references degrade gracefully.
// Nullable unsatisfied declarations stay absent without error.
func bindVariables(defs language.VariableDefinitionList, supplied map[string]any) (map[string]any, []GraphQLError) {
	vars := make(map[string]any, len(defs))
	var errs []GraphQLError
	for _, def := range defs {
		if v, ok := supplied[def.Variable]; ok {
			vars[def.Variable] = v
			continue
		}
		if def.DefaultValue != nil {
			vars[def.Variable] = literalToGo(def.DefaultValue, nil)
			continue
		}
		if def.Type != nil && def.Type.NonNull {
			errs = append(errs, GraphQLError{
				Message:   variableNotProvidedMsg(def.Variable, def.Type.String()),
				Locations: locationsOf(def.Position),
			})
		}
	}
	return vars, errs
}

// literalToGo converts an AST literal into its runtime representation,
// substituting variable references nested inside list and object
// literals against the bound-variable map. An unbound nested reference
// becomes nil and surfaces through coercion. Top-level references are
// handled by resolveArgumentValue, which tracks the bound/not-provided
// distinction.
func literalToGo(value *language.Value, vars map[string]any) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.Variable:
		return vars[value.Raw]
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = literalToGo(c.Value, vars)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, c := range value.Children {
			m[c.Name] = literalToGo(c.Value, vars)
		}
		return m
	default:
		return nil
	}
}

// resolveArgumentValue produces the runtime value of an argument node,
// substituting variable references against the bound-variable map. The
// second return reports whether a value was actually bound: a reference
// to an absent variable is "not provided".
func resolveArgumentValue(value *language.Value, vars map[string]any) (any, bool) {
	if value == nil {
		return nil, false
	}
	if value.Kind == language.Variable {
		v, ok := vars[value.Raw]
		return v, ok
	}
	return literalToGo(value, vars), true
}

// coercionFailure is one leaf that failed coercion: the dot-joined path
// from the argument name and the declared type at that position.
type coercionFailure struct {
	path string
	typ  *schema.TypeRef
}

type providedArgument struct {
	def   *schema.InputValue
	node  *language.Argument
	value any
	bound bool
}

// validateArguments runs the structural checks and per-argument coercion
// for one field node, in order: required, extra, coercion, deprecation.
// It returns the coerced argument map, the errors to append, and whether
// the field may proceed to resolution.
func validateArguments(sch *schema.Schema, fieldDef *schema.Field, node *language.Field, fieldPath Path, vars map[string]any) (map[string]any, []GraphQLError, bool) {
	var (
		provided  = make(map[string]providedArgument, len(node.Arguments))
		order     []string // recognized argument nodes in document order
		extraErrs []GraphQLError
	)
	for _, argNode := range node.Arguments {
		def := fieldDef.Argument(argNode.Name)
		if def == nil {
			extraErrs = append(extraErrs, GraphQLError{
				Message:   argumentNotPresentMsg(argNode.Name),
				Locations: locationsOf(argNode.Position),
				Path:      fieldPath,
			})
			continue
		}
		if _, seen := provided[argNode.Name]; !seen {
			order = append(order, argNode.Name)
		}
		value, bound := resolveArgumentValue(argNode.Value, vars)
		provided[argNode.Name] = providedArgument{def: def, node: argNode, value: value, bound: bound}
	}

	var errs []GraphQLError

	// Required check, in schema-declaration order. An argument node bound
	// to an unresolved variable counts as not provided.
	var missing []*schema.InputValue
	for _, def := range fieldDef.Arguments {
		if !def.Required() {
			continue
		}
		if p, ok := provided[def.Name]; ok && p.bound {
			continue
		}
		missing = append(missing, def)
	}
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, def := range missing {
			names[i] = def.Name
		}
		errs = append(errs, GraphQLError{
			Message:   requiredSummaryMsg(node.Name, names),
			Locations: locationsOf(node.Position),
			Path:      fieldPath,
		})
		for _, def := range missing {
			errs = append(errs, GraphQLError{
				Message:   argumentNotProvidedMsg(def.Name, def.Type),
				Locations: locationsOf(node.Position),
				Path:      fieldPath,
			})
		}
	}

	errs = append(errs, extraErrs...)

	// Coercion, in document order. Arguments that coerce successfully are
	// passed through even when siblings fail; defaults fill unprovided
	// optional arguments.
	coerced := make(map[string]any, len(fieldDef.Arguments))
	var (
		failedTopLevel []string
		leafFailures   []coercionFailure
	)
	for _, name := range order {
		p := provided[name]
		if !p.bound {
			if !p.def.Required() {
				// Unresolved variable on an optional argument is a
				// malformed value, not a missing one.
				failedTopLevel = append(failedTopLevel, name)
				leafFailures = append(leafFailures, coercionFailure{path: name, typ: p.def.Type})
			}
			continue
		}
		value, fails := coerceInput(sch, p.value, p.def.Type, name, p.def.Type)
		if len(fails) > 0 {
			failedTopLevel = append(failedTopLevel, name)
			leafFailures = append(leafFailures, fails...)
			continue
		}
		coerced[name] = value
	}
	for _, def := range fieldDef.Arguments {
		if _, ok := coerced[def.Name]; ok {
			continue
		}
		if p, ok := provided[def.Name]; ok && p.bound {
			continue // failed coercion, not defaulted
		}
		if def.HasDefault {
			coerced[def.Name] = def.DefaultValue
		}
	}
	if len(failedTopLevel) > 0 {
		errs = append(errs, GraphQLError{
			Message:   badlyFormedSummaryMsg(node.Name, failedTopLevel),
			Locations: locationsOf(node.Position),
			Path:      fieldPath,
		})
		for _, fail := range leafFailures {
			errs = append(errs, GraphQLError{
				Message:   invalidValueMsg(fail.path, fail.typ),
				Locations: locationsOf(node.Position),
				Path:      fieldPath,
			})
		}
	}

	// Deprecation notices are independent of the checks above and never
	// block the value.
	for _, name := range order {
		p := provided[name]
		if p.def.Deprecated {
			errs = append(errs, GraphQLError{
				Message:   argumentDeprecatedMsg(name, p.def.Type, p.def.DeprecationReason),
				Locations: locationsOf(p.node.Position),
				Path:      fieldPath,
			})
		}
	}

	ok := len(missing) == 0 && len(failedTopLevel) == 0
	return coerced, errs, ok
}

// coerceInput coerces value against the declared type reference. path is
// the dot-joined location from the argument name; declared is the full
// type reported for failures at that path (input-object fields switch it
// to their own declared type).
func coerceInput(sch *schema.Schema, value any, t *schema.TypeRef, path string, declared *schema.TypeRef) (any, []coercionFailure) {
	if schema.IsNonNull(t) {
		if value == nil {
			return nil, []coercionFailure{{path: path, typ: declared}}
		}
		return coerceInput(sch, value, t.Unwrap(), path, declared)
	}
	if value == nil {
		return nil, nil
	}
	if schema.IsList(t) {
		return coerceListInput(sch, value, t, path, declared)
	}

	named := sch.Type(t.Named)
	if named == nil {
		return nil, []coercionFailure{{path: path, typ: declared}}
	}
	switch named.Kind {
	case schema.TypeKindScalar:
		coerced, err := named.Coerce(value)
		if err != nil {
			return nil, []coercionFailure{{path: path, typ: declared}}
		}
		return coerced, nil
	case schema.TypeKindInputObject:
		return coerceObjectInput(sch, value, named, path)
	default:
		return nil, []coercionFailure{{path: path, typ: declared}}
	}
}

func coerceListInput(sch *schema.Schema, value any, t *schema.TypeRef, path string, declared *schema.TypeRef) (any, []coercionFailure) {
	inner := t.Unwrap()
	items, ok := value.([]any)
	if !ok {
		// A single value coerces as a one-element list.
		coerced, fails := coerceInput(sch, value, inner, path, declared)
		if len(fails) > 0 {
			return nil, []coercionFailure{{path: path, typ: declared}}
		}
		return []any{coerced}, nil
	}
	out := make([]any, len(items))
	for i, item := range items {
		coerced, fails := coerceInput(sch, item, inner, path, declared)
		if len(fails) > 0 {
			// Element failures surface at the argument's own path.
			return nil, []coercionFailure{{path: path, typ: declared}}
		}
		out[i] = coerced
	}
	return out, nil
}

func coerceObjectInput(sch *schema.Schema, value any, objType *schema.Type, path string) (any, []coercionFailure) {
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, []coercionFailure{{path: path, typ: schema.NamedType(objType.Name)}}
	}
	out := make(map[string]any, len(objType.InputFields))
	var fails []coercionFailure
	for _, def := range objType.InputFields {
		fieldPath := path + "." + def.Name
		fv, present := fields[def.Name]
		if !present {
			if def.HasDefault {
				out[def.Name] = def.DefaultValue
			} else if def.Required() {
				fails = append(fails, coercionFailure{path: fieldPath, typ: def.Type})
			}
			continue
		}
		coerced, nested := coerceInput(sch, fv, def.Type, fieldPath, def.Type)
		if len(nested) > 0 {
			fails = append(fails, nested...)
			continue
		}
		out[def.Name] = coerced
	}
	// Keys with no declared input field are dropped.
	if len(fails) > 0 {
		return nil, fails
	}
	return out, nil
}

func locationsOf(pos *language.Position) []Location {
	if pos == nil {
		return nil
	}
	return []Location{{Line: pos.Line, Column: pos.Column}}
}
