// Package schema defines the immutable type registry the executor runs
// against: named types kept in an arena keyed by name, fields with typed
// arguments, and the resolver capability attached to each object field.
// Types reference each other through TypeRef by name, so cyclic type
// graphs (an object whose field returns the object itself) construct
// without recursion. A Schema is read-only once built and safe to share
// across concurrent executions.
package schema

// Schema is the complete type registry for one service.
type Schema struct {
	QueryType    string
	MutationType string
	Types        map[string]*Type // all named types keyed by name
}

// Query returns the root query type, or nil if none is configured.
func (s *Schema) Query() *Type { return s.Types[s.QueryType] }

// Mutation returns the root mutation type, or nil if none is configured.
func (s *Schema) Mutation() *Type { return s.Types[s.MutationType] }

// Type looks up a named type. Returns nil when absent.
func (s *Schema) Type(name string) *Type { return s.Types[name] }

// TypeKind discriminates the named type variants.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// CoerceFunc converts an input literal or variable-bound value into the
// scalar's runtime representation, failing for type-incompatible input.
type CoerceFunc func(value any) (any, error)

// Type is a named type in the schema arena.
type Type struct {
	Name        string
	Kind        TypeKind
	Description string
	Fields      []*Field      // for OBJECT, in declaration order
	InputFields []*InputValue // for INPUT_OBJECT, in declaration order
	Coerce      CoerceFunc    // for SCALAR
}

// Field returns the object field with the given schema name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputField returns the input-object field with the given name, or nil.
func (t *Type) InputField(name string) *InputValue {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Field is a resolvable field on an object type.
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue // in declaration order
	Resolver          Resolver
	Deprecated        bool
	DeprecationReason string
}

// Argument returns the declared argument with the given name, or nil.
func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// InputValue is an argument on a field or a field on an input object.
type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	DefaultValue      any
	HasDefault        bool
	Deprecated        bool
	DeprecationReason string
}

// Required reports whether a value must be provided: the declared type is
// Non-Null and no default exists. Fixed at schema-construction time.
func (v *InputValue) Required() bool { return IsNonNull(v.Type) && !v.HasDefault }
