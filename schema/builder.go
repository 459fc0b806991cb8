package schema

// NewSchema creates an empty schema preloaded with the builtin scalars.
func NewSchema() *Schema {
	s := &Schema{Types: make(map[string]*Type)}
	s.AddType(stringType).
		AddType(intType).
		AddType(floatType).
		AddType(booleanType).
		AddType(idType)
	return s
}

// SetQueryType names the root query type.
func (s *Schema) SetQueryType(name string) *Schema {
	s.QueryType = name
	return s
}

// SetMutationType names the root mutation type.
func (s *Schema) SetMutationType(name string) *Schema {
	s.MutationType = name
	return s
}

// AddType registers t under its name, replacing any previous registration.
func (s *Schema) AddType(t *Type) *Schema {
	s.Types[t.Name] = t
	return s
}

// NewObject creates an object type with no fields.
func NewObject(name string) *Type {
	return &Type{Name: name, Kind: TypeKindObject}
}

// NewInputObject creates an input-object type with no fields.
func NewInputObject(name string) *Type {
	return &Type{Name: name, Kind: TypeKindInputObject}
}

// NewScalar creates a scalar type with the given coercion function.
func NewScalar(name string, coerce CoerceFunc) *Type {
	return &Type{Name: name, Kind: TypeKindScalar, Coerce: coerce}
}

// AddField appends a field to an object type, keeping declaration order.
func (t *Type) AddField(f *Field) *Type {
	t.Fields = append(t.Fields, f)
	return t
}

// AddInputField appends a field to an input-object type.
func (t *Type) AddInputField(v *InputValue) *Type {
	t.InputFields = append(t.InputFields, v)
	return t
}

// NewField creates an object field with its result type and resolver.
func NewField(name string, typ *TypeRef, resolver Resolver) *Field {
	return &Field{Name: name, Type: typ, Resolver: resolver}
}

// AddArgument appends a declared argument, keeping declaration order.
func (f *Field) AddArgument(v *InputValue) *Field {
	f.Arguments = append(f.Arguments, v)
	return f
}

// Deprecate marks the field deprecated. An empty reason keeps the marker
// without a reason.
func (f *Field) Deprecate(reason string) *Field {
	f.Deprecated = true
	f.DeprecationReason = reason
	return f
}

// NewInputValue creates an argument or input-object field.
func NewInputValue(name string, typ *TypeRef) *InputValue {
	return &InputValue{Name: name, Type: typ}
}

// WithDefault attaches a default value. A field with a default is never
// required, even when its type is Non-Null.
func (v *InputValue) WithDefault(value any) *InputValue {
	v.DefaultValue = value
	v.HasDefault = true
	return v
}

// Deprecate marks the value deprecated, optionally with a reason.
func (v *InputValue) Deprecate(reason string) *InputValue {
	v.Deprecated = true
	v.DeprecationReason = reason
	return v
}
