package schema

import "context"

// ResolveParams carries everything a resolver may consult: the request
// context, the caller-supplied context values passed through untouched,
// the already-resolved parent value, and the coerced argument map.
type ResolveParams struct {
	Ctx     context.Context
	Context map[string]any
	Parent  any
	Args    map[string]any
}

// Resolver computes a field's value. It must return a Result constructed
// with OK or Fail; anything else is a contract violation the executor
// reports and maps to null. The returned value is ownerless data copied
// into the response tree, so resolvers must not hand out aliased live
// state.
type Resolver func(p ResolveParams) Result

type resultKind int

const (
	resultUntagged resultKind = iota
	resultOK
	resultFail
)

// Result is the tagged outcome of a resolver call.
type Result struct {
	kind    resultKind
	value   any
	message string
}

// OK tags a successful resolution carrying value.
func OK(value any) Result { return Result{kind: resultOK, value: value} }

// Fail tags a resolver-level failure. The message is surfaced verbatim as
// the field's error.
func Fail(message string) Result { return Result{kind: resultFail, message: message} }

// Tagged reports whether the result was built with OK or Fail.
func (r Result) Tagged() bool { return r.kind != resultUntagged }

// Value returns the resolved value for an OK result.
func (r Result) Value() any { return r.value }

// Failed returns the failure message and whether the result is a failure.
func (r Result) Failed() (string, bool) { return r.message, r.kind == resultFail }
