// Package executor walks a parsed query document against a schema,
// validating and coercing arguments, dispatching field resolvers, and
// assembling a response of partial data plus a flat, document-ordered
// error list.
//
// # Pipeline
//
// For every field node in a selection set the engine runs three stages in
// sequence:
//
//  1. Schema lookup: the node's schema field name is resolved against the
//     parent object type. An unknown field records one error at the node's
//     source location, omits the node's response key from the data
//     mapping, and skips the remaining stages. Siblings are unaffected.
//  2. Argument validation and coercion: required arguments without a
//     corresponding argument node (or bound to an unresolved variable)
//     produce a summary error plus one per-argument error in
//     schema-declaration order. Argument nodes with no matching
//     declaration are reported and dropped. Recognized values are coerced
//     against their declared types; failures inside input-object literals
//     report dot-joined paths. Deprecated arguments raise non-fatal
//     notices that never block the value.
//  3. Resolution: the field's resolver runs with the coerced arguments,
//     the caller-supplied context values, and the parent value. It must
//     return a tagged result built with schema.OK or schema.Fail; any
//     other outcome (including a panic) is reported as a contract
//     violation and the field becomes null. A failure message is surfaced
//     verbatim.
//
// When the resolved value is non-null and the node carries a nested
// selection set, the engine recurses with the resolved value as the new
// parent and the field's result type as the new parent type. List values
// recurse per element with the index appended to the error path.
//
// # Errors and partial success
//
// Nothing past the parser aborts execution. Every validation problem,
// deprecation notice, contract violation, and resolver failure is
// collected into one error list ordered by document position, and the
// response always carries whatever data survived. A failure is contained
// to its own subtree, surfacing as null or an absent key.
//
// # Concurrency
//
// Execution is logically single-pass. With WithWorkers(n), sibling fields
// of query operations resolve on up to n goroutines; results and errors
// are merged strictly by document order afterwards, so the response is
// identical regardless of scheduling. Mutation root fields always run
// sequentially. The schema, bound variables, and context values are
// read-only for the duration of a request and shared without locking.
package executor
