// Package language parses query documents into the AST consumed by the
// executor. Parsing is delegated to gqlparser; this package narrows its
// failure mode to SyntaxError and rejects documents the engine cannot
// execute deterministically, such as operations declaring the same
// variable twice.
package language

import (
	"errors"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// SyntaxError reports a malformed query document. It is fatal for the
// whole request: no validation or execution runs after it.
type SyntaxError struct {
	Message string
	Line    int
	Column  int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error: %s (line %d, column %d)", e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}

// ParseQuery parses source into a query document. On malformed input it
// returns a *SyntaxError carrying the source location.
func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, syntaxError(err)
	}
	for _, op := range doc.Operations {
		if err := checkVariableDefinitions(op); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// checkVariableDefinitions rejects duplicate variable declarations within
// one operation. gqlparser defers this to its validation phase, which the
// engine does not run.
func checkVariableDefinitions(op *OperationDefinition) error {
	seen := make(map[string]bool, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		if seen[def.Variable] {
			se := &SyntaxError{Message: fmt.Sprintf("duplicate variable $%s", def.Variable)}
			if def.Position != nil {
				se.Line = def.Position.Line
				se.Column = def.Position.Column
			}
			return se
		}
		seen[def.Variable] = true
	}
	return nil
}

func syntaxError(err error) *SyntaxError {
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) {
		se := &SyntaxError{Message: gqlErr.Message}
		if len(gqlErr.Locations) > 0 {
			se.Line = gqlErr.Locations[0].Line
			se.Column = gqlErr.Locations[0].Column
		}
		return se
	}
	return &SyntaxError{Message: err.Error()}
}
