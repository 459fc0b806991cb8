package executor

import (
	"fmt"
	"strings"

	"github.com/queryfold/queryfold/schema"
)

// Error message formats live in one place so the exact wording stays
// stable across validator, dispatcher, and tests.

func fieldNotPresentMsg(name string) string {
	return fmt.Sprintf("Field `%s': Not present in schema", name)
}

func argumentNotPresentMsg(name string) string {
	return fmt.Sprintf("Argument `%s': Not present in schema", name)
}

func variableNotProvidedMsg(name, typ string) string {
	return fmt.Sprintf("Variable `%s' (%s): Not provided", name, typ)
}

func argumentNotProvidedMsg(name string, typ *schema.TypeRef) string {
	return fmt.Sprintf("Argument `%s' (%s): Not provided", name, typ)
}

func invalidValueMsg(path string, typ *schema.TypeRef) string {
	return fmt.Sprintf("Argument `%s' (%s): Invalid value provided", path, typ)
}

// requiredSummaryMsg reports all missing required arguments of one field
// in a single record, singular wording when only one is missing.
func requiredSummaryMsg(field string, names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Field `%s': 1 required argument (%s) not provided", field, quoteList(names))
	}
	return fmt.Sprintf("Field `%s': %d required arguments (%s) not provided", field, len(names), quoteList(names))
}

// badlyFormedSummaryMsg reports the top-level arguments whose values
// failed coercion, singular wording when only one failed.
func badlyFormedSummaryMsg(field string, names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("Field `%s': 1 badly formed argument (%s) provided", field, quoteList(names))
	}
	return fmt.Sprintf("Field `%s': %d badly formed arguments (%s) provided", field, len(names), quoteList(names))
}

func fieldDeprecatedMsg(name, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Field `%s': Deprecated", name)
	}
	return fmt.Sprintf("Field `%s': Deprecated; %s", name, reason)
}

func argumentDeprecatedMsg(name string, typ *schema.TypeRef, reason string) string {
	if reason == "" {
		return fmt.Sprintf("Argument `%s' (%s): Deprecated", name, typ)
	}
	return fmt.Sprintf("Argument `%s' (%s): Deprecated; %s", name, typ, reason)
}

func untaggedResultMsg(field string) string {
	return fmt.Sprintf("Field `%s': Did not resolve to match ok/error tagged result", field)
}

func noRootTypeMsg(op, kind string) string {
	return fmt.Sprintf("Operation `%s': No %s type defined in schema", op, kind)
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "'"
	}
	return strings.Join(quoted, ", ")
}
