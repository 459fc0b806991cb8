package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	doc, err := ParseQuery(`query Get($id: String!) { thing(id: $id) { name } }`)
	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)

	op := doc.Operations[0]
	require.Equal(t, "Get", op.Name)
	require.Equal(t, Query, op.Operation)
	require.Len(t, op.VariableDefinitions, 1)
	require.Equal(t, "id", op.VariableDefinitions[0].Variable)
	require.Equal(t, "String!", op.VariableDefinitions[0].Type.String())
}

func TestParseQueryShorthand(t *testing.T) {
	doc, err := ParseQuery(`{ a b }`)
	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)
	require.Equal(t, Query, doc.Operations[0].Operation)
	require.Len(t, doc.Operations[0].SelectionSet, 2)
}

func TestParseQuerySyntaxError(t *testing.T) {
	_, err := ParseQuery("{\n  thing(\n}")
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.NotEmpty(t, se.Message)
	require.Greater(t, se.Line, 0)
	require.Contains(t, se.Error(), "syntax error")
}

func TestParseQueryDuplicateVariable(t *testing.T) {
	_, err := ParseQuery(`query ($v: Int, $v: Int) { f }`)
	require.Error(t, err)

	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "duplicate variable $v", se.Message)
	require.Greater(t, se.Line, 0)
}

func TestParseQueryMultipleOperations(t *testing.T) {
	doc, err := ParseQuery(`query A { a } mutation B { b }`)
	require.NoError(t, err)
	require.Len(t, doc.Operations, 2)
	require.Equal(t, Mutation, doc.Operations[1].Operation)
}
