package executor

import "fmt"

// Location is a line/column position in the query source.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Path addresses a value in the response tree: response keys for fields,
// ints for list indices.
type Path []any

// String renders the path with dots for keys and brackets for indices.
func (p Path) String() string {
	out := ""
	for i, elem := range p {
		switch v := elem.(type) {
		case string:
			if i > 0 {
				out += "."
			}
			out += v
		case int:
			out += fmt.Sprintf("[%d]", v)
		}
	}
	return out
}

func appendPath(p Path, elem any) Path {
	next := make(Path, len(p)+1)
	copy(next, p)
	next[len(p)] = elem
	return next
}

// GraphQLError is one collected error record.
type GraphQLError struct {
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
	Path      Path       `json:"path,omitempty"`
}

func (e GraphQLError) Error() string { return e.Message }

// Response is the execution envelope: partial data plus every error
// collected in document order. Data is always present; errors never cause
// the envelope to be withheld.
type Response struct {
	Data   *OrderedMap    `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}
