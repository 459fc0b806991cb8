// Package queryfold executes query documents against a schema of typed
// fields and user-supplied resolvers, returning partial data alongside a
// flat list of collected errors. Only a malformed document aborts a
// request; every validation or resolution failure is contained to its
// own subtree.
package queryfold

import (
	"context"
	"time"

	"github.com/queryfold/queryfold/executor"
	"github.com/queryfold/queryfold/internal/eventbus"
	"github.com/queryfold/queryfold/internal/events"
	"github.com/queryfold/queryfold/language"
	"github.com/queryfold/queryfold/schema"
)

// Options are the recognized per-request inputs: Context is an opaque
// key/value map passed through untouched to every resolver, Variables
// the caller-supplied variable values.
type Options = executor.Options

// Execute parses and runs one query document against sch. The returned
// error is non-nil only for a *language.SyntaxError; every other outcome
// is a Response carrying data and the collected errors.
func Execute(ctx context.Context, sch *schema.Schema, query string, opts Options) (*executor.Response, error) {
	doc, err := language.ParseQuery(query)
	if err != nil {
		return nil, err
	}

	eventbus.Publish(ctx, events.ExecuteStart{Query: query})
	start := time.Now()

	resp := executor.NewExecutor(sch).ExecuteDocument(ctx, doc, opts)

	eventbus.Publish(ctx, events.ExecuteFinish{
		Query:      query,
		ErrorCount: len(resp.Errors),
		Duration:   time.Since(start),
	})
	return resp, nil
}
