// Package server exposes the engine over HTTP. It is a thin collaborator
// around the executor: it decodes POST bodies, forwards configured
// headers into the resolver context map, and writes the engine's
// response envelope as JSON. Syntax errors come back as an errors-only
// body; everything else is the envelope verbatim.
package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/queryfold/queryfold/executor"
	"github.com/queryfold/queryfold/internal/eventbus"
	"github.com/queryfold/queryfold/internal/events"
	"github.com/queryfold/queryfold/internal/reqid"
	"github.com/queryfold/queryfold/language"
	"github.com/queryfold/queryfold/schema"
)

// Handler is an http.Handler serving one schema.
type Handler struct {
	exec *executor.Executor
	opt  Options
}

type Options struct {
	// Timeout sets a default timeout if the incoming request context has
	// none. 0 means no default timeout.
	Timeout time.Duration

	// Pretty enables indented JSON responses.
	Pretty bool

	// MaxBodyBytes limits the size of the request body. 0 means unlimited.
	MaxBodyBytes int64

	// CORS configuration. If AllowedOrigins is empty, CORS is disabled.
	CORS CORSOptions

	// ContextHeaders lists HTTP headers forwarded into the context map
	// every resolver receives, keyed by the lower-cased header name.
	ContextHeaders []string

	// Workers enables concurrent sibling-field resolution per request.
	Workers int
}

type Option func(*Options)

func WithTimeout(d time.Duration) Option { return func(o *Options) { o.Timeout = d } }
func WithPretty() Option                 { return func(o *Options) { o.Pretty = true } }
func WithMaxBodyBytes(n int64) Option    { return func(o *Options) { o.MaxBodyBytes = n } }
func WithCORS(origins ...string) Option {
	return func(o *Options) { o.CORS.AllowedOrigins = origins }
}
func WithContextHeaders(headers ...string) Option {
	return func(o *Options) { o.ContextHeaders = headers }
}
func WithWorkers(n int) Option { return func(o *Options) { o.Workers = n } }

// CORSOptions holds simple CORS settings.
type CORSOptions struct {
	AllowedOrigins []string
}

// New creates an HTTP handler for sch.
func New(sch *schema.Schema, opts ...Option) *Handler {
	op := Options{Timeout: 10 * time.Second}
	for _, f := range opts {
		f(&op)
	}
	var execOpts []executor.Option
	if op.Workers > 1 {
		execOpts = append(execOpts, executor.WithWorkers(op.Workers))
	}
	return &Handler{exec: executor.NewExecutor(sch, execOpts...), opt: op}
}

// Request is the accepted POST body.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if _, ok := ctx.Deadline(); !ok && h.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opt.Timeout)
		defer cancel()
	}

	ctx, _ = reqid.NewContext(ctx)
	status := http.StatusOK
	start := time.Now()
	eventbus.Publish(ctx, events.HTTPStart{Request: r})
	defer func() {
		eventbus.Publish(ctx, events.HTTPFinish{Request: r, Status: status, Duration: time.Since(start)})
	}()

	if len(h.opt.CORS.AllowedOrigins) > 0 {
		setCORSHeaders(w, r, h.opt.CORS)
	}

	if r.Method == http.MethodOptions {
		status = http.StatusNoContent
		w.WriteHeader(status)
		return
	}
	if r.Method != http.MethodPost {
		status = http.StatusMethodNotAllowed
		h.writeJSON(w, status, errorBody("method not allowed", nil))
		return
	}

	req, reqErr := decodeRequest(r, h.opt.MaxBodyBytes)
	if reqErr != "" {
		status = http.StatusBadRequest
		h.writeJSON(w, status, errorBody(reqErr, nil))
		return
	}

	doc, err := language.ParseQuery(req.Query)
	if err != nil {
		if syn, ok := err.(*language.SyntaxError); ok {
			h.writeJSON(w, status, errorBody(syn.Message, &executor.Location{Line: syn.Line, Column: syn.Column}))
			return
		}
		h.writeJSON(w, status, errorBody(err.Error(), nil))
		return
	}

	eventbus.Publish(ctx, events.ExecuteStart{Query: req.Query})
	execStart := time.Now()
	resp := h.exec.ExecuteDocument(ctx, doc, executor.Options{
		Context:   h.contextValues(r),
		Variables: req.Variables,
	})
	eventbus.Publish(ctx, events.ExecuteFinish{
		Query:      req.Query,
		ErrorCount: len(resp.Errors),
		Duration:   time.Since(execStart),
	})
	h.writeJSON(w, status, resp)
}

// contextValues builds the opaque context map resolvers receive from the
// configured request headers.
func (h *Handler) contextValues(r *http.Request) map[string]any {
	if len(h.opt.ContextHeaders) == 0 {
		return nil
	}
	values := make(map[string]any, len(h.opt.ContextHeaders))
	for _, name := range h.opt.ContextHeaders {
		if v := r.Header.Get(name); v != "" {
			values[strings.ToLower(name)] = v
		}
	}
	return values
}

func decodeRequest(r *http.Request, maxBody int64) (Request, string) {
	var req Request
	reader := io.Reader(r.Body)
	if maxBody > 0 {
		reader = io.LimitReader(r.Body, maxBody+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return req, "cannot read request body"
	}
	if maxBody > 0 && int64(len(body)) > maxBody {
		return req, "request body too large"
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, "invalid request JSON"
	}
	if req.Query == "" {
		return req, "missing 'query'"
	}
	return req, ""
}

// errorBody is the errors-only envelope used before execution produced
// any data: request decoding problems and syntax errors.
func errorBody(message string, loc *executor.Location) map[string]any {
	ge := executor.GraphQLError{Message: message}
	if loc != nil && loc.Line > 0 {
		ge.Locations = []executor.Location{*loc}
	}
	return map[string]any{"errors": []executor.GraphQLError{ge}}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	if h.opt.Pretty {
		enc.SetIndent("", "  ")
	}
	_ = enc.Encode(body)
}

func setCORSHeaders(w http.ResponseWriter, r *http.Request, c CORSOptions) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			return
		}
	}
}
