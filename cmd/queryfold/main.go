package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/queryfold/queryfold/internal/eventbus"
	"github.com/queryfold/queryfold/schema"
	"github.com/queryfold/queryfold/server"
	"github.com/queryfold/queryfold/telemetry"
)

const rootUsage = `queryfold — schema-driven query execution engine

USAGE:
  queryfold <command> [flags]

COMMANDS:
  serve            Run the HTTP query endpoint with the demo schema
  help             Show help for any command
`

const serveUsage = `serve FLAGS:
  -server.addr <addr>              HTTP listen address (default: :8080)
  -server.pretty                   Pretty-print JSON responses
  -server.timeout <duration>       Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>         Max request body size (default: unlimited)
  -server.context-header <name>    Forward HTTP header into the resolver context. Repeatable
  -server.workers <n>              Concurrent sibling-field resolution per request
  -otel.endpoint <addr>            OTLP collector endpoint
  -otel.service <name>             OpenTelemetry service name (default: queryfold)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("queryfold", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdServe(args []string) error {
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	var maxBody int64
	workers := 0
	otelEndpoint := ""
	otelService := "queryfold"
	var contextHeaders stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size")
	fs.Var(&contextHeaders, "server.context-header", "Forward HTTP header into the resolver context")
	fs.IntVar(&workers, "server.workers", workers, "Concurrent sibling-field resolution")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	eventbus.Use(eventbus.New())
	shutdown, err := telemetry.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if maxBody > 0 {
		sopts = append(sopts, server.WithMaxBodyBytes(maxBody))
	}
	if len(contextHeaders) > 0 {
		sopts = append(sopts, server.WithContextHeaders(contextHeaders...))
	}
	if workers > 1 {
		sopts = append(sopts, server.WithWorkers(workers))
	}
	h := server.New(demoSchema(), sopts...)

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	log.Printf("query endpoint listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

// demoSchema is a small in-memory schema so the binary is runnable out of
// the box; real deployments construct their own schema and embed the
// server handler directly.
func demoSchema() *schema.Schema {
	things := map[string]map[string]any{
		"foo": {"id": "foo", "name": "Foo"},
		"bar": {"id": "bar", "name": "Bar"},
	}
	fieldOf := func(key string) schema.Resolver {
		return func(p schema.ResolveParams) schema.Result {
			parent, _ := p.Parent.(map[string]any)
			return schema.OK(parent[key])
		}
	}

	return schema.NewSchema().
		SetQueryType("Query").
		AddType(schema.NewObject("Thing").
			AddField(schema.NewField("id", schema.NonNullType(schema.NamedType("ID")), fieldOf("id"))).
			AddField(schema.NewField("name", schema.NamedType("String"), fieldOf("name")))).
		AddType(schema.NewObject("Query").
			AddField(schema.NewField("thing", schema.NamedType("Thing"), func(p schema.ResolveParams) schema.Result {
				id, _ := p.Args["id"].(string)
				t, ok := things[id]
				if !ok {
					return schema.Fail(fmt.Sprintf("Thing `%s': Not found", id))
				}
				return schema.OK(t)
			}).AddArgument(schema.NewInputValue("id", schema.NonNullType(schema.NamedType("String"))))).
			AddField(schema.NewField("things", schema.ListType(schema.NamedType("Thing")), func(schema.ResolveParams) schema.Result {
				return schema.OK([]any{things["foo"], things["bar"]})
			})))
}
