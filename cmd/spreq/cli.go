package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	spschema "github.com/storpool/spschema"
	"github.com/storpool/spschema/client"
	"github.com/storpool/spschema/config"
	"github.com/storpool/spschema/docs"
	"github.com/storpool/spschema/method"
	"github.com/storpool/spschema/openapi"
	"github.com/storpool/spschema/storpool"
	"github.com/storpool/spschema/wire"
)

// Exit codes.
const (
	exitCLI      = 1
	exitAPI      = 2
	exitNotFound = 3
)

// cliError is reported on stderr as {"error": {...}}.
type cliError struct {
	code  int
	name  string
	descr string
	extra map[string]any
}

func (e *cliError) Error() string { return e.name + ": " + e.descr }

func newCLIError(name, descr string, extra map[string]any) *cliError {
	return &cliError{code: exitCLI, name: name, descr: descr, extra: extra}
}

func (e *cliError) body() map[string]any {
	m := map[string]any{"transient": false, "name": e.name, "descr": e.descr}
	for k, v := range e.extra {
		m[k] = v
	}
	return m
}

type app struct {
	stdout, stderr io.Writer
	log            zerolog.Logger
	lookupEnv      func(string) (string, bool)

	logLevel string
	verbose  bool
	profile  string
	confget  string
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	return a.report(err)
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spreq",
		Short:         "Non-interactive client of the StorPool API",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			lvl, err := zerolog.ParseLevel(a.logLevel)
			if err != nil {
				return newCLIError("cliParseArgs", err.Error(), nil)
			}
			if a.verbose {
				lvl = zerolog.DebugLevel
			}
			a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, NoColor: true}).
				Level(lvl).With().Timestamp().Logger()
			return nil
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newCLIError("cliParseArgs", "Could not parse the command-line arguments",
			map[string]any{"parser_errors": err.Error()})
	})
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(a.callCmd(), a.docCmd(), a.schemaCmd(), a.openapiCmd(), a.methodsCmd())
	return root
}

func (a *app) callCmd() *cobra.Command {
	var (
		noop, multi, post bool
		jsonArg, cluster  string
	)
	cmd := &cobra.Command{
		Use:   "call [flags] QUERY [ARGS...]",
		Short: "Send a query and print the reply",
		Long: `Send a query to the API and print the data of the reply as JSON.

The query is the first path component after /ctrl/1.0/, for example
VolumeDescribe. The node configuration supplies the address and the
token; SP_API_HTTP_HOST, SP_API_HTTP_PORT and SP_AUTH_TOKEN in the
environment override it.

Exit status is 3 when the object does not exist, 2 for other API errors
and 1 for errors of the command itself.`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newCLIError("cliParseArgs", "Could not parse the command-line arguments",
					map[string]any{"parser_errors": "the query is required"})
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			verb := http.MethodGet
			if post {
				verb = http.MethodPost
			}
			api, err := a.api(cmd.Context(), multi)
			if err != nil {
				return err
			}
			f, err := findMethod(verb, args[0], args[1:], cmd.Flags().Changed("json"))
			if err != nil {
				return err
			}

			call := method.Call{Args: toAny(args[1:]), ClusterName: cluster}
			if cmd.Flags().Changed("json") {
				if call.JSON, err = wire.Decode([]byte(jsonArg)); err != nil {
					return newCLIError("cliParseArgs", "Could not parse the JSON data", map[string]any{"parser_errors": err.Error()})
				}
			}
			if noop {
				req, err := f.Request(call)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "About to invoke %s: %s %s", f.Name(), req.Verb, req.Path())
				if req.Body != nil {
					body, _ := wire.Encode(req.Body)
					fmt.Fprintf(a.stdout, " with %s", body)
				}
				fmt.Fprintln(a.stdout)
				return nil
			}

			ctx := a.log.WithContext(cmd.Context())
			res, err := api.Call(ctx, f.Name(), call)
			if err != nil {
				return err
			}
			out, err := wire.EncodeIndent(res)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(out))
			return err
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&noop, "noop", "N", false, "print the request instead of sending it")
	f.StringVar(&jsonArg, "json", "", "JSON data to send")
	f.StringVarP(&cluster, "clustername", "C", "", "name of a remote cluster to send the command to")
	f.BoolVarP(&multi, "multicluster", "M", false, "enable multicluster mode")
	f.BoolVarP(&post, "post", "P", false, "use POST instead of GET")
	f.StringVar(&a.profile, "config", "", "YAML client profile to use instead of the node configuration")
	f.StringVar(&a.confget, "confget", "", "configuration helper to run")
	return cmd
}

// api builds the client from the profile or the node configuration.
func (a *app) api(ctx context.Context, multi bool) (*storpool.API, error) {
	var cfg client.Config
	if a.profile != "" {
		p, err := config.LoadProfile(a.profile)
		if err != nil {
			return nil, newCLIError("cliInitAPI", err.Error(), nil)
		}
		cfg = p.ClientConfig(a.log)
	} else {
		sp, err := config.Load(ctx, config.Options{Confget: a.confget, Logger: a.log})
		if err != nil {
			return nil, newCLIError("cliInitAPI", err.Error(), nil)
		}
		cfg, err = config.FromStorPool(sp.WithEnvOverrides(a.lookupEnv), a.log)
		if err != nil {
			var ce *config.Error
			if errors.As(err, &ce) && errors.Is(err, config.ErrMissing) {
				return nil, newCLIError("cliMissingConfigVariable", "Missing CLI configuration variable",
					map[string]any{"missing": ce.Path})
			}
			return nil, newCLIError("cliInitAPI", err.Error(), nil)
		}
	}
	cfg.MultiCluster = cfg.MultiCluster || multi
	return storpool.New(client.New(cfg)), nil
}

// findMethod resolves a query and checks the argument count and the
// presence of JSON data against its declaration.
func findMethod(verb, query string, args []string, hasJSON bool) (*method.Func, error) {
	f, ok := storpool.Registry().Lookup(verb, query)
	if !ok || f.Doc().ID() != strings.TrimPrefix(query, "MultiCluster/") {
		return nil, newCLIError("cliUnknownQuery", "Unknown API query",
			map[string]any{"method": verb, "query": query})
	}
	if want := f.Args(); len(want) != len(args) {
		names := make([]string, len(want))
		for i, a := range want {
			names[i] = a.Name
		}
		return nil, newCLIError("cliInvalidNumberOfArguments", "Invalid number of arguments supplied",
			map[string]any{"supplied_count": len(args), "required_count": len(want), "required_names": names})
	}
	switch {
	case f.HasJSON() && !hasJSON:
		return nil, newCLIError("cliJSONRequired", "This method requires JSON data", nil)
	case hasJSON && !f.HasJSON():
		return nil, newCLIError("cliNoJSONRequired", "This method does not require any JSON data", nil)
	}
	return f, nil
}

func toAny(args []string) []any {
	out := make([]any, len(args))
	for i, s := range args {
		out[i] = s
	}
	return out
}

// report writes err to stderr and picks the exit code.
func (a *app) report(err error) int {
	var (
		ce   *cliError
		ae   *client.APIError
		body map[string]any
	)
	code := exitCLI
	switch {
	case errors.As(err, &ce):
		body, code = ce.body(), ce.code
	case errors.As(err, &ae):
		code = exitAPI
		if ae.Name == "objectDoesNotExist" {
			code = exitNotFound
		}
		raw, _ := ae.Body.MarshalJSON()
		_ = gojson.Unmarshal(raw, &body)
	default:
		name := "cliError"
		if ve, ok := spschema.AsValidation(err); ok {
			name = "cliInvalidArguments"
			for _, is := range ve.AllIssues() {
				a.log.Debug().Str("path", is.Path).Str("code", is.Code).Msg(is.Message)
			}
		} else if errors.Is(err, context.Canceled) {
			name = "cliInterrupted"
		}
		body = newCLIError(name, err.Error(), nil).body()
	}
	out, _ := gojson.MarshalIndent(map[string]any{"error": body}, "", "  ")
	fmt.Fprintln(a.stderr, string(out))
	return code
}

func (a *app) docCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc",
		Short: "Write the HTML API reference",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return docs.RenderHTML(a.stdout, storpool.Reference())
		},
	}
}

func (a *app) schemaCmd() *cobra.Command {
	var asYAML, request bool
	cmd := &cobra.Command{
		Use:   "schema [METHOD...]",
		Short: "Print the JSON Schema of method replies",
		Long: `Print the JSON Schema of the reply (or, with --request, the JSON
data) of the named methods, or of every method when none is named.`,
		RunE: func(_ *cobra.Command, names []string) error {
			reg := storpool.Registry()
			var funcs []*method.Func
			if len(names) == 0 {
				funcs = reg.Funcs()
			}
			for _, n := range names {
				f, ok := reg.Get(n)
				if !ok {
					return newCLIError("cliUnknownMethod", "Unknown API method", map[string]any{"method": n})
				}
				funcs = append(funcs, f)
			}
			out := make(map[string]any, len(funcs))
			for _, f := range funcs {
				switch jt, ok := f.JSONType(); {
				case !request:
					out[f.Name()] = f.Returns().JSONSchema()
				case ok:
					out[f.Name()] = jt.JSONSchema()
				}
			}
			return a.emit(out, asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of JSON")
	cmd.Flags().BoolVar(&request, "request", false, "describe the JSON data instead of the reply")
	return cmd
}

func (a *app) openapiCmd() *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print an OpenAPI 3.1 description of the API",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			spec, err := openapi.Build(storpool.New(nil), version)
			if err != nil {
				return err
			}
			render := openapi.JSON
			if asYAML {
				render = openapi.YAML
			}
			out, err := render(spec)
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(append(out, '\n'))
			return err
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print YAML instead of JSON")
	return cmd
}

func (a *app) methodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the API methods",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			tw := tabwriter.NewWriter(a.stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tVERB\tQUERY\tTITLE")
			for _, f := range storpool.Registry().Funcs() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name(), f.Verb(), f.Query(), f.Doc().Title)
			}
			return tw.Flush()
		},
	}
}

func (a *app) emit(v any, asYAML bool) error {
	var (
		out []byte
		err error
	)
	if asYAML {
		out, err = yaml.Marshal(v)
	} else {
		out, err = gojson.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(out)
	return err
}
