// Package dispatch owns the read-eval side of the shell: it tokenizes one
// raw input line, resolves it to a context and method, validates arguments
// and invokes the target handler.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/avafoundry/ava-cli/internal/command"
	clierr "github.com/avafoundry/ava-cli/internal/errors"
	"github.com/avafoundry/ava-cli/internal/out"
	"github.com/avafoundry/ava-cli/internal/pending"
	"github.com/avafoundry/ava-cli/internal/policy"
	"github.com/avafoundry/ava-cli/internal/sanitize"
)

// ErrExitSession signals that the user asked to terminate the shell. It is
// the only non-nil outcome Handle returns; every per-command failure is
// reported inline and swallowed.
var ErrExitSession = errors.New("exit session")

const exitWord = "exit"

type Dispatcher struct {
	registry *command.Registry
	session  *Session
	tracker  *pending.Tracker
	w        io.Writer
	log      *zap.Logger
	allow    []string
}

func New(registry *command.Registry, session *Session, tracker *pending.Tracker, w io.Writer, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{registry: registry, session: session, tracker: tracker, w: w, log: log}
}

// SetAllowlist restricts dispatch to the listed commands. An empty list
// allows everything.
func (d *Dispatcher) SetAllowlist(allow []string) { d.allow = allow }

func (d *Dispatcher) Session() *Session { return d.session }

// Tokenize splits a raw line, honoring shell quoting. A malformed quote
// degrades to whitespace splitting rather than failing the line.
func Tokenize(line string) []string {
	tokens, err := shellquote.Split(line)
	if err != nil {
		return strings.Fields(line)
	}
	return tokens
}

// Handle processes one raw input line. The prompt is always ready for the
// next line afterwards: errors are rendered as a single line and never
// escape, and the active context is left consistent.
func (d *Dispatcher) Handle(ctx context.Context, line string) error {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return nil
	}

	if len(tokens) == 1 && tokens[0] == exitWord {
		if d.session.ActiveContext() != "" {
			d.session.LeaveContext()
			return nil
		}
		return ErrExitSession
	}

	if len(tokens) == 1 && d.registry.HasContext(tokens[0]) && tokens[0] != d.session.ActiveContext() {
		d.session.EnterContext(tokens[0])
		return nil
	}

	if d.session.ActiveContext() == "" && len(tokens) < 2 {
		d.printHelp()
		return nil
	}

	contextName := d.session.ActiveContext()
	if contextName == "" {
		contextName = tokens[0]
		tokens = tokens[1:]
	}
	method := tokens[0]
	rest := tokens[1:]

	if !d.registry.HasContext(contextName) {
		d.report(clierr.UnknownContext(contextName))
		return nil
	}
	if method == "help" {
		d.printContextHelp(contextName)
		return nil
	}

	handler, ok := d.registry.Handler(contextName, method)
	if !ok {
		d.report(clierr.UnknownMethod(contextName, method))
		return nil
	}
	if err := policy.CheckCommandAllowed(d.allow, contextName, method); err != nil {
		d.report(err)
		return nil
	}

	inv := command.Invocation{Context: contextName, Method: method, Raw: rest}
	def, hasDef := d.registry.Lookup(contextName, method)
	if hasDef {
		args, err := sanitize.Validate(def, rest, d.session.Credential())
		if err != nil {
			fmt.Fprintln(d.w, def.Usage())
			d.report(err)
			return nil
		}
		inv.Args = args
	}

	result, err := d.invoke(ctx, handler, inv)
	if err != nil {
		d.log.Warn("command failed",
			zap.String("context", contextName),
			zap.String("method", method),
			zap.Error(err))
		d.report(clierr.Wrap(clierr.CodeHandler, contextName+"."+method, err))
		return nil
	}

	if async, ok := result.(command.AsyncResult); ok && d.tracker != nil {
		d.tracker.Add(async.OperationID())
	}

	var outputType *command.TypeTag
	if hasDef {
		outputType = def.OutputType
	}
	if err := out.Render(d.w, outputType, result); err != nil {
		d.report(err)
	}
	return nil
}

// invoke shields the session from a panicking handler.
func (d *Dispatcher) invoke(ctx context.Context, handler command.HandlerFunc, inv command.Invocation) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, inv)
}

func (d *Dispatcher) report(err error) {
	fmt.Fprintf(d.w, "error: %v\n", err)
}

func (d *Dispatcher) printHelp() {
	fmt.Fprintln(d.w, "usage: <context> <method> [args...], or a bare context name to enter it")
	fmt.Fprintf(d.w, "contexts: %s\n", strings.Join(d.registry.Contexts(), ", "))
	fmt.Fprintln(d.w, "type \"<context> help\" for that context's commands, \"exit\" to leave")
}

func (d *Dispatcher) printContextHelp(contextName string) {
	for _, name := range d.registry.Commands(contextName) {
		if def, ok := d.registry.Lookup(contextName, name); ok {
			fmt.Fprintf(d.w, "%-24s %s\n", name, def.Description)
			continue
		}
		fmt.Fprintln(d.w, name)
	}
}
