// Package complete produces tab-completion candidates for the shell from the
// command registry and the session's active context.
package complete

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/dispatch"
)

// Reserved words offered alongside context names at the top level.
var reservedWords = []string{"exit"}

type Provider struct {
	registry *command.Registry
	session  *dispatch.Session
	w        io.Writer
}

func New(registry *command.Registry, session *dispatch.Session, w io.Writer) *Provider {
	return &Provider{registry: registry, session: session, w: w}
}

// Complete returns the candidate list for a partial line plus the fragment
// the candidates replace. For a fully typed known command it prints the
// usage block instead and completes nothing. Matching is case-sensitive
// prefix match; filtered results are sorted, unfiltered enumerations keep
// registration order.
func (p *Provider) Complete(partial string) ([]string, string) {
	tokens := strings.Fields(partial)
	trailingSpace := strings.HasSuffix(partial, " ") && len(tokens) > 0

	if active := p.session.ActiveContext(); active != "" {
		return p.completeInContext(active, tokens, trailingSpace)
	}

	switch {
	case len(tokens) == 0:
		return p.topLevel(""), ""

	case len(tokens) == 1 && !trailingSpace:
		token := tokens[0]
		if p.registry.HasContext(token) {
			// An exact context name falls through to its children.
			return p.registry.Commands(token), ""
		}
		return sorted(p.topLevel(token)), token

	case len(tokens) == 1:
		// "avm " with trailing space: completing the method position.
		if p.registry.HasContext(tokens[0]) {
			return p.registry.Commands(tokens[0]), ""
		}
		return nil, ""

	case len(tokens) == 2 && !trailingSpace:
		contextName, method := tokens[0], tokens[1]
		if def, ok := p.registry.Lookup(contextName, method); ok {
			fmt.Fprintln(p.w, def.Usage())
			return nil, ""
		}
		return sorted(filterPrefix(p.registry.Commands(contextName), method)), method

	default:
		return nil, ""
	}
}

func (p *Provider) completeInContext(active string, tokens []string, trailingSpace bool) ([]string, string) {
	switch {
	case len(tokens) == 0:
		return p.registry.Commands(active), ""
	case len(tokens) == 1 && !trailingSpace:
		return sorted(filterPrefix(p.registry.Commands(active), tokens[0])), tokens[0]
	default:
		// Nested sub-completion is not supported.
		return nil, ""
	}
}

// topLevel lists context names (space-suffixed, ready for the method) and
// reserved words matching the prefix.
func (p *Provider) topLevel(prefix string) []string {
	var out []string
	for _, name := range p.registry.Contexts() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name+" ")
		}
	}
	for _, word := range reservedWords {
		if strings.HasPrefix(word, prefix) {
			out = append(out, word)
		}
	}
	return out
}

func filterPrefix(names []string, prefix string) []string {
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

func sorted(names []string) []string {
	sort.Strings(names)
	return names
}
