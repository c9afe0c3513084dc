package command

import (
	clierr "github.com/avafoundry/ava-cli/internal/errors"
)

type registryEntry struct {
	def     Definition
	hasDef  bool
	handler HandlerFunc
}

// Registry unifies two command-description sources behind one lookup
// interface: the builtin set populated by explicit registration calls at
// startup, and the file-derived set loaded from on-disk records. The builtin
// source always wins; the file source is consulted only on miss. Duplicates
// within a single source are rejected at build time.
type Registry struct {
	contexts     []string
	contextSeen  map[string]bool
	fallbacks    map[string]HandlerFunc
	builtin      map[string]map[string]registryEntry
	builtinOrder map[string][]string
	file         map[string]map[string]Definition
	fileOrder    map[string][]string
}

func NewRegistry() *Registry {
	return &Registry{
		contextSeen:  make(map[string]bool),
		fallbacks:    make(map[string]HandlerFunc),
		builtin:      make(map[string]map[string]registryEntry),
		builtinOrder: make(map[string][]string),
		file:         make(map[string]map[string]Definition),
		fileOrder:    make(map[string][]string),
	}
}

// RegisterContext declares a context and the handler used for file-derived
// commands that have no builtin implementation. A nil fallback is allowed for
// contexts that only ever register builtin commands.
func (r *Registry) RegisterContext(name string, fallback HandlerFunc) {
	r.noteContext(name)
	if fallback != nil {
		r.fallbacks[name] = fallback
	}
}

func (r *Registry) noteContext(name string) {
	if !r.contextSeen[name] {
		r.contextSeen[name] = true
		r.contexts = append(r.contexts, name)
	}
}

// Register adds a builtin command with its definition and handler.
func (r *Registry) Register(def Definition, h HandlerFunc) error {
	return r.registerBuiltin(def.Context, def.Name, registryEntry{def: def, hasDef: true, handler: h})
}

// RegisterBare adds a builtin command with no definition. Bare commands are
// dispatched with the raw remaining tokens, bypassing validation.
func (r *Registry) RegisterBare(context, name string, h HandlerFunc) error {
	return r.registerBuiltin(context, name, registryEntry{handler: h})
}

func (r *Registry) registerBuiltin(context, name string, e registryEntry) error {
	r.noteContext(context)
	byName := r.builtin[context]
	if byName == nil {
		byName = make(map[string]registryEntry)
		r.builtin[context] = byName
	}
	if _, dup := byName[name]; dup {
		return clierr.DuplicateCommand(context, name)
	}
	byName[name] = e
	r.builtinOrder[context] = append(r.builtinOrder[context], name)
	return nil
}

// AddFileDefinition adds a file-derived definition. A key already present in
// the file source is a duplicate; a key shadowed by the builtin source is
// accepted and simply never resolves (builtin-first priority).
func (r *Registry) AddFileDefinition(def Definition) error {
	r.noteContext(def.Context)
	byName := r.file[def.Context]
	if byName == nil {
		byName = make(map[string]Definition)
		r.file[def.Context] = byName
	}
	if _, dup := byName[def.Name]; dup {
		return clierr.DuplicateCommand(def.Context, def.Name)
	}
	byName[def.Name] = def
	r.fileOrder[def.Context] = append(r.fileOrder[def.Context], def.Name)
	return nil
}

// Lookup resolves (context, name) to its definition, builtin source first.
func (r *Registry) Lookup(context, name string) (Definition, bool) {
	if e, ok := r.builtin[context][name]; ok {
		if e.hasDef {
			return e.def, true
		}
		return Definition{}, false
	}
	def, ok := r.file[context][name]
	return def, ok
}

// Handler resolves (context, name) to an executable handler. File-derived
// commands fall back to their context's registered fallback handler.
func (r *Registry) Handler(context, name string) (HandlerFunc, bool) {
	if e, ok := r.builtin[context][name]; ok {
		return e.handler, true
	}
	if _, ok := r.file[context][name]; ok {
		if fb, ok := r.fallbacks[context]; ok {
			return fb, true
		}
	}
	return nil, false
}

func (r *Registry) HasContext(name string) bool {
	return r.contextSeen[name]
}

// Contexts returns context names in registration order.
func (r *Registry) Contexts() []string {
	out := make([]string, len(r.contexts))
	copy(out, r.contexts)
	return out
}

// Commands returns the command names of a context: builtin names in
// registration order, then file-derived names in enumeration order, skipping
// names shadowed by the builtin set.
func (r *Registry) Commands(context string) []string {
	out := make([]string, 0, len(r.builtinOrder[context])+len(r.fileOrder[context]))
	out = append(out, r.builtinOrder[context]...)
	for _, name := range r.fileOrder[context] {
		if _, shadowed := r.builtin[context][name]; !shadowed {
			out = append(out, name)
		}
	}
	return out
}
