package complete

// Readline adapts Provider to readline's AutoCompleter interface.
type Readline struct {
	provider *Provider
}

func NewReadline(provider *Provider) *Readline {
	return &Readline{provider: provider}
}

// Do implements github.com/chzyer/readline.AutoCompleter. Candidates are
// returned as the text remaining after the fragment already typed.
func (r *Readline) Do(line []rune, pos int) ([][]rune, int) {
	partial := string(line[:pos])
	candidates, fragment := r.provider.Complete(partial)

	var out [][]rune
	for _, c := range candidates {
		if len(c) < len(fragment) {
			continue
		}
		out = append(out, []rune(c[len(fragment):]))
	}
	return out, len([]rune(fragment))
}
