// Package schema renders the merged command registry (and the CLI's own
// flags) in a machine-readable shape.
package schema

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/avafoundry/ava-cli/internal/command"
)

type Schema struct {
	Flags    []FlagSchema    `json:"flags,omitempty"`
	Contexts []ContextSchema `json:"contexts"`
}

type FlagSchema struct {
	Name      string `json:"name"`
	Shorthand string `json:"shorthand,omitempty"`
	Type      string `json:"type"`
	Usage     string `json:"usage"`
	Default   string `json:"default,omitempty"`
}

type ContextSchema struct {
	Name     string          `json:"name"`
	Commands []CommandSchema `json:"commands"`
}

type CommandSchema struct {
	Name   string        `json:"name"`
	Desc   string        `json:"desc,omitempty"`
	Output string        `json:"output,omitempty"`
	Params []ParamSchema `json:"params,omitempty"`
}

type ParamSchema struct {
	Name     string `json:"name"`
	Desc     string `json:"desc,omitempty"`
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
	Hidden   bool   `json:"hidden,omitempty"`
}

// Build serializes every registered context and command. Commands without a
// definition appear with just their name.
func Build(root *cobra.Command, reg *command.Registry) Schema {
	s := Schema{Flags: collectFlags(root)}
	for _, contextName := range reg.Contexts() {
		cs := ContextSchema{Name: contextName}
		for _, name := range reg.Commands(contextName) {
			def, ok := reg.Lookup(contextName, name)
			if !ok {
				cs.Commands = append(cs.Commands, CommandSchema{Name: name})
				continue
			}
			cs.Commands = append(cs.Commands, serialize(def))
		}
		s.Contexts = append(s.Contexts, cs)
	}
	return s
}

func serialize(def command.Definition) CommandSchema {
	out := CommandSchema{Name: def.Name, Desc: def.Description}
	if def.OutputType != nil {
		out.Output = def.OutputType.String()
	}
	for _, f := range def.Fields {
		out.Params = append(out.Params, ParamSchema{
			Name:     f.Name,
			Desc:     f.Description,
			Type:     f.Type.String(),
			Optional: !f.Required,
			Hidden:   f.Hidden,
		})
	}
	return out
}

func collectFlags(cmd *cobra.Command) []FlagSchema {
	if cmd == nil {
		return nil
	}
	items := []FlagSchema{}
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		items = append(items, FlagSchema{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Type:      f.Value.Type(),
			Usage:     f.Usage,
			Default:   f.DefValue,
		})
	})
	return items
}
