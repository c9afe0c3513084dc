// Package services wires the node's service contexts into the command
// registry.
package services

import (
	"context"
	"math/big"
	"time"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/node"
)

// TxSubmission is the result of a command that submitted an asynchronous
// transaction; the dispatcher records its id as pending.
type TxSubmission struct {
	TxID string `json:"txID"`
}

func (t TxSubmission) OperationID() string { return t.TxID }

// Fallback builds the handler used for a context's file-derived commands: it
// forwards the sanitized arguments as a JSON-RPC parameter object to
// <context>.<method> on the given endpoint.
func Fallback(client *node.Client, endpoint, contextName string) command.HandlerFunc {
	return func(ctx context.Context, inv command.Invocation) (any, error) {
		params := make(map[string]any, len(inv.Args))
		for _, v := range inv.Args {
			if !v.Present {
				continue
			}
			params[v.Field.Name] = wireValue(v.Parsed)
		}
		return client.CallRaw(ctx, endpoint, contextName+"."+inv.Method, params)
	}
}

// wireValue converts a sanitized value to its JSON-RPC representation. Big
// integers travel as decimal strings, timestamps as Unix seconds.
func wireValue(parsed any) any {
	switch v := parsed.(type) {
	case *big.Int:
		return v.String()
	case time.Time:
		return v.Unix()
	default:
		return v
	}
}
