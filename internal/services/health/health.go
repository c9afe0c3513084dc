// Package health registers the node health context.
package health

import (
	"context"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/node"
	"github.com/avafoundry/ava-cli/internal/services"
)

const Context = "health"

func Register(reg *command.Registry, client *node.Client) error {
	reg.RegisterContext(Context, services.Fallback(client, node.EndpointHealth, Context))

	getLiveness := command.NewDefinition(Context, "getLiveness", "Report the node's health checks", nil, nil)
	return reg.Register(getLiveness, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.GetLiveness(ctx)
		if err != nil {
			return nil, err
		}
		return reply, nil
	})
}
