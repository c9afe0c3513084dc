// Package admin registers the node administration context.
package admin

import (
	"context"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/node"
	"github.com/avafoundry/ava-cli/internal/services"
)

const Context = "admin"

func Register(reg *command.Registry, client *node.Client) error {
	reg.RegisterContext(Context, services.Fallback(client, node.EndpointAdmin, Context))

	getNodeID := command.NewDefinition(Context, "getNodeID", "Print this node's id",
		command.TagPtr(command.PlainText), nil)
	if err := reg.Register(getNodeID, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.GetNodeID(ctx)
		if err != nil {
			return nil, err
		}
		return reply.NodeID, nil
	}); err != nil {
		return err
	}

	getNetworkID := command.NewDefinition(Context, "getNetworkID", "Print the id of the network the node is on",
		command.TagPtr(command.PlainText), nil)
	if err := reg.Register(getNetworkID, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.GetNetworkID(ctx)
		if err != nil {
			return nil, err
		}
		return reply.NetworkID, nil
	}); err != nil {
		return err
	}

	peers := command.NewDefinition(Context, "peers", "List connected peers", nil, nil)
	if err := reg.Register(peers, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.Peers(ctx)
		if err != nil {
			return nil, err
		}
		return reply.Peers, nil
	}); err != nil {
		return err
	}

	alias := command.NewDefinition(Context, "alias", "Assign an API endpoint an additional alias",
		nil,
		[]command.FieldSpec{
			{Name: "endpoint", Description: "endpoint to alias", Type: command.PlainText, Required: true},
			{Name: "alias", Description: "new alias", Type: command.PlainText, Required: true},
		})
	return reg.Register(alias, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.Alias(ctx, node.AliasArgs{
			Endpoint: inv.StringArg("endpoint"),
			Alias:    inv.StringArg("alias"),
		})
		if err != nil {
			return nil, err
		}
		return reply.Success, nil
	})
}
