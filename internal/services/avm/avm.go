// Package avm registers the asset VM context: balance queries, address
// management and transaction submission.
package avm

import (
	"context"
	"fmt"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/node"
	"github.com/avafoundry/ava-cli/internal/services"
)

const Context = "avm"

func Register(reg *command.Registry, client *node.Client) error {
	reg.RegisterContext(Context, services.Fallback(client, node.EndpointAVM, Context))

	defs := []struct {
		def     command.Definition
		handler command.HandlerFunc
	}{
		{
			command.NewDefinition(Context, "send", "Send an asset amount to an address",
				command.TagPtr(command.PlainText),
				[]command.FieldSpec{
					{Name: "username", Description: "keystore user", Type: command.PlainText},
					{Name: "password", Description: "keystore password", Type: command.PlainText},
					{Name: "amount", Description: "amount in base units", Type: command.BigInteger, Required: true},
					{Name: "assetID", Description: "asset to send", Type: command.PlainText, Required: true},
					{Name: "to", Description: "destination address", Type: command.PlainText, Required: true},
				}),
			sendHandler(client),
		},
		{
			command.NewDefinition(Context, "getBalance", "Fetch the balance of an address",
				command.TagPtr(command.BigInteger),
				[]command.FieldSpec{
					{Name: "address", Description: "address to query", Type: command.PlainText, Required: true},
					{Name: "assetID", Description: "asset to query", Type: command.PlainText, Required: true},
				}),
			func(ctx context.Context, inv command.Invocation) (any, error) {
				reply, err := client.GetBalance(ctx, inv.StringArg("address"), inv.StringArg("assetID"))
				if err != nil {
					return nil, err
				}
				return reply.Balance, nil
			},
		},
		{
			command.NewDefinition(Context, "createAddress", "Create a new address for the active user",
				command.TagPtr(command.PlainText),
				[]command.FieldSpec{
					{Name: "username", Description: "keystore user", Type: command.PlainText},
					{Name: "password", Description: "keystore password", Type: command.PlainText},
				}),
			func(ctx context.Context, inv command.Invocation) (any, error) {
				reply, err := client.CreateAddress(ctx, userArgs(inv))
				if err != nil {
					return nil, err
				}
				return reply.Address, nil
			},
		},
		{
			command.NewDefinition(Context, "listAddresses", "List the active user's addresses",
				command.TagPtr(command.StringList),
				[]command.FieldSpec{
					{Name: "username", Description: "keystore user", Type: command.PlainText},
					{Name: "password", Description: "keystore password", Type: command.PlainText},
				}),
			func(ctx context.Context, inv command.Invocation) (any, error) {
				reply, err := client.ListAddresses(ctx, userArgs(inv))
				if err != nil {
					return nil, err
				}
				return reply.Addresses, nil
			},
		},
		{
			command.NewDefinition(Context, "getTxStatus", "Fetch the status of a transaction",
				command.TagPtr(command.PlainText),
				[]command.FieldSpec{
					{Name: "txID", Description: "transaction id", Type: command.PlainText, Required: true},
				}),
			func(ctx context.Context, inv command.Invocation) (any, error) {
				reply, err := client.GetTxStatus(ctx, inv.StringArg("txID"))
				if err != nil {
					return nil, err
				}
				return reply.Status, nil
			},
		},
		{
			command.NewDefinition(Context, "createFixedCapAsset", "Create a fixed-cap asset",
				command.TagPtr(command.PlainText),
				[]command.FieldSpec{
					{Name: "username", Description: "keystore user", Type: command.PlainText},
					{Name: "password", Description: "keystore password", Type: command.PlainText},
					{Name: "name", Description: "asset name", Type: command.PlainText, Required: true},
					{Name: "symbol", Description: "asset symbol", Type: command.PlainText, Required: true},
					{Name: "denomination", Description: "display denomination", Type: command.BigInteger, Required: true},
					{Name: "initialHolders", Description: "path to initial holders JSON", Type: command.FileReference},
				}),
			createAssetHandler(client),
		},
	}

	for _, d := range defs {
		if err := reg.Register(d.def, d.handler); err != nil {
			return err
		}
	}
	return nil
}

func sendHandler(client *node.Client) command.HandlerFunc {
	return func(ctx context.Context, inv command.Invocation) (any, error) {
		amount := inv.BigIntArg("amount")
		if amount == nil {
			return nil, fmt.Errorf("amount is required")
		}
		reply, err := client.Send(ctx, node.SendArgs{
			Username: inv.StringArg("username"),
			Password: inv.StringArg("password"),
			AssetID:  inv.StringArg("assetID"),
			Amount:   amount.String(),
			To:       inv.StringArg("to"),
		})
		if err != nil {
			return nil, err
		}
		return services.TxSubmission{TxID: reply.TxID}, nil
	}
}

func createAssetHandler(client *node.Client) command.HandlerFunc {
	return func(ctx context.Context, inv command.Invocation) (any, error) {
		denomination := int64(0)
		if d := inv.BigIntArg("denomination"); d != nil {
			denomination = d.Int64()
		}
		reply, err := client.CreateFixedCapAsset(ctx, node.FixedCapAssetArgs{
			Username:       inv.StringArg("username"),
			Password:       inv.StringArg("password"),
			Name:           inv.StringArg("name"),
			Symbol:         inv.StringArg("symbol"),
			Denomination:   denomination,
			InitialHolders: inv.DocArg("initialHolders"),
		})
		if err != nil {
			return nil, err
		}
		return assetCreation{AssetID: reply.AssetID}, nil
	}
}

// assetCreation is also a pending operation: the asset id doubles as the id
// of the creation transaction.
type assetCreation struct {
	AssetID string `json:"assetID"`
}

func (a assetCreation) OperationID() string { return a.AssetID }

func userArgs(inv command.Invocation) node.UserArgs {
	return node.UserArgs{
		Username: inv.StringArg("username"),
		Password: inv.StringArg("password"),
	}
}
