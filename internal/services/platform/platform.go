// Package platform registers the platform chain context: blockchain and
// validator operations.
package platform

import (
	"context"
	"fmt"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/node"
	"github.com/avafoundry/ava-cli/internal/services"
)

const Context = "platform"

func Register(reg *command.Registry, client *node.Client) error {
	reg.RegisterContext(Context, services.Fallback(client, node.EndpointPlatform, Context))

	getBlockchains := command.NewDefinition(Context, "getBlockchains", "List blockchains the node validates", nil, nil)
	if err := reg.Register(getBlockchains, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.GetBlockchains(ctx)
		if err != nil {
			return nil, err
		}
		return reply.Blockchains, nil
	}); err != nil {
		return err
	}

	sampleValidators := command.NewDefinition(Context, "sampleValidators", "Sample validators from the current set",
		command.TagPtr(command.StringList),
		[]command.FieldSpec{
			{Name: "size", Description: "sample size", Type: command.BigInteger, Required: true},
		})
	if err := reg.Register(sampleValidators, func(ctx context.Context, inv command.Invocation) (any, error) {
		size := inv.BigIntArg("size")
		if size == nil {
			return nil, fmt.Errorf("size is required")
		}
		reply, err := client.SampleValidators(ctx, size.Int64())
		if err != nil {
			return nil, err
		}
		return reply.Validators, nil
	}); err != nil {
		return err
	}

	addValidator := command.NewDefinition(Context, "addValidator", "Submit a transaction adding a validator",
		command.TagPtr(command.PlainText),
		[]command.FieldSpec{
			{Name: "username", Description: "keystore user", Type: command.PlainText},
			{Name: "password", Description: "keystore password", Type: command.PlainText},
			{Name: "nodeID", Description: "validator node id", Type: command.PlainText, Required: true},
			{Name: "startTime", Description: "staking start, Unix seconds", Type: command.Timestamp, Required: true},
			{Name: "endTime", Description: "staking end, Unix seconds", Type: command.Timestamp, Required: true},
			{Name: "stakeAmount", Description: "stake in base units", Type: command.BigInteger, Required: true},
			{Name: "destination", Description: "reward destination address", Type: command.PlainText, Required: true},
		})
	return reg.Register(addValidator, func(ctx context.Context, inv command.Invocation) (any, error) {
		stake := inv.BigIntArg("stakeAmount")
		if stake == nil {
			return nil, fmt.Errorf("stakeAmount is required")
		}
		start, _ := inv.TimeArg("startTime")
		end, _ := inv.TimeArg("endTime")
		reply, err := client.AddValidator(ctx, node.AddValidatorArgs{
			Username:    inv.StringArg("username"),
			Password:    inv.StringArg("password"),
			NodeID:      inv.StringArg("nodeID"),
			StartTime:   start.Unix(),
			EndTime:     end.Unix(),
			StakeAmount: stake.String(),
			Destination: inv.StringArg("destination"),
		})
		if err != nil {
			return nil, err
		}
		return services.TxSubmission{TxID: reply.TxID}, nil
	})
}
