// Package keystore registers the keystore context: node user management plus
// the local commands that set the session's active credential.
package keystore

import (
	"context"
	"fmt"

	"github.com/avafoundry/ava-cli/internal/command"
	"github.com/avafoundry/ava-cli/internal/dispatch"
	"github.com/avafoundry/ava-cli/internal/node"
	"github.com/avafoundry/ava-cli/internal/services"
)

const Context = "keystore"

func Register(reg *command.Registry, client *node.Client, sess *dispatch.Session) error {
	reg.RegisterContext(Context, services.Fallback(client, node.EndpointKeystore, Context))

	createUser := command.NewDefinition(Context, "createUser", "Create the active user on the node's keystore",
		nil,
		[]command.FieldSpec{
			{Name: "username", Description: "keystore user", Type: command.PlainText},
			{Name: "password", Description: "keystore password", Type: command.PlainText},
		})
	if err := reg.Register(createUser, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.CreateUser(ctx, userArgs(inv))
		if err != nil {
			return nil, err
		}
		return reply.Success, nil
	}); err != nil {
		return err
	}

	listUsers := command.NewDefinition(Context, "listUsers", "List users on the node's keystore",
		command.TagPtr(command.StringList), nil)
	if err := reg.Register(listUsers, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		return reply.Users, nil
	}); err != nil {
		return err
	}

	deleteUser := command.NewDefinition(Context, "deleteUser", "Delete the active user from the node's keystore",
		nil,
		[]command.FieldSpec{
			{Name: "username", Description: "keystore user", Type: command.PlainText},
			{Name: "password", Description: "keystore password", Type: command.PlainText},
		})
	if err := reg.Register(deleteUser, func(ctx context.Context, inv command.Invocation) (any, error) {
		reply, err := client.DeleteUser(ctx, userArgs(inv))
		if err != nil {
			return nil, err
		}
		return reply.Success, nil
	}); err != nil {
		return err
	}

	// setUser/clearUser take the credential as literal tokens, so they are
	// registered bare: a definition naming username+password fields would
	// force them onto the implicit-credential path.
	if err := reg.RegisterBare(Context, "setUser", func(ctx context.Context, inv command.Invocation) (any, error) {
		if len(inv.Raw) < 2 {
			return nil, fmt.Errorf("usage: keystore setUser <username> <password>")
		}
		sess.SetCredential(inv.Raw[0], inv.Raw[1])
		return "using credential " + inv.Raw[0], nil
	}); err != nil {
		return err
	}
	return reg.RegisterBare(Context, "clearUser", func(ctx context.Context, inv command.Invocation) (any, error) {
		sess.ClearCredential()
		return "credential cleared", nil
	})
}

func userArgs(inv command.Invocation) node.UserArgs {
	return node.UserArgs{
		Username: inv.StringArg("username"),
		Password: inv.StringArg("password"),
	}
}
