package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/oseayemenre/upepo/internal/models"
	"github.com/oseayemenre/upepo/internal/store"
	"github.com/spf13/cobra"
)

func UsersCommand(ctx context.Context, envFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "manage club members",
	}

	cmd.AddCommand(roleCommand(ctx, envFile, "promote", "make a member an admin", models.RoleAdmin))
	cmd.AddCommand(roleCommand(ctx, envFile, "demote", "make an admin a plain member", models.RoleMember))

	return cmd
}

func roleCommand(ctx context.Context, envFile *string, use string, short string, role string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <email>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := setup(*envFile, "")

			if err != nil {
				return err
			}

			defer d.close()

			user, err := d.store.SetUserRoleByEmail(ctx, args[0], role)

			if errors.Is(err, store.ErrUserNotFound) {
				return fmt.Errorf("no member signed up with %s", args[0])
			}

			if err != nil {
				return err
			}

			d.logger.Info("users", "status", "role updated", "email", user.Email, "role", user.Role)
			return nil
		},
	}
}
