package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/contacts/internal/repository"
	"github.com/templui/contacts/internal/service"
)

func UserCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	c.AddCommand(&cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user, their contacts are kept without an owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, database, err := open(true)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			users := service.NewUserService(repository.NewUserRepository(database))

			err = users.DeleteByUsername(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrUserNotFound) {
				return fmt.Errorf("user %q not found", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %q\n", args[0])
			return nil
		},
	})

	return c
}
