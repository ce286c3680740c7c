package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/templui/contacts/internal/repository"
	"github.com/templui/contacts/internal/service"
)

func CategoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "category",
		Short: "Manage contact categories",
	}

	c.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, closeDB, err := categoryService()
			if err != nil {
				return err
			}
			defer closeDB()

			category, err := categories.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created category %d %q\n", category.ID, category.Name)
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, closeDB, err := categoryService()
			if err != nil {
				return err
			}
			defer closeDB()

			list, err := categories.Categories(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, category := range list {
				fmt.Fprintf(tw, "%d\t%s\n", category.ID, category.Name)
			}
			return tw.Flush()
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category, contacts keep no category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			categories, closeDB, err := categoryService()
			if err != nil {
				return err
			}
			defer closeDB()

			err = categories.Delete(cmd.Context(), id)
			if errors.Is(err, service.ErrCategoryNotFound) {
				return fmt.Errorf("category %d not found", id)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted category %d\n", id)
			return nil
		},
	})

	return c
}

func categoryService() (*service.CategoryService, func(), error) {
	_, database, err := open(true)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() { _ = database.Close() }
	return service.NewCategoryService(repository.NewCategoryRepository(database)), closeDB, nil
}
