package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"go-gin-gorm-todo/internal/app"
)

var seedCmd = &cobra.Command{
	Use:   "seed <user-id>",
	Short: "Insert the sample todo batch for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, _ *env, a *app.App) error {
			ts, err := a.Todos.BulkSeed(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d todos for %s\n", len(ts), args[0])
			return nil
		})
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <email>",
	Short: "Print an admin bearer token for an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, _ *env, a *app.App) error {
			tok, err := a.Identity.IssueAdminToken(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		})
	},
}

var purgeYes bool

var purgeCmd = &cobra.Command{
	Use:   "purge-user <user-id>",
	Short: "Delete a user and all of their todos",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !purgeYes {
			return fmt.Errorf("refusing to delete %s without --yes", args[0])
		}
		return withApp(cmd.Context(), func(ctx context.Context, _ *env, a *app.App) error {
			if err := a.Identity.PurgeUser(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", args[0])
			return nil
		})
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeYes, "yes", false, "confirm deletion")
}
