package cli

import (
	"context"
	"fmt"

	"github.com/northbeam-studio/studio-admin/internal/assignments"
	"github.com/northbeam-studio/studio-admin/internal/studio"
	"github.com/northbeam-studio/studio-admin/pkg/enums"
	"github.com/spf13/cobra"
)

func (a *app) assignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <template-id> <member-id>",
		Short: "Link a member to a template",
		Long:  "Link a member to a template. Linking an existing pair is a no-op and keeps the original role.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")
			return a.run(cmd, func(ctx context.Context, svcs *studio.Services) error {
				_, err := svcs.Assignments.Create(ctx, assignments.CreateInput{
					TemplateID:    args[0],
					MemberID:      args[1],
					RoleInProject: role,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s %s linked to %s\n", okMark("✓"), args[1], args[0])
				return nil
			})
		},
	}
	cmd.Flags().String("role", "", "role in project (default "+assignments.DefaultRole+")")
	return cmd
}

func (a *app) unassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <template-id> <member-id>",
		Short: "Remove the link between a member and a template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, svcs *studio.Services) error {
				if _, err := svcs.Assignments.Delete(ctx, args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s %s unlinked from %s\n", okMark("✓"), args[1], args[0])
				return nil
			})
		},
	}
}

func (a *app) syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <member|template> <anchor-id> [counterpart-id...]",
		Short: "Make an anchor's links equal the given set",
		Long: `Reconcile the links of one member or template to exactly the listed
counterparts. Missing links are created, stale ones removed and unchanged
ones left alone. Passing no counterparts unlinks everything.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := enums.ParseAnchor(args[0])
			if err != nil {
				return err
			}
			role, _ := cmd.Flags().GetString("role")
			desired := append([]string{}, args[2:]...)
			return a.run(cmd, func(ctx context.Context, svcs *studio.Services) error {
				result, err := svcs.Engine.Reconcile(ctx, anchor, args[1], desired, role)
				for _, id := range result.Added {
					fmt.Fprintf(a.out, "%s %s\n", addMark("+"), id)
				}
				for _, id := range result.Removed {
					fmt.Fprintf(a.out, "%s %s\n", delMark("-"), id)
				}
				for _, id := range result.Unchanged {
					fmt.Fprintf(a.out, "%s %s\n", keepMark("="), id)
				}
				if err != nil {
					return fmt.Errorf("sync stopped early, rerun to converge: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().String("role", "", "role for new links (default "+assignments.DefaultRole+")")
	return cmd
}
