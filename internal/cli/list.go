package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/northbeam-studio/studio-admin/internal/assignments"
	"github.com/northbeam-studio/studio-admin/internal/leads"
	"github.com/northbeam-studio/studio-admin/internal/studio"
	"github.com/northbeam-studio/studio-admin/pkg/enums"
	"github.com/spf13/cobra"
)

func (a *app) teamCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "team", Short: "Team members"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List team members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var status enums.MemberStatus
			if raw, _ := cmd.Flags().GetString("status"); raw != "" {
				parsed, err := enums.ParseMemberStatus(raw)
				if err != nil {
					return err
				}
				status = parsed
			}
			return a.run(cmd, func(ctx context.Context, svcs *studio.Services) error {
				members, err := svcs.Team.List(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tROLE\tSTATUS\tRANK")
				for _, m := range members {
					if status != "" && m.Status != status {
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Role, m.Status, m.Rank)
				}
				return w.Flush()
			})
		},
	}
	list.Flags().String("status", "", "only members with this status (active|standby|deploying)")
	cmd.AddCommand(list)
	return cmd
}

func (a *app) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "templates", Short: "Templates"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var status enums.TemplateStatus
			if raw, _ := cmd.Flags().GetString("status"); raw != "" {
				parsed, err := enums.ParseTemplateStatus(raw)
				if err != nil {
					return err
				}
				status = parsed
			}
			return a.run(cmd, func(ctx context.Context, svcs *studio.Services) error {
				items, err := svcs.Templates.List(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCODENAME\tSTATUS\tVERSION\tSCORE\tSTACK")
				for _, t := range items {
					if status != "" && t.Status != status {
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", t.ID, t.CodeName, t.Status, t.Version, t.PerformanceScore, strings.Join(t.TechStack, ","))
				}
				return w.Flush()
			})
		},
	}
	list.Flags().String("status", "", "only templates with this status (stable|beta|archived|deployed)")
	cmd.AddCommand(list)
	return cmd
}

func (a *app) leadsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "leads", Short: "Inbound leads"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List leads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(ctx context.Context, svcs *studio.Services) error {
				items, err := svcs.Leads.List(ctx)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCLIENT\tPROJECT\tSTATUS\tDATE")
				for _, l := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", l.ID, l.ClientName, l.ProjectType, l.Status, l.Date)
				}
				return w.Flush()
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status <lead-id> <New|Contacted|Qualified>",
		Short: "Move a lead to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := enums.ParseLeadStatus(args[1])
			if err != nil {
				return err
			}
			return a.run(cmd, func(ctx context.Context, svcs *studio.Services) error {
				if _, err := svcs.Leads.Update(ctx, args[0], leads.Patch{Status: &status}); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s lead %s is now %s\n", okMark("✓"), args[0], status)
				return nil
			})
		},
	})
	return cmd
}

func (a *app) assignmentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "assignments", Short: "Member to template links"}
	list := &cobra.Command{
		Use:   "list",
		Short: "List assignments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templateID, _ := cmd.Flags().GetString("template")
			memberID, _ := cmd.Flags().GetString("member")
			return a.run(cmd, func(ctx context.Context, svcs *studio.Services) error {
				items, err := svcs.Assignments.List(ctx, assignments.Filter{TemplateID: templateID, MemberID: memberID})
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TEMPLATE\tMEMBER\tROLE\tJOINED\tCONTRIBUTION")
				for _, as := range items {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", as.TemplateID, as.MemberID, as.RoleInProject, as.JoinedAt.Format(time.RFC3339), as.ContributionLevel)
				}
				return w.Flush()
			})
		},
	}
	list.Flags().String("template", "", "only links of this template")
	list.Flags().String("member", "", "only links of this member")
	cmd.AddCommand(list)
	return cmd
}
