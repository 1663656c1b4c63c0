// Package cli implements studioctl, the operator CLI over the studio record
// store.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/northbeam-studio/studio-admin/internal/studio"
	"github.com/spf13/cobra"
)

// Opener builds the services for one command run. The returned close func
// releases the store.
type Opener func(ctx context.Context) (*studio.Services, func() error, error)

type app struct {
	open Opener
	out  io.Writer
}

// run opens the services, hands them to fn and closes them again.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, svcs *studio.Services) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svcs, closeFn, err := a.open(ctx)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer func() {
		if closeErr := closeFn(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(ctx, svcs)
}

// NewRootCmd assembles studioctl. Output goes to out, os.Stdout when nil.
func NewRootCmd(open Opener, out io.Writer) *cobra.Command {
	if out == nil {
		out = os.Stdout
	}
	a := &app{open: open, out: out}

	root := &cobra.Command{
		Use:           "studioctl",
		Short:         "Inspect and edit the studio admin record store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().Bool("no-color", false, "disable colored output")
	root.SetOut(out)

	root.AddCommand(a.teamCmd())
	root.AddCommand(a.templatesCmd())
	root.AddCommand(a.leadsCmd())
	root.AddCommand(a.assignmentsCmd())
	root.AddCommand(a.assignCmd())
	root.AddCommand(a.unassignCmd())
	root.AddCommand(a.syncCmd())
	return root
}

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	addMark  = color.New(color.FgGreen).SprintFunc()
	delMark  = color.New(color.FgRed).SprintFunc()
	keepMark = color.New(color.FgBlue).SprintFunc()
)
