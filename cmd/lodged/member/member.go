// Package member implements the member directory commands.
package member

import (
	"github.com/caarlos0/tablewriter"
	"github.com/lodgeworks/lodged/cmd"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/spf13/cobra"
)

// Command is the member subcommand.
var Command = &cobra.Command{
	Use:                "member",
	Aliases:            []string{"members"},
	Short:              "Manage the member directory",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	var collector string

	memberAddCommand := &cobra.Command{
		Use:   "add MEMBER_NUMBER FULL_NAME",
		Short: "Add a member to the directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)

			m, err := be.AddMember(ctx, args[0], args[1], collector)
			if err != nil {
				return err
			}

			cmd.Printf("added member %s (%s)\n", m.FullName, m.MemberNumber)
			return nil
		},
	}

	memberAddCommand.Flags().StringVarP(&collector, "collector", "c", "", "owning collector name")

	var term string

	memberListCommand := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List directory members",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)

			members, err := be.Roster(ctx, term)
			if err != nil {
				return err
			}

			if len(members) == 0 {
				cmd.Println("No members found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				members,
				[]string{"Member No.", "Full Name", "Collector"},
				func(m proto.Member) ([]string, error) {
					collector := m.Collector
					if collector == "" {
						collector = "-"
					}
					return []string{m.MemberNumber, m.FullName, collector}, nil
				},
			)
		},
	}

	memberListCommand.Flags().StringVarP(&term, "search", "s", "", "filter by name, number, or collector")

	Command.AddCommand(
		memberAddCommand,
		memberListCommand,
	)
}
