// Package user implements the user management commands.
package user

import (
	"github.com/caarlos0/tablewriter"
	"github.com/lodgeworks/lodged/cmd"
	"github.com/lodgeworks/lodged/pkg/backend"
	"github.com/lodgeworks/lodged/pkg/proto"
	"github.com/spf13/cobra"
)

// Command is the user subcommand.
var Command = &cobra.Command{
	Use:                "user",
	Aliases:            []string{"users"},
	Short:              "Manage login accounts",
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
}

func init() {
	var role string
	var fullName string
	var password string
	var collector string

	userCreateCommand := &cobra.Command{
		Use:   "create MEMBER_NUMBER",
		Short: "Create a new login account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)

			r, err := proto.ParseRole(role)
			if err != nil {
				return err
			}

			user, err := be.CreateAccount(ctx, args[0], fullName, password, r, collector)
			if err != nil {
				return err
			}

			cmd.Printf("created %s account for %s (%s)\n", user.Role, user.FullName, user.MemberNumber)
			return nil
		},
	}

	userCreateCommand.Flags().StringVarP(&role, "role", "r", "member", "account role (member, collector, admin)")
	userCreateCommand.Flags().StringVarP(&fullName, "name", "n", "", "full name of the account holder")
	userCreateCommand.Flags().StringVarP(&password, "password", "p", "", "login password")
	userCreateCommand.Flags().StringVarP(&collector, "collector", "c", "", "collector name, for collector accounts")

	userInfoCommand := &cobra.Command{
		Use:   "info MEMBER_NUMBER",
		Short: "Show account details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)

			user, err := be.UserByMemberNumber(ctx, args[0])
			if err != nil {
				return err
			}

			cmd.Println("Member Number:", user.MemberNumber)
			cmd.Println("Full Name:", user.FullName)
			cmd.Println("Role:", user.Role)
			if user.CollectorName != "" {
				cmd.Println("Collector:", user.CollectorName)
			}

			return nil
		},
	}

	userSetPasswordCommand := &cobra.Command{
		Use:   "set-password MEMBER_NUMBER PASSWORD",
		Short: "Replace an account's password",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)

			return be.SetPassword(ctx, args[0], args[1])
		},
	}

	collectorListCommand := &cobra.Command{
		Use:     "collectors",
		Aliases: []string{"cs"},
		Short:   "List collectors",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			be := backend.FromContext(ctx)

			collectors, err := be.Collectors(ctx)
			if err != nil {
				return err
			}

			if len(collectors) == 0 {
				cmd.Println("No collectors found")
				return nil
			}

			return tablewriter.Render(
				cmd.OutOrStdout(),
				collectors,
				[]string{"Name", "Member Number"},
				func(c proto.Collector) ([]string, error) {
					return []string{c.Name, c.MemberNumber}, nil
				},
			)
		},
	}

	Command.AddCommand(
		userCreateCommand,
		userInfoCommand,
		userSetPasswordCommand,
		collectorListCommand,
	)
}
