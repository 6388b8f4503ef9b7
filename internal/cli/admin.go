package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"folio/internal/auth"
	"folio/internal/token"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin users",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var email, password string
	var reset bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an ADMIN user with a bcrypt-hashed password",
		Long:  "Create an ADMIN user. With --reset an existing user gets the new password and the ADMIN role.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			ctx := cmd.Context()
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := auth.NewService(auth.NewRepository(db), token.NewManager(token.Config{Secret: cfg.JWTSecret}))

			user, err := svc.CreateAdmin(ctx, email, password)
			switch {
			case errors.Is(err, auth.ErrEmailExists) && reset:
				if err := svc.SetPassword(ctx, email, password); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Password reset for %s\n", email)
				return nil
			case errors.Is(err, auth.ErrEmailExists):
				return fmt.Errorf("%s already exists, pass --reset to replace its password", email)
			case err != nil:
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (prompted if omitted)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Replace the password if the user exists")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
