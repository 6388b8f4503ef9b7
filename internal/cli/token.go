package cli

import (
	"fmt"
	"strings"
	"time"

	"folio/internal/config"
	"folio/internal/token"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Work with auth-token values",
	}
	cmd.AddCommand(newTokenIssueCmd(), newTokenVerifyCmd())
	return cmd
}

func newTokenIssueCmd() *cobra.Command {
	var role, email, subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Print a signed token for local debugging",
		Long:  "Sign a token with JWT_SECRET. Set it as the auth-token cookie to act as that role.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateSecret(cfg.JWTSecret); err != nil {
				return err
			}

			r := token.Role(strings.ToUpper(role))
			if r != token.RoleAdmin && r != token.RoleUser {
				return fmt.Errorf("unknown role %q, want ADMIN or USER", role)
			}
			if subject == "" {
				subject = uuid.New().String()
			}
			if ttl <= 0 {
				ttl = cfg.TokenTTL
			}

			m := token.NewManager(token.Config{Secret: cfg.JWTSecret, TTL: ttl})
			signed, err := m.Sign(token.Payload{Role: r, UserID: subject, Email: email})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", string(token.RoleAdmin), "Role claim (ADMIN or USER)")
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().StringVar(&subject, "subject", "", "User id claim (random when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to TOKEN_TTL)")
	return cmd
}

func newTokenVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify TOKEN",
		Short: "Check a token against JWT_SECRET and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := token.NewManager(token.Config{Secret: cfg.JWTSecret})
			claims, err := m.Verify(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "subject: %s\n", claims.Subject)
			fmt.Fprintf(out, "role:    %s\n", claims.Role)
			if claims.Email != "" {
				fmt.Fprintf(out, "email:   %s\n", claims.Email)
			}
			if claims.ExpiresAt != nil {
				fmt.Fprintf(out, "expires: %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
			}
			return nil
		},
	}
}
