package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/api"
)

func (c *Cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runStatus(cmd.Context())
		},
	}
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()
	c.io.Printf("Server: %s\n", c.serverURL)

	session, err := c.authService.Current(ctx)
	if err != nil {
		if errors.Is(err, api.ErrNoSession) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'todokeeper login' to authenticate.")
			return nil
		}
		return err
	}

	expiresAt := time.Unix(session.ExpiresAt, 0)
	remaining := time.Until(expiresAt)

	c.io.Println("Status: Authenticated")
	c.io.Printf("Email: %s\n", session.Email)
	c.io.Printf("User ID: %s\n", session.UserID)
	c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))

	if remaining > 0 {
		c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
	} else {
		c.io.Println("Access token has expired. It will be refreshed on the next request.")
	}

	return nil
}
