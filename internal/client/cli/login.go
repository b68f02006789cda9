package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *Cli) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Log in and save the session locally",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context(), args)
		},
	}
}

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.emailArg(args)
	if err != nil {
		return err
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	session, err := c.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	// Следующие команды пойдут на тот же сервер без --server
	if err := c.store.SaveServerURL(ctx, c.serverURL); err != nil {
		return fmt.Errorf("failed to save server url: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Email: %s\n", session.Email)
	c.io.Printf("User ID: %s\n", session.UserID)
	c.io.Printf("Server: %s\n", c.serverURL)
	c.io.Println()
	c.io.Println("Your session has been saved.")

	return nil
}
