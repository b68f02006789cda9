package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func (c *Cli) registerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register [email]",
		Short: "Register a new account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRegister(cmd.Context(), args)
		},
	}
}

func (c *Cli) runRegister(ctx context.Context, args []string) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	email, err := c.emailArg(args)
	if err != nil {
		return err
	}

	password, err := c.readPassword("Password: ")
	if err != nil {
		return err
	}

	// Подтверждение нужно только при ручном вводе
	if c.interactivePassword() {
		confirm, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}
	}

	c.io.Println()
	c.io.Println("Registering user...")

	user, err := c.authService.Register(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", user.ID)
	c.io.Printf("Email: %s\n", user.Email)
	c.io.Println()
	c.io.Println("Please run 'todokeeper login' to start using the service.")

	return nil
}

func (c *Cli) interactivePassword() bool {
	return os.Getenv(EnvPassword) == "" && c.opts.PasswordFile == ""
}
