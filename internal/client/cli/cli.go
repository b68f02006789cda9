// Package cli реализует команды клиента todokeeper поверх cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/todokeeper/internal/client/api"
	"github.com/iudanet/todokeeper/internal/client/auth"
	"github.com/iudanet/todokeeper/internal/client/iocli"
	"github.com/iudanet/todokeeper/internal/client/storage/boltdb"
)

const (
	// EnvServer переменная окружения с адресом сервера
	EnvServer = "TODOKEEPER_SERVER"
	// EnvPassword переменная окружения с паролем для неинтерактивного входа
	EnvPassword = "TODOKEEPER_PASSWORD"

	defaultServerURL = "http://localhost:8080"
	defaultDBPath    = "todokeeper-client.db"
)

var errNotAuthenticated = errors.New("not authenticated. Please run 'todokeeper login' first")

// Options глобальные флаги клиента
type Options struct {
	ServerURL    string
	DBPath       string
	PasswordFile string
}

// Cli состояние одного запуска клиента
type Cli struct {
	io          iocli.IO
	store       *boltdb.Storage
	apiClient   *api.Client
	authService *auth.Service
	opts        Options
	serverURL   string
}

// New создает CLI, пишущий в stdio
func New(stdio iocli.IO) *Cli {
	return &Cli{io: stdio}
}

// Execute разбирает args, выполняет команду и закрывает локальное хранилище
func (c *Cli) Execute(ctx context.Context, args []string, version string) error {
	root := c.RootCommand(version)
	root.SetArgs(args)
	defer c.close()
	return root.ExecuteContext(ctx)
}

// RootCommand строит дерево команд
func (c *Cli) RootCommand(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "todokeeper",
		Short: "Command-line client for the todokeeper task service",
		Long: `todokeeper manages your tasks on a todokeeper server.

Server URL priority (highest to lowest):
  1. --server flag
  2. TODOKEEPER_SERVER environment variable
  3. server remembered at the last login
  4. http://localhost:8080

Password priority (highest to lowest):
  1. TODOKEEPER_PASSWORD environment variable
  2. --password-file
  3. interactive prompt`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetOut(c.io)
	root.SetErr(c.io)

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.ServerURL, "server", "", "Server URL (overrides TODOKEEPER_SERVER)")
	flags.StringVar(&c.opts.DBPath, "db", defaultDBPath, "Path to local database")
	flags.StringVar(&c.opts.PasswordFile, "password-file", "", "Path to file containing the password")

	root.AddCommand(
		c.registerCommand(),
		c.loginCommand(),
		c.logoutCommand(),
		c.statusCommand(),
		c.addCommand(),
		c.listCommand(),
		c.showCommand(),
		c.completeCommand("done", true),
		c.completeCommand("undone", false),
		c.editCommand(),
		c.deleteCommand(),
	)

	return root
}

// setup открывает хранилище и создает клиента перед любой командой
func (c *Cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := boltdb.New(ctx, c.opts.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.store = store

	serverURL, err := c.resolveServerURL(ctx)
	if err != nil {
		return err
	}
	c.serverURL = serverURL

	c.apiClient = api.NewClient(serverURL)
	c.authService = auth.NewService(c.apiClient, store)

	return nil
}

func (c *Cli) resolveServerURL(ctx context.Context) (string, error) {
	if c.opts.ServerURL != "" {
		return c.opts.ServerURL, nil
	}
	if env := os.Getenv(EnvServer); env != "" {
		return env, nil
	}

	saved, err := c.store.GetServerURL(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read saved server url: %w", err)
	}
	if saved != "" {
		return saved, nil
	}

	return defaultServerURL, nil
}

func (c *Cli) close() {
	if c.store != nil {
		_ = c.store.Close()
	}
}

// requireSession проверяет наличие локальной сессии.
// Просроченный access token не ошибка: клиент обновит его по refresh token.
func (c *Cli) requireSession(ctx context.Context) error {
	if _, err := c.authService.Current(ctx); err != nil {
		if errors.Is(err, api.ErrNoSession) {
			return errNotAuthenticated
		}
		return err
	}
	return nil
}

// readPassword получает пароль с приоритетом:
// 1. Переменная окружения TODOKEEPER_PASSWORD
// 2. Файл из --password-file
// 3. Интерактивный ввод
func (c *Cli) readPassword(prompt string) (string, error) {
	if envPassword := os.Getenv(EnvPassword); envPassword != "" {
		return envPassword, nil
	}

	if c.opts.PasswordFile != "" {
		content, err := os.ReadFile(c.opts.PasswordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", errors.New("password file is empty")
		}
		return password, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	return password, nil
}

// emailArg берет email из аргумента или запрашивает его
func (c *Cli) emailArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return "", fmt.Errorf("failed to read email: %w", err)
	}
	return email, nil
}
