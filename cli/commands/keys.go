package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/scenebrush/scenebrush/cli/keystore"
)

func (a *App) newKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage provider API keys",
		Long:  `Manage provider API keys. Keys are stored encrypted; values are never printed.`,
	}

	set := &cobra.Command{
		Use:   "set <provider>",
		Short: "Set the API key for a provider",
		Long:  `Set the API key for a provider. The key is prompted without echo.`,
		Args:  cobra.ExactArgs(1),
		RunE:  a.runKeysSet,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List providers with stored keys",
		RunE:  a.runKeysList,
	}

	del := &cobra.Command{
		Use:   "delete <provider>",
		Short: "Delete the API key for a provider",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runKeysDelete,
	}

	cmd.AddCommand(set, list, del)
	return cmd
}

func (a *App) runKeysSet(cmd *cobra.Command, args []string) error {
	provider := args[0]

	fmt.Fprintf(a.stdout, "Enter API key for %s: ", provider)

	var apiKey string
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		keyBytes, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		apiKey = string(keyBytes)
		fmt.Fprintln(a.stdout)
	} else {
		// Piped input.
		reader := bufio.NewReader(a.stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		apiKey = strings.TrimSpace(line)
	}

	if apiKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}

	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	if err := ks.Set(provider, apiKey); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	fmt.Fprintf(a.stdout, "API key for %s stored.\n", provider)
	return nil
}

func (a *App) runKeysList(cmd *cobra.Command, args []string) error {
	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	names, err := ks.List()
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if len(names) == 0 {
		fmt.Fprintln(a.stdout, "No API keys stored.")
		return nil
	}
	fmt.Fprintln(a.stdout, "Stored keys:")
	for _, name := range names {
		fmt.Fprintf(a.stdout, "  - %s\n", name)
	}
	return nil
}

func (a *App) runKeysDelete(cmd *cobra.Command, args []string) error {
	provider := args[0]

	ks, err := a.newKeystore()
	if err != nil {
		return fmt.Errorf("failed to open keystore: %w", err)
	}
	if err := ks.Delete(provider); err != nil {
		var notFound *keystore.ErrKeyNotFound
		if errors.As(err, &notFound) {
			return fmt.Errorf("no key stored for %s", provider)
		}
		return fmt.Errorf("failed to delete key: %w", err)
	}

	fmt.Fprintf(a.stdout, "API key for %s deleted.\n", provider)
	return nil
}
