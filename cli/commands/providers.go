package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenebrush/scenebrush/config"
	"github.com/scenebrush/scenebrush/core"
)

func (a *App) newProvidersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Manage provider configurations",
		Long:  `List providers, select the active one, and adjust per-provider endpoint and model overrides.`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List configured providers",
		RunE:  a.runProvidersList,
	}

	use := &cobra.Command{
		Use:   "use <name>",
		Short: "Select the active provider",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runProvidersUse,
	}

	set := &cobra.Command{
		Use:   "set <name>",
		Short: "Set endpoint and model overrides for a provider",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runProvidersSet,
	}
	set.Flags().StringVar(&a.setBaseURL, "base-url", "", "endpoint override (empty keeps the provider default)")
	set.Flags().StringVar(&a.setModel, "model", "", "model override (empty keeps the provider default)")
	set.Flags().StringVar(&a.setType, "type", "", "provider wire protocol (defaults to the entry name)")

	cmd.AddCommand(list, use, set)
	return cmd
}

func (a *App) runProvidersList(cmd *cobra.Command, args []string) error {
	store := a.openStore()
	entries, err := store.Entries()
	if err != nil {
		return err
	}
	selected := store.Selected()

	for _, e := range entries {
		marker := " "
		if e.Name == selected {
			marker = "*"
		}
		keyState := "no key"
		if e.APIKey != "" {
			keyState = "key set"
		}
		fmt.Fprintf(a.stdout, "%s %-12s type=%-10s %s", marker, e.Name, e.Type, keyState)
		if e.BaseURL != "" {
			fmt.Fprintf(a.stdout, " base_url=%s", e.BaseURL)
		}
		if e.Model != "" {
			fmt.Fprintf(a.stdout, " model=%s", e.Model)
		}
		fmt.Fprintln(a.stdout)
	}
	return nil
}

func (a *App) runProvidersUse(cmd *cobra.Command, args []string) error {
	store := a.openStore()
	if err := store.SelectProvider(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Active provider: %s\n", args[0])
	return nil
}

func (a *App) runProvidersSet(cmd *cobra.Command, args []string) error {
	name := args[0]
	store := a.openStore()

	entries, err := store.Entries()
	if err != nil {
		return err
	}
	entry := config.Entry{Name: name, Type: name}
	for _, e := range entries {
		if e.Name == name {
			entry = e
			break
		}
	}

	if a.setType != "" {
		entry.Type = a.setType
	}
	if !core.ProviderKind(entry.Type).IsValid() {
		return fmt.Errorf("unknown provider type %q (known: %v)", entry.Type, core.KnownProviders())
	}
	if cmd.Flags().Changed("base-url") {
		entry.BaseURL = a.setBaseURL
	}
	if cmd.Flags().Changed("model") {
		entry.Model = a.setModel
	}

	if err := store.SetEntry(entry); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Provider %s updated.\n", name)
	return nil
}
