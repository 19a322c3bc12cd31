package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pincer/internal/model"
	"pincer/internal/pkg/storagefactory"
	"pincer/internal/repository"
)

func prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or update the saved preferences",
	}
	cmd.AddCommand(prefsShowCommand(), prefsSetKeyCommand())
	return cmd
}

func prefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved preferences with the key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			repo, closeRepo, err := openPrefs(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo(ctx) }()

			prefs, err := repo.Get(ctx)
			if errors.Is(err, repository.ErrPrefsNotFound) {
				return errors.New("no preferences saved yet, run: pincer prefs set-key")
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(prefs.Masked())
		},
	}
}

func prefsSetKeyCommand() *cobra.Command {
	var acceptTerms, acceptPrivacy bool
	cmd := &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Save the API key (requires accepting the terms and privacy policy)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := &model.Preferences{
				OpenAIAPIKey:    args[0],
				TermsAccepted:   acceptTerms,
				PrivacyAccepted: acceptPrivacy,
			}
			prefs.OpenAIAPIKey = prefs.APIKey()
			if err := prefs.ValidateForSave(); err != nil {
				return err
			}

			ctx := context.Background()
			repo, closeRepo, err := openPrefs(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = closeRepo(ctx) }()

			if err := repo.Save(ctx, prefs); err != nil {
				return fmt.Errorf("failed to save preferences: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved key %s to %s store\n", prefs.Masked().OpenAIAPIKey, GetConfig().Prefs.Store)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&acceptTerms, "accept-terms", false, "accept the terms of use")
	flags.BoolVar(&acceptPrivacy, "accept-privacy", false, "accept the privacy policy")
	return cmd
}

func openPrefs(ctx context.Context) (repository.PrefsRepo, storagefactory.CloseFunc, error) {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Prefs.Store == "" || cfg.Prefs.Store == "memory" {
		return nil, nil, errors.New("the memory store does not persist, set prefs.store to sqlite, redis or mongo")
	}
	return storagefactory.NewPrefsRepo(ctx, cfg)
}

func init() {
	rootCmd.AddCommand(prefsCommand())
}
