package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pincer/internal/model"
	"pincer/internal/pkg/output"
)

func rewriteCommand() *cobra.Command {
	var (
		mode   string
		file   string
		apiKey string
		format string
	)
	cmd := &cobra.Command{
		Use:   "rewrite [text]",
		Short: "Rewrite text once and print the result",
		Long: `Rewrite text from the argument, --file or stdin and print the structured result.
The API key comes from --key, PINCER_PREFS_API_KEY or the saved preferences.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.RewriteMode(mode).IsKnown() {
				return fmt.Errorf("unknown mode %q, available modes are %v", mode, model.Modes)
			}

			text, err := readInput(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			dispatcher, _, closePrefs, err := newDispatcher(ctx, GetConfig())
			if err != nil {
				return err
			}
			defer func() { _ = closePrefs(context.Background()) }()

			req := &model.RewriteRequest{Text: text, Mode: model.RewriteMode(mode)}
			if apiKey != "" {
				req.Prefs = &model.Preferences{OpenAIAPIKey: apiKey}
			}
			result, err := dispatcher.Rewrite(ctx, req)
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), format, result)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&mode, "mode", "m", string(model.ModePlain), "rewrite mode (plain/grade5/bullets/steps/literal/actions)")
	flags.StringVarP(&file, "file", "f", "", "read text from file, - for stdin")
	flags.StringVarP(&apiKey, "key", "k", "", "API key for this call")
	flags.StringVarP(&format, "format", "o", output.FormatJSON, "output format (json/yaml/table)")
	return cmd
}

func readInput(stdin io.Reader, file string, args []string) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case file != "" && file != "-":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

func init() {
	rootCmd.AddCommand(rewriteCommand())
}
