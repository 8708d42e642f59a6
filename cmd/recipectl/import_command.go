package main

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"recipekit/internal/domain"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var sourceURL string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Import pasted JSON-LD from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			text, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			res, err := a.Service.Import(cmd.Context(), domain.RawImportInput{Text: text, SourceURL: sourceURL},
				progressPrinter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return errors.Wrap(err, "encoding result")
				}
			} else {
				printImport(cmd, res)
			}
			if !res.Success {
				return errors.Newf("import failed in state %s", res.Metadata.FinalState)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceURL, "source-url", "", "Page the JSON-LD was copied from")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full import result as JSON")
	return cmd
}

func printImport(cmd *cobra.Command, res *domain.ImportResult) {
	out := cmd.OutOrStdout()
	if res.Recipe != nil {
		fmt.Fprintf(out, "%s\n", displayTitle(res.Recipe.Name))
		if res.Recipe.RecipeYield != "" {
			fmt.Fprintf(out, "Yield: %s\n", res.Recipe.RecipeYield)
		}
	}
	fmt.Fprintf(out, "State: %s (import %s)\n\n", res.Metadata.FinalState, res.Metadata.ImportID)

	renderIssues(out, "Errors", res.Errors)
	renderIssues(out, "Warnings", res.Warnings)

	if res.Recipe != nil && len(res.Recipe.ParsedIngredients) > 0 {
		renderParsed(out, res.Recipe.ParsedIngredients)
	}
}
