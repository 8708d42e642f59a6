package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recipekit/internal/jsonld"
)

func newInstructionsCommand() *cobra.Command {
	var sourceURL string

	cmd := &cobra.Command{
		Use:   "instructions",
		Short: "Print steps for copying a page's JSON-LD from the browser console",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), jsonld.ExtractionInstructions(sourceURL))
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceURL, "url", "", "Recipe page URL")
	return cmd
}
