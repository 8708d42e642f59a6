package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [line...]",
		Short: "Parse ingredient lines given as arguments or one per line on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp()
			if err != nil {
				return err
			}
			lines := args
			if len(lines) == 0 {
				sc := bufio.NewScanner(cmd.InOrStdin())
				for sc.Scan() {
					if line := strings.TrimSpace(sc.Text()); line != "" {
						lines = append(lines, line)
					}
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}

			out, err := a.Service.ParseIngredients(cmd.Context(), lines)
			if err != nil {
				return err
			}
			renderParsed(cmd.OutOrStdout(), out.Ingredients)
			for _, f := range out.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "fallback used: %s\n", f)
			}
			return nil
		},
	}
	return cmd
}
