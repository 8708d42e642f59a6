package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"recipekit/internal/domain"
	"recipekit/internal/export"
	"recipekit/internal/scaling"
)

func newScaleCommand(ctx *commandContext) *cobra.Command {
	var target float64
	var toTaste bool
	var exportPath string

	cmd := &cobra.Command{
		Use:   "scale [file|-]",
		Short: "Import a recipe and scale it to a new yield",
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

			res, err := a.Service.Import(cmd.Context(), domain.RawImportInput{Text: text}, progressPrinter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			if !res.Success {
				renderIssues(cmd.ErrOrStderr(), "Errors", res.Errors)
				return errors.New("cannot scale a recipe that failed to import")
			}

			scaled, err := scaling.ScaleRecipe(res.Recipe, target, scaling.Options{
				ScaleToTaste:  toTaste,
				MaxReferences: a.Config.Import.MaxInstructionReferences,
			})
			if err != nil {
				var yerr *scaling.YieldError
				if errors.As(err, &yerr) && yerr.SuggestedValue != nil {
					return errors.WithHintf(err, "try --yield %s", strconv.FormatFloat(*yerr.SuggestedValue, 'f', -1, 64))
				}
				return err
			}

			renderScaled(cmd.OutOrStdout(), scaled)
			if exportPath != "" {
				if err := writeExport(exportPath, scaled); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "shopping list written to %s\n", exportPath)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&target, "yield", 0, "Target number of servings")
	cmd.Flags().BoolVar(&toTaste, "to-taste", false, "Also scale amounts marked \"to taste\" or \"for garnish\"")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the scaled shopping list to a .csv or .xlsx file")
	_ = cmd.MarkFlagRequired("yield")
	return cmd
}

func writeExport(path string, scaled *scaling.ScaledRecipe) error {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		err = export.WriteXLSX(&buf, scaled.Name, scaled.Ingredients)
	case ".csv", "":
		err = export.WriteCSV(&buf, scaled.Ingredients)
	default:
		return errors.Newf("unsupported export format %q; use .csv or .xlsx", filepath.Ext(path))
	}
	if err != nil {
		return errors.Wrap(err, "rendering export")
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, export.BuildFilename(scaled.Name, "csv", time.Now()))
	}
	return errors.Wrap(os.WriteFile(path, buf.Bytes(), 0o644), "writing export")
}
