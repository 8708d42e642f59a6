package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"recipekit/internal/domain"
	"recipekit/internal/ingredient"
	"recipekit/internal/scaling"
)

func displayTitle(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Untitled recipe"
	}
	return cases.Title(language.English).String(name)
}

func reviewMark(v bool) string {
	if v {
		return "review"
	}
	return ""
}

func renderIssues(w io.Writer, title string, issues []domain.ValidationIssue) {
	if len(issues) == 0 {
		return
	}
	rows := make([][]string, 0, len(issues))
	for _, is := range issues {
		msg := is.Message
		if len(is.Details) > 0 {
			msg += "\n- " + strings.Join(is.Details, "\n- ")
		}
		rows = append(rows, []string{string(is.Type), is.Field, msg})
	}
	fmt.Fprintf(w, "%s (%d)\n", title, len(issues))
	fmt.Fprintln(w, renderTable([]string{"Type", "Field", "Message"}, rows, nil))
}

func renderParsed(w io.Writer, parsed []domain.ParsedIngredient) {
	rows := make([][]string, 0, len(parsed))
	for _, p := range parsed {
		metric := ""
		if p.MetricQuantity != nil && p.MetricUnit != nil {
			metric = *p.MetricQuantity + " " + *p.MetricUnit
		}
		rows = append(rows, []string{
			domain.Deref(p.Quantity),
			domain.Deref(p.Unit),
			p.IngredientName,
			domain.Deref(p.PreparationNotes),
			metric,
			strconv.FormatFloat(p.Confidence, 'f', 2, 64),
			string(p.ParsingMethod),
			reviewMark(p.RequiresManualReview),
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Qty", "Unit", "Ingredient", "Notes", "Metric", "Conf", "Method", "Review"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))
}

func renderScaled(w io.Writer, s *scaling.ScaledRecipe) {
	fmt.Fprintf(w, "%s: %s -> %s servings (x%s)\n",
		displayTitle(s.Name),
		ingredient.FormatAmount(s.OriginalYield),
		ingredient.FormatAmount(s.TargetYield),
		strconv.FormatFloat(s.Multiplier, 'f', -1, 64))

	rows := make([][]string, 0, len(s.Ingredients))
	for _, si := range s.Ingredients {
		rows = append(rows, []string{si.Original.OriginalText, scaling.FormatScaled(si, true)})
	}
	fmt.Fprintln(w, renderTable([]string{"Original", "Scaled"}, rows, nil))

	if len(s.Instructions) > 0 {
		steps := make([][]string, 0, len(s.Instructions))
		for i, in := range s.Instructions {
			steps = append(steps, []string{strconv.Itoa(i + 1), in.Scaled, strconv.Itoa(in.ReferenceCount)})
		}
		fmt.Fprintln(w, renderTable([]string{"#", "Step", "Refs"}, steps, []columnAlignment{alignRight, alignLeft, alignRight}))
	}
	for _, warn := range s.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func progressPrinter(w io.Writer) func(domain.BatchProgress) {
	return func(p domain.BatchProgress) {
		if p.TotalBatches == 0 {
			return
		}
		fmt.Fprintf(w, "parsing ingredients: batch %d/%d (%d/%d lines)\n",
			p.CurrentBatch, p.TotalBatches, p.ParsedCount, p.TotalCount)
	}
}
