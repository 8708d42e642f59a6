package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipekit/internal/domain"
	"recipekit/internal/export"
)

const toastJSON = `{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "country toast",
  "image": "https://example.com/toast.jpg",
  "recipeYield": "2 servings",
  "recipeIngredient": ["1 cup flour", "2 eggs", "salt to taste"],
  "recipeInstructions": ["Whisk 2 eggs.", "Fold in 1 cup flour.", "Season with salt to taste."]
}`

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("RECIPEKIT_CACHE_PROVIDER", "none")
	t.Setenv("RECIPEKIT_DB_ENABLED", "false")
	t.Setenv("RECIPEKIT_ARCHIVE_ENABLED", "false")

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInstructions(t *testing.T) {
	out, _, err := runCLI(t, "", "instructions", "--url", "https://example.com/pie")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Open https://example.com/pie in your browser.")
}

func TestImport_FromFile(t *testing.T) {
	path := writeTemp(t, "toast.json", toastJSON)

	out, _, err := runCLI(t, "", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Country Toast")
	assert.Contains(t, out, "State: complete")
	assert.Contains(t, out, "INGREDIENT")
	assert.Contains(t, out, "flour")
}

func TestImport_StdinAsJSON(t *testing.T) {
	out, _, err := runCLI(t, "```json\n"+toastJSON+"\n```", "import", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"success": true`)
	assert.Contains(t, out, `"finalState": "complete"`)
}

func TestImport_Failure(t *testing.T) {
	out, _, err := runCLI(t, `{"@type":"Person","name":"Ada"}`, "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(domain.ImportStateFailed))
	assert.Contains(t, out, "schema_mismatch")
}

func TestScale(t *testing.T) {
	path := writeTemp(t, "toast.json", toastJSON)
	csvPath := filepath.Join(t.TempDir(), "list.csv")

	out, _, err := runCLI(t, "", "scale", path, "--yield", "4", "--export", csvPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Country Toast: 2 -> 4 servings (x2)")
	assert.Contains(t, out, "2 cups flour (480 ml)")
	assert.Contains(t, out, "Whisk 4 eggs.")
	assert.Contains(t, out, "Season with salt to taste.")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, export.BOM))
	assert.Contains(t, string(data), "flour")
}

func TestScale_RejectsYield(t *testing.T) {
	path := writeTemp(t, "toast.json", toastJSON)

	_, _, err := runCLI(t, "", "scale", path, "--yield", "100")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidYield)
}

func TestScale_RequiresYield(t *testing.T) {
	_, _, err := runCLI(t, toastJSON, "scale")
	assert.Error(t, err)
}

func TestParse_Stdin(t *testing.T) {
	out, _, err := runCLI(t, "2 cups flour\n\n1 tsp salt\n", "parse")
	require.NoError(t, err)
	assert.Contains(t, out, "flour")
	assert.Contains(t, out, "teaspoon")
	assert.Contains(t, out, "manual")
}
