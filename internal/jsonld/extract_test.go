package jsonld_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipekit/internal/jsonld"
)

func parse(t *testing.T, text string) any {
	t.Helper()
	res := jsonld.ValidateJSON(text)
	require.True(t, res.Valid, res.Error)
	return res.Data
}

func TestFindRecipeNode(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		found    bool
		wantName string
	}{
		{"direct object", `{"@type":"Recipe","name":"A"}`, true, "A"},
		{"type array", `{"@type":["Recipe","NewsArticle"],"name":"B"}`, true, "B"},
		{"top-level array", `[{"@type":"WebSite"},{"@type":"Recipe","name":"C"}]`, true, "C"},
		{"graph", `{"@context":"https://schema.org","@graph":[{"@type":"WebPage"},{"@type":"Recipe","name":"D"}]}`, true, "D"},
		{"graph inside array", `[{"@graph":[{"@type":"Recipe","name":"E"}]}]`, true, "E"},
		{"first match wins", `[{"@type":"Recipe","name":"first"},{"@type":"Recipe","name":"second"}]`, true, "first"},
		{"article", `{"@type":"Article","name":"Not a recipe"}`, false, ""},
		{"scalar", `42`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := jsonld.FindRecipeNode(parse(t, tt.in))
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantName, node["name"])
			}
		})
	}
}

func TestGetType(t *testing.T) {
	assert.Equal(t, "Article", jsonld.GetType(parse(t, `{"@type":"Article"}`)))
	assert.Equal(t, "WebPage", jsonld.GetType(parse(t, `{"@graph":[{"@type":"WebPage"}]}`)))
	assert.Equal(t, "Person", jsonld.GetType(parse(t, `[{"name":"x"},{"@type":["Person","Thing"]}]`)))
	assert.Equal(t, "", jsonld.GetType(parse(t, `{"name":"x"}`)))
}

func TestMapToDraft_FullNode(t *testing.T) {
	data := parse(t, `{
		"@type": "Recipe",
		"name": " Chocolate Cake ",
		"image": [{"url": "https://x/cake.jpg"}, {"url": "https://x/other.jpg"}],
		"author": {"@type": "Person", "name": "Sam"},
		"recipeIngredient": ["2 cups flour", " ", "1 cup sugar"],
		"recipeInstructions": [
			{"@type": "HowToStep", "name": "Mix", "text": "Mix the dry ingredients"},
			{"@type": "HowToStep", "name": "Oven", "text": "Bake at 350F"},
			{"@type": "HowToStep", "text": "  "}
		],
		"recipeCategory": "Dessert",
		"recipeCuisine": ["American"],
		"recipeYield": ["8", "8 slices"],
		"prepTime": "PT20M",
		"nutrition": {"@type": "NutritionInformation", "calories": "270 calories", "fatContent": "12.5 g"}
	}`)
	node, ok := jsonld.FindRecipeNode(data)
	require.True(t, ok)

	d := jsonld.MapToDraft(node, "https://example.com/cake")
	assert.Equal(t, "Chocolate Cake", d.Name)
	assert.Equal(t, "https://x/cake.jpg", d.Image)
	assert.Equal(t, "Sam", d.Author)
	assert.Equal(t, "https://example.com/cake", d.SourceURL)
	assert.Equal(t, []string{"2 cups flour", "1 cup sugar"}, d.RecipeIngredient)
	assert.Equal(t, []string{"Mix the dry ingredients", "Oven: Bake at 350F"}, d.RecipeInstructions)
	assert.Equal(t, []string{"Dessert"}, d.RecipeCategory)
	assert.Equal(t, []string{"American"}, d.RecipeCuisine)
	assert.Equal(t, []string{}, d.Keywords)
	assert.Equal(t, "8", d.RecipeYield)
	assert.Equal(t, "PT20M", d.PrepTime)
	require.NotNil(t, d.Nutrition)
	assert.Equal(t, "270", d.Nutrition.Calories)
	assert.Equal(t, "12.5", d.Nutrition.FatContent)
	assert.Empty(t, d.Nutrition.ProteinContent)
}

func TestMapToDraft_PolymorphicFields(t *testing.T) {
	t.Run("image string", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"image": "https://x/a.jpg"}, "")
		assert.Equal(t, "https://x/a.jpg", d.Image)
	})
	t.Run("image array of strings", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"image": []any{"https://x/1.jpg", "https://x/2.jpg"}}, "")
		assert.Equal(t, "https://x/1.jpg", d.Image)
	})
	t.Run("image object", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"image": map[string]any{"url": "https://x/o.jpg"}}, "")
		assert.Equal(t, "https://x/o.jpg", d.Image)
	})
	t.Run("image unsupported", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"image": true}, "")
		assert.Empty(t, d.Image)
	})
	t.Run("author string", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"author": "Alex"}, "")
		assert.Equal(t, "Alex", d.Author)
	})
	t.Run("instructions not an array", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"recipeInstructions": "Just cook it"}, "")
		assert.Empty(t, d.RecipeInstructions)
	})
	t.Run("name prefix not duplicated", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"recipeInstructions": []any{
			map[string]any{"name": "Preheat", "text": "Preheat the oven"},
		}}, "")
		assert.Equal(t, []string{"Preheat the oven"}, d.RecipeInstructions)
	})
	t.Run("sections flattened", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"recipeInstructions": []any{
			map[string]any{"@type": "HowToSection", "name": "Cake", "itemListElement": []any{
				map[string]any{"text": "Whisk eggs"},
				"Fold in flour",
			}},
		}}, "")
		assert.Equal(t, []string{"Whisk eggs", "Fold in flour"}, d.RecipeInstructions)
	})
	t.Run("nutrition without numbers dropped", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"nutrition": map[string]any{"calories": "lots"}}, "")
		assert.Nil(t, d.Nutrition)
	})
	t.Run("keywords scalar wrapped", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"keywords": "cake, chocolate"}, "")
		assert.Equal(t, []string{"cake, chocolate"}, d.Keywords)
	})
	t.Run("source url falls back to node url", func(t *testing.T) {
		d := jsonld.MapToDraft(map[string]any{"url": "https://example.com/r"}, "")
		assert.Equal(t, "https://example.com/r", d.SourceURL)
	})
}

func TestExtractionInstructions(t *testing.T) {
	withURL := jsonld.ExtractionInstructions("https://example.com/pie")
	assert.Contains(t, withURL, "https://example.com/pie")
	assert.Contains(t, withURL, `script[type="application/ld+json"]`)

	generic := jsonld.ExtractionInstructions("  ")
	assert.Contains(t, generic, "the recipe page")
}
