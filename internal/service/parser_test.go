package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedResponse = `**Recipe Name:** Honey Garlic Chicken with Rice

**Cooking Time:** 35 minutes

**Ingredients:**
- 2 chicken breasts (boneless, skinless)
- 1 cup jasmine rice
- 3 tablespoons honey
- 4 cloves garlic (minced)

**Instructions:**
1. Cook jasmine rice according to package instructions.
2. Season chicken breasts with salt and pepper.
3. Cook chicken for 6-7 minutes per side until golden brown.
4. Add honey and garlic, simmer until thickened.

**Serves:** 2 people

**Nutritional Information (per serving):**
- Calories: 520 calories
- Protein: 42g
- Carbs: 58g
- Fat: 12g`

func TestParse_WellFormedResponse(t *testing.T) {
	recipe := Parse(wellFormedResponse)

	assert.Equal(t, "Honey Garlic Chicken with Rice", recipe.Name)
	assert.Equal(t, "35 minutes", recipe.CookingTime)
	assert.Equal(t, "2 people", recipe.Serves)

	require.Len(t, recipe.Ingredients, 4)
	assert.Equal(t, "2 chicken breasts (boneless, skinless)", recipe.Ingredients[0])
	assert.Equal(t, "4 cloves garlic (minced)", recipe.Ingredients[3])

	require.Len(t, recipe.Instructions, 4)
	assert.Equal(t, "Cook jasmine rice according to package instructions.", recipe.Instructions[0])
	assert.Equal(t, "Add honey and garlic, simmer until thickened.", recipe.Instructions[3])

	assert.True(t, recipe.HasNutrition)
	assert.Equal(t, "520 calories", recipe.Nutrition.Calories)
	assert.Equal(t, "42g", recipe.Nutrition.Protein)
	assert.Equal(t, "58g", recipe.Nutrition.Carbs)
	assert.Equal(t, "12g", recipe.Nutrition.Fat)
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(wellFormedResponse)
	second := Parse(wellFormedResponse)
	assert.Equal(t, first, second)
}

func TestParse_TolerantOfProse(t *testing.T) {
	noisy := "Here's a wonderful dinner idea for you!\n\n" +
		wellFormedResponse +
		"\n\nEnjoy your meal! Let me know if you'd like any variations."

	recipe := Parse(noisy)
	assert.Equal(t, "Honey Garlic Chicken with Rice", recipe.Name)
	assert.Len(t, recipe.Ingredients, 4)
	assert.Len(t, recipe.Instructions, 4)
}

func TestParse_MissingNutritionDefaults(t *testing.T) {
	response := `**Recipe Name:** Quick Pasta

**Cooking Time:** 20 minutes

**Ingredients:**
- 200g spaghetti
- 2 cloves garlic

**Instructions:**
1. Boil the pasta.
2. Toss with garlic and oil.

**Serves:** 2 people`

	recipe := Parse(response)
	assert.False(t, recipe.HasNutrition)
	assert.Equal(t, DefaultNutrition, recipe.Nutrition.Calories)
	assert.Equal(t, DefaultNutrition, recipe.Nutrition.Protein)
	assert.Equal(t, DefaultNutrition, recipe.Nutrition.Carbs)
	assert.Equal(t, DefaultNutrition, recipe.Nutrition.Fat)
}

func TestParse_AllScalarDefaults(t *testing.T) {
	recipe := Parse("The model went completely off script here.")

	assert.Equal(t, DefaultRecipeName, recipe.Name)
	assert.Equal(t, DefaultCookingTime, recipe.CookingTime)
	assert.Equal(t, DefaultServes, recipe.Serves)
	assert.Empty(t, recipe.Ingredients)
	assert.Empty(t, recipe.Instructions)
}

func TestParse_ModificationNote(t *testing.T) {
	response := wellFormedResponse + "\n\n**What was modified:** Replaced butter with olive oil to make it dairy-free."

	recipe := Parse(response)
	assert.Equal(t, "Replaced butter with olive oil to make it dairy-free.", recipe.ModificationNote)
	// The note must not leak into the recipe body.
	for _, ing := range recipe.Ingredients {
		assert.NotContains(t, ing, "modified")
	}
	assert.Len(t, recipe.Instructions, 4)
}

func TestParseRecipe_ClarifyingQuestionIsNil(t *testing.T) {
	question := "What kind of cuisine are you in the mood for? And do you have any dietary restrictions I should know about?"
	assert.Nil(t, ParseRecipe(question))
}

func TestParseRecipe_EmptySectionsAreNil(t *testing.T) {
	// All three markers present but no actual list items.
	hollow := "**Recipe Name:** Mystery Dish\n\n**Ingredients:**\n\n**Instructions:**\n"
	assert.Nil(t, ParseRecipe(hollow))
}

func TestParseRecipe_WellFormedResponse(t *testing.T) {
	recipe := ParseRecipe(wellFormedResponse)
	require.NotNil(t, recipe)
	assert.Equal(t, "Honey Garlic Chicken with Rice", recipe.Name)
}

func TestContainsRecipe(t *testing.T) {
	assert.True(t, ContainsRecipe(wellFormedResponse))
	assert.False(t, ContainsRecipe("Could you tell me more about what you'd like to cook?"))
	assert.False(t, ContainsRecipe("**Recipe Name:** Something\n**Ingredients:**\n- salt"))
}

func TestExtractRecipeName(t *testing.T) {
	assert.Equal(t, "Honey Garlic Chicken with Rice", ExtractRecipeName(wellFormedResponse))
	assert.Equal(t, DefaultRecipeName, ExtractRecipeName("no markers here"))
}
