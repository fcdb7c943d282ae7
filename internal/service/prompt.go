package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/akshay-menon/recipe-flash-generator/internal/models"
	"github.com/akshay-menon/recipe-flash-generator/internal/types"
)

// Variety hint pools. These are non-binding suggestions injected to reduce
// repetition across generations; they never override an explicit special
// request or dietary constraint.
var (
	hintCuisines = []string{"Italian", "Mexican", "Asian", "Mediterranean", "American", "Indian", "Thai", "French"}
	hintProteins = []string{"chicken", "beef", "pork", "fish", "tofu", "eggs", "beans"}
	hintMethods  = []string{"pan-fried", "baked", "grilled", "stir-fried", "roasted", "sautéed"}

	veganProteins      = []string{"tofu", "beans", "lentils", "chickpeas", "tempeh"}
	vegetarianProteins = []string{"tofu", "eggs", "beans", "lentils", "paneer", "chickpeas"}
)

// recipeTemplate is the output format the completion model is instructed to
// reproduce verbatim. The parser's markers must stay in sync with it.
const recipeTemplate = `**Recipe Name:** [Creative but simple name]

**Cooking Time:** [X minutes]

**Ingredients:**
- [ingredient 1 with quantity]
- [ingredient 2 with quantity]
- [etc.]

**Instructions:**
1. [Step 1]
2. [Step 2]
3. [etc.]

**Serves:** %d people

**Nutritional Information (per serving):**
- Calories: [Calculate and provide accurate calorie estimate]
- Protein: [X]g
- Carbs: [X]g
- Fat: [X]g

Calculate the nutritional information based on the actual ingredients and quantities used. Provide realistic estimates based on standard nutritional values.`

// GenerateParams are the per-request inputs to the prompt builder.
type GenerateParams struct {
	DietaryPreference string
	NumberOfPeople    int
	SpecialRequest    string
}

// PromptBuilder assembles the instruction text sent to the completion
// endpoint. It is pure string construction; the only nondeterminism is the
// injected random source for variety hints, so tests can pass a fixed seed.
type PromptBuilder struct {
	rng *rand.Rand
}

// NewPromptBuilder creates a PromptBuilder with its own time-seeded source.
func NewPromptBuilder() *PromptBuilder {
	return NewPromptBuilderWithSource(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewPromptBuilderWithSource creates a PromptBuilder using the given random
// source for variety hints.
func NewPromptBuilderWithSource(rng *rand.Rand) *PromptBuilder {
	return &PromptBuilder{rng: rng}
}

func (b *PromptBuilder) pick(options []string) string {
	return options[b.rng.Intn(len(options))]
}

// BuildGeneratePrompt constructs the one-shot generation prompt from the
// request and, when present, the user's stored preferences.
func (b *PromptBuilder) BuildGeneratePrompt(params GenerateParams, prefs *models.UserPreferences) string {
	proteins := hintProteins
	switch params.DietaryPreference {
	case "vegan":
		proteins = veganProteins
	case "vegetarian":
		proteins = vegetarianProteins
	}

	cuisine := b.pick(hintCuisines)
	protein := b.pick(proteins)
	method := b.pick(hintMethods)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a unique %s dinner recipe featuring %s that is %s. Make this recipe different from typical recipes by being creative with the combination.\n\n", cuisine, protein, method)

	sb.WriteString("CONSTRAINTS:\n")
	sb.WriteString("- Cooking time: 30-45 minutes maximum\n")
	fmt.Fprintf(&sb, "- Serves exactly %d people\n", params.NumberOfPeople)
	switch params.DietaryPreference {
	case "vegetarian":
		sb.WriteString("- The recipe must be fully vegetarian (no meat, poultry, fish or seafood)\n")
	case "vegan":
		sb.WriteString("- The recipe must be fully vegan (no meat, fish, dairy, eggs or any animal products)\n")
	}
	sb.WriteString("- Uses only common ingredients (no exotic or hard-to-find items)\n")
	sb.WriteString("- Must include protein + vegetables + carbs for balanced nutrition\n")
	sb.WriteString("- Suitable for weekday dinner (not overly complex)\n")
	sb.WriteString("- Make this recipe unique and different from standard recipes\n")

	if clause := renderPreferences(prefs); clause != "" {
		sb.WriteString("\n")
		sb.WriteString(clause)
	}

	if req := strings.TrimSpace(params.SpecialRequest); req != "" {
		fmt.Fprintf(&sb, "\nSPECIAL REQUEST:\nIncorporate the following request while maintaining the other constraints: %s\n", req)
	}

	sb.WriteString("\nOUTPUT FORMAT:\nPlease format your response exactly like this:\n\n")
	fmt.Fprintf(&sb, recipeTemplate, params.NumberOfPeople)
	sb.WriteString("\n\nGenerate a creative and unique recipe now.")

	return sb.String()
}

// BuildChatPrompt constructs the conversational prompt. The exchange number
// selects the framing: the first exchange may clarify or generate, the
// second forces generation, and later exchanges modify the delivered recipe.
func (b *PromptBuilder) BuildChatPrompt(messages []types.ChatMessage, exchangeNumber int, userInput string) string {
	switch {
	case exchangeNumber <= 1:
		return fmt.Sprintf(`Analyze this recipe request: %s

If the request is clear enough to generate a recipe immediately, generate it using the EXACT format below.
If not, ask 1-2 specific clarifying questions to help create the recipe.
Focus on the most important missing details:

- Type of dish/component unclear? Ask for clarification
- Cooking method preferences? Ask briefly
- Dietary restrictions relevant? Check quickly

Keep questions focused and recipe-oriented. Aim to generate a recipe within 2 exchanges maximum.

If generating a recipe, use this EXACT format:

%s`, userInput, fmt.Sprintf(recipeTemplate, 2))
	case exchangeNumber == 2:
		return fmt.Sprintf(`Based on previous conversation:
%s

Now generate a complete recipe using the EXACT format below. Even if some details aren't perfect, create a good recipe that addresses the user's core request.

%s`, renderHistory(messages), fmt.Sprintf(recipeTemplate, 2))
	default:
		return fmt.Sprintf(`Based on our previous conversation:
%s

User's new request: %s

Please modify the recipe using the EXACT format below. Make the requested changes while keeping the core structure:

%s`, renderHistory(messages), userInput, fmt.Sprintf(recipeTemplate, 2))
	}
}

// BuildModifyPrompt serializes the current recipe back into the template
// shape and frames the modification request with its rule set.
func (b *PromptBuilder) BuildModifyPrompt(recipe *ParsedRecipe, modificationRequest string) string {
	var sb strings.Builder
	sb.WriteString("Here is the current recipe:\n\n")
	sb.WriteString(serializeRecipe(recipe))
	fmt.Fprintf(&sb, "\nModification request: %s\n", modificationRequest)
	sb.WriteString(`
RULES:
- Change only what the request asks for; preserve other ingredients unless they conflict
- Preserve the serving size
- Preserve the recipe structure and output format
- After the recipe, append a single line starting with "**What was modified:**" summarizing the change

Respond with the complete modified recipe in the same format as above.`)
	return sb.String()
}

// renderPreferences builds the preferences clause. Only set fields produce
// lines; an absent field is omitted entirely rather than rendered empty.
func renderPreferences(prefs *models.UserPreferences) string {
	if prefs == nil {
		return ""
	}

	var lines []string
	if len(prefs.KitchenEquipment) > 0 {
		lines = append(lines, "- Available kitchen equipment: "+strings.Join(prefs.KitchenEquipment, ", "))
	}
	if len(prefs.PreferredCuisines) > 0 {
		lines = append(lines, "- Preferred cuisines: "+strings.Join(prefs.PreferredCuisines, ", "))
	}
	if prefs.CookingExperience != "" {
		lines = append(lines, "- Cooking experience level: "+prefs.CookingExperience)
	}
	if len(prefs.ProteinPreferences) > 0 {
		lines = append(lines, "- Preferred proteins: "+strings.Join(prefs.ProteinPreferences, ", "))
	}
	if prefs.DietaryRestrictions != "" {
		lines = append(lines, "- Dietary restrictions: "+prefs.DietaryRestrictions)
	}
	if prefs.AdditionalContext != "" {
		lines = append(lines, "- Additional context: "+prefs.AdditionalContext)
	}
	if len(lines) == 0 {
		return ""
	}

	return "USER PREFERENCES (take these into account where they don't conflict with the constraints):\n" + strings.Join(lines, "\n") + "\n"
}

func renderHistory(messages []types.ChatMessage) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	return strings.Join(parts, "\n\n")
}

// serializeRecipe renders a ParsedRecipe back into the bulleted/numbered
// template shape for modification prompts.
func serializeRecipe(r *ParsedRecipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n\n", markerRecipeName, r.Name)
	fmt.Fprintf(&sb, "%s %s\n\n", markerCookingTime, r.CookingTime)
	sb.WriteString(markerIngredients + "\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&sb, "- %s\n", ing)
	}
	sb.WriteString("\n" + markerInstructions + "\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(&sb, "\n%s %s\n", markerServes, r.Serves)
	if r.HasNutrition {
		sb.WriteString("\n**Nutritional Information (per serving):**\n")
		fmt.Fprintf(&sb, "- Calories: %s\n", r.Nutrition.Calories)
		fmt.Fprintf(&sb, "- Protein: %s\n", r.Nutrition.Protein)
		fmt.Fprintf(&sb, "- Carbs: %s\n", r.Nutrition.Carbs)
		fmt.Fprintf(&sb, "- Fat: %s\n", r.Nutrition.Fat)
	}
	return sb.String()
}
