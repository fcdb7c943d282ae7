package service

import (
	"regexp"
	"strings"
)

// Fallback values used when the model response omits a field.
const (
	DefaultRecipeName  = "Delicious Recipe"
	DefaultCookingTime = "30-45 minutes"
	DefaultServes      = "2 people"
	DefaultNutrition   = "N/A"
)

// Section markers emitted by the completion model when it follows the
// requested output format.
const (
	markerRecipeName   = "**Recipe Name:**"
	markerCookingTime  = "**Cooking Time:**"
	markerServes       = "**Serves:**"
	markerNutrition    = "**Nutritional Information"
	markerIngredients  = "**Ingredients:**"
	markerInstructions = "**Instructions:**"
	markerModified     = "**What was modified:**"
)

var (
	recipeNameRe = regexp.MustCompile(`\*\*Recipe Name:\*\*\s*(.+)`)
	stepNumberRe = regexp.MustCompile(`^(\d+)\.\s*(.*)`)
)

// NutritionInfo holds the per-serving nutrition strings of a parsed recipe.
// Values are carried exactly as the model emitted them; no arithmetic is
// ever performed on them.
type NutritionInfo struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// ParsedRecipe is the structured form of a completion response. It lives
// only until the next generation supersedes it, or until the user saves it.
type ParsedRecipe struct {
	Name             string        `json:"name"`
	CookingTime      string        `json:"cooking_time"`
	Serves           string        `json:"serves"`
	Nutrition        NutritionInfo `json:"nutrition"`
	HasNutrition     bool          `json:"has_nutrition"`
	Ingredients      []string      `json:"ingredients"`
	Instructions     []string      `json:"instructions"`
	ModificationNote string        `json:"modification_note,omitempty"`
	ImageURL         string        `json:"image_url,omitempty"`
}

// ContainsRecipe reports whether the raw response text carries all three
// structural markers. It is the cheap signal that the model returned a
// recipe rather than a clarifying question, and gates image generation.
func ContainsRecipe(text string) bool {
	return strings.Contains(text, markerRecipeName) &&
		strings.Contains(text, markerIngredients) &&
		strings.Contains(text, markerInstructions)
}

// ExtractRecipeName pulls the recipe name from the first name marker in the
// text, falling back to a generic name when absent.
func ExtractRecipeName(text string) string {
	if m := recipeNameRe.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}
	return DefaultRecipeName
}

// parser sections for the line scanner
type section int

const (
	sectionNone section = iota
	sectionNutrition
	sectionIngredients
	sectionInstructions
)

// Parse converts raw completion text into a ParsedRecipe. It is a single
// forward pass over the lines with a current-section flag; lines matching
// nothing are ignored so the model's prose asides never break extraction.
// Every scalar field defaults independently when never set, so Parse always
// returns a usable record.
func Parse(text string) *ParsedRecipe {
	recipe := &ParsedRecipe{}
	current := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, markerRecipeName):
			recipe.Name = strings.TrimSpace(strings.TrimPrefix(line, markerRecipeName))
			current = sectionNone
			continue
		case strings.HasPrefix(line, markerCookingTime):
			recipe.CookingTime = strings.TrimSpace(strings.TrimPrefix(line, markerCookingTime))
			current = sectionNone
			continue
		case strings.HasPrefix(line, markerServes):
			recipe.Serves = strings.TrimSpace(strings.TrimPrefix(line, markerServes))
			current = sectionNone
			continue
		case strings.HasPrefix(line, markerModified):
			recipe.ModificationNote = strings.TrimSpace(strings.TrimPrefix(line, markerModified))
			current = sectionNone
			continue
		case strings.HasPrefix(line, markerNutrition):
			current = sectionNutrition
			continue
		case strings.HasPrefix(line, markerIngredients):
			current = sectionIngredients
			continue
		case strings.HasPrefix(line, markerInstructions):
			current = sectionInstructions
			continue
		}

		switch current {
		case sectionNutrition:
			value := strings.TrimSpace(strings.TrimPrefix(line, "-"))
			switch {
			case strings.HasPrefix(value, "Calories:"):
				recipe.Nutrition.Calories = strings.TrimSpace(strings.TrimPrefix(value, "Calories:"))
				recipe.HasNutrition = true
			case strings.HasPrefix(value, "Protein:"):
				recipe.Nutrition.Protein = strings.TrimSpace(strings.TrimPrefix(value, "Protein:"))
				recipe.HasNutrition = true
			case strings.HasPrefix(value, "Carbs:"):
				recipe.Nutrition.Carbs = strings.TrimSpace(strings.TrimPrefix(value, "Carbs:"))
				recipe.HasNutrition = true
			case strings.HasPrefix(value, "Fat:"):
				recipe.Nutrition.Fat = strings.TrimSpace(strings.TrimPrefix(value, "Fat:"))
				recipe.HasNutrition = true
			}
		case sectionIngredients:
			if strings.HasPrefix(line, "-") {
				item := strings.TrimSpace(strings.TrimPrefix(line, "-"))
				if item != "" {
					recipe.Ingredients = append(recipe.Ingredients, item)
				}
			}
		case sectionInstructions:
			if m := stepNumberRe.FindStringSubmatch(line); m != nil {
				step := strings.TrimSpace(m[2])
				if step != "" {
					recipe.Instructions = append(recipe.Instructions, step)
				}
			}
		}
	}

	applyDefaults(recipe)
	return recipe
}

// ParseRecipe is the chat-mode variant of Parse: it returns nil unless the
// text yielded a name, at least one ingredient and at least one instruction.
// A nil result means the model asked a clarifying question instead of
// producing a recipe.
func ParseRecipe(text string) *ParsedRecipe {
	if !ContainsRecipe(text) {
		return nil
	}
	m := recipeNameRe.FindStringSubmatch(text)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return nil
	}
	recipe := Parse(text)
	if len(recipe.Ingredients) == 0 || len(recipe.Instructions) == 0 {
		return nil
	}
	return recipe
}

func applyDefaults(r *ParsedRecipe) {
	if r.Name == "" {
		r.Name = DefaultRecipeName
	}
	if r.CookingTime == "" {
		r.CookingTime = DefaultCookingTime
	}
	if r.Serves == "" {
		r.Serves = DefaultServes
	}
	if r.Nutrition.Calories == "" {
		r.Nutrition.Calories = DefaultNutrition
	}
	if r.Nutrition.Protein == "" {
		r.Nutrition.Protein = DefaultNutrition
	}
	if r.Nutrition.Carbs == "" {
		r.Nutrition.Carbs = DefaultNutrition
	}
	if r.Nutrition.Fat == "" {
		r.Nutrition.Fat = DefaultNutrition
	}
}
