package types

// ChatMessage is a single turn in the recipe conversation
type ChatMessage struct {
	Role      string `json:"role" binding:"required,oneof=user assistant"`
	Content   string `json:"content" binding:"required"`
	Timestamp string `json:"timestamp"`
}

// GenerateRequest represents the request body for one-shot recipe generation
type GenerateRequest struct {
	DietaryPreference string `json:"dietaryPreference" binding:"required,oneof=non-vegetarian vegetarian vegan"`
	NumberOfPeople    string `json:"numberOfPeople" binding:"required"`
	SpecialRequest    string `json:"specialRequest"`
	UserID            string `json:"userId"`
}

// ChatRequest represents the request body for the conversational flow
type ChatRequest struct {
	Messages       []ChatMessage `json:"messages"`
	UserInput      string        `json:"userInput" binding:"required"`
	ExchangeNumber int           `json:"exchangeNumber" binding:"required,min=1"`
	ConversationID string        `json:"conversationId"`
}

// SaveRecipeRequest represents the request body for saving a recipe
type SaveRecipeRequest struct {
	RecipeName   string            `json:"recipe_name" binding:"required"`
	CookingTime  string            `json:"cooking_time"`
	Serves       string            `json:"serves"`
	Ingredients  []string          `json:"ingredients" binding:"required"`
	Instructions []string          `json:"instructions" binding:"required"`
	Nutrition    *NutritionPayload `json:"nutrition"`
	ImageURL     string            `json:"image_url"`
}

// NutritionPayload carries the per-serving nutrition strings as emitted by
// the model; the server never parses or recomputes them.
type NutritionPayload struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
}

// UpdatePreferencesRequest represents the request body for upserting a
// user's cooking preferences. Nil pointers leave the stored value untouched.
type UpdatePreferencesRequest struct {
	Name                *string  `json:"name"`
	ProfileEmoji        *string  `json:"profile_emoji"`
	KitchenEquipment    []string `json:"kitchen_equipment"`
	PreferredCuisines   []string `json:"preferred_cuisines"`
	CookingExperience   *string  `json:"cooking_experience"`
	ProteinPreferences  []string `json:"protein_preferences"`
	DietaryRestrictions *string  `json:"dietary_restrictions"`
	AdditionalContext   *string  `json:"additional_context"`
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
