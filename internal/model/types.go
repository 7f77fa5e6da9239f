package model

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "sedentary"
	ActivityLow       ActivityLevel = "low"
	ActivityModerate  ActivityLevel = "moderate"
	ActivityHigh      ActivityLevel = "high"
)

type DietGoal string

const (
	GoalLoseWeight DietGoal = "lose-weight"
	GoalFatLoss    DietGoal = "fat-loss"
	GoalMuscleGain DietGoal = "muscle-gain"
)

type DietMode string

const (
	// ModeBuying plans around fresh groceries to purchase.
	ModeBuying DietMode = "buy"
	// ModeFridge plans around ingredients the user already owns.
	ModeFridge DietMode = "fridge"
)

type Profile struct {
	Age           int           `json:"age"`
	WeightKg      float64       `json:"weightKg"`
	HeightCm      float64       `json:"heightCm"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          DietGoal      `json:"goal"`
	Dislikes      string        `json:"dislikes"`
}

// HealthMetrics is always derived from a Profile, never stored.
type HealthMetrics struct {
	BMI            float64
	BMICategory    string
	BMR            float64
	TDEE           float64
	TargetCalories int
}

// DietConfig holds the per-request planning options. It lives only for the
// duration of one generation request.
type DietConfig struct {
	Mode                DietMode
	FlavorPreference    []string
	StaplePreference    string
	WantedIngredients   string
	ExistingIngredients string
	AllowRepetition     bool
	// MaxIngredients caps the shopping-list entry count; 0 means unlimited.
	MaxIngredients int
}

type CustomProvider struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BaseURL string `json:"baseUrl"`
	Model   string `json:"model"`
	APIKey  string `json:"apiKey"`
}

// ProviderSettings is the current provider-settings document shape. Exactly
// one provider id is selected at a time; built-in providers need only a key,
// custom providers must be fully specified before use.
type ProviderSettings struct {
	SelectedID      string            `json:"selectedId"`
	BuiltinKeys     map[string]string `json:"builtinKeys"`
	CustomProviders []CustomProvider  `json:"customProviders"`
}

type Meal struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Portion  string  `json:"portion"`
}

type DailyPlan struct {
	Day       string `json:"day"`
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
}

type ShoppingItem struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type Recipe struct {
	DishName    string   `json:"dishName"`
	Ingredients string   `json:"ingredients,omitempty"`
	Steps       []string `json:"steps"`
}

// WeeklyPlan is the output contract decoded from the provider response.
type WeeklyPlan struct {
	DailyPlans   []DailyPlan    `json:"dailyPlans"`
	ShoppingList []ShoppingItem `json:"shoppingList"`
	Seasonings   []string       `json:"seasonings"`
	Recipes      []Recipe       `json:"recipes"`
}

// NutritionFact is a static per-100g reference entry. The knowledge base is
// loaded once and never mutated.
type NutritionFact struct {
	Name     string
	Aliases  []string
	Calories float64
	ProteinG float64
	FatG     float64
	CarbsG   float64
	Note     string
}
