package gemini

// Schema mirrors the structured-output schema accepted by the
// generateContent endpoint's generationConfig.responseSchema field.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
}

func str() *Schema { return &Schema{Type: "STRING"} }
func num() *Schema { return &Schema{Type: "NUMBER"} }

func arr(it *Schema) *Schema { return &Schema{Type: "ARRAY", Items: it} }

func obj(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "OBJECT", Properties: props, Required: required}
}

// weeklyPlanSchema constrains the model to the exact weekly plan document
// shape, so the happy path needs no repair at all.
var weeklyPlanSchema = obj(map[string]*Schema{
	"dailyPlans": arr(obj(map[string]*Schema{
		"day":       str(),
		"breakfast": mealSchema(),
		"lunch":     mealSchema(),
		"dinner":    mealSchema(),
	}, "day", "breakfast", "lunch", "dinner")),
	"shoppingList": arr(obj(map[string]*Schema{
		"name":   str(),
		"amount": str(),
	}, "name", "amount")),
	"seasonings": arr(str()),
	"recipes": arr(obj(map[string]*Schema{
		"dishName":    str(),
		"ingredients": str(),
		"steps":       arr(str()),
	}, "dishName", "steps")),
}, "dailyPlans", "shoppingList", "seasonings", "recipes")

func mealSchema() *Schema {
	return obj(map[string]*Schema{
		"name":     str(),
		"calories": num(),
		"portion":  str(),
	}, "name", "calories", "portion")
}
