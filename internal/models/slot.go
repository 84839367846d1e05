package models

// SlotRecord is one planner cell as the backend represents it, both in
// GET /planner/week responses and as the POST /planner/slot echo.
type SlotRecord struct {
	Date     string `json:"date"`
	MealType string `json:"meal_type"`
	RecipeID *int   `json:"recipe_id"`
	Note     string `json:"note"`
}

// WeekResponse is the payload of GET /planner/week.
type WeekResponse struct {
	Days  []string     `json:"days"`
	Slots []SlotRecord `json:"slots"`
}

// SlotRequest is the body of POST /planner/slot. RecipeID nil clears the slot.
type SlotRequest struct {
	Date     string `json:"date"`
	MealType string `json:"meal_type"`
	RecipeID *int   `json:"recipe_id"`
	Note     string `json:"note"`
}
