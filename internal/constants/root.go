package constants

// MealType identifies one of the three daily planner rows
type MealType string

// RecipeSource identifies which catalog a recipe came from
type RecipeSource string

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName          = "mealgrid"
	DefaultCachePath = "~/.config/mealgrid/mealgrid.db"
	DefaultServerURL = "http://localhost:8000"
	Version          = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat is the short form used in grid headers (day/month)
	DisplayDateFormat = "2/1"

	// DaysPerWeek is the span of one planner window
	DaysPerWeek = 7

	// SlotsPerWeek is the number of cells in one planner window (7 days x 3 meals)
	SlotsPerWeek = DaysPerWeek * 3

	// Meal type constants
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"

	// Recipe source constants
	SourceStudent RecipeSource = "student"
	SourceGym     RecipeSource = "gym"
	SourceUnknown RecipeSource = ""
)

// Session states
const (
	StateCatalog SessionState = iota
	StateGrid
	StateDragging
	StateConfirmClear
)

// MealTypes lists the planner rows in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

// IsValidMealType reports whether s names a known planner row.
func IsValidMealType(s string) bool {
	switch MealType(s) {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// MealLabel returns the display label for a meal type.
func MealLabel(m MealType) string {
	switch m {
	case MealBreakfast:
		return "Breakfast"
	case MealLunch:
		return "Lunch"
	case MealDinner:
		return "Dinner"
	default:
		return string(m)
	}
}
