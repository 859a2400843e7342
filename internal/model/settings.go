package model

// UserSettings holds the daily targets of the logged-in user.
type UserSettings struct {
	// BasalMetabolism is the daily calorie target in kcal
	BasalMetabolism int `json:"basal_metabolism"`

	// ProteinGoal is grams per day
	ProteinGoal float64 `json:"protein_goal"`

	// CarbsGoal is grams per day
	CarbsGoal float64 `json:"carbs_goal"`

	// FatGoal is grams per day
	FatGoal float64 `json:"fat_goal"`
}

// DefaultBasalMetabolism is used until the API returns the user's settings.
const DefaultBasalMetabolism = 1770

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() UserSettings {
	return UserSettings{BasalMetabolism: DefaultBasalMetabolism}
}

// DailyTotals is the sum of scaled macros over one day. It is always derived.
type DailyTotals struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
}

// MacroMass returns protein+carbs+fat in grams.
func (t DailyTotals) MacroMass() float64 {
	return t.TotalProtein + t.TotalCarbs + t.TotalFat
}
