package model

// DietaryPreferences is stored as JSON on the profile and also accepted
// inline by the recommendations endpoint.
type DietaryPreferences struct {
	Allergies    []string `json:"allergies"`
	Restrictions []string `json:"restrictions"`
	MaxBudget    *float64 `json:"maxBudget,omitempty"`
}

func (p DietaryPreferences) Empty() bool {
	return len(p.Allergies) == 0 && len(p.Restrictions) == 0 && p.MaxBudget == nil
}

type Profile struct {
	UserID       string             `json:"user_id"`
	DisplayName  string             `json:"display_name"`
	AvatarURL    string             `json:"avatar_url,omitempty"`
	Neighborhood string             `json:"neighborhood,omitempty"`
	Nationality  string             `json:"nationality,omitempty"`
	Preferences  DietaryPreferences `json:"dietary_preferences"`
}
