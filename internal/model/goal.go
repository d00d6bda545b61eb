package model

// Goal is the user's long-term objective. It is always replaced wholesale.
type Goal struct {
	PrimaryGoal            string `json:"primaryGoal"`
	SecondaryGoals         string `json:"secondaryGoals,omitempty"`
	Industry               string `json:"industry,omitempty"`
	SkillsFocus            string `json:"skillsFocus,omitempty"`
	DefaultLearningMinutes *int   `json:"defaultLearningMinutes,omitempty"`
}

// IsZero reports whether no goal has been set.
func (g Goal) IsZero() bool {
	return g.PrimaryGoal == ""
}

// Profile holds display and locale details for the user.
type Profile struct {
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// ProfileUpdate is merged field-by-field into a Profile. Nil fields keep
// their previous value.
type ProfileUpdate struct {
	FullName *string
	Timezone *string
}

// Availability is the time budget the user declared for one day.
type Availability struct {
	Date             string `json:"date"`
	MinutesAvailable int    `json:"minutesAvailable"`
}

// Availability bounds accepted by the settings form.
const (
	MinAvailabilityMinutes = 30
	MaxAvailabilityMinutes = 600
)
