package model

// DayFile is the top-level structure stored in each daily JSON file.
type DayFile struct {
	Date     string    `json:"date"`
	Sessions []Session `json:"sessions"`
	// StudyOverride is set when the day's study time was entered by hand.
	StudyOverride *int64 `json:"study_override,omitempty"`
	// OverrideAt is the number of sessions recorded when the override was made.
	OverrideAt int `json:"override_at,omitempty"`
}

// WeekGoal is the stored form of a weekly goal.
type WeekGoal struct {
	Week          string   `json:"week"`
	TargetSeconds int64    `json:"target_seconds"`
	Reflection    string   `json:"reflection"`
	Positive      []string `json:"positive"`
	Challenge     []string `json:"challenge"`
}

// WeeksFile holds every weekly goal.
type WeeksFile struct {
	Goals []WeekGoal `json:"goals"`
}
