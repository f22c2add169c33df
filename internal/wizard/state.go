package wizard

import "time"

// One record type per step so the answer shape is explicit instead of a
// map of maps. Empty string means the field was left unanswered; no step
// gates advancement on completeness.

// MetaStep visit details collected on step 0.
type MetaStep struct {
	RecipientID string `json:"recipient_id"`
	ReportDate  string `json:"report_date"` // "2006-01-02"
	ReportTime  string `json:"report_time"` // "15:04"
	Shift       string `json:"shift"`
}

// HygieneStep step 1 answers.
type HygieneStep struct {
	Bathing    string `json:"bathing"`
	Grooming   string `json:"grooming"`
	Continence string `json:"continence"`
}

// MobilityStep step 2 answers. Fall == TokenFell surfaces the urgent-path diversion.
type MobilityStep struct {
	WalkingAid string `json:"walking_aid"`
	Steadiness string `json:"steadiness"`
	Fall       string `json:"fall"`
}

// CognitionStep step 3 answers. Confusion == TokenConfused surfaces the diversion.
type CognitionStep struct {
	Orientation string `json:"orientation"`
	Confusion   string `json:"confusion"`
}

// NutritionStep step 4 answers.
type NutritionStep struct {
	Appetite       string `json:"appetite"`
	MealsCompleted string `json:"meals_completed"`
	Swallowing     string `json:"swallowing"`
}

// MedicationStep step 5 answers.
type MedicationStep struct {
	Taken   string `json:"taken"`
	Refused string `json:"refused"`
}

// SleepStep step 6 answers.
type SleepStep struct {
	Quality      string `json:"quality"`
	NightWakings string `json:"night_wakings"`
}

// MoodStep step 7 answers.
type MoodStep struct {
	Spirits string `json:"spirits"`
	Social  string `json:"social"`
}

// PainSkinStep step 8 answers.
type PainSkinStep struct {
	PainLevel string `json:"pain_level"`
	Skin      string `json:"skin"`
}

// StepAnswers all clinical answers nested under their step keys.
// Serialized as-is into the report's answers column.
type StepAnswers struct {
	Hygiene    HygieneStep    `json:"hygiene"`
	Mobility   MobilityStep   `json:"mobility"`
	Cognition  CognitionStep  `json:"cognition"`
	Nutrition  NutritionStep  `json:"nutrition"`
	Medication MedicationStep `json:"medication"`
	Sleep      SleepStep      `json:"sleep"`
	Mood       MoodStep       `json:"mood"`
	PainSkin   PainSkinStep   `json:"pain_skin"`
}

// DraftState full wizard state as persisted to the draft store.
type DraftState struct {
	Cursor  int         `json:"cursor"`
	Meta    MetaStep    `json:"meta"`
	Answers StepAnswers `json:"answers"`
	Notes   string      `json:"notes"`
	SavedAt time.Time   `json:"saved_at"`
}
