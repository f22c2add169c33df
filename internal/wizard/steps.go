package wizard

// Step indexes. Step 0 collects the meta fields (recipient, date, time,
// shift); steps 1..8 are the clinical checklist. The sequence is fixed.
const (
	StepMeta = iota
	StepHygiene
	StepMobility
	StepCognition
	StepNutrition
	StepMedication
	StepSleep
	StepMood
	StepPainSkin

	StepCount = 9
	LastStep  = StepCount - 1
)

// Shift tokens for the meta step.
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"

	DefaultShift = ShiftMorning
)

// Mobility fall-question tokens. TokenFell diverts to the urgent path.
const (
	FallNone     = "no_fall"
	FallStumbled = "stumbled"
	TokenFell    = "fell"
)

// Cognition confusion-question tokens. TokenConfused diverts to the urgent path.
const (
	CognitionClear = "clear"
	CognitionMild  = "mild_disorientation"
	TokenConfused  = "confused"
)

// FieldDef describes one input of a step for the front-end.
type FieldDef struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"` // empty for free text
}

// StepDef fixed title/description/fields of one wizard step.
type StepDef struct {
	Index       int        `json:"index"`
	Key         string     `json:"key"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Fields      []FieldDef `json:"fields"`
}

// Steps is the fixed ordered sequence served on /care/api/v1/wizard/steps.
var Steps = []StepDef{
	{
		Index: StepMeta, Key: "meta", Title: "Visit details",
		Description: "Who you cared for today, and when.",
		Fields: []FieldDef{
			{Name: "recipient_id", Label: "Care recipient"},
			{Name: "report_date", Label: "Date"},
			{Name: "report_time", Label: "Time"},
			{Name: "shift", Label: "Shift", Options: []string{ShiftMorning, ShiftAfternoon, ShiftNight}},
		},
	},
	{
		Index: StepHygiene, Key: "hygiene", Title: "Hygiene",
		Description: "Bathing, grooming and continence.",
		Fields: []FieldDef{
			{Name: "bathing", Label: "Bathing", Options: []string{"independent", "assisted", "refused"}},
			{Name: "grooming", Label: "Grooming", Options: []string{"independent", "assisted", "refused"}},
			{Name: "continence", Label: "Continence", Options: []string{"continent", "occasional", "incontinent"}},
		},
	},
	{
		Index: StepMobility, Key: "mobility", Title: "Mobility",
		Description: "Walking, steadiness, and any falls today.",
		Fields: []FieldDef{
			{Name: "walking_aid", Label: "Walking aid", Options: []string{"none", "cane", "walker", "wheelchair"}},
			{Name: "steadiness", Label: "Steadiness", Options: []string{"steady", "unsteady"}},
			{Name: "fall", Label: "Did a fall happen today?", Options: []string{FallNone, FallStumbled, TokenFell}},
		},
	},
	{
		Index: StepCognition, Key: "cognition", Title: "Cognition",
		Description: "Orientation and episodes of confusion.",
		Fields: []FieldDef{
			{Name: "orientation", Label: "Orientation", Options: []string{"oriented", "partially_oriented", "disoriented"}},
			{Name: "confusion", Label: "Confusion today?", Options: []string{CognitionClear, CognitionMild, TokenConfused}},
		},
	},
	{
		Index: StepNutrition, Key: "nutrition", Title: "Nutrition",
		Description: "Appetite, meals and swallowing.",
		Fields: []FieldDef{
			{Name: "appetite", Label: "Appetite", Options: []string{"good", "reduced", "poor"}},
			{Name: "meals_completed", Label: "Meals completed", Options: []string{"all", "partial", "none"}},
			{Name: "swallowing", Label: "Swallowing difficulty", Options: []string{"none", "mild", "severe"}},
		},
	},
	{
		Index: StepMedication, Key: "medication", Title: "Medication",
		Description: "Whether scheduled medication was taken.",
		Fields: []FieldDef{
			{Name: "taken", Label: "Medication taken", Options: []string{"all", "partial", "none"}},
			{Name: "refused", Label: "Any refusals?", Options: []string{"no", "yes"}},
		},
	},
	{
		Index: StepSleep, Key: "sleep", Title: "Sleep",
		Description: "Last night's sleep quality.",
		Fields: []FieldDef{
			{Name: "quality", Label: "Sleep quality", Options: []string{"good", "restless", "poor"}},
			{Name: "night_wakings", Label: "Night wakings", Options: []string{"none", "once", "several"}},
		},
	},
	{
		Index: StepMood, Key: "mood", Title: "Mood & social",
		Description: "Spirits and engagement with others.",
		Fields: []FieldDef{
			{Name: "spirits", Label: "Spirits", Options: []string{"good", "flat", "low"}},
			{Name: "social", Label: "Social engagement", Options: []string{"engaged", "withdrawn"}},
		},
	},
	{
		Index: StepPainSkin, Key: "pain_skin", Title: "Pain & skin",
		Description: "Pain complaints and skin condition.",
		Fields: []FieldDef{
			{Name: "pain_level", Label: "Pain", Options: []string{"none", "mild", "moderate", "severe"}},
			{Name: "skin", Label: "Skin condition", Options: []string{"intact", "redness", "wound"}},
		},
	},
}
