package catalog

// Order matters: "leg press" must be claimed by compound-lower before the
// generic "press" of compound-upper, and "leg curl" by hamstrings before "curl".
var defaultCategoryRules = []CategoryRule{
	{
		Category: Bodyweight,
		Patterns: []string{
			"push up", "pushup",
			"pull up", "pullup",
			"chin up", "chinup",
			"dip", "plank", "burpee", "bodyweight",
		},
	},
	{
		Category: CompoundLower,
		Patterns: []string{
			"squat", "deadlift", "leg press", "lunge", "hip thrust",
			"step up", "good morning", "clean", "snatch",
		},
	},
	{
		Category: Isolation,
		Patterns: []string{
			"curl", "extension", "raise", "fly", "flye",
			"pressdown", "kickback", "crossover", "shrug", "calf",
		},
	},
	{
		Category: CompoundUpper,
		Patterns: []string{"bench", "press", "row", "pulldown"},
	},
}

var defaultMuscleRules = []MuscleRule{
	{Patterns: []string{"romanian deadlift", "rdl", "stiff leg"}, Groups: []string{"hamstrings", "glutes"}},
	{Patterns: []string{"leg curl", "hamstring curl", "nordic"}, Groups: []string{"hamstrings"}},
	{Patterns: []string{"deadlift"}, Groups: []string{"back", "hamstrings", "glutes"}},
	{Patterns: []string{"squat", "lunge", "leg press", "step up"}, Groups: []string{"quadriceps", "glutes"}},
	{Patterns: []string{"leg extension"}, Groups: []string{"quadriceps"}},
	{Patterns: []string{"hip thrust", "glute bridge"}, Groups: []string{"glutes"}},
	{Patterns: []string{"calf"}, Groups: []string{"calves"}},
	{Patterns: []string{"bench", "chest press", "dumbbell press", "incline press", "push up", "pushup", "dip"}, Groups: []string{"chest", "triceps"}},
	{Patterns: []string{"fly", "flye", "crossover"}, Groups: []string{"chest"}},
	{Patterns: []string{"overhead press", "shoulder press", "military press", "ohp"}, Groups: []string{"shoulders", "triceps"}},
	{Patterns: []string{"lateral raise", "rear delt", "face pull"}, Groups: []string{"shoulders"}},
	{Patterns: []string{"pull up", "pullup", "chin up", "chinup", "pulldown", "row"}, Groups: []string{"back", "biceps"}},
	{Patterns: []string{"curl"}, Groups: []string{"biceps"}},
	{Patterns: []string{"tricep", "pressdown", "skull crusher", "kickback"}, Groups: []string{"triceps"}},
	{Patterns: []string{"shrug"}, Groups: []string{"traps"}},
	{Patterns: []string{"crunch", "plank", "sit up", "leg raise", "ab wheel"}, Groups: []string{"core"}},
}

var defaultTargets = map[string]TargetRange{
	"chest":      {Low: 10, High: 20},
	"back":       {Low: 10, High: 20},
	"quadriceps": {Low: 8, High: 18},
	"hamstrings": {Low: 8, High: 16},
	"glutes":     {Low: 6, High: 16},
	"shoulders":  {Low: 8, High: 18},
	"biceps":     {Low: 6, High: 14},
	"triceps":    {Low: 6, High: 14},
	"calves":     {Low: 8, High: 16},
	"core":       {Low: 6, High: 16},
	"traps":      {Low: 4, High: 12},
}

var defaultTarget = TargetRange{Low: 8, High: 16}

// kg per step; a zero step means progress by reps
var defaultIncrements = map[Category]float64{
	CompoundLower: 5.0,
	CompoundUpper: 2.5,
	Isolation:     1.25,
	Bodyweight:    0,
}

var defaultRepRanges = map[Category]RepRange{
	CompoundLower: {Low: 5, High: 8},
	CompoundUpper: {Low: 6, High: 10},
	Isolation:     {Low: 10, High: 15},
	Bodyweight:    {Low: 8, High: 15},
}

var defaultStarters = map[Category]Scheme{
	CompoundLower: {Weight: 60, Reps: 5},
	CompoundUpper: {Weight: 40, Reps: 8},
	Isolation:     {Weight: 10, Reps: 12},
	Bodyweight:    {Weight: 0, Reps: 8},
}

var defaultSuggestions = map[string][]string{
	"chest":      {"Bench Press", "Incline Dumbbell Press"},
	"back":       {"Barbell Row", "Pull Up"},
	"quadriceps": {"Back Squat", "Leg Press"},
	"hamstrings": {"Romanian Deadlift", "Leg Curl"},
	"glutes":     {"Hip Thrust", "Bulgarian Split Squat"},
	"shoulders":  {"Overhead Press", "Lateral Raise"},
	"biceps":     {"Barbell Curl", "Hammer Curl"},
	"triceps":    {"Tricep Pressdown", "Skull Crusher"},
	"calves":     {"Standing Calf Raise", "Seated Calf Raise"},
	"core":       {"Plank", "Cable Crunch"},
	"traps":      {"Barbell Shrug", "Dumbbell Shrug"},
}
