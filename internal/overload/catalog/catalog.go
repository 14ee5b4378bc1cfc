package catalog

import (
	"sort"
	"strings"
)

type Category string

const (
	CompoundLower Category = "compound-lower"
	CompoundUpper Category = "compound-upper"
	Isolation     Category = "isolation"
	Bodyweight    Category = "bodyweight"
)

func (c Category) Valid() bool {
	switch c {
	case CompoundLower, CompoundUpper, Isolation, Bodyweight:
		return true
	}
	return false
}

// UnknownMuscleGroup collects exercises no muscle rule matches.
const UnknownMuscleGroup = "unknown"

// CategoryRule maps exercise name substrings to a category.
type CategoryRule struct {
	Patterns []string
	Category Category
}

// MuscleRule maps exercise name substrings to the muscle groups the exercise trains.
type MuscleRule struct {
	Patterns []string
	Groups   []string
}

// TargetRange is a weekly working-set target for a muscle group.
type TargetRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Midpoint uses integer division.
func (t TargetRange) Midpoint() int {
	return (t.Low + t.High) / 2
}

type RepRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// Scheme is a weight x reps prescription.
type Scheme struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// Catalog holds the exercise metadata tables. Rules are evaluated in order
// and the first matching rule wins. A Catalog is never mutated after New.
type Catalog struct {
	categoryRules    []CategoryRule
	fallbackCategory Category
	muscleRules      []MuscleRule
	targets          map[string]TargetRange
	defaultTarget    TargetRange
	increments       map[Category]float64
	repRanges        map[Category]RepRange
	starters         map[Category]Scheme
	suggestions      map[string][]string
}

type Option func(c *Catalog)

// WithTargets overrides (or adds) weekly set targets per muscle group.
func WithTargets(targets map[string]TargetRange) Option {
	return func(c *Catalog) {
		for group, target := range targets {
			c.targets[strings.ToLower(group)] = target
		}
	}
}

// WithIncrements overrides the weight step per category.
func WithIncrements(increments map[Category]float64) Option {
	return func(c *Catalog) {
		for cat, inc := range increments {
			c.increments[cat] = inc
		}
	}
}

func WithCategoryRules(rules []CategoryRule) Option {
	return func(c *Catalog) {
		c.categoryRules = copyCategoryRules(rules)
	}
}

func WithMuscleRules(rules []MuscleRule) Option {
	return func(c *Catalog) {
		c.muscleRules = copyMuscleRules(rules)
	}
}

func New(opts ...Option) *Catalog {
	c := &Catalog{
		categoryRules:    copyCategoryRules(defaultCategoryRules),
		fallbackCategory: Isolation,
		muscleRules:      copyMuscleRules(defaultMuscleRules),
		targets:          copyMap(defaultTargets),
		defaultTarget:    defaultTarget,
		increments:       copyMap(defaultIncrements),
		repRanges:        copyMap(defaultRepRanges),
		starters:         copyMap(defaultStarters),
		suggestions:      make(map[string][]string, len(defaultSuggestions)),
	}
	for group, exercises := range defaultSuggestions {
		c.suggestions[group] = append([]string(nil), exercises...)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var separators = strings.NewReplacer("_", " ", "-", " ")

// Normalize lowercases the name, turns "_" and "-" into spaces and collapses
// runs of whitespace, so "Pull-Up", "pull_up" and "pull  up" resolve the same way.
func Normalize(name string) string {
	return strings.Join(strings.Fields(separators.Replace(strings.ToLower(name))), " ")
}

// Category resolves the exercise category. Unmatched names fall back to isolation.
func (c *Catalog) Category(exerciseName string) Category {
	cat, _ := c.category(Normalize(exerciseName))
	return cat
}

func (c *Catalog) category(normalized string) (Category, bool) {
	for _, rule := range c.categoryRules {
		if matchesAny(normalized, rule.Patterns) {
			return rule.Category, true
		}
	}
	return c.fallbackCategory, false
}

// MuscleGroups resolves the trained muscle groups. Unmatched names
// map to the single UnknownMuscleGroup bucket.
func (c *Catalog) MuscleGroups(exerciseName string) []string {
	groups, _ := c.muscleGroups(Normalize(exerciseName))
	return groups
}

func (c *Catalog) muscleGroups(normalized string) ([]string, bool) {
	for _, rule := range c.muscleRules {
		if matchesAny(normalized, rule.Patterns) {
			return append([]string(nil), rule.Groups...), true
		}
	}
	return []string{UnknownMuscleGroup}, false
}

// Target returns the weekly set target, or the default range for groups not in the table.
func (c *Catalog) Target(muscleGroup string) TargetRange {
	if t, ok := c.targets[strings.ToLower(muscleGroup)]; ok {
		return t
	}
	return c.defaultTarget
}

// KnownMuscleGroups lists the muscle groups with a weekly target, sorted by name.
func (c *Catalog) KnownMuscleGroups() []string {
	groups := make([]string, 0, len(c.targets))
	for group := range c.targets {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups
}

func (c *Catalog) Increment(cat Category) float64 {
	return c.increments[cat]
}

func (c *Catalog) RepRange(cat Category) RepRange {
	if r, ok := c.repRanges[cat]; ok {
		return r
	}
	return c.repRanges[Isolation]
}

func (c *Catalog) Starter(cat Category) Scheme {
	if s, ok := c.starters[cat]; ok {
		return s
	}
	return c.starters[Isolation]
}

// SuggestedExercises returns at most n exercises for the muscle group.
func (c *Catalog) SuggestedExercises(muscleGroup string, n int) []string {
	exercises := c.suggestions[strings.ToLower(muscleGroup)]
	if n < len(exercises) {
		exercises = exercises[:n]
	}
	return append([]string(nil), exercises...)
}

// patterns go through Normalize too, so overrides may be written either way
func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(name, Normalize(p)) {
			return true
		}
	}
	return false
}

func copyCategoryRules(rules []CategoryRule) []CategoryRule {
	out := make([]CategoryRule, len(rules))
	for i, r := range rules {
		out[i] = CategoryRule{
			Patterns: append([]string(nil), r.Patterns...),
			Category: r.Category,
		}
	}
	return out
}

func copyMuscleRules(rules []MuscleRule) []MuscleRule {
	out := make([]MuscleRule, len(rules))
	for i, r := range rules {
		out[i] = MuscleRule{
			Patterns: append([]string(nil), r.Patterns...),
			Groups:   append([]string(nil), r.Groups...),
		}
	}
	return out
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
