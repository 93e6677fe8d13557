// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package recommend

// Scoring data tables. Stages look values up here instead of branching on
// enumeration values, so new values only need a table entry.

// AgeOrdinal positions each age group on the age axis; adjacency is
// measured as ordinal distance.
var AgeOrdinal = map[AgeGroup]int{
	AgeKids:    0,
	AgeTeens:   1,
	AgeAdults:  2,
	AgeSeniors: 3,
}

// AgeDistanceScore maps ordinal distance between visitor and target age
// groups to a score.
var AgeDistanceScore = map[int]float64{
	0: 1.0,
	1: 0.5,
}

// AgeStamina is the baseline energy of each age group.
var AgeStamina = map[AgeGroup]float64{
	AgeKids:    0.8,
	AgeTeens:   0.9,
	AgeAdults:  0.7,
	AgeSeniors: 0.5,
}

// EnergyMultiplier scales stamina by the self-reported energy level.
var EnergyMultiplier = map[Level]float64{
	LevelLow:    0.8,
	LevelMedium: 1.0,
	LevelHigh:   1.2,
}

// LevelValue maps the three-step scale onto [0, 1].
var LevelValue = map[Level]float64{
	LevelLow:    0.2,
	LevelMedium: 0.5,
	LevelHigh:   0.8,
}

// SlotProfile holds the per-time-slot planning constants.
type SlotProfile struct {
	// BudgetMinutes is the default tour length.
	BudgetMinutes int
	// WindowMinutes is the upper edge of the preferred per-exhibit duration
	// window [0, WindowMinutes]; the midpoint scores best.
	WindowMinutes float64
	// CrowdTolerance is the assumed tolerance for busy exhibits.
	CrowdTolerance float64
	// EnergyBonus is added to the visitor's energy.
	EnergyBonus float64
}

// Slots maps each time slot to its planning constants.
var Slots = map[TimeSlot]SlotProfile{
	SlotMorning:   {BudgetMinutes: 120, WindowMinutes: 40, CrowdTolerance: 0.8, EnergyBonus: 0.05},
	SlotAfternoon: {BudgetMinutes: 180, WindowMinutes: 50, CrowdTolerance: 0.5},
	SlotFullDay:   {BudgetMinutes: 300, WindowMinutes: 80, CrowdTolerance: 0.6},
}

// LearningAffinity scores how well an exhibit's interaction type suits a
// learning style.
var LearningAffinity = map[LearningStyle]map[InteractionType]float64{
	StyleVisual: {
		InteractionVisual: 1.0, InteractionHandsOn: 0.7, InteractionAudio: 0.8, InteractionDigital: 0.9,
	},
	StyleHandsOn: {
		InteractionHandsOn: 1.0, InteractionVisual: 0.6, InteractionAudio: 0.4, InteractionDigital: 0.8,
	},
	StyleInteractive: {
		InteractionHandsOn: 1.0, InteractionDigital: 1.0, InteractionVisual: 0.8, InteractionAudio: 0.6,
	},
	StylePassive: {
		InteractionVisual: 1.0, InteractionAudio: 1.0, InteractionDigital: 0.7, InteractionHandsOn: 0.4,
	},
}

// DifficultyIntensity is the effort an exhibit demands by difficulty.
var DifficultyIntensity = map[Difficulty]float64{
	DifficultyBeginner:     0.3,
	DifficultyIntermediate: 0.6,
	DifficultyAdvanced:     0.9,
}

// InteractionIntensity is the effort an exhibit demands by engagement mode.
var InteractionIntensity = map[InteractionType]float64{
	InteractionHandsOn: 0.9,
	InteractionDigital: 0.7,
	InteractionVisual:  0.4,
	InteractionAudio:   0.3,
}

// WalkingFactorByAge scales walking speed by age group.
var WalkingFactorByAge = map[AgeGroup]float64{
	AgeKids:    0.7,
	AgeTeens:   1.2,
	AgeAdults:  1.0,
	AgeSeniors: 0.6,
}

// WalkingFactorByGroup scales walking speed by group type.
var WalkingFactorByGroup = map[GroupType]float64{
	GroupIndividual: 1.1,
	GroupFamily:     0.8,
	GroupSchool:     0.9,
	GroupTourist:    1.0,
}

// RestIntervalByAge is the visit time in minutes after which a rest is planned.
var RestIntervalByAge = map[AgeGroup]int{
	AgeKids:    60,
	AgeSeniors: 45,
}

// RelatedInterests expands an interest with neighboring topics.
var RelatedInterests = map[string][]string{
	"science":    {"technology", "experiments", "discovery", "innovation"},
	"history":    {"culture", "heritage", "archaeology", "civilization"},
	"art":        {"creativity", "design", "culture", "aesthetics"},
	"nature":     {"environment", "animals", "conservation", "ecology"},
	"technology": {"innovation", "future", "digital", "automation"},
	"space":      {"astronomy", "planets", "exploration", "cosmos"},
	"animals":    {"wildlife", "conservation", "nature", "zoology"},
	"music":      {"culture", "performance", "arts", "entertainment"},
	"sports":     {"fitness", "competition", "health", "athletics"},
	"food":       {"culture", "nutrition", "cooking", "gastronomy"},
}

// InterestCategories maps an interest to the catalog categories it implies.
var InterestCategories = map[string][]Category{
	"science":     {CategoryPhysics, CategoryChemistry, CategoryBiology, CategoryAstronomy},
	"physics":     {CategoryPhysics},
	"chemistry":   {CategoryChemistry},
	"biology":     {CategoryBiology, CategoryMarineBiology},
	"technology":  {CategoryEngineering, CategoryAstronomy},
	"robotics":    {CategoryEngineering},
	"engineering": {CategoryEngineering},
	"coding":      {CategoryEngineering},
	"art":         {CategoryArt},
	"design":      {CategoryArt},
	"history":     {CategoryHistory, CategoryPaleontology},
	"dinosaurs":   {CategoryPaleontology},
	"fossils":     {CategoryPaleontology},
	"nature":      {CategoryBiology, CategoryMarineBiology},
	"animals":     {CategoryBiology, CategoryMarineBiology, CategoryPaleontology},
	"ocean":       {CategoryMarineBiology},
	"space":       {CategoryAstronomy},
	"astronomy":   {CategoryAstronomy},
	"math":        {CategoryMathematics},
	"mathematics": {CategoryMathematics},
}

// LearningStyleKeywords infers a learning style from interests. Entries are
// checked in order; the first keyword found wins.
var LearningStyleKeywords = []struct {
	Style    LearningStyle
	Keywords []string
}{
	{StyleHandsOn, []string{"hands-on", "experiments", "building", "creating"}},
	{StyleVisual, []string{"art", "design", "visual", "observation"}},
	{StyleInteractive, []string{"technology", "programming", "digital", "virtual"}},
}

// StepFreeNeeds are accessibility needs that require step-free exhibits.
var StepFreeNeeds = map[string]struct{}{
	"wheelchair":            {},
	"wheelchair-accessible": {},
	"step-free":             {},
	"mobility":              {},
	"stroller":              {},
}

// Category weights assigned by the profile analyzer.
const (
	CategoryWeightPreferred = 1.0
	CategoryWeightImplied   = 0.7
	CategoryWeightBaseline  = 0.3
)

// Interest weight bases for explicit and related interests.
const (
	InterestBaseExplicit = 1.0
	InterestBaseRelated  = 0.5
)
