package goals

import (
	"math"

	"github.com/rastokopal/macrolog/internal/models"
)

// activityFactors maps activity levels to their TDEE multiplier. This is
// the single source of truth for valid levels; unknown values fall back to
// sedentary so goal computation stays total.
var activityFactors = map[string]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLightly:    1.375,
	models.ActivityModerately: 1.55,
	models.ActivityVery:       1.725,
}

const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFats    = 9.0

	proteinCalorieShare = 0.30
	carbsCalorieShare   = 0.40
	fatsCalorieShare    = 0.30

	goalCalorieAdjustment = 500.0
)

// Targets are daily nutrition goals derived from a profile. They are never
// stored on their own; ledgers re-derive them on every read so a profile
// change propagates to old days too.
type Targets struct {
	Calories int `json:"caloriesKcal"`
	Protein  int `json:"proteinG"`
	Carbs    int `json:"carbsG"`
	Fats     int `json:"fatsG"`
}

// Calculate derives daily targets from a profile: Harris-Benedict BMR,
// activity-scaled TDEE, a flat ±500 kcal adjustment for the lose/gain
// goals, then a fixed 30/40/30 protein/carbs/fats split at 4/4/9 kcal per
// gram. Every value is rounded independently, so the macro grams do not
// recombine exactly into the calorie goal; downstream consumers rely on
// these exact numbers, so the rounding order is load-bearing.
func Calculate(profile models.Profile) Targets {
	tdee := basalMetabolicRate(profile) * activityFactor(profile.ActivityLevel)

	adjusted := tdee
	switch profile.PrimaryGoal {
	case models.GoalLose:
		adjusted -= goalCalorieAdjustment
	case models.GoalGain:
		adjusted += goalCalorieAdjustment
	}

	calories := int(math.Round(adjusted))
	return Targets{
		Calories: calories,
		Protein:  int(math.Round(float64(calories) * proteinCalorieShare / kcalPerGramProtein)),
		Carbs:    int(math.Round(float64(calories) * carbsCalorieShare / kcalPerGramCarbs)),
		Fats:     int(math.Round(float64(calories) * fatsCalorieShare / kcalPerGramFats)),
	}
}

// basalMetabolicRate uses the Harris-Benedict equations. Only an exact
// "male" selects the male coefficients; female and any other gender value
// share the female ones. Longstanding observed behavior, kept as is.
func basalMetabolicRate(profile models.Profile) float64 {
	if profile.Gender == models.GenderMale {
		return 88.362 + 13.397*profile.WeightKg + 4.799*profile.HeightCm - 5.677*float64(profile.Age)
	}
	return 447.593 + 9.247*profile.WeightKg + 3.098*profile.HeightCm - 4.330*float64(profile.Age)
}

func activityFactor(level string) float64 {
	if factor, ok := activityFactors[level]; ok {
		return factor
	}
	return activityFactors[models.ActivitySedentary]
}
