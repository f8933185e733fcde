package goals

import (
	"testing"

	"github.com/rastokopal/macrolog/internal/models"
)

func baseProfile() models.Profile {
	return models.Profile{
		Age:           30,
		HeightCm:      170,
		WeightKg:      70,
		Gender:        models.GenderMale,
		PrimaryGoal:   models.GoalLose,
		ActivityLevel: models.ActivityLightly,
	}
}

func TestCalculateKnownProfile(t *testing.T) {
	targets := Calculate(baseProfile())

	// BMR = 88.362 + 13.397*70 + 4.799*170 - 5.677*30 = 1671.672
	// TDEE = 1671.672 * 1.375 = 2298.549; lose goal: -500 -> 1799 kcal
	want := Targets{Calories: 1799, Protein: 135, Carbs: 180, Fats: 60}
	if targets != want {
		t.Fatalf("expected targets %+v, got %+v", want, targets)
	}
}

func TestCalculateIsDeterministic(t *testing.T) {
	profile := baseProfile()
	first := Calculate(profile)
	second := Calculate(profile)
	if first != second {
		t.Fatalf("expected identical targets, got %+v and %+v", first, second)
	}
}

func TestCalculateCaloriesGrowWithActivityLevel(t *testing.T) {
	ordered := []string{
		models.ActivitySedentary,
		models.ActivityLightly,
		models.ActivityModerately,
		models.ActivityVery,
	}

	previous := 0
	for _, level := range ordered {
		profile := baseProfile()
		profile.ActivityLevel = level
		calories := Calculate(profile).Calories
		if calories <= previous {
			t.Fatalf("expected calories to grow at %s, got %d after %d", level, calories, previous)
		}
		previous = calories
	}
}

func TestCalculatePrimaryGoalAdjustment(t *testing.T) {
	tests := []struct {
		name string
		goal string
		want int
	}{
		{name: "lose subtracts 500", goal: models.GoalLose, want: 1799},
		{name: "maintain keeps tdee", goal: models.GoalMaintain, want: 2299},
		{name: "gain adds 500", goal: models.GoalGain, want: 2799},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			profile := baseProfile()
			profile.PrimaryGoal = testCase.goal
			if got := Calculate(profile).Calories; got != testCase.want {
				t.Fatalf("expected %d kcal, got %d", testCase.want, got)
			}
		})
	}
}

func TestCalculateNonMaleGendersShareFemaleCoefficients(t *testing.T) {
	female := baseProfile()
	female.Gender = models.GenderFemale

	other := baseProfile()
	other.Gender = "nonbinary"

	if Calculate(female) != Calculate(other) {
		t.Fatalf("expected non-male genders to produce identical targets")
	}

	male := Calculate(baseProfile())
	if Calculate(female) == male {
		t.Fatalf("expected male coefficients to differ from female ones")
	}
}

func TestCalculateUnknownActivityFallsBackToSedentary(t *testing.T) {
	unknown := baseProfile()
	unknown.ActivityLevel = "extreme"

	sedentary := baseProfile()
	sedentary.ActivityLevel = models.ActivitySedentary

	if Calculate(unknown) != Calculate(sedentary) {
		t.Fatalf("expected unknown activity level to use the sedentary factor")
	}
}
