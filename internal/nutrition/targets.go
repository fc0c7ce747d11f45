package nutrition

import (
	"math"
	"strings"
)

const (
	activityMultiplier = 1.5 // moderate activity
	proteinPerKg       = 1.2
	carbsCalorieShare  = 0.5
	fatCalorieShare    = 0.25
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// Profile is the biometric input to target estimation.
type Profile struct {
	Age              int     `json:"age"`
	HeightCm         float64 `json:"height"`
	WeightKg         float64 `json:"weight"`
	Gender           string  `json:"gender"`
	MedicalCondition string  `json:"medicalCondition,omitempty"`
}

// Targets are a user's daily goals plus their BMI.
type Targets struct {
	DailyCalories float64 `json:"dailyCalories"`
	DailyProtein  float64 `json:"dailyProtein"`
	DailyCarbs    float64 `json:"dailyCarbs"`
	DailyFat      float64 `json:"dailyFat"`
	BMI           float64 `json:"bmi"`
}

// Macros returns the daily goals as a Macros value.
func (t Targets) Macros() Macros {
	return Macros{
		Calories: t.DailyCalories,
		Protein:  t.DailyProtein,
		Carbs:    t.DailyCarbs,
		Fat:      t.DailyFat,
	}
}

// Valid reports whether every field is a positive finite number.
func (t Targets) Valid() bool {
	for _, v := range []float64{t.DailyCalories, t.DailyProtein, t.DailyCarbs, t.DailyFat, t.BMI} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return true
}

// BMI returns weight / height(m)^2, or 0 for a non-positive height.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	h := heightCm / 100.0
	return weightKg / (h * h)
}

// BMR returns the Mifflin-St Jeor basal metabolic rate. Any gender other
// than "male" uses the female constant.
func BMR(p Profile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if strings.EqualFold(strings.TrimSpace(p.Gender), "male") {
		return base + 5
	}
	return base - 161
}

// FallbackTargets computes daily targets locally. Grams and calories are
// rounded to integers, BMI to one decimal.
func FallbackTargets(p Profile) Targets {
	calories := BMR(p) * activityMultiplier
	protein := p.WeightKg * proteinPerKg
	carbs := calories * carbsCalorieShare / kcalPerGramCarbs
	fat := calories * fatCalorieShare / kcalPerGramFat

	return Targets{
		DailyCalories: math.Round(calories),
		DailyProtein:  math.Round(protein),
		DailyCarbs:    math.Round(carbs),
		DailyFat:      math.Round(fat),
		BMI:           math.Round(BMI(p.HeightCm, p.WeightKg)*10) / 10,
	}
}
