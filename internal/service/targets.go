package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pageza/bangladiet/backend/internal/nutrition"
)

// TargetSource records which path produced a set of targets.
type TargetSource string

const (
	TargetSourceLLM      TargetSource = "llm"
	TargetSourceFallback TargetSource = "fallback"
)

var targetsSchema = Schema{
	Name:      "nutrition targets",
	Required:  []string{"dailyCalories", "dailyProtein", "dailyCarbs", "dailyFat", "bmi"},
	MaxTokens: 500,
}

// TargetEstimator derives daily targets from a biometric profile. It never
// fails: any problem with the generator falls back to the local formula.
type TargetEstimator struct {
	generator Generator
}

// NewTargetEstimator creates an estimator. A nil generator always uses the
// fallback formula.
func NewTargetEstimator(generator Generator) *TargetEstimator {
	return &TargetEstimator{generator: generator}
}

// Estimate returns targets for p and where they came from.
func (e *TargetEstimator) Estimate(ctx context.Context, p nutrition.Profile) (nutrition.Targets, TargetSource) {
	if e.generator == nil {
		return nutrition.FallbackTargets(p), TargetSourceFallback
	}

	var t nutrition.Targets
	if err := e.generator.Generate(ctx, buildTargetsPrompt(p), targetsSchema, &t); err != nil {
		log.Printf("[TargetEstimator] Using fallback formula: %v", err)
		return nutrition.FallbackTargets(p), TargetSourceFallback
	}
	if !t.Valid() {
		log.Printf("[TargetEstimator] Using fallback formula: non-positive values %+v", t)
		return nutrition.FallbackTargets(p), TargetSourceFallback
	}

	return t, TargetSourceLLM
}

func buildTargetsPrompt(p nutrition.Profile) string {
	var b strings.Builder
	b.WriteString("You are a nutritionist. Calculate the daily nutritional requirements for a person with the following details:\n")
	fmt.Fprintf(&b, "- Age: %d years\n", p.Age)
	fmt.Fprintf(&b, "- Height: %g cm\n", p.HeightCm)
	fmt.Fprintf(&b, "- Weight: %g kg\n", p.WeightKg)
	fmt.Fprintf(&b, "- Gender: %s\n", p.Gender)
	if cond := strings.TrimSpace(p.MedicalCondition); cond != "" {
		fmt.Fprintf(&b, "- Medical Condition: %s\n", cond)
	}
	b.WriteString(`
Respond with ONLY a JSON object with exactly these numeric fields:
{
  "dailyCalories": <kcal>,
  "dailyProtein": <grams>,
  "dailyCarbs": <grams>,
  "dailyFat": <grams>,
  "bmi": <number>
}

Use standard formulas:
- BMI = weight(kg) / (height(m))^2
- Mifflin-St Jeor for BMR, multiplied by an activity factor between 1.2 and 1.9
- Protein: 0.8-2.0 g per kg body weight
- Carbs: 45-65% of total calories
- Fat: 20-35% of total calories

Take the medical condition into account if one is given.`)
	return b.String()
}
