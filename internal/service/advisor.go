package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
)

// Analysis is the advisory verdict for a candidate food.
type Analysis struct {
	Recommendation string   `json:"recommendation"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	Summary        string   `json:"summary"`
}

var analysisSchema = Schema{
	Name:      "food analysis",
	Required:  []string{"recommendation", "pros", "cons", "summary"},
	MaxTokens: 1000,
}

// AdviceInput is everything the advisor looks at.
type AdviceInput struct {
	Profile    nutrition.Profile
	BMI        float64
	Targets    nutrition.Macros
	Consumed   nutrition.Macros
	MealsCount int
	FoodName   string
	Food       nutrition.Macros
}

// SuitabilityAdvisor asks the generator whether a food suits the user's day.
// There is no fallback verdict: an unusable answer is an error.
type SuitabilityAdvisor struct {
	generator Generator
}

// NewSuitabilityAdvisor creates an advisor. With a nil generator every call
// fails with apperrors.ErrAnalysisFailed.
func NewSuitabilityAdvisor(generator Generator) *SuitabilityAdvisor {
	return &SuitabilityAdvisor{generator: generator}
}

// Advise projects the day with the food added and returns the verdict along
// with the projection it was based on.
func (a *SuitabilityAdvisor) Advise(ctx context.Context, in AdviceInput) (*Analysis, nutrition.Projection, error) {
	projection := nutrition.Project(in.Targets, in.Consumed, in.Food)

	if a.generator == nil {
		return nil, projection, fmt.Errorf("%w: no reasoning service configured", apperrors.ErrAnalysisFailed)
	}

	var analysis Analysis
	if err := a.generator.Generate(ctx, buildAnalysisPrompt(in, projection), analysisSchema, &analysis); err != nil {
		log.Printf("[SuitabilityAdvisor] Analysis of %q failed: %v", in.FoodName, err)
		return nil, projection, fmt.Errorf("%w: %w", apperrors.ErrAnalysisFailed, err)
	}

	analysis.Recommendation = strings.ToLower(strings.TrimSpace(analysis.Recommendation))
	if !models.ValidRecommendation(analysis.Recommendation) {
		log.Printf("[SuitabilityAdvisor] Unknown recommendation %q for %q", analysis.Recommendation, in.FoodName)
		return nil, projection, fmt.Errorf("%w: unknown recommendation %q", apperrors.ErrAnalysisFailed, analysis.Recommendation)
	}
	if analysis.Pros == nil {
		analysis.Pros = []string{}
	}
	if analysis.Cons == nil {
		analysis.Cons = []string{}
	}

	return &analysis, projection, nil
}

func buildAnalysisPrompt(in AdviceInput, p nutrition.Projection) string {
	var b strings.Builder

	b.WriteString("You are a nutritionist speaking directly to the user. Decide whether this food suits them given their profile, their targets and above all what they have already eaten today.\n\n")

	b.WriteString("PROFILE:\n")
	fmt.Fprintf(&b, "- Age: %d years\n", in.Profile.Age)
	fmt.Fprintf(&b, "- Gender: %s\n", in.Profile.Gender)
	fmt.Fprintf(&b, "- Height: %g cm\n", in.Profile.HeightCm)
	fmt.Fprintf(&b, "- Weight: %g kg\n", in.Profile.WeightKg)
	fmt.Fprintf(&b, "- BMI: %.1f\n", in.BMI)
	cond := strings.TrimSpace(in.Profile.MedicalCondition)
	if cond == "" {
		cond = "None"
	}
	fmt.Fprintf(&b, "- Medical Condition: %s\n\n", cond)

	b.WriteString("DAILY TARGETS:\n")
	for _, n := range p.Nutrients {
		fmt.Fprintf(&b, "- %s: %.0f %s\n", n.Name, n.Target, n.Unit)
	}

	fmt.Fprintf(&b, "\nCONSUMED TODAY (%d meals):\n", in.MealsCount)
	for _, n := range p.Nutrients {
		fmt.Fprintf(&b, "- %s: %.1f %s (%.1f%% of target)\n", n.Name, n.Consumed, n.Unit, n.ConsumedPct)
	}

	b.WriteString("\nREMAINING ALLOWANCE:\n")
	for _, n := range p.Nutrients {
		fmt.Fprintf(&b, "- %s: %.1f %s (%.1f%% remaining)\n", n.Name, n.Remaining, n.Unit, 100-n.ConsumedPct)
	}

	fmt.Fprintf(&b, "\nFOOD: %s\nPER SERVING:\n", in.FoodName)
	for _, n := range p.Nutrients {
		fmt.Fprintf(&b, "- %s: %.1f %s (%.1f%% of target)\n", n.Name, n.Food, n.Unit, n.FoodPct)
	}

	b.WriteString("\nTOTALS AFTER EATING IT:\n")
	for _, n := range p.Nutrients {
		fmt.Fprintf(&b, "- %s: %.1f %s (%.1f%% of target)\n", n.Name, n.Projected, n.Unit, n.ProjectedPct)
	}

	b.WriteString("\nRULES:\n")
	b.WriteString("1. If eating this food would take ANY nutrient above 100% of target, lean towards \"not_recommended\".\n")
	b.WriteString("2. If any nutrient is already above 80% consumed, caution against more of it.\n")
	b.WriteString("3. If overall intake is below 50% of the daily target and the food fits the remaining allowance, lean towards \"recommended\".\n")
	b.WriteString("4. Take the medical condition above into account exactly as written.\n")
	if over := p.ExceedsTarget(); len(over) > 0 {
		fmt.Fprintf(&b, "Note: this food would exceed the target for %s.\n", strings.Join(over, ", "))
	}
	if near := p.NearLimit(); len(near) > 0 {
		fmt.Fprintf(&b, "Note: already above 80%% for %s.\n", strings.Join(near, ", "))
	}

	b.WriteString(`
Write in the second person ("you", "your").

Respond with ONLY this JSON object:
{
  "recommendation": "recommended" | "moderate" | "not_recommended",
  "pros": ["..."],
  "cons": ["..."],
  "summary": "2-3 sentences that mention what you have eaten today and what remains"
}`)
	return b.String()
}
