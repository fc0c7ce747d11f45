package nutrition

const (
	overLimitPct = 100.0
	nearLimitPct = 80.0
	lowIntakePct = 50.0
)

// MacroProjection is the per-nutrient breakdown used by the advisor.
type MacroProjection struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Target       float64 `json:"target"`
	Consumed     float64 `json:"consumed"`
	ConsumedPct  float64 `json:"consumedPct"`
	Remaining    float64 `json:"remaining"`
	Food         float64 `json:"food"`
	FoodPct      float64 `json:"foodPct"`
	Projected    float64 `json:"projected"`
	ProjectedPct float64 `json:"projectedPct"`
}

// Projection describes today's intake before and after eating a food.
type Projection struct {
	Current   Macros            `json:"current"`
	Food      Macros            `json:"food"`
	After     Macros            `json:"after"`
	Nutrients []MacroProjection `json:"nutrients"`
}

// Project computes consumed, remaining and projected figures for the four
// macros. Remaining may be negative. Percentages against a non-positive
// target are reported as zero.
func Project(targets, consumed, food Macros) Projection {
	after := consumed.Add(food)
	return Projection{
		Current: consumed,
		Food:    food,
		After:   after,
		Nutrients: []MacroProjection{
			project("Calories", "kcal", targets.Calories, consumed.Calories, food.Calories),
			project("Protein", "g", targets.Protein, consumed.Protein, food.Protein),
			project("Carbs", "g", targets.Carbs, consumed.Carbs, food.Carbs),
			project("Fat", "g", targets.Fat, consumed.Fat, food.Fat),
		},
	}
}

func project(name, unit string, target, consumed, food float64) MacroProjection {
	projected := consumed + food
	return MacroProjection{
		Name:         name,
		Unit:         unit,
		Target:       target,
		Consumed:     consumed,
		ConsumedPct:  Percent(consumed, target),
		Remaining:    target - consumed,
		Food:         food,
		FoodPct:      Percent(food, target),
		Projected:    projected,
		ProjectedPct: Percent(projected, target),
	}
}

// Percent returns value as a percentage of target.
func Percent(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return value / target * 100
}

// ExceedsTarget lists nutrients whose projected total would pass 100%.
func (p Projection) ExceedsTarget() []string {
	var names []string
	for _, n := range p.Nutrients {
		if n.ProjectedPct > overLimitPct {
			names = append(names, n.Name)
		}
	}
	return names
}

// NearLimit lists nutrients already above 80% consumed.
func (p Projection) NearLimit() []string {
	var names []string
	for _, n := range p.Nutrients {
		if n.ConsumedPct > nearLimitPct {
			names = append(names, n.Name)
		}
	}
	return names
}

// LowIntake reports whether overall consumption, measured by calories, is
// still under half of the daily target.
func (p Projection) LowIntake() bool {
	if len(p.Nutrients) == 0 {
		return true
	}
	return p.Nutrients[0].ConsumedPct < lowIntakePct
}
