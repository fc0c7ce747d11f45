package nutrition

// Macros represents the calorie and macronutrient content of a serving or a
// day's intake. Calories are kcal, the rest are grams.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the component-wise sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Protein:  m.Protein + o.Protein,
		Carbs:    m.Carbs + o.Carbs,
		Fat:      m.Fat + o.Fat,
	}
}

// Sub returns the component-wise difference m - o.
func (m Macros) Sub(o Macros) Macros {
	return Macros{
		Calories: m.Calories - o.Calories,
		Protein:  m.Protein - o.Protein,
		Carbs:    m.Carbs - o.Carbs,
		Fat:      m.Fat - o.Fat,
	}
}

// IsZero reports whether every component is zero.
func (m Macros) IsZero() bool {
	return m == Macros{}
}
