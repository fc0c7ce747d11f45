package types

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name             string  `json:"name" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=6"`
	Age              int     `json:"age" binding:"required,gt=0,lte=150"`
	Height           float64 `json:"height" binding:"required,gt=0"`
	Weight           float64 `json:"weight" binding:"required,gt=0"`
	Gender           string  `json:"gender" binding:"required"`
	MedicalCondition string  `json:"medicalCondition"`
	Timezone         string  `json:"timezone" binding:"omitempty,timezone"`
}

// SigninRequest is the body of POST /auth/signin.
type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the profile fields to change. Nil means keep.
type UpdateProfileRequest struct {
	Name             *string  `json:"name" binding:"omitempty,min=1"`
	Age              *int     `json:"age" binding:"omitempty,gt=0,lte=150"`
	Height           *float64 `json:"height" binding:"omitempty,gt=0"`
	Weight           *float64 `json:"weight" binding:"omitempty,gt=0"`
	Gender           *string  `json:"gender" binding:"omitempty,min=1"`
	MedicalCondition *string  `json:"medicalCondition"`
	Timezone         *string  `json:"timezone" binding:"omitempty,timezone"`
}

// AnalyzeFoodRequest is the body of POST /food/analyze.
type AnalyzeFoodRequest struct {
	FoodName string `json:"foodName" binding:"required"`
}

// LogMealRequest is the body of POST /meals. Macro pointers distinguish a
// missing value from zero.
type LogMealRequest struct {
	FoodName       string   `json:"foodName" binding:"required"`
	Calories       *float64 `json:"calories" binding:"required,gte=0"`
	Protein        *float64 `json:"protein" binding:"required,gte=0"`
	Carbs          *float64 `json:"carbs" binding:"required,gte=0"`
	Fat            *float64 `json:"fat" binding:"required,gte=0"`
	Recommendation string   `json:"recommendation" binding:"omitempty,oneof=recommended moderate not_recommended"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
	Summary        string   `json:"summary"`
	AIAnalysis     string   `json:"aiAnalysis"`
	ImageURL       string   `json:"imageUrl" binding:"omitempty,url"`
}

// ReconcileRequest is the optional body of POST /meals/reconcile. An empty
// date means the user's today.
type ReconcileRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}
