package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/testhelpers/mocks"
)

var biriyaniInput = service.AdviceInput{
	Profile:  female25,
	BMI:      21.5,
	Targets:  nutrition.Macros{Calories: 1896, Protein: 66, Carbs: 237, Fat: 53},
	FoodName: "Biriyani",
	Food:     nutrition.Macros{Calories: 480, Protein: 15, Carbs: 65, Fat: 16},
}

func advisorWith(stub *mocks.StubCompleter) *service.SuitabilityAdvisor {
	return service.NewSuitabilityAdvisor(service.NewStructuredGenerator(stub, service.ParseLenient))
}

func TestSuitabilityAdvisor_Advise(t *testing.T) {
	stub := &mocks.StubCompleter{Responses: []string{
		"Sure.\n" + `{"recommendation": "Recommended", "pros": ["Good protein"], "cons": ["High in carbs"], "summary": "You have eaten nothing yet today."}`,
	}}

	analysis, projection, err := advisorWith(stub).Advise(context.Background(), biriyaniInput)
	require.NoError(t, err)

	assert.Equal(t, "recommended", analysis.Recommendation)
	assert.Equal(t, []string{"Good protein"}, analysis.Pros)
	assert.Equal(t, []string{"High in carbs"}, analysis.Cons)
	assert.Equal(t, biriyaniInput.Food, projection.After)

	require.Len(t, stub.Prompts, 1)
	prompt := stub.Prompts[0]
	assert.Contains(t, prompt, "FOOD: Biriyani")
	assert.Contains(t, prompt, "Medical Condition: None")
	assert.Contains(t, prompt, "CONSUMED TODAY (0 meals)")
}

func TestSuitabilityAdvisor_RejectsMissingCons(t *testing.T) {
	stub := &mocks.StubCompleter{Responses: []string{
		`{"recommendation": "moderate", "pros": ["Tasty"], "summary": "Fine."}`,
	}}

	analysis, _, err := advisorWith(stub).Advise(context.Background(), biriyaniInput)
	assert.Nil(t, analysis)
	assert.ErrorIs(t, err, apperrors.ErrAnalysisFailed)
	assert.ErrorIs(t, err, service.ErrMissingField)
}

func TestSuitabilityAdvisor_Failures(t *testing.T) {
	tests := []struct {
		name string
		stub *mocks.StubCompleter
	}{
		{"service error", &mocks.StubCompleter{Err: errors.New("timeout")}},
		{"no json", &mocks.StubCompleter{Responses: []string{"It depends."}}},
		{"unknown recommendation", &mocks.StubCompleter{Responses: []string{`{"recommendation": "maybe", "pros": [], "cons": [], "summary": "?"}`}}},
		{"null pros", &mocks.StubCompleter{Responses: []string{`{"recommendation": "moderate", "pros": null, "cons": [], "summary": "?"}`}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := advisorWith(tt.stub).Advise(context.Background(), biriyaniInput)
			assert.ErrorIs(t, err, apperrors.ErrAnalysisFailed)
		})
	}

	t.Run("service error stays in the chain", func(t *testing.T) {
		cause := errors.New("connection reset")
		_, _, err := advisorWith(&mocks.StubCompleter{Err: cause}).Advise(context.Background(), biriyaniInput)
		assert.ErrorIs(t, err, apperrors.ErrAnalysisFailed)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, service.ErrMissingField)
	})

	t.Run("no generator", func(t *testing.T) {
		_, projection, err := service.NewSuitabilityAdvisor(nil).Advise(context.Background(), biriyaniInput)
		assert.ErrorIs(t, err, apperrors.ErrAnalysisFailed)
		assert.Len(t, projection.Nutrients, 4)
	})
}

func TestSuitabilityAdvisor_PromptFlagsLimits(t *testing.T) {
	stub := &mocks.StubCompleter{Responses: []string{`{"recommendation": "not_recommended", "pros": [], "cons": ["Too much"], "summary": "No."}`}}
	in := biriyaniInput
	in.Consumed = nutrition.Macros{Calories: 1700, Protein: 30, Carbs: 120, Fat: 40}
	in.MealsCount = 3

	analysis, _, err := advisorWith(stub).Advise(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "not_recommended", analysis.Recommendation)
	assert.Empty(t, analysis.Pros)
	assert.NotNil(t, analysis.Pros)

	prompt := stub.Prompts[0]
	assert.Contains(t, prompt, "CONSUMED TODAY (3 meals)")
	assert.Contains(t, prompt, "would exceed the target for Calories")
	assert.Contains(t, prompt, "already above 80% for Calories")
}
