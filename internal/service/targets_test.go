package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/internal/nutrition"
	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/testhelpers/mocks"
)

var female25 = nutrition.Profile{Age: 25, HeightCm: 160, WeightKg: 55, Gender: "female"}

func estimatorWith(responses ...string) (*service.TargetEstimator, *mocks.StubCompleter) {
	stub := &mocks.StubCompleter{Responses: responses}
	return service.NewTargetEstimator(service.NewStructuredGenerator(stub, service.ParseLenient)), stub
}

func TestTargetEstimator_UsesGeneratorAnswer(t *testing.T) {
	est, stub := estimatorWith(`Here you go: {"dailyCalories": 1800, "dailyProtein": 70, "dailyCarbs": 220, "dailyFat": 60, "bmi": 21.5}`)

	got, source := est.Estimate(context.Background(), nutrition.Profile{
		Age: 25, HeightCm: 160, WeightKg: 55, Gender: "female", MedicalCondition: "type 2 diabetes",
	})

	assert.Equal(t, service.TargetSourceLLM, source)
	assert.Equal(t, nutrition.Targets{DailyCalories: 1800, DailyProtein: 70, DailyCarbs: 220, DailyFat: 60, BMI: 21.5}, got)
	require.Len(t, stub.Prompts, 1)
	assert.Contains(t, stub.Prompts[0], "Medical Condition: type 2 diabetes")
}

func TestTargetEstimator_FallsBack(t *testing.T) {
	want := nutrition.FallbackTargets(female25)

	tests := []struct {
		name string
		stub *mocks.StubCompleter
	}{
		{"service error", &mocks.StubCompleter{Err: errors.New("connection refused")}},
		{"no json", &mocks.StubCompleter{Responses: []string{"I cannot help with that."}}},
		{"missing field", &mocks.StubCompleter{Responses: []string{`{"dailyCalories": 1800, "dailyProtein": 70, "dailyCarbs": 220, "bmi": 21.5}`}}},
		{"non-positive value", &mocks.StubCompleter{Responses: []string{`{"dailyCalories": 0, "dailyProtein": 70, "dailyCarbs": 220, "dailyFat": 60, "bmi": 21.5}`}}},
		{"wrong types", &mocks.StubCompleter{Responses: []string{`{"dailyCalories": "lots", "dailyProtein": 70, "dailyCarbs": 220, "dailyFat": 60, "bmi": 21.5}`}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := service.NewTargetEstimator(service.NewStructuredGenerator(tt.stub, service.ParseLenient))
			got, source := est.Estimate(context.Background(), female25)
			assert.Equal(t, service.TargetSourceFallback, source)
			assert.Equal(t, want, got)
		})
	}
}

func TestTargetEstimator_NilGenerator(t *testing.T) {
	got, source := service.NewTargetEstimator(nil).Estimate(context.Background(), female25)
	assert.Equal(t, service.TargetSourceFallback, source)
	assert.Equal(t, nutrition.Targets{DailyCalories: 1896, DailyProtein: 66, DailyCarbs: 237, DailyFat: 53, BMI: 21.5}, got)
}
