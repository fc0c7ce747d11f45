package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/config"
	"github.com/pageza/bangladiet/backend/internal/server"
	"github.com/pageza/bangladiet/backend/internal/testhelpers"
	"github.com/pageza/bangladiet/backend/internal/testhelpers/mocks"
)

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func (c *client) call(method, path string, body interface{}) (int, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Errorf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func setup(t *testing.T) *client {
	db := testhelpers.SetupPostgresDB(t)
	srv := server.NewWithDependencies(&config.Config{
		Environment: config.Test,
		JWTSecret:   "integration-secret",
		JWTTTL:      time.Hour,
		AppTimezone: "Asia/Dhaka",
	}, server.Dependencies{
		DB:        db,
		Completer: &mocks.StubCompleter{Err: assert.AnError},
	})
	c := &client{t: t, handler: srv.Handler()}

	status, _ := c.call(http.MethodPost, "/api/v1/auth/signup", map[string]interface{}{
		"name": "Karim", "email": "karim@example.com", "password": "secret123",
		"age": 30, "height": 170, "weight": 70, "gender": "male",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := c.call(http.MethodPost, "/api/v1/auth/signin", map[string]string{
		"email": "karim@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	c.token = body["token"].(string)
	return c
}

func TestConcurrentMealLogging(t *testing.T) {
	c := setup(t)

	meals := []map[string]interface{}{
		{"foodName": "Khichuri", "calories": 300, "protein": 20, "carbs": 40, "fat": 10},
		{"foodName": "Doi", "calories": 200, "protein": 10, "carbs": 20, "fat": 5},
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(meal map[string]interface{}) {
			defer wg.Done()
			status, _ := c.call(http.MethodPost, "/api/v1/food/log", meal)
			assert.Equal(t, http.StatusCreated, status)
		}(meals[i%2])
	}
	wg.Wait()

	status, body := c.call(http.MethodGet, "/api/v1/food/log", nil)
	require.Equal(t, http.StatusOK, status)
	daily := body["dailyNutrition"].(map[string]interface{})
	assert.Equal(t, 2500.0, daily["totalCalories"])
	assert.Equal(t, 150.0, daily["totalProtein"])
	assert.Equal(t, 300.0, daily["totalCarbs"])
	assert.Equal(t, 75.0, daily["totalFat"])
	assert.Equal(t, 10.0, daily["mealsCount"])
	assert.Len(t, body["foodLogs"], 10)

	status, body = c.call(http.MethodPost, "/api/v1/food/log/reconcile", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2500.0, body["dailyNutrition"].(map[string]interface{})["totalCalories"])
}

func TestAnalyzeWithoutLLM(t *testing.T) {
	c := setup(t)

	status, body := c.call(http.MethodPost, "/api/v1/food/analyze", map[string]string{"foodName": "Biriyani"})

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "failed to analyze food", body["error"])

	status, body = c.call(http.MethodGet, "/api/v1/food/log", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, body["dailyNutrition"].(map[string]interface{})["mealsCount"])
}
