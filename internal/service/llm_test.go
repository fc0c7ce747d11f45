package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/config"
	"github.com/pageza/bangladiet/backend/internal/service"
)

func newLLMConfig(url string) *config.Config {
	return &config.Config{
		LLMAPIKey:       "test-key",
		LLMAPIURL:       url,
		LLMModel:        "test-model",
		LLMTemperature:  0.3,
		ExternalTimeout: 5 * time.Second,
	}
}

func TestNewLLMService_RequiresKey(t *testing.T) {
	svc, err := service.NewLLMService(&config.Config{})
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, service.ErrLLMNotConfigured)
}

func TestLLMService_Complete(t *testing.T) {
	var got service.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	svc, err := service.NewLLMService(newLLMConfig(server.URL))
	require.NoError(t, err)

	text, err := svc.Complete(context.Background(), "hello", service.CompletionOptions{
		System:    "be brief",
		MaxTokens: 50,
		JSONMode:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 50, got.MaxTokens)
	assert.Equal(t, "json_object", got.ResponseFormat["type"])
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
}

func TestLLMService_Errors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		defer server.Close()

		svc, _ := service.NewLLMService(newLLMConfig(server.URL))
		_, err := svc.Complete(context.Background(), "hello", service.CompletionOptions{})
		assert.ErrorContains(t, err, "status 429")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		svc, _ := service.NewLLMService(newLLMConfig(server.URL))
		_, err := svc.Complete(context.Background(), "hello", service.CompletionOptions{})
		assert.Error(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()

		cfg := newLLMConfig(server.URL)
		cfg.ExternalTimeout = 50 * time.Millisecond
		svc, _ := service.NewLLMService(cfg)
		_, err := svc.Complete(context.Background(), "hello", service.CompletionOptions{})
		assert.Error(t, err)
	})
}

func TestLLMService_FeedsEstimator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"dailyCalories\":2000,\"dailyProtein\":80,\"dailyCarbs\":250,\"dailyFat\":65,\"bmi\":21.5}"}}]}`))
	}))
	defer server.Close()

	svc, err := service.NewLLMService(newLLMConfig(server.URL))
	require.NoError(t, err)

	est := service.NewTargetEstimator(service.NewStructuredGenerator(svc, service.ParseStrict))
	got, source := est.Estimate(context.Background(), female25)
	assert.Equal(t, service.TargetSourceLLM, source)
	assert.Equal(t, 2000.0, got.DailyCalories)
}
