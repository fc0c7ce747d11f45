package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/testhelpers/mocks"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"prose around", "Sure! Here you go:\n{\"a\":1}\nHope that helps.", `{"a":1}`},
		{"code fence", "```json\n{\"a\": {\"b\": 2}}\n```", `{"a": {"b": 2}}`},
		{"brace inside string", `note {"s":"a } b","n":1} end`, `{"s":"a } b","n":1}`},
		{"escaped quote in string", `{"s":"say \"}\" ok"}`, `{"s":"say \"}\" ok"}`},
		{"skips invalid candidate", `{not json} then {"a":2}`, `{"a":2}`},
		{"first of two objects", `{"a":1} {"b":2}`, `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.ExtractJSONObject(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSONObject_NoObject(t *testing.T) {
	for _, text := range []string{"", "no braces here", "{unclosed", "} backwards {"} {
		_, err := service.ExtractJSONObject(text)
		assert.ErrorIs(t, err, service.ErrNoJSONObject, text)
	}
}

func TestDecodeObject_RequiredFields(t *testing.T) {
	schema := service.Schema{Name: "test", Required: []string{"a", "b"}}

	var out struct {
		A int `json:"a"`
		B int `json:"b"`
	}
	require.NoError(t, service.DecodeObject(`{"a":1,"b":2}`, schema, &out))
	assert.Equal(t, 1, out.A)
	assert.Equal(t, 2, out.B)

	err := service.DecodeObject(`{"a":1}`, schema, &out)
	assert.ErrorIs(t, err, service.ErrMissingField)

	err = service.DecodeObject(`{"a":1,"b":null}`, schema, &out)
	assert.ErrorIs(t, err, service.ErrMissingField)

	err = service.DecodeObject(`{"a":"one","b":2}`, schema, &out)
	assert.Error(t, err)
}

func TestStructuredGenerator_Modes(t *testing.T) {
	schema := service.Schema{Name: "test", Required: []string{"a"}}
	chatty := "Here is the answer: {\"a\": 7}"

	t.Run("lenient tolerates prose", func(t *testing.T) {
		gen := service.NewStructuredGenerator(&mocks.StubCompleter{Responses: []string{chatty}}, service.ParseLenient)
		var out struct {
			A int `json:"a"`
		}
		require.NoError(t, gen.Generate(context.Background(), "p", schema, &out))
		assert.Equal(t, 7, out.A)
	})

	t.Run("strict rejects prose", func(t *testing.T) {
		gen := service.NewStructuredGenerator(&mocks.StubCompleter{Responses: []string{chatty}}, service.ParseStrict)
		var out struct {
			A int `json:"a"`
		}
		err := gen.Generate(context.Background(), "p", schema, &out)
		assert.ErrorIs(t, err, service.ErrNoJSONObject)
	})

	t.Run("strict accepts a whole object", func(t *testing.T) {
		gen := service.NewStructuredGenerator(&mocks.StubCompleter{Responses: []string{" {\"a\": 3}\n"}}, service.ParseStrict)
		var out struct {
			A int `json:"a"`
		}
		require.NoError(t, gen.Generate(context.Background(), "p", schema, &out))
		assert.Equal(t, 3, out.A)
	})

	t.Run("completion error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		gen := service.NewStructuredGenerator(&mocks.StubCompleter{Err: boom}, service.ParseLenient)
		var out struct{}
		assert.ErrorIs(t, gen.Generate(context.Background(), "p", schema, &out), boom)
	})
}
