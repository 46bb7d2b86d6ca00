package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and GetUserIDFromContext", func(t *testing.T) {
		ctx := context.Background()
		userID := uint(100)
		email := "farmer@example.com"
		role := "user"

		ctx = SetUserContext(ctx, userID, email, role)
		assert.NotNil(t, ctx)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, userID, id)

		assert.Equal(t, email, ctx.Value(UserEmailKey))
		assert.Equal(t, role, ctx.Value(UserRoleKey))
	})

	t.Run("GetUserIDFromContext with empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
	})
}

func TestToUint(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  uint
		expectErr bool
	}{
		{name: "Valid number", input: "123", expected: 123},
		{name: "Zero", input: "0", expected: 0},
		{name: "Negative number", input: "-1", expectErr: true},
		{name: "Not a number", input: "abc", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUint(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "bad input", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "bad input", body["message"])
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Message string `json:"message"`
	}

	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"hi","extra":1}`))
		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "hi", p.Message)
	})

	t.Run("Empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrEmptyBody)
	})

	t.Run("Malformed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":`))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrInvalidJSON)
	})

	t.Run("Wrong type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":42}`))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrInvalidJSON)
	})

	t.Run("Trailing garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"a"} trailing`))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrInvalidJSON)
	})

	t.Run("Second object", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"message":"a"}{"message":"b"}`))
		var p payload
		assert.ErrorIs(t, DecodeJSON(req, &p), ErrInvalidJSON)
	})

	t.Run("Trailing newline", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"message\":\"a\"}\n"))
		var p payload
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, "a", p.Message)
	})
}

func TestValidate(t *testing.T) {
	type input struct {
		PlanID string  `validate:"required"`
		Amount float64 `validate:"gt=0"`
	}

	assert.NoError(t, Validate(input{PlanID: "pro", Amount: 100}))

	err := Validate(input{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "planid failed on required")
	assert.Contains(t, err.Error(), "amount failed on gt")
}
