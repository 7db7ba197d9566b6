package core_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/schoolkit/core"
)

func render(t *testing.T, resp core.Response) (*httptest.ResponseRecorder, core.JSONResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, resp.Render(w, r))

	var body core.JSONResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return w, body
}

func TestJSON(t *testing.T) {
	t.Parallel()

	w, body := render(t, core.JSON("feature_check", map[string]any{"available": true}, map[string]any{"tenant_id": "t-1"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "feature_check", body.Code)
	assert.Equal(t, map[string]any{"available": true}, body.Data)
	assert.Equal(t, "t-1", body.Meta["tenant_id"])
	assert.Nil(t, body.Error)
}

func TestJSONWithStatus(t *testing.T) {
	t.Parallel()

	w, body := render(t, core.JSONWithStatus(http.StatusPaymentRequired, "feature_unavailable", map[string]any{"upgrade_tier": "professional"}, nil))

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	assert.Equal(t, "feature_unavailable", body.Code)
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("plain error is a 500", func(t *testing.T) {
		t.Parallel()

		w, body := render(t, core.JSONError(errors.New("boom")))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "internal_error", body.Error.Code)
		assert.Equal(t, "boom", body.Error.Message)
	})

	t.Run("http error keeps its status", func(t *testing.T) {
		t.Parallel()

		w, body := render(t, core.JSONError(core.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "not_found", body.Error.Code)
	})

	t.Run("wrapped http error is unwrapped", func(t *testing.T) {
		t.Parallel()

		w, _ := render(t, core.JSONError(fmt.Errorf("lookup failed: %w", core.ErrPaymentRequired)))

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
	})

	t.Run("validation error carries field details", func(t *testing.T) {
		t.Parallel()

		err := core.NewValidationError("amount", "must not be negative").Add("reason", "is required")
		w, body := render(t, core.JSONError(err))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "validation_error", body.Error.Code)
		assert.Equal(t, []string{"must not be negative"}, body.Error.Details["amount"])
		assert.Equal(t, []string{"is required"}, body.Error.Details["reason"])
	})
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := core.ValidationError{}
	assert.Equal(t, "validation failed", err.Error())

	err = core.NewValidationError("amount", "must not be negative")
	assert.Equal(t, "validation error: amount: must not be negative", err.Error())
}
