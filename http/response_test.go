package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"notegate"
	notegatehttp "notegate/http"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	notegatehttp.WriteError(rec, http.StatusBadRequest, "Missing filename")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Missing filename"}`, rec.Body.String())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	err := notegatehttp.WriteJSON(rec, http.StatusCreated, map[string]any{"success": true})

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestHandleError_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		body string
	}{
		{
			name: "not found",
			err:  fmt.Errorf("read note: %w", notegate.ErrNotFound),
			code: http.StatusNotFound,
			body: `{"error":"Not found"}`,
		},
		{
			name: "conflict",
			err:  fmt.Errorf("create canvas: %w", notegate.ErrConflict),
			code: http.StatusConflict,
			body: `{"error":"Already exists"}`,
		},
		{
			name: "invalid input",
			err:  fmt.Errorf("invalid key: %w", notegate.ErrInvalidInput),
			code: http.StatusBadRequest,
			body: `{"error":"Invalid filename"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			notegatehttp.HandleError(rec, tc.err)

			assert.Equal(t, tc.code, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestHandleError_StoreFailureSurfacedVerbatim(t *testing.T) {
	rec := httptest.NewRecorder()
	notegatehttp.HandleError(rec, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"dial tcp: connection refused"}`, rec.Body.String())
}
