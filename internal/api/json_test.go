package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oseayemenre/upepo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	data := struct {
		Name string `json:"name"`
	}{
		Name: "Brianna Wiest",
	}

	respondWithSuccess(w, http.StatusOK, data)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"name":"Brianna Wiest"}`, w.Body.String())
}

func TestRespondWithSuccessNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	respondWithSuccess(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestRespondWithSuccessNull(t *testing.T) {
	w := httptest.NewRecorder()

	respondWithSuccess(w, http.StatusOK, nil)

	assert.Equal(t, "null", strings.TrimSpace(w.Body.String()))
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()

	respondWithError(w, http.StatusNotFound, errors.New("book not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"book not found"}`, w.Body.String())
}

func TestDecodeJson(t *testing.T) {
	expect := struct {
		Name string
	}{
		Name: "fake_data",
	}

	body, err := json.Marshal(&expect)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBuffer(body))

	got := struct{ Name string }{}

	require.NoError(t, decodeJson(req, &got))
	assert.Equal(t, expect, got)
}

func TestDecodeJsonRejectsMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

	var got struct{ Name string }

	assert.Error(t, decodeJson(req, &got))
}

func TestValidationDetails(t *testing.T) {
	params := models.HandleCreateBookParams{
		Author:    "Brianna Wiest",
		Status:    "ARCHIVED",
		StartDate: ptr("01/01/2026"),
	}

	err := validate.Struct(&params)
	require.Error(t, err)

	details := validationDetails(err)

	byField := map[string]string{}
	for _, d := range details {
		byField[d.Field] = d.Message
	}

	assert.Equal(t, "is required", byField["title"])
	assert.Equal(t, "is required", byField["description"])
	assert.Equal(t, "must be one of UPCOMING, CURRENT, COMPLETED", byField["status"])
	assert.Equal(t, "must be a date formatted as YYYY-MM-DD", byField["startDate"])
	assert.NotContains(t, byField, "author")
}

func TestValidationDetailsNonValidatorError(t *testing.T) {
	details := validationDetails(errors.New("boom"))

	assert.Equal(t, []models.FieldError{{Field: "body", Message: "boom"}}, details)
}
