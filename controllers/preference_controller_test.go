package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"safar/models"
	"safar/utils"

	"github.com/stretchr/testify/assert"
)

func putPreferences(t *testing.T, r http.Handler, auth string, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/user/preferences", bytes.NewBuffer(body))
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestPreferencesGetEmpty(t *testing.T) {
	r := setupRouter(t)
	_, auth := createUser(t, "pref-empty@safar.uz")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/user/preferences", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)

	// Нет записи - это не ошибка, а пустое состояние
	assert.Equal(t, 200, w.Code)
	var body struct {
		Result  *models.Preference `json:"result"`
		Success bool               `json:"success"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Nil(t, body.Result)
}

func TestPreferencesUpsertCreatesThenPatches(t *testing.T) {
	r := setupRouter(t)
	user, auth := createUser(t, "pref-upsert@safar.uz")

	w := putPreferences(t, r, auth, map[string]interface{}{
		"budget_total": 2000,
		"destinations": []string{"Paris, France"},
		"travel_style": "luxury",
	})
	assert.Equal(t, 200, w.Code)

	// Патч только одного поля не трогает остальные
	w = putPreferences(t, r, auth, map[string]interface{}{
		"budget_flight": 500,
	})
	assert.Equal(t, 200, w.Code)

	var pref models.Preference
	assert.NoError(t, utils.GetDB().Where("user_id = ?", user.ID).First(&pref).Error)
	assert.Equal(t, 2000.0, pref.BudgetTotal)
	assert.Equal(t, 500.0, pref.BudgetFlight)
	assert.Equal(t, "luxury", pref.TravelStyle)
	assert.Equal(t, []string{"Paris, France"}, pref.DestinationList())

	var count int64
	utils.GetDB().Model(&models.Preference{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPreferencesRejectInvalidBudget(t *testing.T) {
	r := setupRouter(t)
	_, auth := createUser(t, "pref-bad@safar.uz")

	w := putPreferences(t, r, auth, map[string]interface{}{"budget_total": -10})
	assert.Equal(t, 400, w.Code)

	w = putPreferences(t, r, auth, map[string]interface{}{"budget_total": 0})
	assert.Equal(t, 400, w.Code)
}
