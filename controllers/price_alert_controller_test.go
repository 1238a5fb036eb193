package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"safar/models"
	"safar/services"
	"safar/utils"

	"github.com/stretchr/testify/assert"
)

func seedAlert(t *testing.T, userID uint) models.PriceAlert {
	t.Helper()
	alert := services.NewPriceAlert(userID, "avia",
		[]byte(`{"departure_airport":"TAS","arrival_airport":"DXB","date":"2026-09-01"}`),
		nil, 1000, "ref-"+t.Name(), utils.UzbekTime())
	assert.NoError(t, utils.GetDB().Create(alert).Error)
	return *alert
}

func TestCreateAlert(t *testing.T) {
	r := setupRouter(t)
	_, auth := createUser(t, "alert-create@safar.uz")

	payload := map[string]interface{}{
		"alert_type":    "avia",
		"search_params": map[string]interface{}{"departure_airport": "TAS", "arrival_airport": "IST", "date": "2026-10-01"},
		"initial_price": 750000,
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/user/alerts", bytes.NewBuffer(body))
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, 201, w.Code)
	var resp struct {
		Result models.PriceAlert `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 750000.0, resp.Result.CurrentPrice)
	assert.Equal(t, 750000.0, resp.Result.LowestPrice)
	assert.True(t, resp.Result.IsActive)
	assert.False(t, resp.Result.NotificationSent)
	assert.NotEmpty(t, resp.Result.Reference)
}

func TestCreateAlertRejectsBadType(t *testing.T) {
	r := setupRouter(t)
	_, auth := createUser(t, "alert-badtype@safar.uz")

	body, _ := json.Marshal(map[string]interface{}{
		"alert_type":    "train",
		"search_params": map[string]interface{}{"departure_airport": "TAS"},
		"initial_price": 100,
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/user/alerts", bytes.NewBuffer(body))
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestToggleForeignAlertForbidden(t *testing.T) {
	r := setupRouter(t)
	owner, _ := createUser(t, "alert-owner@safar.uz")
	_, strangerAuth := createUser(t, "alert-stranger@safar.uz")
	alert := seedAlert(t, owner.ID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/user/alerts/1/toggle", nil)
	req.Header.Set("Authorization", strangerAuth)
	r.ServeHTTP(w, req)
	assert.Equal(t, 403, w.Code)

	// Запись не изменилась
	var saved models.PriceAlert
	assert.NoError(t, utils.GetDB().First(&saved, alert.ID).Error)
	assert.True(t, saved.IsActive)
}

func TestDeleteForeignAlertForbidden(t *testing.T) {
	r := setupRouter(t)
	owner, _ := createUser(t, "alert-del-owner@safar.uz")
	_, strangerAuth := createUser(t, "alert-del-stranger@safar.uz")
	alert := seedAlert(t, owner.ID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/user/alerts/1", nil)
	req.Header.Set("Authorization", strangerAuth)
	r.ServeHTTP(w, req)
	assert.Equal(t, 403, w.Code)

	var count int64
	utils.GetDB().Model(&models.PriceAlert{}).Where("id = ?", alert.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestAlertNotFound(t *testing.T) {
	r := setupRouter(t)
	_, auth := createUser(t, "alert-missing@safar.uz")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/user/alerts/999", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)
	assert.Equal(t, 404, w.Code)
}

func TestRefreshOwnAlertNotifies(t *testing.T) {
	r := setupRouter(t)
	t.Setenv("SMTP_HOST", "")
	owner, auth := createUser(t, "alert-refresh@safar.uz")
	alert := seedAlert(t, owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"price": 900})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/user/alerts/1/refresh", bytes.NewBuffer(body))
	req.Header.Set("Authorization", auth)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp struct {
		Result models.PriceAlert `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 900.0, resp.Result.CurrentPrice)
	assert.True(t, resp.Result.NotificationSent)

	// Новый минимум породил уведомление категории alert с высоким приоритетом
	var notifications []models.Notification
	assert.NoError(t, utils.GetDB().Where("user_id = ?", owner.ID).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
	assert.Equal(t, "alert", notifications[0].Category)
	assert.Equal(t, "high", notifications[0].Priority)

	var saved models.PriceAlert
	assert.NoError(t, utils.GetDB().First(&saved, alert.ID).Error)
	assert.True(t, saved.NotificationSent)
}

func TestRefreshForeignAlertForbidden(t *testing.T) {
	r := setupRouter(t)
	owner, _ := createUser(t, "alert-refresh-owner@safar.uz")
	_, strangerAuth := createUser(t, "alert-refresh-stranger@safar.uz")
	seedAlert(t, owner.ID)

	body, _ := json.Marshal(map[string]interface{}{"price": 900})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/user/alerts/1/refresh", bytes.NewBuffer(body))
	req.Header.Set("Authorization", strangerAuth)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, 403, w.Code)

	var count int64
	utils.GetDB().Model(&models.Notification{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestToggleOwnAlert(t *testing.T) {
	r := setupRouter(t)
	owner, auth := createUser(t, "alert-toggle@safar.uz")
	alert := seedAlert(t, owner.ID)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/user/alerts/1/toggle", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var saved models.PriceAlert
	assert.NoError(t, utils.GetDB().First(&saved, alert.ID).Error)
	assert.False(t, saved.IsActive)
}
