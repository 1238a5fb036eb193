package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"safar/models"
	"safar/services"
	"safar/utils"

	"github.com/stretchr/testify/assert"
)

func seedTrip(t *testing.T, userID uint, dest, start, end string, budget float64, groupSize string) models.Trip {
	t.Helper()
	trip := models.Trip{
		UserID:      userID,
		Destination: dest,
		StartDate:   start,
		EndDate:     end,
		BudgetTotal: budget,
		GroupSize:   groupSize,
		Status:      "planned",
	}
	assert.NoError(t, utils.GetDB().Create(&trip).Error)
	return trip
}

func TestInsightsNoData(t *testing.T) {
	r := setupRouter(t)
	_, auth := createUser(t, "insights-empty@safar.uz")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/personalization/insights", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var body struct {
		Result struct {
			Patterns           services.TravelPatterns `json:"patterns"`
			Confidence         int                     `json:"confidence"`
			SuggestedGroupSize string                  `json:"suggested_group_size"`
		} `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Result.Confidence)
	assert.Equal(t, 0, body.Result.Patterns.TotalTrips)
	assert.Equal(t, "couple", body.Result.SuggestedGroupSize)
}

func TestInsightsWithHistory(t *testing.T) {
	r := setupRouter(t)
	user, auth := createUser(t, "insights-full@safar.uz")

	thisYear := time.Now().Year()
	seedTrip(t, user.ID, "Paris, France", fmt.Sprintf("%d-01-10", thisYear), fmt.Sprintf("%d-01-17", thisYear), 2000, "couple")
	seedTrip(t, user.ID, "Paris, France", fmt.Sprintf("%d-03-01", thisYear), fmt.Sprintf("%d-03-08", thisYear), 1500, "couple")
	seedTrip(t, user.ID, "Rome, Italy", fmt.Sprintf("%d-05-01", thisYear-1), fmt.Sprintf("%d-05-08", thisYear-1), 1000, "family")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/personalization/insights", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var body struct {
		Result struct {
			Patterns           services.TravelPatterns `json:"patterns"`
			Confidence         int                     `json:"confidence"`
			SuggestedGroupSize string                  `json:"suggested_group_size"`
		} `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	// min(40, 3*8)=24 + 0 (нет предпочтений) + min(30, 2*15)=30
	assert.Equal(t, 54, body.Result.Confidence)
	assert.Equal(t, 3, body.Result.Patterns.TotalTrips)
	assert.Equal(t, 2, body.Result.Patterns.TripsThisYear)
	assert.Equal(t, "Paris, France", body.Result.Patterns.FavoriteDestinations[0].Destination)
	assert.Equal(t, "couple", body.Result.SuggestedGroupSize)
}

func TestSuggestBudgetEndpoint(t *testing.T) {
	r := setupRouter(t)
	user, auth := createUser(t, "budget-endpoint@safar.uz")

	pref := models.Preference{
		UserID:      user.ID,
		TravelStyle: "luxury",
	}
	assert.NoError(t, utils.GetDB().Create(&pref).Error)

	// Без истории поездок базовая сумма 1000: 2.5 x 2 x 1000 x 7/7 = 5000
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/personalization/suggest/budget?destination="+url.QueryEscape("Dubai, UAE")+"&days=7", nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var body struct {
		Result struct {
			Estimate int `json:"estimate"`
		} `json:"result"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 5000, body.Result.Estimate)
}

func TestTripCompleteLearnsPreferences(t *testing.T) {
	r := setupRouter(t)
	user, auth := createUser(t, "trip-complete@safar.uz")
	trip := seedTrip(t, user.ID, "Samarkand, Uzbekistan", "2026-04-01", "2026-04-05", 600, "family")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", fmt.Sprintf("/user/trips/%d/complete", trip.ID), bytes.NewBuffer(nil))
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)

	var saved models.Trip
	assert.NoError(t, utils.GetDB().First(&saved, trip.ID).Error)
	assert.Equal(t, "completed", saved.Status)

	// Направление завершенной поездки попало в предпочтения
	var pref models.Preference
	assert.NoError(t, utils.GetDB().Where("user_id = ?", user.ID).First(&pref).Error)
	assert.Equal(t, []string{"Samarkand, Uzbekistan"}, pref.DestinationList())

	// Повторное завершение отклоняется
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", fmt.Sprintf("/user/trips/%d/complete", trip.ID), nil)
	req.Header.Set("Authorization", auth)
	r.ServeHTTP(w, req)
	assert.Equal(t, 409, w.Code)
}
