package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"curtainpro-backend/blobstore"
	"curtainpro-backend/services"
)

// fixedUserRouter wires the draft and order routes with one fixed
// authenticated user, bypassing JWT, so the draft persists between requests.
// Draft operations never touch the database, so these tests run against the
// real handlers end to end.
func fixedUserRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := blobstore.NewFileStore(t.TempDir())
	require.NoError(t, err)
	Setup(services.NewDraftService(), store, services.NewNotifyService())

	userID := uuid.New().String()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	r.GET("/api/draft", GetDraft)
	r.POST("/api/draft/entries", AddEntry)
	r.PUT("/api/draft/entries/:id", UpdateEntry)
	r.DELETE("/api/draft/entries/:id", DeleteEntry)
	r.POST("/api/draft/reset", ResetDraft)
	r.POST("/api/orders", SaveOrder)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func f(v float64) *float64 { return &v }

func TestAddEntryComputesMeasurements(t *testing.T) {
	r := fixedUserRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/draft/entries", EntryInput{
		WindowName:   "Bedroom",
		StitchType:   "Pleated",
		WidthInches:  f(72),
		HeightInches: f(84),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Entries []struct {
			WindowName string   `json:"windowName"`
			Quantity   float64  `json:"quantity"`
			TrackFeet  *float64 `json:"trackFeet"`
			Panels     *int     `json:"panels"`
		} `json:"entries"`
		Totals struct {
			Quantity float64 `json:"quantity"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.InDelta(t, 10.04, resp.Entries[0].Quantity, 1e-9)
	require.NotNil(t, resp.Entries[0].TrackFeet)
	assert.InDelta(t, 6.0, *resp.Entries[0].TrackFeet, 1e-9)
	assert.InDelta(t, 10.04, resp.Totals.Quantity, 1e-9)
}

func TestAddEntryRejectsNegativeDimensions(t *testing.T) {
	r := fixedUserRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/draft/entries", EntryInput{
		StitchType:   "Pleated",
		WidthInches:  f(-5),
		HeightInches: f(84),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddEntryUnknownStitchMeasuresZero(t *testing.T) {
	r := fixedUserRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/draft/entries", EntryInput{
		WindowName:   "Bedroom",
		StitchType:   "Box Pleat",
		WidthInches:  f(72),
		HeightInches: f(84),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Entries []struct {
			StitchType string   `json:"stitchType"`
			Quantity   float64  `json:"quantity"`
			TrackFeet  *float64 `json:"trackFeet"`
			SQFT       *float64 `json:"sqft"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "Box Pleat", resp.Entries[0].StitchType)
	assert.Zero(t, resp.Entries[0].Quantity)
	assert.Nil(t, resp.Entries[0].TrackFeet)
	assert.Nil(t, resp.Entries[0].SQFT)
}

func TestAddDoubleLayerEntry(t *testing.T) {
	r := fixedUserRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/draft/entries", EntryInput{
		WindowName:      "Living Room",
		StitchType:      "Pleated",
		WidthInches:     f(60),
		HeightInches:    f(84),
		DoubleLayer:     true,
		SheerStitchType: "Eyelet",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Entries []struct {
			ID         string `json:"id"`
			WindowName string `json:"windowName"`
			Layer      int    `json:"layer"`
			PairID     string `json:"pairId"`
			StitchType string `json:"stitchType"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "Living Room - Layer 1", resp.Entries[0].WindowName)
	assert.Equal(t, "Living Room - Layer 2", resp.Entries[1].WindowName)
	assert.Equal(t, "Eyelet", resp.Entries[1].StitchType)
	assert.Equal(t, resp.Entries[0].PairID, resp.Entries[1].PairID)

	// Deleting layer 2 leaves layer 1 intact.
	w = doJSON(t, r, http.MethodDelete, "/api/draft/entries/"+resp.Entries[1].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/draft", nil)
	var after struct {
		Entries []struct {
			WindowName string `json:"windowName"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &after))
	require.Len(t, after.Entries, 1)
	assert.Equal(t, "Living Room - Layer 1", after.Entries[0].WindowName)
}

func TestDeleteUnknownEntry(t *testing.T) {
	r := fixedUserRouter(t)
	w := doJSON(t, r, http.MethodDelete, "/api/draft/entries/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetClearsDraft(t *testing.T) {
	r := fixedUserRouter(t)

	doJSON(t, r, http.MethodPost, "/api/draft/entries", EntryInput{
		StitchType:   "Ripple",
		WidthInches:  f(40),
		HeightInches: f(60),
	})
	w := doJSON(t, r, http.MethodPost, "/api/draft/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries []json.RawMessage `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Entries)
}

// Saving with neither a name nor a phone must fail before any store
// mutation, and an empty draft must fail even with a customer supplied.
func TestSaveOrderValidation(t *testing.T) {
	r := fixedUserRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/orders", SaveOrderInput{Address: "12 Hill Road"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/orders", SaveOrderInput{Name: "Asha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
