package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunanails/salon-scheduler/internal/handlers"
	"github.com/lunanails/salon-scheduler/internal/middleware"
	"github.com/lunanails/salon-scheduler/internal/models"
	"github.com/lunanails/salon-scheduler/internal/storetest"
	"github.com/lunanails/salon-scheduler/internal/timezone"
	ucBooking "github.com/lunanails/salon-scheduler/internal/usecase/booking"
)

// asUser stands in for the JWT middleware in tests.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Next()
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *storetest.FakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storetest.New()
	loc := timezone.Location("America/Los_Angeles")

	createUC := ucBooking.NewCreateBooking(store, nil, nil, loc)
	setStatusUC := ucBooking.NewSetStatus(store, nil, nil, loc, false)
	listOwnerUC := ucBooking.NewListByOwner(store)
	listDayUC := ucBooking.NewListByDay(store, nil, loc)

	h := handlers.NewAppointmentHandler(createUC, setStatusUC, listOwnerUC, listDayUC)

	r := gin.New()
	api := r.Group("/api", asUser(1))
	api.POST("/me/appointments", h.Create)
	api.GET("/me/appointments", h.ListOwn)
	api.GET("/appointments/day/:date", h.ListByDay)
	api.PATCH("/appointments/:id/status", h.SetStatus)

	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createBody() map[string]any {
	return map[string]any{
		"date":          "2024-05-01",
		"time":          "11:00 AM",
		"customer_name": "Dana",
		"phone_number":  "555-0101",
	}
}

func TestAppointmentHandlerCreate(t *testing.T) {

	t.Run("201 on success", func(t *testing.T) {
		r, store := setupRouter(t)
		store.SeedUser("Alice", "alice@example.com")

		rec := doJSON(t, r, http.MethodPost, "/api/me/appointments", createBody())
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var ap models.Appointment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ap))
		assert.NotZero(t, ap.ID)
		assert.Equal(t, "confirmed", ap.Status)
	})

	t.Run("400 on missing fields", func(t *testing.T) {
		r, store := setupRouter(t)
		store.SeedUser("Alice", "alice@example.com")

		body := createBody()
		delete(body, "customer_name")
		rec := doJSON(t, r, http.MethodPost, "/api/me/appointments", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("404 when the caller's user record is gone", func(t *testing.T) {
		r, _ := setupRouter(t)

		rec := doJSON(t, r, http.MethodPost, "/api/me/appointments", createBody())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("409 on a tech slot conflict", func(t *testing.T) {
		r, store := setupRouter(t)
		store.SeedUser("Alice", "alice@example.com")
		tech := store.SeedTech("Mia")

		body := createBody()
		body["nail_tech_id"] = tech.ID

		rec := doJSON(t, r, http.MethodPost, "/api/me/appointments", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, r, http.MethodPost, "/api/me/appointments", body)
		require.Equal(t, http.StatusConflict, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "slot_conflict", resp["error_code"])
		assert.Equal(t, 1, store.AppointmentCount())
	})

	t.Run("400 on unknown tech id", func(t *testing.T) {
		r, store := setupRouter(t)
		store.SeedUser("Alice", "alice@example.com")

		body := createBody()
		body["nail_tech_id"] = 42
		rec := doJSON(t, r, http.MethodPost, "/api/me/appointments", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAppointmentHandlerListByDay(t *testing.T) {
	r, store := setupRouter(t)
	store.SeedUser("Alice", "alice@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/me/appointments", createBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/appointments/day/2024-05-01", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data  []models.Appointment `json:"data"`
		Total int                  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)

	rec = doJSON(t, r, http.MethodGet, "/api/appointments/day/garbage", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppointmentHandlerSetStatus(t *testing.T) {
	r, store := setupRouter(t)
	store.SeedUser("Alice", "alice@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/me/appointments", createBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ap))

	t.Run("200 on a valid transition", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/api/appointments/1/status", map[string]string{"status": "done"})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated models.Appointment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "done", updated.Status)
	})

	t.Run("400 on an invalid status value", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/api/appointments/1/status", map[string]string{"status": "pending"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("404 on an unknown appointment", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/api/appointments/999/status", map[string]string{"status": "done"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("400 on a non-numeric id", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPatch, "/api/appointments/abc/status", map[string]string{"status": "done"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestNailTechHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := storetest.New()
	store.SeedTech("Zoe")
	store.SeedTech("Mia")

	h := handlers.NewNailTechHandler(ucBooking.NewListNailTechs(store))

	r := gin.New()
	r.GET("/api/nail-techs", h.List)

	rec := doJSON(t, r, http.MethodGet, "/api/nail-techs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.NailTech `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Mia", resp.Data[0].Name)
	assert.Equal(t, "Zoe", resp.Data[1].Name)
}
