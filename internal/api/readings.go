package api

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/profarcana/arcana/internal/card"
	"github.com/profarcana/arcana/internal/reading"
	"github.com/profarcana/arcana/internal/storage"
	"github.com/profarcana/arcana/internal/themes"
)

const maxRequestBodySize = 1 << 20 // 1MB

// DrawRequest is the body of POST /v1/readings.
type DrawRequest struct {
	Profile *themes.Profile `json:"profile"`
}

type AppDeps struct {
	Readings *reading.Service
	Catalog  card.Catalog
	Token    string
}

func NewAppHandler(deps AppDeps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(requireBearer(deps.Token))

		r.Post("/v1/readings", handleDrawReading(deps))
		r.Get("/v1/readings", handleListReadings(deps))
		r.Get("/v1/readings/{id}", handleGetReading(deps))
		r.Delete("/v1/readings/{id}", handleDeleteReading(deps))
		r.Get("/v1/cards", handleListCards(deps))
		r.Get("/v1/cards/{id}", handleGetCard(deps))
	})

	return r
}

// requireBearer gates a route group on the server's API token. The
// comparison is constant time so the token can't be probed byte by byte.
func requireBearer(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				httpError(w, http.StatusUnauthorized, "authentication_error", "missing or invalid API token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func handleDrawReading(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		defer r.Body.Close()

		var req DrawRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}

		result, err := deps.Readings.NewReading(r.Context(), req.Profile)
		if errors.Is(err, reading.ErrNoProfileData) {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "profile has no usable data")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to draw reading: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(result)
	}
}

func handleListReadings(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := parseIntParam(r, "limit", 20, 100)

		readings, err := deps.Readings.List(limit)
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to list readings: %v", err)
			return
		}

		if readings == nil {
			readings = []reading.Reading{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(readings)
	}
}

func handleGetReading(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		result, err := deps.Readings.Get(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "reading not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to get reading: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func handleDeleteReading(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		err := deps.Readings.Delete(id)
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "reading not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to delete reading: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
	}
}

func handleListCards(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards := deps.Catalog.AllCards
		if arcana := r.URL.Query().Get("arcana"); arcana != "" {
			switch card.Arcana(arcana) {
			case card.ArcanaMajor:
				cards = deps.Catalog.MajorArcana
			case card.ArcanaMinor:
				cards = deps.Catalog.MinorArcana
			default:
				httpError(w, http.StatusBadRequest, "invalid_request_error", "unknown arcana %q", arcana)
				return
			}
		}

		if cards == nil {
			cards = []card.Card{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cards)
	}
}

func handleGetCard(deps AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		c, ok := deps.Catalog.ByID(id)
		if !ok {
			httpError(w, http.StatusNotFound, "not_found", "card not found")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(c)
	}
}

func parseIntParam(r *http.Request, key string, defaultVal, maxVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	if maxVal > 0 && v > maxVal {
		return maxVal
	}
	return v
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
