package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/casavia/casavia-be/internal/auth"
	"github.com/casavia/casavia-be/internal/metrics"
	"github.com/casavia/casavia-be/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PropertyHandler handles HTTP requests for the property catalog.
type PropertyHandler struct {
	properties services.PropertyServiceProvider
	events     services.EventServiceProvider
	collector  *metrics.Collector
}

// NewPropertyHandler creates a new PropertyHandler.
func NewPropertyHandler(properties services.PropertyServiceProvider, events services.EventServiceProvider, collector *metrics.Collector) *PropertyHandler {
	return &PropertyHandler{properties: properties, events: events, collector: collector}
}

// SearchPayload defines the structure for search requests. Dates are
// optional; when both are present and valid, unavailable properties are
// excluded.
type SearchPayload struct {
	LocationQueryString string `json:"locationQueryString"`
	CheckIn             string `json:"checkIn"`
	CheckOut            string `json:"checkOut"`
}

// Search filters the catalog and returns lightweight summaries.
func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	var payload SearchPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summaries, err := h.properties.Search(payload.LocationQueryString, payload.CheckIn, payload.CheckOut)
	if err != nil {
		log.Error().Err(err).Str("query", payload.LocationQueryString).Msg("Property search failed")
		respondError(w, http.StatusInternalServerError, "An internal server error occurred while searching.")
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

// Get handles the request to get a single property by its ID.
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	property, err := h.properties.GetPropertyByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, property)
}

// Create handles a host submitting a new listing. The route is gated on the
// HOST role; the host username comes from the token, never the payload.
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authorization header is missing or invalid")
		return
	}

	var input services.NewPropertyInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		respondError(w, http.StatusBadRequest, "All property fields are required")
		return
	}

	property, err := h.properties.CreateProperty(claims.Username, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.collector.RecordPropertyListed()
	if err := h.events.CreateEvent("property.listed", "info", "Property "+property.Name+" listed by "+claims.Username, &property.PropertyID); err != nil {
		log.Warn().Err(err).Msg("Failed to record listing event")
	}

	respondJSON(w, http.StatusCreated, property)
}

// MyProperties lists the catalog entries owned by the authenticated host.
func (h *PropertyHandler) MyProperties(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authorization header is missing or invalid")
		return
	}

	summaries, err := h.properties.GetPropertiesByHost(claims.Username)
	if err != nil {
		log.Error().Err(err).Str("host", claims.Username).Msg("Failed to list host properties")
		respondError(w, http.StatusInternalServerError, "An internal server error occurred")
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}
