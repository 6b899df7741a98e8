package adaptor

import (
	"encoding/json"
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowHandler struct {
	service usecase.ShowService
	log     *zap.Logger
}

func NewShowHandler(service usecase.ShowService, log *zap.Logger) *ShowHandler {
	return &ShowHandler{
		service: service,
		log:     log.With(zap.String("handler", "show")),
	}
}

// GetShows handles GET /api/shows?movie_id=...&theater_id=...
func (h *ShowHandler) GetShows(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	shows, err := h.service.GetShows(r.Context(), query.Get("movie_id"), query.Get("theater_id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get shows")
		return
	}

	utils.ResponseSuccess(w, "success", shows)
}

// GetShowByID handles GET /api/shows/{id}
func (h *ShowHandler) GetShowByID(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	show, err := h.service.GetShowByID(r.Context(), showID)
	if err != nil {
		writeServiceError(w, h.log, err, "get show by ID")
		return
	}

	utils.ResponseSuccess(w, "success", show)
}

// GetShowSeats handles GET /api/shows/{id}/seats
func (h *ShowHandler) GetShowSeats(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	seats, err := h.service.GetShowSeats(r.Context(), showID)
	if err != nil {
		writeServiceError(w, h.log, err, "get show seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// CreateShow handles POST /api/shows
func (h *ShowHandler) CreateShow(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	show, err := h.service.CreateShow(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create show")
		return
	}

	utils.ResponseCreated(w, "success", show)
}

// DeleteShow handles DELETE /api/shows/{id}
func (h *ShowHandler) DeleteShow(w http.ResponseWriter, r *http.Request) {
	showID := chi.URLParam(r, "id")
	if showID == "" {
		utils.ResponseBadRequest(w, "Show ID is required", nil)
		return
	}

	if err := h.service.DeleteShow(r.Context(), showID); err != nil {
		writeServiceError(w, h.log, err, "delete show")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
