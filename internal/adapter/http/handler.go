package http

import (
	"context"
	"errors"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/http/middleware"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/http/response"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/adapter/storage"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/usecase"
)

// TripHandler handles HTTP requests for the simulation flow.
type TripHandler struct {
	flow     usecase.TripFlowUseCase
	sessions *usecase.Registry
}

// NewTripHandler creates a TripHandler.
func NewTripHandler(flow usecase.TripFlowUseCase, sessions *usecase.Registry) *TripHandler {
	return &TripHandler{
		flow:     flow,
		sessions: sessions,
	}
}

// CreateSession handles POST /api/v1/sessions
//
// @Summary Create a simulation session
// @Description Creates an empty simulation session for the authenticated user
// @Tags sessions
// @Produce json
// @Success 201 {object} SessionResponse
// @Security BearerAuth
// @Router /api/v1/sessions [post]
func (h *TripHandler) CreateSession(c echo.Context) error {
	session := h.sessions.Create(middleware.GetUserID(c))
	return response.Created(c, &SessionResponse{
		SessionID: session.ID(),
		Phase:     string(usecase.PhaseEmpty),
	})
}

// GetSession handles GET /api/v1/sessions/:id
//
// @Summary Get the session state
// @Description Returns the current phase, candidate slots and selection
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SnapshotResponse
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Security BearerAuth
// @Router /api/v1/sessions/{id} [get]
func (h *TripHandler) GetSession(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSnapshotResponse(session.Snapshot()))
}

// StartSearch handles POST /api/v1/sessions/:id/search
//
// @Summary Start candidate searches
// @Description Validates the trip parameters and issues flight and hotel searches together
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body StartSearchRequest true "Trip parameters"
// @Success 200 {object} SnapshotResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/search [post]
func (h *TripHandler) StartSearch(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var req StartSearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	snap, err := h.flow.StartSearch(c.Request().Context(), session, ToSearchParams(&req))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSnapshotResponse(snap))
}

// ChooseFlight handles PUT /api/v1/sessions/:id/flight
//
// @Summary Choose a flight
// @Description Sets the chosen flight from the candidate list; re-selection replaces the prior choice
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ChooseFlightRequest true "Flight choice"
// @Success 200 {object} SnapshotResponse
// @Failure 400 {object} response.ErrorDetail "Unknown flight id"
// @Failure 409 {object} response.ErrorDetail "Wrong phase"
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/flight [put]
func (h *TripHandler) ChooseFlight(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var req ChooseFlightRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	if err := h.flow.ChooseFlight(session, req.FlightID); err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSnapshotResponse(session.Snapshot()))
}

// ChooseHotel handles PUT /api/v1/sessions/:id/hotel
//
// @Summary Choose a hotel
// @Description Sets the chosen hotel from the candidate list; re-selection replaces the prior choice
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ChooseHotelRequest true "Hotel choice"
// @Success 200 {object} SnapshotResponse
// @Failure 400 {object} response.ErrorDetail "Unknown hotel id"
// @Failure 409 {object} response.ErrorDetail "Wrong phase"
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/hotel [put]
func (h *TripHandler) ChooseHotel(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var req ChooseHotelRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	if err := h.flow.ChooseHotel(session, req.HotelID); err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSnapshotResponse(session.Snapshot()))
}

// AdvanceToTours handles POST /api/v1/sessions/:id/tours
//
// @Summary Advance to tour selection
// @Description Requires both flight and hotel; loads tour candidates near the destination
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ToursResponse
// @Failure 422 {object} response.ErrorDetail "Incomplete selection"
// @Failure 409 {object} response.ErrorDetail "Wrong phase"
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/tours [post]
func (h *TripHandler) AdvanceToTours(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}

	tours, err := h.flow.AdvanceToTours(c.Request().Context(), session)
	if err != nil {
		return h.handleError(c, err)
	}
	if tours == nil {
		tours = []domain.TourOption{}
	}
	return response.OK(c, &ToursResponse{Tours: tours})
}

// ToggleTour handles POST /api/v1/sessions/:id/tours/toggle
//
// @Summary Toggle a tour
// @Description Flips one tour's membership and returns the recomputed cost breakdown
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ToggleTourRequest true "Tour toggle"
// @Success 200 {object} CostResponse
// @Failure 400 {object} response.ErrorDetail "Unknown tour id"
// @Failure 409 {object} response.ErrorDetail "Wrong phase"
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/tours/toggle [post]
func (h *TripHandler) ToggleTour(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var req ToggleTourRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	cost, err := h.flow.ToggleTour(session, req.TourID)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, &CostResponse{Cost: cost})
}

// BackToSelecting handles POST /api/v1/sessions/:id/back
//
// @Summary Return to flight and hotel selection
// @Description Moves back from tour selection; chosen tours are kept
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SnapshotResponse
// @Failure 409 {object} response.ErrorDetail "Wrong phase"
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/back [post]
func (h *TripHandler) BackToSelecting(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.flow.BackToSelecting(session); err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToSnapshotResponse(session.Snapshot()))
}

// Summarize handles POST /api/v1/sessions/:id/summary
//
// @Summary Advance to the costed summary
// @Description Moves to the read-only summary with the derived cost breakdown
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} SummaryResponse
// @Failure 409 {object} response.ErrorDetail "Wrong phase"
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/summary [post]
func (h *TripHandler) Summarize(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}

	summary, err := h.flow.AdvanceToSummary(session)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, &SummaryResponse{Selection: summary.Selection, Cost: summary.Cost})
}

// Save handles POST /api/v1/sessions/:id/save
//
// @Summary Save the simulation
// @Description Persists the selection with a re-derived total; on failure the session stays on the summary for retry
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} SavedResponse
// @Failure 409 {object} response.ErrorDetail "Wrong phase"
// @Failure 500 {object} response.ErrorDetail "Persistence failure"
// @Security BearerAuth
// @Router /api/v1/sessions/{id}/save [post]
func (h *TripHandler) Save(c echo.Context) error {
	session, err := h.session(c)
	if err != nil {
		return h.handleError(c, err)
	}

	id, err := h.flow.Save(c.Request().Context(), session)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Created(c, &SavedResponse{ID: id})
}

// SearchCities handles GET /api/v1/cities
//
// @Summary City autocomplete
// @Description Returns geocoded Brazilian city candidates for a free-text query
// @Tags cities
// @Produce json
// @Param q query string true "Free-text city query (2+ characters)"
// @Success 200 {object} CitiesResponse
// @Failure 400 {object} response.ErrorDetail "Query too short"
// @Security BearerAuth
// @Router /api/v1/cities [get]
func (h *TripHandler) SearchCities(c echo.Context) error {
	cities, err := h.flow.SearchCities(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		if domain.IsNoResults(err) {
			return response.OK(c, &CitiesResponse{Cities: []domain.Place{}})
		}
		return h.handleError(c, err)
	}
	return response.OK(c, &CitiesResponse{Cities: cities})
}

// ListSimulations handles GET /api/v1/simulations
//
// @Summary List saved simulations
// @Description Returns the authenticated user's saved simulations, newest first
// @Tags simulations
// @Produce json
// @Success 200 {object} SimulationsResponse
// @Security BearerAuth
// @Router /api/v1/simulations [get]
func (h *TripHandler) ListSimulations(c echo.Context) error {
	sims, err := h.flow.ListSaved(c.Request().Context(), middleware.GetUserID(c))
	if err != nil {
		return h.handleError(c, err)
	}
	if sims == nil {
		sims = []domain.PersistedSimulation{}
	}
	return response.OK(c, &SimulationsResponse{Simulations: sims})
}

// ImportSimulation handles POST /api/v1/simulations
//
// @Summary Save a selection document directly
// @Description Accepts a complete selection document in either historical key convention and persists it with a re-derived total
// @Tags simulations
// @Accept json
// @Produce json
// @Success 201 {object} SavedResponse
// @Failure 400 {object} response.ErrorDetail "Malformed document or invalid dates"
// @Security BearerAuth
// @Router /api/v1/simulations [post]
func (h *TripHandler) ImportSimulation(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.InvalidRequestBody(c)
	}

	sel, err := storage.DecodeSelection(body)
	if err != nil {
		return response.InvalidRequestBody(c)
	}
	record, err := storage.EncodeRecord(sel, middleware.GetUserID(c))
	if err != nil {
		return h.handleError(c, err)
	}

	id, err := h.flow.SaveRecord(c.Request().Context(), record)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Created(c, &SavedResponse{ID: id})
}

// DeleteSimulation handles DELETE /api/v1/simulations/:id
//
// @Summary Delete a saved simulation
// @Description Removes one saved simulation; ownership-checked
// @Tags simulations
// @Produce json
// @Param id path string true "Simulation ID"
// @Success 204 "Deleted"
// @Failure 404 {object} response.ErrorDetail "Simulation not found"
// @Security BearerAuth
// @Router /api/v1/simulations/{id} [delete]
func (h *TripHandler) DeleteSimulation(c echo.Context) error {
	err := h.flow.DeleteSaved(c.Request().Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.NoContent(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *TripHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// session resolves the session path parameter for the authenticated user.
func (h *TripHandler) session(c echo.Context) (*usecase.Session, error) {
	return h.sessions.Get(middleware.GetUserID(c), c.Param("id"))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *TripHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to HTTP responses.
func (h *TripHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return response.NotFound(c, "Session not found")
	case errors.Is(err, domain.ErrSimulationNotFound):
		return response.NotFound(c, "Simulation not found")
	case errors.Is(err, domain.ErrInvalidPhase):
		return response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrIncompleteSelection):
		return response.UnprocessableEntity(c, "Choose both a flight and a hotel before continuing")
	case errors.Is(err, domain.ErrInvalidDateRange):
		return response.ValidationErrorWithMessage(c, err.Error())
	case domain.IsInvalidSearch(err):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, domain.ErrAuthentication), errors.Is(err, domain.ErrRateLimited),
		errors.Is(err, domain.ErrProviderUnavailable):
		return response.ServiceUnavailableWithMessage(c, "An external provider is unavailable. Please try again.")
	case errors.Is(err, domain.ErrPersistence):
		return response.InternalServerErrorWithMessage(c, "The simulation could not be saved. Please try again.")
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	default:
		return response.InternalServerError(c)
	}
}
