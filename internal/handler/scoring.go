package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/docuiulia/partner-scoring/internal/config"
	"github.com/docuiulia/partner-scoring/internal/domain"
	"github.com/docuiulia/partner-scoring/internal/service"
	customError "github.com/docuiulia/partner-scoring/pkg/errors"
	"github.com/docuiulia/partner-scoring/pkg/response"
)

// UserIDHeader scopes every request to one tenant. Authentication itself is
// handled upstream.
const UserIDHeader = "X-User-ID"

type ScoringHandler struct {
	service   service.Scoring
	validator *validator.Validate
	config    *config.Config
}

func NewScoringHandler(svc service.Scoring, cfg *config.Config) *ScoringHandler {
	return &ScoringHandler{
		service:   svc,
		validator: validator.New(),
		config:    cfg,
	}
}

// GetPartnerScore handles GET /partners/{partnerId}/credit-score
func (h *ScoringHandler) GetPartnerScore(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		response.BadRequest(w, "Missing user", customError.WrapMissingUser())
		return
	}

	partnerID, err := uuid.Parse(mux.Vars(r)["partnerId"])
	if err != nil {
		response.BadRequest(w, "Invalid partner id", err)
		return
	}

	result, err := h.service.GetPartnerScore(r.Context(), userID, partnerID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPartnersByRisk handles GET /partners/by-risk?risk_level=&limit=
func (h *ScoringHandler) GetPartnersByRisk(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		response.BadRequest(w, "Missing user", customError.WrapMissingUser())
		return
	}

	request := domain.PartnersByRiskRequest{
		RiskLevel: r.URL.Query().Get("risk_level"),
		Limit:     h.config.Scoring.DefaultLimit,
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid limit", err)
			return
		}
		request.Limit = limit
	}

	if err := h.validator.Struct(request); err != nil {
		response.BadRequest(w, "Invalid query parameters", err)
		return
	}

	// The ceiling is configurable, so it cannot live in the validator tag
	if max := h.config.Scoring.MaxLimit; request.Limit > max {
		response.BadRequest(w, "Invalid query parameters",
			fmt.Errorf("limit must not exceed %d", max))
		return
	}

	results, err := h.service.GetPartnersByRisk(r.Context(), userID, request.RiskLevel, request.Limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response.Success(w, domain.PartnersByRiskResponse{
		RiskLevel: request.RiskLevel,
		Partners:  results,
	})
}

// GetPortfolioSummary handles GET /portfolio/credit-summary
func (h *ScoringHandler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get(UserIDHeader)
	if userID == "" {
		response.BadRequest(w, "Missing user", customError.WrapMissingUser())
		return
	}

	summary, err := h.service.GetPortfolioSummary(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *ScoringHandler) writeServiceError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if errors.As(err, &businessErr) {
		switch businessErr.Code {
		case customError.ErrCodePartnerNotFound:
			response.NotFound(w, businessErr.Message)
			return
		case customError.ErrCodeInvalidRiskLevel, customError.ErrCodeMissingUser:
			response.BadRequest(w, businessErr.Message, businessErr)
			return
		}
	}

	response.InternalServerError(w, "Could not compute credit score", err)
}
