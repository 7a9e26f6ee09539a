package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ecspend/lending-engine/internal/domain"
	"github.com/ecspend/lending-engine/internal/service"
	customError "github.com/ecspend/lending-engine/pkg/errors"
	"github.com/ecspend/lending-engine/pkg/response"
)

type LendingHandler struct {
	service   *service.LendingService
	validator *validator.Validate
}

func NewLendingHandler(service *service.LendingService) *LendingHandler {
	return &LendingHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Resume reports where the session should land based on the persisted
// profile: onboarding, quick login, or straight to the dashboard.
func (h *LendingHandler) Resume(w http.ResponseWriter, r *http.Request) {
	route, err := h.service.Resume(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, map[string]string{"route": route})
}

func (h *LendingHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	var request domain.OnboardRequest
	if !h.decode(w, r, &request) {
		return
	}

	profile, err := h.service.Onboard(r.Context(), &request)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, profile)
}

func (h *LendingHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var request domain.UnlockRequest
	if !h.decode(w, r, &request) {
		return
	}

	profile, err := h.service.Unlock(r.Context(), request.PIN)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, profile)
}

func (h *LendingHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.Profile(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, profile)
}

func (h *LendingHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Wipe(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, map[string]string{"route": service.RouteOnboarding})
}

func (h *LendingHandler) Begin(w http.ResponseWriter, r *http.Request) {
	var request domain.BeginTransactionRequest
	if !h.decode(w, r, &request) {
		return
	}

	state, err := h.service.Begin(r.Context(), request.Variant)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Created(w, map[string]string{"state": state})
}

func (h *LendingHandler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	var request domain.EntryRequest
	if !h.decode(w, r, &request) {
		return
	}

	offers, err := h.service.SubmitEntry(r.Context(), &request)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, offers)
}

func (h *LendingHandler) SelectOffer(w http.ResponseWriter, r *http.Request) {
	var request domain.SelectOfferRequest
	if !h.decode(w, r, &request) {
		return
	}

	disclosure, err := h.service.SelectOffer(r.Context(), request.PartnerID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, disclosure)
}

func (h *LendingHandler) SetFrequency(w http.ResponseWriter, r *http.Request) {
	var request domain.FrequencyRequest
	if !h.decode(w, r, &request) {
		return
	}

	disclosure, err := h.service.SetFrequency(r.Context(), request.Frequency)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, disclosure)
}

func (h *LendingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var request domain.ConfirmRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.Confirm(r.Context(), request.Consent)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *LendingHandler) Back(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Back(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, map[string]string{"state": state})
}

func (h *LendingHandler) Repay(w http.ResponseWriter, r *http.Request) {
	var request domain.RepaymentRequest
	if !h.decode(w, r, &request) {
		return
	}

	result, err := h.service.Repay(r.Context(), request.Line)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *LendingHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(mux.Vars(r)["transactionId"])
	if err != nil {
		response.BadRequest(w, "Invalid transaction id", err)
		return
	}

	installments, err := h.service.Schedule(r.Context(), transactionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, installments)
}

func (h *LendingHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	response.Success(w, history)
}

func (h *LendingHandler) decode(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}
	if err := h.validator.Struct(request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return false
	}
	return true
}

// writeError maps business error codes onto HTTP statuses. Blocked
// flow transitions are client errors; storage failures are server
// errors.
func (h *LendingHandler) writeError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "Unexpected error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeProfileNotFound, customError.ErrCodeProfileCorrupted:
		response.NotFound(w, businessErr.Message)
	case customError.ErrCodeInvalidPIN:
		response.Unauthorized(w, businessErr.Message)
	case customError.ErrCodeDatabaseError, customError.ErrCodeCacheError:
		response.InternalServerError(w, businessErr.Message, businessErr.Err)
	default:
		response.BadRequest(w, businessErr.Message, businessErr.Err)
	}
}
