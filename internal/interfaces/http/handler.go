package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/heirvault/heirvault-daemon/internal/core/application"
	"github.com/heirvault/heirvault-daemon/internal/core/domain"
	"github.com/heirvault/heirvault-daemon/internal/core/ports"
)

type vaultHandler struct {
	vaultService application.VaultService
	pubsub       ports.SecurePubSub
}

func newVaultHandler(
	vaultService application.VaultService, pubsub ports.SecurePubSub,
) *vaultHandler {
	return &vaultHandler{vaultService: vaultService, pubsub: pubsub}
}

type createVaultRequest struct {
	TimeLock uint64 `json:"timelock"`
}

type amountRequest struct {
	Asset  string `json:"asset,omitempty"`
	Amount uint64 `json:"amount"`
}

type beneficiaryRequest struct {
	Beneficiary string `json:"beneficiary"`
}

type subscribeRequest struct {
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *vaultHandler) createVault(w http.ResponseWriter, r *http.Request) {
	req := createVaultRequest{}
	if !decode(w, r, &req) {
		return
	}

	info, err := h.vaultService.CreateVault(
		r.Context(), actorFromContext(r.Context()), req.TimeLock,
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, info)
}

func (h *vaultHandler) getVault(w http.ResponseWriter, r *http.Request) {
	info, err := h.vaultService.GetVault(r.Context(), chi.URLParam(r, "vaultID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *vaultHandler) listVaults(w http.ResponseWriter, r *http.Request) {
	infos, err := h.vaultService.ListVaults(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *vaultHandler) heartbeat(w http.ResponseWriter, r *http.Request) {
	if err := h.vaultService.Heartbeat(
		r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "vaultID"),
	); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *vaultHandler) deposit(w http.ResponseWriter, r *http.Request) {
	req := amountRequest{}
	if !decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	actor := actorFromContext(ctx)
	vaultID := chi.URLParam(r, "vaultID")

	var err error
	if req.Asset == "" || req.Asset == domain.NativeAsset {
		err = h.vaultService.DepositNative(ctx, actor, vaultID, req.Amount)
	} else {
		err = h.vaultService.DepositToken(ctx, actor, vaultID, req.Asset, req.Amount)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *vaultHandler) withdraw(w http.ResponseWriter, r *http.Request) {
	req := amountRequest{}
	if !decode(w, r, &req) {
		return
	}

	ctx := r.Context()
	actor := actorFromContext(ctx)
	vaultID := chi.URLParam(r, "vaultID")

	var err error
	if req.Asset == "" || req.Asset == domain.NativeAsset {
		err = h.vaultService.WithdrawNative(ctx, actor, vaultID, req.Amount)
	} else {
		err = h.vaultService.WithdrawToken(ctx, actor, vaultID, req.Asset, req.Amount)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *vaultHandler) addBeneficiary(w http.ResponseWriter, r *http.Request) {
	req := beneficiaryRequest{}
	if !decode(w, r, &req) {
		return
	}

	if err := h.vaultService.AddBeneficiary(
		r.Context(), actorFromContext(r.Context()),
		chi.URLParam(r, "vaultID"), req.Beneficiary,
	); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *vaultHandler) removeBeneficiary(w http.ResponseWriter, r *http.Request) {
	if err := h.vaultService.RemoveBeneficiary(
		r.Context(), actorFromContext(r.Context()),
		chi.URLParam(r, "vaultID"), chi.URLParam(r, "beneficiary"),
	); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *vaultHandler) resign(w http.ResponseWriter, r *http.Request) {
	if err := h.vaultService.Resign(
		r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "vaultID"),
	); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *vaultHandler) settle(w http.ResponseWriter, r *http.Request) {
	info, err := h.vaultService.Settle(
		r.Context(), actorFromContext(r.Context()), chi.URLParam(r, "vaultID"),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *vaultHandler) listDeposits(w http.ResponseWriter, r *http.Request) {
	infos, err := h.vaultService.ListDeposits(
		r.Context(), chi.URLParam(r, "vaultID"), pageFromRequest(r),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *vaultHandler) listWithdrawals(w http.ResponseWriter, r *http.Request) {
	infos, err := h.vaultService.ListWithdrawals(
		r.Context(), chi.URLParam(r, "vaultID"), pageFromRequest(r),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *vaultHandler) listSettlements(w http.ResponseWriter, r *http.Request) {
	infos, err := h.vaultService.ListSettlements(
		r.Context(), chi.URLParam(r, "vaultID"), pageFromRequest(r),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

func (h *vaultHandler) subscribe(w http.ResponseWriter, r *http.Request) {
	if h.pubsub == nil {
		writeError(w, http.StatusNotImplemented, "not_implemented",
			"webhook notifications are disabled")
		return
	}

	req := subscribeRequest{}
	if !decode(w, r, &req) {
		return
	}
	if req.Event == "" {
		req.Event = ports.AnyTopic
	}

	id, err := h.pubsub.Subscribe(req.Event, req.Endpoint, req.Secret)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *vaultHandler) unsubscribe(w http.ResponseWriter, r *http.Request) {
	if h.pubsub == nil {
		writeError(w, http.StatusNotImplemented, "not_implemented",
			"webhook notifications are disabled")
		return
	}

	event := r.URL.Query().Get("event")
	if err := h.pubsub.Unsubscribe(event, chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pageFromRequest(r *http.Request) domain.Page {
	number, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	return domain.NewPage(number, size)
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request",
			"malformed request body")
		return false
	}
	return true
}

// writeDomainError maps service errors to wire codes. Unknown errors are
// logged and reported as opaque internal errors.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVaultNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "access_denied/not_owner", err.Error())
	case errors.Is(err, domain.ErrNotBeneficiary):
		writeError(w, http.StatusForbidden, "access_denied/not_beneficiary", err.Error())
	case errors.Is(err, domain.ErrVaultLocked):
		writeError(w, http.StatusConflict, "precondition_failed/not_unlocked", err.Error())
	case errors.Is(err, domain.ErrBeneficiaryAlreadyRegistered):
		writeError(w, http.StatusConflict, "conflict/beneficiary_exists", err.Error())
	case errors.Is(err, domain.ErrInsufficientBalance):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_funds/native", err.Error())
	case errors.Is(err, domain.ErrInsufficientTokenBalance):
		writeError(w, http.StatusUnprocessableEntity, "insufficient_funds/token", err.Error())
	case errors.Is(err, application.ErrTransferFailed):
		writeError(w, http.StatusBadGateway, "transfer_failed", err.Error())
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAsset),
		errors.Is(err, domain.ErrInvalidTimeLock),
		errors.Is(err, domain.ErrBeneficiaryNotFound),
		errors.Is(err, domain.ErrMissingOwner):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		log.WithError(err).Error("unhandled error")
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("could not encode response")
	}
}
