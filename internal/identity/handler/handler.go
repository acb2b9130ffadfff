package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fayda/internal/identity/faydaid"
	"fayda/internal/identity/models"
	"fayda/pkg/platform/httputil"
	"fayda/pkg/requestcontext"
)

// Service defines the verification operations exposed over HTTP.
type Service interface {
	VerifyWorkerID(ctx context.Context, faydaID, fullName string) (models.VerificationResult, error)
	ValidateAndVerifyProfile(ctx context.Context, faydaID, fullName string) (models.ProfileResult, error)
}

// Handler wires Fayda ID endpoints to the verification service.
// Verification outcomes, including rejections, are 200 responses; only
// undecodable bodies and store failures produce error statuses.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an identity handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts identity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/fayda/validate", h.HandleValidate)
	r.Post("/fayda/verify", h.HandleVerify)
	r.Get("/fayda/regions", h.HandleRegions)
	r.Post("/profiles/verify", h.HandleVerifyProfile)
}

// HandleValidate handles POST /fayda/validate. It never touches the registry.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[ValidateRequest](r)
	if err != nil {
		h.writeError(w, r, "decode validate request", err)
		return
	}
	_, parseErr := faydaid.Parse(req.FaydaID)
	httputil.WriteJSON(w, http.StatusOK, toValidateResponse(req.FaydaID, parseErr))
}

// HandleVerify handles POST /fayda/verify.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[VerifyRequest](r)
	if err != nil {
		h.writeError(w, r, "decode verify request", err)
		return
	}

	result, err := h.service.VerifyWorkerID(r.Context(), req.FaydaID, req.FullName)
	if err != nil {
		h.writeError(w, r, "fayda verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleVerifyProfile handles POST /profiles/verify.
func (h *Handler) HandleVerifyProfile(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.DecodeJSON[VerifyRequest](r)
	if err != nil {
		h.writeError(w, r, "decode profile request", err)
		return
	}

	result, err := h.service.ValidateAndVerifyProfile(r.Context(), req.FaydaID, req.FullName)
	if err != nil {
		h.writeError(w, r, "profile verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleRegions handles GET /fayda/regions.
func (h *Handler) HandleRegions(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, RegionsResponse{Regions: faydaid.Regions()})
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	status, _ := httputil.StatusFor(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, msg,
		"request_id", requestcontext.RequestID(r.Context()),
		"error", err,
	)
	httputil.WriteError(w, err)
}
