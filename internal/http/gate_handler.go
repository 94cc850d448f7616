package httpapi

import (
	"errors"
	"net/http"

	"sluice-scada/internal/service"

	"go.uber.org/zap"
)

const (
	defaultHistoryExportLimit = 100
	maxHistoryExportLimit     = 5000
)

// GateHandler dashboard status, gate commands and audit export
type GateHandler struct {
	gateService   service.GateService
	statusService service.StatusService
	sessions      *SessionStore
	logger        *zap.Logger
}

func NewGateHandler(gateService service.GateService, statusService service.StatusService, sessions *SessionStore, logger *zap.Logger) *GateHandler {
	return &GateHandler{
		gateService:   gateService,
		statusService: statusService,
		sessions:      sessions,
		logger:        logger,
	}
}

// GetStatus dashboard snapshot. Never fails.
func (h *GateHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	snapshot := h.statusService.GetStatus(r.Context())
	writeJSON(w, http.StatusOK, Ok(snapshot, ""))
}

type controlGatePayload struct {
	UserID   flexInt `json:"user_id"`
	Command  string  `json:"command"`
	Position flexInt `json:"position"`
	Target   string  `json:"target"`
}

// ControlGate applies an operator command. The caller is identified by the
// session cookie or, for stateless clients, by user_id in the body.
func (h *GateHandler) ControlGate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload controlGatePayload
	if err := readBodyJSON(r, maxBodyBytes, &payload); err != nil {
		h.logger.Debug("Malformed control body", zap.Error(err))
	}

	res, err := h.gateService.ControlGate(ctx, service.ControlRequest{
		SessionUserID: h.sessions.sessionUserID(r),
		PayloadUserID: payload.UserID.Int64Ptr(),
		Command:       payload.Command,
		Position:      payload.Position.IntPtr(),
		Target:        payload.Target,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(controlErrorMessage(err)))
		return
	}

	writeJSON(w, http.StatusOK, Ok(res, MsgCommandSent))
}

func controlErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return MsgUnauthorized
	case errors.Is(err, service.ErrInvalidUser):
		return MsgInvalidUser
	default:
		return MsgDatabaseError
	}
}

// ExportHistory newest audit entries as an XLSX workbook (session required).
func (h *GateHandler) ExportHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.sessions.sessionUserID(r) == nil {
		writeJSON(w, http.StatusOK, Fail(MsgUnauthorized))
		return
	}

	limit := parseInt(r.URL.Query().Get("limit"), defaultHistoryExportLimit)
	if limit <= 0 {
		limit = defaultHistoryExportLimit
	}
	if limit > maxHistoryExportLimit {
		limit = maxHistoryExportLimit
	}

	entries, err := h.gateService.RecentHistory(ctx, limit)
	if err != nil {
		writeJSON(w, http.StatusOK, Fail(MsgDatabaseError))
		return
	}

	data, err := GenerateGateHistoryExport(entries)
	if err != nil {
		h.logger.Error("GenerateGateHistoryExport failed", zap.Error(err))
		writeJSON(w, http.StatusOK, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=gate-history.xlsx")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
