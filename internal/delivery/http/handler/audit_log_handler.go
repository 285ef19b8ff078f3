package handler

import (
	"net/http"
	"strconv"

	"calmseek-backend/internal/usecase"
	"calmseek-backend/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// List handles listing audit logs
// @Summary List audit logs
// @Description List audit trail entries, newest first (admin only)
// @Tags AuditLog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}

// GetByID handles fetching one audit log entry
// @Summary Get audit log
// @Description Get a single audit trail entry (admin only)
// @Tags AuditLog
// @Security BearerAuth
// @Produce json
// @Param id path int true "Audit Log ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/audit-logs/{id} [get]
func (h *AuditLogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	log, err := h.auditLogUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAuditLogNotFound:
			response.NotFound(w, "Audit log not found")
		default:
			response.InternalServerError(w, "Failed to get audit log")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", log)
}
