package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"redviva-data/internal/domain"
	"redviva-data/internal/repository"
	"redviva-data/internal/service"
)

// ProHandler professional portal: case review, alert queue, submitted
// reports (read-only), audit trail and recipient roster.
type ProHandler struct {
	reports    repository.ReportsRepository
	recipients repository.RecipientsRepository
	audit      repository.AuditRepository
	alerts     *service.AlertService
	cases      *service.CaseService
	logger     *zap.Logger
}

func NewProHandler(
	reports repository.ReportsRepository,
	recipients repository.RecipientsRepository,
	audit repository.AuditRepository,
	alerts *service.AlertService,
	cases *service.CaseService,
	logger *zap.Logger,
) *ProHandler {
	return &ProHandler{
		reports:    reports,
		recipients: recipients,
		audit:      audit,
		alerts:     alerts,
		cases:      cases,
		logger:     logger,
	}
}

type pageResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

func reportFiltersFrom(r *http.Request) repository.ReportFilters {
	q := r.URL.Query()
	return repository.ReportFilters{
		RecipientID: q.Get("recipient_id"),
		SubmitterID: q.Get("submitter_id"),
		Kind:        q.Get("kind"),
		DateFrom:    q.Get("date_from"),
		DateTo:      q.Get("date_to"),
	}
}

func (h *ProHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("page_size"), 20)

	reports, total, err := h.reports.ListReports(r.Context(), reportFiltersFrom(r), page, size)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if reports == nil {
		reports = []*domain.Report{}
	}
	writeJSON(w, http.StatusOK, Ok(pageResult[*domain.Report]{Items: reports, Total: total, Page: page, Size: size}))
}

func (h *ProHandler) GetReport(w http.ResponseWriter, r *http.Request, reportID string) {
	rep, err := h.reports.GetReport(r.Context(), reportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("report not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(rep))
}

// ExportReports streams the filtered listing as an Excel workbook.
func (h *ProHandler) ExportReports(w http.ResponseWriter, r *http.Request) {
	// export is bounded to one page of up to 200 rows
	reports, _, err := h.reports.ListReports(r.Context(), reportFiltersFrom(r), 1, 200)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}

	data, err := GenerateReportExport(reports)
	if err != nil {
		h.logger.Error("Report export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	filename := fmt.Sprintf("redviva-reports-%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write(data)
}

func (h *ProHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("page_size"), 20)
	status := domain.AlertStatus(strings.TrimSpace(r.URL.Query().Get("status")))

	alerts, total, err := h.alerts.List(r.Context(), status, page, size)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if alerts == nil {
		alerts = []*domain.Alert{}
	}
	writeJSON(w, http.StatusOK, Ok(pageResult[*domain.Alert]{Items: alerts, Total: total, Page: page, Size: size}))
}

type alertActionRequest struct {
	Notes string `json:"notes"`
}

func (h *ProHandler) alertTransition(w http.ResponseWriter, r *http.Request, alertID string, do func(actor domain.Profile, notes string) error) {
	profile, _ := ProfileFrom(r.Context())

	var req alertActionRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	if err := do(profile, req.Notes); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeJSON(w, http.StatusNotFound, Fail("alert not found"))
		case errors.Is(err, service.ErrBadTransition):
			writeJSON(w, http.StatusConflict, Fail(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		}
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"updated": true}))
}

func (h *ProHandler) AcknowledgeAlert(w http.ResponseWriter, r *http.Request, alertID string) {
	h.alertTransition(w, r, alertID, func(actor domain.Profile, notes string) error {
		return h.alerts.Acknowledge(r.Context(), actor, alertID, notes)
	})
}

func (h *ProHandler) CloseAlert(w http.ResponseWriter, r *http.Request, alertID string) {
	h.alertTransition(w, r, alertID, func(actor domain.Profile, notes string) error {
		return h.alerts.Close(r.Context(), actor, alertID, notes)
	})
}

func (h *ProHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt(q.Get("page"), 1)
	size := parseInt(q.Get("page_size"), 20)
	filters := repository.CaseFilters{
		RecipientID: q.Get("recipient_id"),
		AssigneeID:  q.Get("assignee_id"),
		Status:      q.Get("status"),
	}

	cases, total, err := h.cases.List(r.Context(), filters, page, size)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if cases == nil {
		cases = []*domain.Case{}
	}
	writeJSON(w, http.StatusOK, Ok(pageResult[*domain.Case]{Items: cases, Total: total, Page: page, Size: size}))
}

type createCaseRequest struct {
	RecipientID string  `json:"recipient_id"`
	Summary     string  `json:"summary"`
	Priority    string  `json:"priority"`
	AssigneeID  *string `json:"assignee_id"`
}

func (h *ProHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFrom(r.Context())

	var req createCaseRequest
	if err := readBodyJSON(r, 1<<18, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.RecipientID == "" || strings.TrimSpace(req.Summary) == "" {
		writeJSON(w, http.StatusBadRequest, Fail("recipient_id and summary are required"))
		return
	}

	priority := domain.PriorityNormal
	if req.Priority != "" {
		p, err := domain.ParseCasePriority(req.Priority)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		priority = p
	}

	caseID, err := h.cases.Create(r.Context(), profile, req.RecipientID, req.Summary, priority, req.AssigneeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("recipient not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]string{"case_id": caseID}))
}

type updateCaseRequest struct {
	Status     *string `json:"status"`
	Priority   *string `json:"priority"`
	AssigneeID *string `json:"assignee_id"`
	Summary    *string `json:"summary"`
}

func (h *ProHandler) UpdateCase(w http.ResponseWriter, r *http.Request, caseID string) {
	profile, _ := ProfileFrom(r.Context())

	var req updateCaseRequest
	if err := readBodyJSON(r, 1<<18, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	upd := repository.CaseUpdate{AssigneeID: req.AssigneeID, Summary: req.Summary}
	if req.Status != nil {
		status, err := domain.ParseCaseStatus(*req.Status)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		upd.Status = &status
	}
	if req.Priority != nil {
		priority, err := domain.ParseCasePriority(*req.Priority)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		upd.Priority = &priority
	}

	if err := h.cases.Update(r.Context(), profile, caseID, upd); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("case not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"updated": true}))
}

func (h *ProHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt(q.Get("page"), 1)
	size := parseInt(q.Get("page_size"), 50)
	filters := repository.AuditFilters{
		ActorID:    q.Get("actor_id"),
		EntityType: q.Get("entity_type"),
		EntityID:   q.Get("entity_id"),
		Action:     q.Get("action"),
	}

	entries, total, err := h.audit.ListEntries(r.Context(), filters, page, size)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if entries == nil {
		entries = []*domain.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, Ok(pageResult[*domain.AuditEntry]{Items: entries, Total: total, Page: page, Size: size}))
}

func (h *ProHandler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("page_size"), 20)

	recipients, total, err := h.recipients.ListRecipients(r.Context(), page, size)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if recipients == nil {
		recipients = []*domain.Recipient{}
	}
	writeJSON(w, http.StatusOK, Ok(pageResult[*domain.Recipient]{Items: recipients, Total: total, Page: page, Size: size}))
}
