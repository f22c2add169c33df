package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"redviva-data/internal/domain"
	"redviva-data/internal/repository"
	"redviva-data/internal/service"
	"redviva-data/internal/wizard"
)

// CareHandler caregiver portal: session check, assigned recipients, the
// daily intake wizard with draft recovery, report submission and the
// urgent-event path.
type CareHandler struct {
	recipients repository.RecipientsRepository
	drafts     *service.DraftService
	submission *service.SubmissionService
	alerts     *service.AlertService
	logger     *zap.Logger
}

func NewCareHandler(
	recipients repository.RecipientsRepository,
	drafts *service.DraftService,
	submission *service.SubmissionService,
	alerts *service.AlertService,
	logger *zap.Logger,
) *CareHandler {
	return &CareHandler{
		recipients: recipients,
		drafts:     drafts,
		submission: submission,
		alerts:     alerts,
		logger:     logger,
	}
}

// Session returns the gated profile; reaching here at all means the
// session gate accepted the caller.
func (h *CareHandler) Session(w http.ResponseWriter, r *http.Request) {
	profile, ok := ProfileFrom(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, FailCode(ResultTokenExpired, "session required"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"profile_id":   profile.ProfileID,
		"email":        profile.Email,
		"role":         profile.Role,
		"display_name": profile.DisplayName,
	}))
}

func (h *CareHandler) Recipients(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFrom(r.Context())
	recipients, err := h.recipients.ListAssignedRecipients(r.Context(), profile.ProfileID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if recipients == nil {
		recipients = []*domain.Recipient{}
	}
	writeJSON(w, http.StatusOK, Ok(recipients))
}

// WizardSteps serves the fixed step definitions.
func (h *CareHandler) WizardSteps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(wizard.Steps))
}

type draftResponse struct {
	State         wizard.DraftState `json:"state"`
	HasDraft      bool              `json:"has_draft"`
	Divert        bool              `json:"divert_to_alert"`
	LastRecipient string            `json:"last_recipient"`
}

// GetDraft loads the caregiver's draft; stale or undecodable drafts
// come back as a fresh default state.
func (h *CareHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFrom(r.Context())
	ctx := r.Context()

	state, err := h.drafts.Load(ctx, profile.ProfileID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}

	resp := draftResponse{}
	if state != nil {
		wz := wizard.Restore(*state, nil)
		resp.State = *state
		resp.HasDraft = true
		resp.Divert = wz.DivertToAlert()
	} else {
		resp.State = wizard.New(nil).State()
	}

	if last, err := h.drafts.LastRecipient(ctx, profile.ProfileID); err == nil {
		resp.LastRecipient = last
	}

	writeJSON(w, http.StatusOK, Ok(resp))
}

// SaveDraft persists the client's wizard state. Called on every step
// transition and on explicit save; the cursor is clamped server-side.
func (h *CareHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFrom(r.Context())

	var state wizard.DraftState
	if err := readBodyJSON(r, 1<<20, &state); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid draft body"))
		return
	}

	wz := wizard.Restore(state, nil)
	if err := h.drafts.Save(r.Context(), profile.ProfileID, wz.State()); err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"saved":           true,
		"cursor":          wz.Cursor(),
		"divert_to_alert": wz.DivertToAlert(),
	}))
}

func (h *CareHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFrom(r.Context())
	if err := h.drafts.Clear(r.Context(), profile.ProfileID); err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"deleted": true}))
}

type submitRequest struct {
	State          wizard.DraftState `json:"state"`
	IdempotencyKey string            `json:"idempotency_key"`
}

// SubmitReport finalizes the wizard. Validation failures and remote
// errors leave the draft untouched so the caregiver can retry.
func (h *CareHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFrom(r.Context())

	var req submitRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	reportID, err := h.submission.SubmitReport(r.Context(), profile, req.State, req.IdempotencyKey)
	if err != nil {
		switch {
		case err == wizard.ErrNoRecipient:
			writeJSON(w, http.StatusBadRequest, Fail("select a care recipient before submitting"))
		case err == service.ErrNotAssigned:
			writeJSON(w, http.StatusForbidden, Fail(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		}
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]string{"report_id": reportID}))
}

type alertRequest struct {
	EventType   string `json:"event_type"`
	Description string `json:"description"`
	RecipientID string `json:"recipient_id"`
}

// RaiseAlert the urgent-event path: one step, immediate submit, no draft.
func (h *CareHandler) RaiseAlert(w http.ResponseWriter, r *http.Request) {
	profile, _ := ProfileFrom(r.Context())

	var req alertRequest
	if err := readBodyJSON(r, 1<<18, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}

	alertID, err := h.alerts.Raise(r.Context(), profile, req.EventType, req.Description, req.RecipientID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(map[string]string{"alert_id": alertID}))
}
