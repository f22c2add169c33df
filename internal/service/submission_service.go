package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"redviva-data/internal/domain"
	"redviva-data/internal/repository"
	"redviva-data/internal/store"
	"redviva-data/internal/wizard"
)

const submitKeyPrefix = "redviva:submit:"

// ErrNotAssigned the caregiver tried to submit for a recipient outside
// their assignment set.
var ErrNotAssigned = errors.New("recipient is not assigned to this caregiver")

// SubmissionService finalizes a wizard draft into one immutable report.
type SubmissionService struct {
	reports    repository.ReportsRepository
	recipients repository.RecipientsRepository
	audit      repository.AuditRepository
	drafts     *DraftService
	kv         store.KV
	logger     *zap.Logger
}

func NewSubmissionService(
	reports repository.ReportsRepository,
	recipients repository.RecipientsRepository,
	audit repository.AuditRepository,
	drafts *DraftService,
	kv store.KV,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		reports:    reports,
		recipients: recipients,
		audit:      audit,
		drafts:     drafts,
		kv:         kv,
		logger:     logger,
	}
}

// SubmitReport assembles the accumulated answers into a single report
// record and inserts it atomically.
//
// On success the draft store entry is cleared and the last-recipient
// convenience key refreshed. On any failure the draft is left in place
// so the caregiver can retry without data loss.
//
// idemKey is optional: when the client supplies one, a duplicate
// submission with the same key returns the first report id without a
// second insert.
func (s *SubmissionService) SubmitReport(ctx context.Context, actor domain.Profile, state wizard.DraftState, idemKey string) (string, error) {
	w := wizard.Restore(state, nil)

	answers, err := w.Finalize()
	if err != nil {
		// Missing recipient: wizard already routed the cursor back to
		// the meta step; persist that so the client reopens on step 0.
		if errors.Is(err, wizard.ErrNoRecipient) {
			if saveErr := s.drafts.Save(ctx, actor.ProfileID, w.State()); saveErr != nil {
				s.logger.Warn("Failed to persist cursor reset", zap.Error(saveErr))
			}
		}
		return "", err
	}

	meta := state.Meta
	assigned, err := s.recipients.IsAssigned(ctx, actor.ProfileID, meta.RecipientID)
	if err != nil {
		return "", fmt.Errorf("failed to verify assignment: %w", err)
	}
	if !assigned {
		return "", ErrNotAssigned
	}

	reportID := uuid.NewString()

	if idemKey != "" {
		stored, err := s.kv.SetNX(ctx, submitKeyPrefix+idemKey, reportID, 24*time.Hour)
		if err != nil {
			return "", fmt.Errorf("failed to reserve submission key: %w", err)
		}
		if !stored {
			existing, err := s.kv.Get(ctx, submitKeyPrefix+idemKey)
			if err == nil && existing != "" {
				s.logger.Info("Duplicate submission suppressed",
					zap.String("caregiver_id", actor.ProfileID),
					zap.String("report_id", existing),
				)
				return existing, nil
			}
			return "", fmt.Errorf("duplicate submission in flight")
		}
	}

	kind := domain.ReportRoutine
	if w.DivertToAlert() {
		kind = domain.ReportCriticalEvent
	}

	report := &domain.Report{
		ReportID:    reportID,
		RecipientID: meta.RecipientID,
		SubmitterID: actor.ProfileID,
		Kind:        kind,
		ReportDate:  meta.ReportDate,
		Shift:       meta.Shift,
		ReportTime:  meta.ReportTime,
		Answers:     answers,
		Notes:       state.Notes,
	}

	insertedID, err := s.reports.InsertReport(ctx, report)
	if err != nil {
		// Release the idempotency key so a retry can go through.
		if idemKey != "" {
			_ = s.kv.Del(ctx, submitKeyPrefix+idemKey)
		}
		s.logger.Warn("Report submission failed",
			zap.String("caregiver_id", actor.ProfileID),
			zap.String("recipient_id", meta.RecipientID),
			zap.Error(err),
		)
		return "", err
	}

	if err := s.audit.InsertEntry(ctx, &domain.AuditEntry{
		ActorID:    actor.ProfileID,
		ActorRole:  actor.Role,
		Action:     domain.AuditReportSubmitted,
		EntityType: "report",
		EntityID:   insertedID,
		Detail:     fmt.Sprintf("recipient %s, %s %s", meta.RecipientID, meta.ReportDate, meta.Shift),
	}); err != nil {
		s.logger.Warn("Failed to write audit entry", zap.Error(err))
	}

	if err := s.drafts.Clear(ctx, actor.ProfileID); err != nil {
		s.logger.Warn("Failed to clear draft after submission",
			zap.String("caregiver_id", actor.ProfileID),
			zap.Error(err),
		)
	}
	if err := s.drafts.RememberRecipient(ctx, actor.ProfileID, meta.RecipientID); err != nil {
		s.logger.Warn("Failed to store last recipient", zap.Error(err))
	}

	s.logger.Info("Report submitted",
		zap.String("report_id", insertedID),
		zap.String("caregiver_id", actor.ProfileID),
		zap.String("recipient_id", meta.RecipientID),
		zap.String("kind", string(kind)),
	)

	return insertedID, nil
}
