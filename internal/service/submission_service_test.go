package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"redviva-data/internal/domain"
	"redviva-data/internal/wizard"
)

func caregiverActor() domain.Profile {
	return domain.Profile{
		ProfileID:   "CG1",
		AuthUserID:  "user-1",
		Role:        domain.RoleCaregiver,
		DisplayName: "Ana",
	}
}

func setupSubmission(t *testing.T) (*fakeReportsRepo, *fakeAuditRepo, *fakeKV, *DraftService, *SubmissionService) {
	reports := &fakeReportsRepo{}
	recipients := &fakeRecipientsRepo{assigned: map[string]bool{"CG1/R1": true}}
	audit := &fakeAuditRepo{}
	kv := newFakeKV()
	drafts := NewDraftService(kv, zap.NewNop()).WithNow(jan2)
	svc := NewSubmissionService(reports, recipients, audit, drafts, kv, zap.NewNop())
	return reports, audit, kv, drafts, svc
}

func filledState() wizard.DraftState {
	w := wizard.New(jan2)
	w.SetMeta(wizard.MetaStep{RecipientID: "R1"})
	w.SetAnswers(wizard.StepAnswers{
		Hygiene:  wizard.HygieneStep{Bathing: "assisted"},
		Mobility: wizard.MobilityStep{Fall: wizard.FallNone, WalkingAid: "walker"},
	}, "calm day")
	for i := 0; i < wizard.LastStep; i++ {
		w.Next()
	}
	return w.State()
}

func TestSubmit_Success(t *testing.T) {
	reports, audit, _, drafts, svc := setupSubmission(t)
	ctx := context.Background()

	state := filledState()
	require.NoError(t, drafts.Save(ctx, "CG1", state))

	reportID, err := svc.SubmitReport(ctx, caregiverActor(), state, "")
	require.NoError(t, err)
	require.NotEmpty(t, reportID)

	// exactly one record, recipient R1, answers nested under step keys
	require.Len(t, reports.inserted, 1)
	rep := reports.inserted[0]
	assert.Equal(t, "R1", rep.RecipientID)
	assert.Equal(t, "CG1", rep.SubmitterID)
	assert.Equal(t, domain.ReportRoutine, rep.Kind)

	var nested map[string]map[string]string
	require.NoError(t, json.Unmarshal(rep.Answers, &nested))
	assert.Equal(t, "assisted", nested["hygiene"]["bathing"])
	assert.Equal(t, "walker", nested["mobility"]["walking_aid"])

	// draft cleared, last recipient remembered, audit written
	loaded, err := drafts.Load(ctx, "CG1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	last, err := drafts.LastRecipient(ctx, "CG1")
	require.NoError(t, err)
	assert.Equal(t, "R1", last)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.AuditReportSubmitted, audit.entries[0].Action)
}

func TestSubmit_FallAnswerBecomesCriticalEvent(t *testing.T) {
	reports, _, _, _, svc := setupSubmission(t)

	w := wizard.Restore(filledState(), jan2)
	answers := w.State().Answers
	answers.Mobility.Fall = wizard.TokenFell
	w.SetAnswers(answers, "")

	_, err := svc.SubmitReport(context.Background(), caregiverActor(), w.State(), "")
	require.NoError(t, err)
	require.Len(t, reports.inserted, 1)
	assert.Equal(t, domain.ReportCriticalEvent, reports.inserted[0].Kind)
}

func TestSubmit_NoRecipient(t *testing.T) {
	reports, _, _, drafts, svc := setupSubmission(t)
	ctx := context.Background()

	w := wizard.New(jan2)
	for i := 0; i < wizard.LastStep; i++ {
		w.Next()
	}
	require.NoError(t, drafts.Save(ctx, "CG1", w.State()))

	_, err := svc.SubmitReport(ctx, caregiverActor(), w.State(), "")
	assert.ErrorIs(t, err, wizard.ErrNoRecipient)

	// submission never reached the repository
	assert.Empty(t, reports.inserted)

	// persisted draft now points back at the meta step
	loaded, err := drafts.Load(ctx, "CG1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, wizard.StepMeta, loaded.Cursor)
}

func TestSubmit_FailureLeavesDraft(t *testing.T) {
	reports, _, _, drafts, svc := setupSubmission(t)
	reports.failInsert = true
	ctx := context.Background()

	state := filledState()
	require.NoError(t, drafts.Save(ctx, "CG1", state))

	_, err := svc.SubmitReport(ctx, caregiverActor(), state, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")

	// draft untouched: answers still present for a retry
	loaded, err := drafts.Load(ctx, "CG1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "assisted", loaded.Answers.Hygiene.Bathing)
}

func TestSubmit_NotAssigned(t *testing.T) {
	reports, _, _, _, svc := setupSubmission(t)

	w := wizard.Restore(filledState(), jan2)
	meta := w.State().Meta
	meta.RecipientID = "R2"
	w.SetMeta(meta)

	_, err := svc.SubmitReport(context.Background(), caregiverActor(), w.State(), "")
	assert.ErrorIs(t, err, ErrNotAssigned)
	assert.Empty(t, reports.inserted)
}

func TestSubmit_IdempotencyKey(t *testing.T) {
	reports, _, _, _, svc := setupSubmission(t)
	ctx := context.Background()
	state := filledState()

	first, err := svc.SubmitReport(ctx, caregiverActor(), state, "key-1")
	require.NoError(t, err)

	second, err := svc.SubmitReport(ctx, caregiverActor(), state, "key-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, reports.inserted, 1)
}

func TestSubmit_IdempotencyKeyReleasedOnFailure(t *testing.T) {
	reports, _, _, _, svc := setupSubmission(t)
	ctx := context.Background()
	state := filledState()

	reports.failInsert = true
	_, err := svc.SubmitReport(ctx, caregiverActor(), state, "key-1")
	require.Error(t, err)

	reports.failInsert = false
	id, err := svc.SubmitReport(ctx, caregiverActor(), state, "key-1")
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Len(t, reports.inserted, 1)
}
