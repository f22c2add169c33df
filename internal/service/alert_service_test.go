package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"redviva-data/internal/domain"
)

func professionalActor() domain.Profile {
	return domain.Profile{
		ProfileID:   "P1",
		AuthUserID:  "user-9",
		Role:        domain.RoleNurse,
		DisplayName: "Marta",
	}
}

func setupAlerts(t *testing.T) (*fakeAlertsRepo, *fakeAuditRepo, *fakeKV, *AlertService) {
	alerts := newFakeAlertsRepo()
	audit := &fakeAuditRepo{}
	kv := newFakeKV()
	svc := NewAlertService(alerts, audit, kv, zap.NewNop())
	return alerts, audit, kv, svc
}

func TestRaise_Success(t *testing.T) {
	alerts, audit, kv, svc := setupAlerts(t)

	id, err := svc.Raise(context.Background(), caregiverActor(), "fall", "found her on the floor", "R1")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	a, err := alerts.GetAlert(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.AlertFall, a.Type)
	assert.Equal(t, domain.AlertOpen, a.Status)
	require.NotNil(t, a.RecipientID)
	assert.Equal(t, "R1", *a.RecipientID)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, domain.AuditAlertRaised, audit.entries[0].Action)

	// dashboard notification published
	require.Len(t, kv.published, 1)
	assert.Contains(t, kv.published[0], `"alert_type":"fall"`)
}

func TestRaise_Validation(t *testing.T) {
	alerts, _, _, svc := setupAlerts(t)
	ctx := context.Background()

	_, err := svc.Raise(ctx, caregiverActor(), "earthquake", "something happened", "")
	assert.ErrorContains(t, err, "unknown alert type")

	_, err = svc.Raise(ctx, caregiverActor(), "fall", "   ", "")
	assert.ErrorContains(t, err, "description is required")

	assert.Empty(t, alerts.alerts)
}

func TestAlertTransitions(t *testing.T) {
	alerts, _, _, svc := setupAlerts(t)
	ctx := context.Background()

	id, err := svc.Raise(ctx, caregiverActor(), "confusion", "very disoriented", "")
	require.NoError(t, err)

	require.NoError(t, svc.Acknowledge(ctx, professionalActor(), id, "on my way"))
	a, _ := alerts.GetAlert(ctx, id)
	assert.Equal(t, domain.AlertAcknowledged, a.Status)

	// acknowledging twice is not a valid transition
	err = svc.Acknowledge(ctx, professionalActor(), id, "again")
	assert.ErrorIs(t, err, ErrBadTransition)

	require.NoError(t, svc.Close(ctx, professionalActor(), id, "resolved"))
	a, _ = alerts.GetAlert(ctx, id)
	assert.Equal(t, domain.AlertClosed, a.Status)

	err = svc.Close(ctx, professionalActor(), id, "again")
	assert.ErrorIs(t, err, ErrBadTransition)
}
