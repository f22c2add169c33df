package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"redviva-data/internal/store"
	"redviva-data/internal/wizard"
)

func setupDraftService(t *testing.T, now func() time.Time) (*miniredis.Miniredis, *DraftService) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := store.NewRedisKV(redisClient)
	return mr, NewDraftService(kv, zap.NewNop()).WithNow(now)
}

func jan2() time.Time {
	return time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
}

func TestDraft_SaveLoadRoundtrip(t *testing.T) {
	_, drafts := setupDraftService(t, jan2)
	ctx := context.Background()

	w := wizard.New(jan2)
	w.SetMeta(wizard.MetaStep{RecipientID: "R1"})
	w.SetAnswers(wizard.StepAnswers{
		Hygiene: wizard.HygieneStep{Bathing: "assisted"},
	}, "notes here")
	w.Next()
	w.Next()

	require.NoError(t, drafts.Save(ctx, "CG1", w.State()))

	loaded, err := drafts.Load(ctx, "CG1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 2, loaded.Cursor)
	assert.Equal(t, "R1", loaded.Meta.RecipientID)
	assert.Equal(t, "assisted", loaded.Answers.Hygiene.Bathing)
	assert.Equal(t, "notes here", loaded.Notes)
}

func TestDraft_AbsentLoadsNil(t *testing.T) {
	_, drafts := setupDraftService(t, jan2)

	loaded, err := drafts.Load(context.Background(), "CG1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraft_StaleDateIgnored(t *testing.T) {
	// saved on Jan 1, loaded on Jan 2 -> treated as absent
	jan1 := func() time.Time { return time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC) }
	mr, drafts := setupDraftService(t, jan1)
	ctx := context.Background()

	w := wizard.New(jan1)
	w.SetMeta(wizard.MetaStep{RecipientID: "R1"})
	require.NoError(t, drafts.Save(ctx, "CG1", w.State()))

	drafts.WithNow(jan2)
	loaded, err := drafts.Load(ctx, "CG1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// the stale value remains physically present until overwritten
	assert.True(t, mr.Exists("redviva:draft:CG1"))
}

func TestDraft_CorruptTreatedAsAbsent(t *testing.T) {
	mr, drafts := setupDraftService(t, jan2)

	mr.Set("redviva:draft:CG1", "{not json")

	loaded, err := drafts.Load(context.Background(), "CG1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestDraft_Clear(t *testing.T) {
	mr, drafts := setupDraftService(t, jan2)
	ctx := context.Background()

	w := wizard.New(jan2)
	require.NoError(t, drafts.Save(ctx, "CG1", w.State()))
	require.NoError(t, drafts.Clear(ctx, "CG1"))
	assert.False(t, mr.Exists("redviva:draft:CG1"))
}

func TestDraft_LastRecipient(t *testing.T) {
	_, drafts := setupDraftService(t, jan2)
	ctx := context.Background()

	last, err := drafts.LastRecipient(ctx, "CG1")
	require.NoError(t, err)
	assert.Empty(t, last)

	require.NoError(t, drafts.RememberRecipient(ctx, "CG1", "R1"))
	last, err = drafts.LastRecipient(ctx, "CG1")
	require.NoError(t, err)
	assert.Equal(t, "R1", last)
}
