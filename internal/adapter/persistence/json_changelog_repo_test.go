package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savethegov/govbudget/internal/domain"
)

func testEntry(itemID int, oldValue, newValue float64) *domain.ChangeLogEntry {
	return &domain.ChangeLogEntry{
		ItemID:    itemID,
		OldValue:  oldValue,
		NewValue:  newValue,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		ActorName: "Prime Minister",
		ActorID:   uuid.New(),
	}
}

func TestJSONChangeLogRepository_AppendAndList(t *testing.T) {
	repo := NewJSONChangeLogRepository(t.TempDir())
	ctx := context.Background()

	first := testEntry(7, 1000, 1100)
	second := testEntry(2, 400, 380)

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	// ids are assigned sequentially on append
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

func TestJSONChangeLogRepository_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	entry := testEntry(7, 1000, 1100)
	require.NoError(t, NewJSONChangeLogRepository(dir).Append(ctx, entry))

	entries, err := NewJSONChangeLogRepository(dir).List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])

	// the reopened store continues the id sequence
	next := testEntry(2, 400, 380)
	require.NoError(t, NewJSONChangeLogRepository(dir).Append(ctx, next))
	assert.Equal(t, 2, next.ID)
}

func TestJSONChangeLogRepository_EmptyAndNil(t *testing.T) {
	repo := NewJSONChangeLogRepository(t.TempDir())
	ctx := context.Background()

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, repo.Append(ctx, nil))
	entries, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJSONChangeLogRepository_ListReturnsIndependentCopies(t *testing.T) {
	repo := NewJSONChangeLogRepository(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testEntry(7, 1000, 1100)))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	first[0].NewValue = -1

	second, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1100.0, second[0].NewValue)
}
