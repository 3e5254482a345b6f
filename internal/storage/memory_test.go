package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SIMBACM/BaseForWhatsappProj/internal/models"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	store := NewMemoryStore()

	for i := 1; i <= 3; i++ {
		err := store.SaveCompletion(&models.CompletionRecord{
			UserPhone: fmt.Sprintf("+1555000%d", i),
			Name:      fmt.Sprintf("User %d", i),
		})
		require.NoError(t, err)
	}

	count, err := store.CountCompletions()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	records, err := store.GetCompletions(0)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "User 3", records[0].Name, "newest first")
	assert.NotZero(t, records[0].ID)
}

func TestMemoryStoreLimit(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveCompletion(&models.CompletionRecord{}))
	}

	records, err := store.GetCompletions(2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
