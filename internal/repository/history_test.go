package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chat/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepository_AddAndList(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage, 3)

	// Given: five finished games stored one after another
	date := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		entry := &entity.GameHistory{
			ID:      fmt.Sprintf("h%d", i),
			Date:    date.Add(time.Duration(i) * time.Minute),
			PlayerX: "Alice",
			PlayerO: "TacticalBot",
			Winner:  entity.PlayerX,
			Mode:    entity.ModeBot,
		}
		require.NoError(t, historyRepo.Add(ctx, entry))
	}

	// When: listing everything
	history, err := historyRepo.List(ctx, 0)

	// Then: only the three newest remain, newest first
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "h4", history[0].ID)
	assert.Equal(t, "h2", history[2].ID)
	assert.True(t, date.Add(4*time.Minute).Equal(history[0].Date))

	// When: listing with a limit
	history, err = historyRepo.List(ctx, 1)

	// Then: only the newest is returned
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "h4", history[0].ID)
}

func TestHistoryRepository_ListEmpty(t *testing.T) {
	ctx, st := suite.New(t)

	history, err := NewHistoryRepository(st.Storage, 0).List(ctx, 10)

	require.NoError(t, err)
	assert.Empty(t, history)
}
