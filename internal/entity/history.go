package entity

import (
	"sort"
	"time"
)

const ResultDraw = "draw"

const (
	WinPoints  = 3
	DrawPoints = 1

	minutesPerGame = 2
)

type GameHistory struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	PlayerX       string     `json:"player_x"`
	PlayerO       string     `json:"player_o"`
	Winner        string     `json:"winner"`
	Mode          string     `json:"mode"`
	BotDifficulty Difficulty `json:"bot_difficulty,omitempty"`
	ChatID        int64      `json:"chat_id,omitempty"`
}

// NewGameHistory - history entry for a finished game.
func NewGameHistory(id string, date time.Time, game *Game) *GameHistory {
	entry := &GameHistory{
		ID:      id,
		Date:    date,
		PlayerX: game.PlayerXName,
		PlayerO: game.PlayerOName,
		Winner:  ResultDraw,
		Mode:    game.Mode,
	}

	if game.Winner != EmptyCell {
		entry.Winner = game.Winner
	}

	if game.IsWithBot() {
		entry.BotDifficulty = game.BotDifficulty
	}

	if game.Chat != nil {
		entry.ChatID = game.Chat.ID
	}

	return entry
}

func (that *GameHistory) IsDraw() bool {
	return that.Winner == ResultDraw
}

// ScoreChanges - points earned by each name for a finished game.
func ScoreChanges(game *Game) map[string]int {
	if game.Status == StatusWon {
		return map[string]int{game.PlayerName(game.Winner): WinPoints}
	}

	changes := map[string]int{game.PlayerXName: DrawPoints}
	changes[game.PlayerOName] += DrawPoints

	return changes
}

type LeaderboardEntry struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Draws  int    `json:"draws"`
	Score  int    `json:"score"`
}

// BuildLeaderboard - per-name win/loss/draw counts with stored scores, best score first.
func BuildLeaderboard(history []*GameHistory, scores map[string]int) []*LeaderboardEntry {
	entries := make(map[string]*LeaderboardEntry)

	entryFor := func(name string) *LeaderboardEntry {
		entry, ok := entries[name]
		if !ok {
			entry = &LeaderboardEntry{Name: name}
			entries[name] = entry
		}
		return entry
	}

	for _, game := range history {
		playerX, playerO := entryFor(game.PlayerX), entryFor(game.PlayerO)

		switch game.Winner {
		case ResultDraw:
			playerX.Draws++
			playerO.Draws++
		case PlayerX:
			playerX.Wins++
			playerO.Losses++
		default:
			playerX.Losses++
			playerO.Wins++
		}
	}

	leaderboard := make([]*LeaderboardEntry, 0, len(entries))
	for name, entry := range entries {
		entry.Score = scores[name]
		leaderboard = append(leaderboard, entry)
	}

	sort.Slice(leaderboard, func(i, j int) bool {
		if leaderboard[i].Score != leaderboard[j].Score {
			return leaderboard[i].Score > leaderboard[j].Score
		}
		return leaderboard[i].Name < leaderboard[j].Name
	})

	return leaderboard
}

type Stats struct {
	TotalGames        int `json:"total_games"`
	WinStreak         int `json:"win_streak"`
	TimePlayedMinutes int `json:"time_played_minutes"`
}

// BuildStats - WinStreak is the longest run of decisive (non-draw) games.
func BuildStats(history []*GameHistory) Stats {
	var streak, current int
	for _, game := range history {
		if game.IsDraw() {
			current = 0
			continue
		}

		current++
		streak = max(streak, current)
	}

	return Stats{
		TotalGames:        len(history),
		WinStreak:         streak,
		TimePlayedMinutes: len(history) * minutesPerGame,
	}
}
