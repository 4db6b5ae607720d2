package handlers

import (
	"time"

	"prizeladder/internal/game"
	"prizeladder/internal/models"
)

// QuestionView is a question as shown to the player, without the correct key
type QuestionView struct {
	Level   int               `json:"level"`
	Text    string            `json:"text"`
	Answers map[string]string `json:"answers"`
}

// HelpView carries the lifeline payloads generated for the current question
type HelpView struct {
	Audience   map[string]int `json:"audience,omitempty"`
	FiftyFifty []string       `json:"fifty_fifty,omitempty"`
	FriendCall string         `json:"friend_call,omitempty"`
}

// GameView is the full game state rendered to the player
type GameView struct {
	ID           int64      `json:"id"`
	Status       string     `json:"status"`
	CurrentLevel int        `json:"current_level"`
	Prize        int64      `json:"prize"`
	PrizeLadder  []int64    `json:"prize_ladder"`
	Fireproof    []int      `json:"fireproof_levels"`
	HelpUsed     []string   `json:"help_used"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`

	// Question and Help are set only while the game is in progress
	Question *QuestionView `json:"question,omitempty"`
	Help     *HelpView     `json:"help,omitempty"`
}

// GameSummaryView is one row of a player's game history
type GameSummaryView struct {
	ID           int64      `json:"id"`
	Status       string     `json:"status"`
	CurrentLevel int        `json:"current_level"`
	Prize        int64      `json:"prize"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// buildGameView renders a game for the player. The correct answer key
// never leaves the server while the game is open.
func buildGameView(g *models.Game, plan game.PrizePlan) GameView {
	view := GameView{
		ID:           g.ID,
		Status:       g.Status(),
		CurrentLevel: g.CurrentLevel,
		Prize:        g.Prize,
		PrizeLadder:  plan.Prizes[:],
		Fireproof:    plan.Fireproof,
		HelpUsed:     helpUsed(g),
		CreatedAt:    g.CreatedAt,
		FinishedAt:   g.FinishedAt,
	}

	if g.Finished() {
		return view
	}

	if current := g.CurrentQuestion(); current != nil {
		view.Question = &QuestionView{
			Level:   current.Level,
			Text:    current.Question.Text,
			Answers: current.Question.Answers(),
		}
		if !current.Help.Empty() {
			view.Help = &HelpView{
				Audience:   current.Help.Audience,
				FiftyFifty: current.Help.FiftyFifty,
				FriendCall: current.Help.FriendCall,
			}
		}
	}

	return view
}

func helpUsed(g *models.Game) []string {
	used := []string{}
	for _, kind := range models.HelpKinds {
		if g.HelpUsed(kind) {
			used = append(used, string(kind))
		}
	}
	return used
}

func buildGameSummaries(games []models.Game) []GameSummaryView {
	summaries := make([]GameSummaryView, 0, len(games))
	for i := range games {
		g := &games[i]
		summaries = append(summaries, GameSummaryView{
			ID:           g.ID,
			Status:       g.Status(),
			CurrentLevel: g.CurrentLevel,
			Prize:        g.Prize,
			CreatedAt:    g.CreatedAt,
			FinishedAt:   g.FinishedAt,
		})
	}
	return summaries
}
