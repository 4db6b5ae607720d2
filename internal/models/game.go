package models

import "time"

// Outcome is the terminal result of a game, recorded at the moment the
// game finishes. An empty outcome means the game is still open.
type Outcome string

const (
	OutcomeWon     Outcome = "won"
	OutcomeFail    Outcome = "fail"
	OutcomeTimeout Outcome = "timeout"
	OutcomeMoney   Outcome = "money"
)

// StatusInProgress is reported for games without a terminal outcome
const StatusInProgress = "in_progress"

// Game is a single play-through of the prize ladder for one user
type Game struct {
	ID             int64
	UserID         int64
	CurrentLevel   int
	Outcome        Outcome
	Prize          int64
	AudienceUsed   bool
	FiftyFiftyUsed bool
	FriendCallUsed bool
	CreatedAt      time.Time
	FinishedAt     *time.Time

	// Questions is the game's ladder, ordered by level 0..14
	Questions []GameQuestion
}

// GameQuestion binds a game to one bank question at a ladder level
type GameQuestion struct {
	ID         int64
	GameID     int64
	QuestionID int64
	Level      int
	Question   Question
	Help       HelpState
}

// Finished reports whether the game reached a terminal state
func (g *Game) Finished() bool {
	return g.FinishedAt != nil
}

// Failed reports whether the game ended in a loss (wrong answer or timeout)
func (g *Game) Failed() bool {
	return g.Outcome == OutcomeFail || g.Outcome == OutcomeTimeout
}

// Status returns the game status: in_progress, won, fail, timeout or money
func (g *Game) Status() string {
	if !g.Finished() {
		return StatusInProgress
	}
	return string(g.Outcome)
}

// PreviousLevel is the level of the last answered question, -1 at the start
func (g *Game) PreviousLevel() int {
	return g.CurrentLevel - 1
}

// CurrentQuestion returns the ladder entry being played, or nil when the
// whole ladder has been answered
func (g *Game) CurrentQuestion() *GameQuestion {
	if g.CurrentLevel < 0 || g.CurrentLevel >= len(g.Questions) {
		return nil
	}
	return &g.Questions[g.CurrentLevel]
}

// PreviousQuestion returns the last answered ladder entry, or nil before
// the first answer
func (g *Game) PreviousQuestion() *GameQuestion {
	prev := g.PreviousLevel()
	if prev < 0 || prev >= len(g.Questions) {
		return nil
	}
	return &g.Questions[prev]
}

// HelpUsed reports whether the given lifeline was already spent in this game
func (g *Game) HelpUsed(kind HelpKind) bool {
	switch kind {
	case HelpAudience:
		return g.AudienceUsed
	case HelpFiftyFifty:
		return g.FiftyFiftyUsed
	case HelpFriendCall:
		return g.FriendCallUsed
	}
	return false
}

// SetHelpUsed marks a lifeline as spent for the rest of the game
func (g *Game) SetHelpUsed(kind HelpKind) {
	switch kind {
	case HelpAudience:
		g.AudienceUsed = true
	case HelpFiftyFifty:
		g.FiftyFiftyUsed = true
	case HelpFriendCall:
		g.FriendCallUsed = true
	}
}
