package game

import (
	"fmt"
	"math/rand"
	"time"

	"prizeladder/internal/models"
)

// QuestionSource supplies candidate questions for a ladder level. The
// question repository satisfies this interface.
type QuestionSource interface {
	QuestionsAtLevel(level int) ([]models.Question, error)
}

// Engine implements the game rules: ladder creation, answering, cash-out,
// the time limit and lifelines. It mutates games in place and leaves
// persistence to the caller. The engine holds no per-game state, so a
// single Engine serves all games; callers must not run two operations on
// the same Game concurrently.
type Engine struct {
	clock     Clock
	plan      PrizePlan
	timeLimit time.Duration
	rng       *rand.Rand
}

// NewEngine creates an engine with the given clock, prize plan and time limit
func NewEngine(clock Clock, plan PrizePlan, timeLimit time.Duration) *Engine {
	return &Engine{
		clock:     clock,
		plan:      plan,
		timeLimit: timeLimit,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Plan returns the engine's prize plan
func (e *Engine) Plan() PrizePlan {
	return e.plan
}

// NewGame builds a fresh game for the user: one question per ladder
// level, picked uniformly at random from the bank's candidates for that
// level. Returns ErrInsufficientContent if any level has no candidates;
// in that case nothing is created.
func (e *Engine) NewGame(userID int64, src QuestionSource) (*models.Game, error) {
	questions := make([]models.GameQuestion, 0, LevelCount)

	for level := 0; level < LevelCount; level++ {
		candidates, err := src.QuestionsAtLevel(level)
		if err != nil {
			return nil, fmt.Errorf("failed to load level %d questions: %w", level, err)
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: level %d has no questions", ErrInsufficientContent, level)
		}

		picked := candidates[e.rng.Intn(len(candidates))]
		questions = append(questions, models.GameQuestion{
			QuestionID: picked.ID,
			Level:      level,
			Question:   picked,
		})
	}

	return &models.Game{
		UserID:    userID,
		CreatedAt: e.clock.Now(),
		Questions: questions,
	}, nil
}

// Answer scores the given option letter against the current question.
// The time limit is checked first, so a stale answer submitted after the
// clock ran out never scores. Finished games are left untouched.
func (e *Engine) Answer(g *models.Game, key string) {
	if g.Finished() {
		return
	}
	if e.TimeOut(g) {
		return
	}

	current := g.CurrentQuestion()
	if current == nil || !current.Question.IsCorrect(key) {
		e.finish(g, models.OutcomeFail, e.plan.FloorPrize(g.PreviousLevel()))
		return
	}

	if g.CurrentLevel == LevelCount-1 {
		g.CurrentLevel = LevelCount
		e.finish(g, models.OutcomeWon, e.plan.GrandPrize())
		return
	}

	g.CurrentLevel++
}

// TakeMoney ends the game banking the prize of the last answered level.
// Taking money before answering anything pays 0. No-op on finished games.
func (e *Engine) TakeMoney(g *models.Game) {
	if g.Finished() {
		return
	}
	e.finish(g, models.OutcomeMoney, e.plan.PrizeFor(g.PreviousLevel()))
}

// TimeOut checks the elapsed time against the limit and, if exceeded,
// ends the game with a timeout outcome. Returns true iff the limit fired
// on this call.
func (e *Engine) TimeOut(g *models.Game) bool {
	if g.Finished() {
		return false
	}
	if e.clock.Now().Sub(g.CreatedAt) <= e.timeLimit {
		return false
	}
	e.finish(g, models.OutcomeTimeout, e.plan.FloorPrize(g.PreviousLevel()))
	return true
}

// UseHelp applies a lifeline to the current question and returns its
// updated help state. Each lifeline can be used once per game.
func (e *Engine) UseHelp(g *models.Game, kind models.HelpKind) (*models.HelpState, error) {
	if g.Finished() {
		return nil, ErrGameFinished
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHelp, kind)
	}
	if g.HelpUsed(kind) {
		return nil, ErrHelpAlreadyUsed
	}

	current := g.CurrentQuestion()
	if current == nil {
		return nil, ErrGameFinished
	}
	if current.Help.Used(kind) {
		return nil, ErrHelpAlreadyUsed
	}

	switch kind {
	case models.HelpAudience:
		current.Help.Audience = e.audienceVote(current.Question)
	case models.HelpFiftyFifty:
		current.Help.FiftyFifty = e.fiftyFifty(current.Question)
	case models.HelpFriendCall:
		current.Help.FriendCall = e.friendCall(current.Question)
	}

	g.SetHelpUsed(kind)
	return &current.Help, nil
}

// finish records the terminal outcome, prize and finish time exactly once
func (e *Engine) finish(g *models.Game, outcome models.Outcome, prize int64) {
	now := e.clock.Now()
	g.Outcome = outcome
	g.Prize = prize
	g.FinishedAt = &now
}
