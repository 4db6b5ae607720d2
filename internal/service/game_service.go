package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"prizeladder/internal/game"
	"prizeladder/internal/models"
)

var (
	ErrGameInProgress = errors.New("an open game already exists for this user")
	ErrNoActiveGame   = errors.New("no game in progress")
)

// GameStore is the game persistence the service needs, satisfied by
// repository.GameRepository
type GameStore interface {
	CreateGame(g *models.Game) error
	ActiveGameByUser(userID int64) (*models.Game, error)
	SaveGame(g *models.Game) error
	SaveHelp(gq *models.GameQuestion) error
	FinishGame(g *models.Game) error
	GamesByUser(userID int64, limit int) ([]models.Game, error)
}

// UserStore is the slice of user persistence the service needs,
// satisfied by repository.UserRepository
type UserStore interface {
	UserByID(userID int64) (*models.User, error)
}

// GameService drives games through the rules engine and keeps them
// persisted. It owns the request-layer invariants the engine does not:
// one open game per user, and exactly one ledger credit per payout.
type GameService struct {
	engine    *game.Engine
	games     GameStore
	questions game.QuestionSource
	users     UserStore
	email     *EmailService
}

// NewGameService creates a new game service. email may be nil.
func NewGameService(engine *game.Engine, games GameStore, questions game.QuestionSource, users UserStore, email *EmailService) *GameService {
	return &GameService{
		engine:    engine,
		games:     games,
		questions: questions,
		users:     users,
		email:     email,
	}
}

// Plan exposes the prize ladder for rendering
func (s *GameService) Plan() game.PrizePlan {
	return s.engine.Plan()
}

// StartGame creates and persists a new game for the user. Rejected with
// ErrGameInProgress while an earlier game is still open.
func (s *GameService) StartGame(userID int64) (*models.Game, error) {
	active, err := s.games.ActiveGameByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for an open game: %w", err)
	}
	if active != nil {
		return nil, ErrGameInProgress
	}

	g, err := s.engine.NewGame(userID, s.questions)
	if err != nil {
		return nil, err
	}

	if err := s.games.CreateGame(g); err != nil {
		return nil, fmt.Errorf("failed to persist game: %w", err)
	}

	return g, nil
}

// CurrentGame loads the user's open game. The time limit is checked on
// every read so an expired game finishes even if the player never acts.
func (s *GameService) CurrentGame(ctx context.Context, userID int64) (*models.Game, error) {
	g, err := s.games.ActiveGameByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if g == nil {
		return nil, ErrNoActiveGame
	}

	if s.engine.TimeOut(g) {
		if err := s.finalize(ctx, g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Answer scores an option letter against the user's open game
func (s *GameService) Answer(ctx context.Context, userID int64, key string) (*models.Game, error) {
	g, err := s.games.ActiveGameByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if g == nil {
		return nil, ErrNoActiveGame
	}

	s.engine.Answer(g, key)

	if g.Finished() {
		if err := s.finalize(ctx, g); err != nil {
			return nil, err
		}
		return g, nil
	}

	if err := s.games.SaveGame(g); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	return g, nil
}

// TakeMoney ends the user's open game banking the current prize
func (s *GameService) TakeMoney(ctx context.Context, userID int64) (*models.Game, error) {
	g, err := s.games.ActiveGameByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if g == nil {
		return nil, ErrNoActiveGame
	}

	s.engine.TimeOut(g)
	s.engine.TakeMoney(g)

	if err := s.finalize(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// UseHelp applies a lifeline to the user's open game
func (s *GameService) UseHelp(ctx context.Context, userID int64, kind models.HelpKind) (*models.Game, error) {
	g, err := s.games.ActiveGameByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if g == nil {
		return nil, ErrNoActiveGame
	}

	if s.engine.TimeOut(g) {
		if err := s.finalize(ctx, g); err != nil {
			return nil, err
		}
		return nil, game.ErrGameFinished
	}

	if _, err := s.engine.UseHelp(g, kind); err != nil {
		return nil, err
	}

	if err := s.games.SaveGame(g); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}
	if err := s.games.SaveHelp(g.CurrentQuestion()); err != nil {
		return nil, fmt.Errorf("failed to save help state: %w", err)
	}

	return g, nil
}

// History retrieves the user's most recent games
func (s *GameService) History(userID int64, limit int) ([]models.Game, error) {
	return s.games.GamesByUser(userID, limit)
}

// finalize persists a game that reached a terminal state in this call.
// FinishGame credits the prize atomically with the update, so the ledger
// is credited exactly once per game.
func (s *GameService) finalize(ctx context.Context, g *models.Game) error {
	if err := s.games.FinishGame(g); err != nil {
		return fmt.Errorf("failed to finish game: %w", err)
	}

	if g.Prize > 0 && s.email != nil && s.email.IsEnabled() {
		user, err := s.users.UserByID(g.UserID)
		if err != nil || user == nil {
			log.Printf("Could not load user %d for prize email: %v", g.UserID, err)
			return nil
		}
		if err := s.email.SendPrizeEmail(ctx, user.Email, user.Name, g.Prize, g.Status()); err != nil {
			// payout already happened, an email failure must not undo it
			log.Printf("Failed to send prize email to user %d: %v", g.UserID, err)
		}
	}

	return nil
}
