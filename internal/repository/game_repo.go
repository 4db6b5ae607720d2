package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"prizeladder/internal/database"
	"prizeladder/internal/models"
)

// GameRepository handles game and ladder database operations
type GameRepository struct {
	db *database.DB
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{db: db}
}

// CreateGame persists a new game and its full ladder in one transaction,
// so a failure leaves no partial game behind. IDs are filled in on success.
func (r *GameRepository) CreateGame(g *models.Game) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	gameID, err := tx.ExecReturningID(`
		INSERT INTO games (user_id, current_level, outcome, prize,
			audience_used, fifty_fifty_used, friend_call_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, g.UserID, g.CurrentLevel, string(g.Outcome), g.Prize,
		g.AudienceUsed, g.FiftyFiftyUsed, g.FriendCallUsed, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}

	for i := range g.Questions {
		gq := &g.Questions[i]
		gq.GameID = gameID

		helpJSON, err := json.Marshal(gq.Help)
		if err != nil {
			return fmt.Errorf("failed to encode help state: %w", err)
		}

		entryID, err := tx.ExecReturningID(`
			INSERT INTO game_questions (game_id, question_id, level, help_state)
			VALUES (?, ?, ?, ?)
		`, gameID, gq.QuestionID, gq.Level, string(helpJSON))
		if err != nil {
			return fmt.Errorf("failed to insert ladder entry %d: %w", gq.Level, err)
		}
		gq.ID = entryID
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	g.ID = gameID
	return nil
}

// ActiveGameByUser retrieves the user's open game with its ladder, or nil
// when no game is in progress
func (r *GameRepository) ActiveGameByUser(userID int64) (*models.Game, error) {
	query := gameSelect + " WHERE user_id = ? AND finished_at IS NULL ORDER BY id DESC LIMIT 1"

	g, err := r.scanGame(r.db.QueryRow(query, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadLadder(g); err != nil {
		return nil, err
	}
	return g, nil
}

// GameByID retrieves one game with its ladder
func (r *GameRepository) GameByID(gameID int64) (*models.Game, error) {
	g, err := r.scanGame(r.db.QueryRow(gameSelect+" WHERE id = ?", gameID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadLadder(g); err != nil {
		return nil, err
	}
	return g, nil
}

// GamesByUser retrieves the user's most recent games, without ladders
func (r *GameRepository) GamesByUser(userID int64, limit int) ([]models.Game, error) {
	query := gameSelect + " WHERE user_id = ? ORDER BY created_at DESC LIMIT ?"

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		g, err := r.scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *g)
	}

	return games, rows.Err()
}

// SaveGame writes the game's mutable state back to the database
func (r *GameRepository) SaveGame(g *models.Game) error {
	query := `
		UPDATE games
		SET current_level = ?, outcome = ?, prize = ?,
		    audience_used = ?, fifty_fifty_used = ?, friend_call_used = ?,
		    finished_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, g.CurrentLevel, string(g.Outcome), g.Prize,
		g.AudienceUsed, g.FiftyFiftyUsed, g.FriendCallUsed, g.FinishedAt, g.ID)
	return err
}

// SaveHelp writes one ladder entry's help payloads back to the database
func (r *GameRepository) SaveHelp(gq *models.GameQuestion) error {
	helpJSON, err := json.Marshal(gq.Help)
	if err != nil {
		return fmt.Errorf("failed to encode help state: %w", err)
	}

	_, err = r.db.Exec("UPDATE game_questions SET help_state = ? WHERE id = ?",
		string(helpJSON), gq.ID)
	return err
}

// FinishGame persists a terminal game and credits the prize to the
// player's balance in one transaction, so the ledger credit happens
// exactly once, atomically with the finish.
func (r *GameRepository) FinishGame(g *models.Game) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE games
		SET current_level = ?, outcome = ?, prize = ?,
		    audience_used = ?, fifty_fifty_used = ?, friend_call_used = ?,
		    finished_at = ?
		WHERE id = ?
	`, g.CurrentLevel, string(g.Outcome), g.Prize,
		g.AudienceUsed, g.FiftyFiftyUsed, g.FriendCallUsed, g.FinishedAt, g.ID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if g.Prize > 0 {
		_, err = tx.Exec(`
			UPDATE users
			SET balance = balance + ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, g.Prize, g.UserID)
		if err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}
	}

	return tx.Commit()
}

const gameSelect = `
	SELECT id, user_id, current_level, outcome, prize,
	       audience_used, fifty_fifty_used, friend_call_used,
	       created_at, finished_at
	FROM games`

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *GameRepository) scanGame(row rowScanner) (*models.Game, error) {
	g := &models.Game{}
	var outcome string
	var finishedAt sql.NullTime

	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.CurrentLevel,
		&outcome,
		&g.Prize,
		&g.AudienceUsed,
		&g.FiftyFiftyUsed,
		&g.FriendCallUsed,
		&g.CreatedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	g.Outcome = models.Outcome(outcome)
	if finishedAt.Valid {
		g.FinishedAt = &finishedAt.Time
	}

	return g, nil
}

// loadLadder fills in the game's ladder entries joined with their questions
func (r *GameRepository) loadLadder(g *models.Game) error {
	query := `
		SELECT gq.id, gq.game_id, gq.question_id, gq.level, gq.help_state,
		       q.id, q.level, q.text, q.answer_a, q.answer_b, q.answer_c, q.answer_d,
		       q.correct_key, q.created_at
		FROM game_questions gq
		JOIN questions q ON q.id = gq.question_id
		WHERE gq.game_id = ?
		ORDER BY gq.level ASC
	`

	rows, err := r.db.Query(query, g.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ladder []models.GameQuestion
	for rows.Next() {
		var gq models.GameQuestion
		var helpJSON string

		err := rows.Scan(
			&gq.ID,
			&gq.GameID,
			&gq.QuestionID,
			&gq.Level,
			&helpJSON,
			&gq.Question.ID,
			&gq.Question.Level,
			&gq.Question.Text,
			&gq.Question.AnswerA,
			&gq.Question.AnswerB,
			&gq.Question.AnswerC,
			&gq.Question.AnswerD,
			&gq.Question.CorrectKey,
			&gq.Question.CreatedAt,
		)
		if err != nil {
			return err
		}

		if helpJSON != "" {
			if err := json.Unmarshal([]byte(helpJSON), &gq.Help); err != nil {
				return fmt.Errorf("failed to decode help state for entry %d: %w", gq.ID, err)
			}
		}

		ladder = append(ladder, gq)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	g.Questions = ladder
	return nil
}
