package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"prizeladder/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version       string               `json:"version"`
	ExportedAt    time.Time            `json:"exported_at"`
	Users         []UserBackup         `json:"users"`
	Questions     []QuestionBackup     `json:"questions"`
	Games         []GameBackup         `json:"games"`
	GameQuestions []GameQuestionBackup `json:"game_questions"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	IsGuest       bool      `json:"is_guest"`
	Balance       int64     `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// QuestionBackup represents a question-bank record for backup
type QuestionBackup struct {
	ID         int64     `json:"id"`
	Level      int       `json:"level"`
	Text       string    `json:"text"`
	AnswerA    string    `json:"answer_a"`
	AnswerB    string    `json:"answer_b"`
	AnswerC    string    `json:"answer_c"`
	AnswerD    string    `json:"answer_d"`
	CorrectKey string    `json:"correct_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// GameBackup represents a game record for backup
type GameBackup struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	CurrentLevel   int        `json:"current_level"`
	Outcome        string     `json:"outcome"`
	Prize          int64      `json:"prize"`
	AudienceUsed   bool       `json:"audience_used"`
	FiftyFiftyUsed bool       `json:"fifty_fifty_used"`
	FriendCallUsed bool       `json:"friend_call_used"`
	CreatedAt      time.Time  `json:"created_at"`
	FinishedAt     *time.Time `json:"finished_at"`
}

// GameQuestionBackup represents one rung of a game's ladder for backup
type GameQuestionBackup struct {
	ID         int64  `json:"id"`
	GameID     int64  `json:"game_id"`
	QuestionID int64  `json:"question_id"`
	Level      int    `json:"level"`
	HelpState  string `json:"help_state"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportQuestions(backup); err != nil {
		return fmt.Errorf("failed to export questions: %w", err)
	}
	if err := s.exportGames(backup); err != nil {
		return fmt.Errorf("failed to export games: %w", err)
	}
	if err := s.exportGameQuestions(backup); err != nil {
		return fmt.Errorf("failed to export game questions: %w", err)
	}

	log.Printf("Exported: %d users, %d questions, %d games, %d game questions",
		len(backup.Users), len(backup.Questions), len(backup.Games), len(backup.GameQuestions))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importQuestions(backup.Questions); err != nil {
		return fmt.Errorf("failed to import questions: %w", err)
	}
	if err := s.importGames(backup.Games); err != nil {
		return fmt.Errorf("failed to import games: %w", err)
	}
	if err := s.importGameQuestions(backup.GameQuestions); err != nil {
		return fmt.Errorf("failed to import game questions: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), is_guest, balance, created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider, &u.OAuthSubject, &u.IsGuest, &u.Balance, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportQuestions(backup *BackupData) error {
	query := "SELECT id, level, text, answer_a, answer_b, answer_c, answer_d, correct_key, created_at FROM questions ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q QuestionBackup
		if err := rows.Scan(&q.ID, &q.Level, &q.Text, &q.AnswerA, &q.AnswerB, &q.AnswerC, &q.AnswerD, &q.CorrectKey, &q.CreatedAt); err != nil {
			return err
		}
		backup.Questions = append(backup.Questions, q)
	}
	return rows.Err()
}

func (s *BackupService) exportGames(backup *BackupData) error {
	query := "SELECT id, user_id, current_level, COALESCE(outcome, ''), prize, audience_used, fifty_fifty_used, friend_call_used, created_at, finished_at FROM games ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g GameBackup
		var finishedAt sql.NullTime
		if err := rows.Scan(&g.ID, &g.UserID, &g.CurrentLevel, &g.Outcome, &g.Prize, &g.AudienceUsed, &g.FiftyFiftyUsed, &g.FriendCallUsed, &g.CreatedAt, &finishedAt); err != nil {
			return err
		}
		if finishedAt.Valid {
			g.FinishedAt = &finishedAt.Time
		}
		backup.Games = append(backup.Games, g)
	}
	return rows.Err()
}

func (s *BackupService) exportGameQuestions(backup *BackupData) error {
	query := "SELECT id, game_id, question_id, level, help_state FROM game_questions ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var gq GameQuestionBackup
		if err := rows.Scan(&gq.ID, &gq.GameID, &gq.QuestionID, &gq.Level, &gq.HelpState); err != nil {
			return err
		}
		backup.GameQuestions = append(backup.GameQuestions, gq)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, is_guest, balance, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, u.OAuthProvider, u.OAuthSubject, u.IsGuest, u.Balance, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importQuestions(questions []QuestionBackup) error {
	log.Printf("Importing %d questions...", len(questions))
	for _, q := range questions {
		query := "INSERT INTO questions (id, level, text, answer_a, answer_b, answer_c, answer_d, correct_key, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, q.ID, q.Level, q.Text, q.AnswerA, q.AnswerB, q.AnswerC, q.AnswerD, q.CorrectKey, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import question %d: %w", q.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importGames(games []GameBackup) error {
	log.Printf("Importing %d games...", len(games))
	for _, g := range games {
		var finishedAt interface{} = nil
		if g.FinishedAt != nil {
			finishedAt = *g.FinishedAt
		}
		query := "INSERT INTO games (id, user_id, current_level, outcome, prize, audience_used, fifty_fifty_used, friend_call_used, created_at, finished_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, g.ID, g.UserID, g.CurrentLevel, g.Outcome, g.Prize, g.AudienceUsed, g.FiftyFiftyUsed, g.FriendCallUsed, g.CreatedAt, finishedAt)
		if err != nil {
			return fmt.Errorf("failed to import game %d: %w", g.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importGameQuestions(gameQuestions []GameQuestionBackup) error {
	log.Printf("Importing %d game questions...", len(gameQuestions))
	for _, gq := range gameQuestions {
		helpState := gq.HelpState
		if helpState == "" {
			helpState = "{}"
		}
		query := "INSERT INTO game_questions (id, game_id, question_id, level, help_state) VALUES (?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, gq.ID, gq.GameID, gq.QuestionID, gq.Level, helpState)
		if err != nil {
			return fmt.Errorf("failed to import game question %d: %w", gq.ID, err)
		}
	}
	return nil
}
