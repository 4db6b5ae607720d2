package repository

import (
	"database/sql"
	"time"

	"prizeladder/internal/database"
	"prizeladder/internal/models"
)

// UserRepository handles player account and session database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new player account
func (r *UserRepository) CreateUser(email, passwordHash, name string, isGuest bool) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, name, is_guest)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, email, passwordHash, name, isGuest)
	if err != nil {
		return nil, err
	}

	return r.UserByID(id)
}

// UserByID retrieves a user by ID, nil when absent
func (r *UserRepository) UserByID(userID int64) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(userSelect+" WHERE id = ?", userID))
}

// UserByEmail retrieves a user by email, nil when absent
func (r *UserRepository) UserByEmail(email string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(userSelect+" WHERE email = ?", email))
}

// UserByOAuth retrieves a user by linked OAuth identity, nil when absent
func (r *UserRepository) UserByOAuth(provider, subject string) (*models.User, error) {
	return r.scanUser(r.db.QueryRow(
		userSelect+" WHERE oauth_provider = ? AND oauth_subject = ?", provider, subject))
}

// LinkOAuthProvider attaches an OAuth identity to an existing account
func (r *UserRepository) LinkOAuthProvider(userID int64, provider, subject string) error {
	query := `
		UPDATE users
		SET oauth_provider = ?, oauth_subject = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, provider, subject, userID)
	return err
}

// CreateSession stores a new session
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`

	if _, err := r.db.Exec(query, sessionID, userID, expiresAt); err != nil {
		return nil, err
	}

	return &models.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// Session retrieves a session by ID, nil when absent
func (r *UserRepository) Session(sessionID string) (*models.Session, error) {
	query := "SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = ?"

	s := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// DeleteSession removes a session
func (r *UserRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	return err
}

// DeleteExpiredSessions removes every session past its expiry
func (r *UserRepository) DeleteExpiredSessions() error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	return err
}

const userSelect = `
	SELECT id, email, password_hash, name, oauth_provider, oauth_subject,
	       is_guest, balance, created_at, updated_at
	FROM users`

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.OAuthProvider,
		&u.OAuthSubject,
		&u.IsGuest,
		&u.Balance,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
