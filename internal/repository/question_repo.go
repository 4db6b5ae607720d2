package repository

import (
	"prizeladder/internal/database"
	"prizeladder/internal/models"
)

// QuestionRepository handles question bank database operations
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// QuestionsAtLevel retrieves every bank question at the given difficulty level
func (r *QuestionRepository) QuestionsAtLevel(level int) ([]models.Question, error) {
	query := `
		SELECT id, level, text, answer_a, answer_b, answer_c, answer_d, correct_key, created_at
		FROM questions
		WHERE level = ?
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		err := rows.Scan(
			&q.ID,
			&q.Level,
			&q.Text,
			&q.AnswerA,
			&q.AnswerB,
			&q.AnswerC,
			&q.AnswerD,
			&q.CorrectKey,
			&q.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// CreateQuestion inserts a new bank question and sets its ID
func (r *QuestionRepository) CreateQuestion(q *models.Question) error {
	query := `
		INSERT INTO questions (level, text, answer_a, answer_b, answer_c, answer_d, correct_key)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		q.Level, q.Text, q.AnswerA, q.AnswerB, q.AnswerC, q.AnswerD, q.CorrectKey)
	if err != nil {
		return err
	}

	q.ID = id
	return nil
}

// CountByLevel returns how many questions the bank holds per level
func (r *QuestionRepository) CountByLevel() (map[int]int, error) {
	rows, err := r.db.Query("SELECT level, COUNT(*) FROM questions GROUP BY level")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var level, count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, err
		}
		counts[level] = count
	}

	return counts, rows.Err()
}
