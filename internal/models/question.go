package models

import "time"

// AnswerKeys are the four option letters every question carries.
var AnswerKeys = []string{"a", "b", "c", "d"}

// Question represents one entry in the question bank. Questions are
// immutable once created; games reference them by ID.
type Question struct {
	ID         int64
	Level      int
	Text       string
	AnswerA    string
	AnswerB    string
	AnswerC    string
	AnswerD    string
	CorrectKey string
	CreatedAt  time.Time
}

// Answer returns the answer text for a given option letter
func (q *Question) Answer(key string) string {
	switch key {
	case "a":
		return q.AnswerA
	case "b":
		return q.AnswerB
	case "c":
		return q.AnswerC
	case "d":
		return q.AnswerD
	}
	return ""
}

// Answers returns all four options keyed by letter
func (q *Question) Answers() map[string]string {
	return map[string]string{
		"a": q.AnswerA,
		"b": q.AnswerB,
		"c": q.AnswerC,
		"d": q.AnswerD,
	}
}

// IsCorrect reports whether the given letter is the correct answer
func (q *Question) IsCorrect(key string) bool {
	return key != "" && key == q.CorrectKey
}
