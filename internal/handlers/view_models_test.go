package handlers

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"prizeladder/internal/game"
	"prizeladder/internal/models"
)

func testGame() *models.Game {
	g := &models.Game{
		ID:        7,
		UserID:    42,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	for level := 0; level < game.LevelCount; level++ {
		g.Questions = append(g.Questions, models.GameQuestion{
			QuestionID: int64(level + 1),
			Level:      level,
			Question: models.Question{
				ID:         int64(level + 1),
				Level:      level,
				Text:       "which option is second",
				AnswerA:    "first",
				AnswerB:    "second",
				AnswerC:    "third",
				AnswerD:    "fourth",
				CorrectKey: "b",
			},
		})
	}
	return g
}

func TestBuildGameViewHidesCorrectKey(t *testing.T) {
	g := testGame()
	view := buildGameView(g, game.DefaultPrizePlan())

	if view.Question == nil {
		t.Fatal("open game view has no question")
	}
	if len(view.Question.Answers) != 4 {
		t.Errorf("answers = %d, want 4", len(view.Question.Answers))
	}

	// the serialized view must not leak which option is correct
	encoded, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if strings.Contains(string(encoded), "correct") {
		t.Error("view JSON mentions the correct key")
	}
}

func TestBuildGameViewFinishedGame(t *testing.T) {
	g := testGame()
	now := time.Date(2025, 6, 1, 12, 20, 0, 0, time.UTC)
	g.Outcome = models.OutcomeMoney
	g.Prize = 1000
	g.FinishedAt = &now

	view := buildGameView(g, game.DefaultPrizePlan())

	if view.Status != "money" {
		t.Errorf("Status = %s, want money", view.Status)
	}
	if view.Question != nil {
		t.Error("finished game view still carries a question")
	}
	if view.Prize != 1000 {
		t.Errorf("Prize = %d, want 1000", view.Prize)
	}
	if view.FinishedAt == nil {
		t.Error("finished game view missing FinishedAt")
	}
}

func TestBuildGameViewHelpPayload(t *testing.T) {
	g := testGame()
	g.AudienceUsed = true
	g.Questions[0].Help.Audience = map[string]int{"a": 10, "b": 60, "c": 20, "d": 10}

	view := buildGameView(g, game.DefaultPrizePlan())

	if view.Help == nil || view.Help.Audience == nil {
		t.Fatal("audience payload missing from view")
	}
	if len(view.HelpUsed) != 1 || view.HelpUsed[0] != "audience" {
		t.Errorf("HelpUsed = %v, want [audience]", view.HelpUsed)
	}
}

func TestBuildGameViewLadder(t *testing.T) {
	view := buildGameView(testGame(), game.DefaultPrizePlan())

	if len(view.PrizeLadder) != game.LevelCount {
		t.Fatalf("ladder length = %d, want %d", len(view.PrizeLadder), game.LevelCount)
	}
	if view.PrizeLadder[game.LevelCount-1] != game.DefaultPrizes[game.LevelCount-1] {
		t.Error("ladder top prize does not match the plan")
	}
	if len(view.Fireproof) != 2 {
		t.Errorf("fireproof levels = %v, want two entries", view.Fireproof)
	}
}

func TestBuildGameSummaries(t *testing.T) {
	finished := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	games := []models.Game{
		{ID: 1, CurrentLevel: 3, Outcome: models.OutcomeFail, Prize: 0, FinishedAt: &finished},
		{ID: 2, CurrentLevel: 5},
	}

	summaries := buildGameSummaries(games)
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	if summaries[0].Status != "fail" {
		t.Errorf("first status = %s, want fail", summaries[0].Status)
	}
	if summaries[1].Status != models.StatusInProgress {
		t.Errorf("second status = %s, want in_progress", summaries[1].Status)
	}
}
