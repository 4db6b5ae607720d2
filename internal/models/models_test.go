package models

import (
	"testing"
	"time"
)

func TestGameStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		game Game
		want string
	}{
		{
			name: "open game is in progress",
			game: Game{CurrentLevel: 3},
			want: StatusInProgress,
		},
		{
			name: "finished with won outcome",
			game: Game{CurrentLevel: 15, Outcome: OutcomeWon, FinishedAt: &now},
			want: "won",
		},
		{
			name: "finished with fail outcome",
			game: Game{CurrentLevel: 2, Outcome: OutcomeFail, FinishedAt: &now},
			want: "fail",
		},
		{
			name: "finished with timeout outcome",
			game: Game{CurrentLevel: 2, Outcome: OutcomeTimeout, FinishedAt: &now},
			want: "timeout",
		},
		{
			name: "finished with money outcome",
			game: Game{CurrentLevel: 5, Outcome: OutcomeMoney, FinishedAt: &now},
			want: "money",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.game.Status(); got != tt.want {
				t.Errorf("Status() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGameQuestionNavigation(t *testing.T) {
	game := Game{
		Questions: []GameQuestion{
			{Level: 0, QuestionID: 10},
			{Level: 1, QuestionID: 11},
			{Level: 2, QuestionID: 12},
		},
	}

	if game.PreviousLevel() != -1 {
		t.Errorf("PreviousLevel() = %d, want -1", game.PreviousLevel())
	}
	if game.PreviousQuestion() != nil {
		t.Error("PreviousQuestion() should be nil before the first answer")
	}
	if q := game.CurrentQuestion(); q == nil || q.QuestionID != 10 {
		t.Errorf("CurrentQuestion() = %+v, want question 10", q)
	}

	game.CurrentLevel = 2
	if q := game.PreviousQuestion(); q == nil || q.QuestionID != 11 {
		t.Errorf("PreviousQuestion() = %+v, want question 11", q)
	}

	game.CurrentLevel = 3
	if game.CurrentQuestion() != nil {
		t.Error("CurrentQuestion() should be nil past the last level")
	}
}

func TestHelpStateUsed(t *testing.T) {
	var h HelpState
	if !h.Empty() {
		t.Error("zero HelpState should be empty")
	}
	for _, kind := range HelpKinds {
		if h.Used(kind) {
			t.Errorf("Used(%s) = true on zero state", kind)
		}
	}

	h.Audience = map[string]int{"a": 10, "b": 20, "c": 30, "d": 40}
	h.FiftyFifty = []string{"a", "c"}
	h.FriendCall = "b"

	for _, kind := range HelpKinds {
		if !h.Used(kind) {
			t.Errorf("Used(%s) = false after payload recorded", kind)
		}
	}
}

func TestGameHelpFlags(t *testing.T) {
	var game Game
	for _, kind := range HelpKinds {
		if game.HelpUsed(kind) {
			t.Errorf("HelpUsed(%s) = true on new game", kind)
		}
		game.SetHelpUsed(kind)
		if !game.HelpUsed(kind) {
			t.Errorf("HelpUsed(%s) = false after SetHelpUsed", kind)
		}
	}
}

func TestQuestionAnswers(t *testing.T) {
	q := Question{
		AnswerA:    "Paris",
		AnswerB:    "London",
		AnswerC:    "Berlin",
		AnswerD:    "Madrid",
		CorrectKey: "a",
	}

	answers := q.Answers()
	if len(answers) != 4 {
		t.Fatalf("Answers() returned %d entries, want 4", len(answers))
	}
	for _, key := range AnswerKeys {
		if answers[key] == "" {
			t.Errorf("missing answer for key %q", key)
		}
	}

	if !q.IsCorrect("a") {
		t.Error("IsCorrect(a) = false, want true")
	}
	if q.IsCorrect("b") || q.IsCorrect("") {
		t.Error("IsCorrect should reject wrong or empty keys")
	}
}

func TestSessionIsExpired(t *testing.T) {
	live := Session{ExpiresAt: time.Now().Add(time.Hour)}
	if live.IsExpired() {
		t.Error("session expiring in an hour reported expired")
	}

	dead := Session{ExpiresAt: time.Now().Add(-time.Minute)}
	if !dead.IsExpired() {
		t.Error("session expired a minute ago reported live")
	}
}
