package game

import (
	"errors"
	"testing"

	"prizeladder/internal/models"
)

func TestUseHelpAudienceVote(t *testing.T) {
	e, _ := newTestEngine()

	// repeat to cover the randomised shares
	for i := 0; i < 50; i++ {
		g := newTestGame(t, e)

		help, err := e.UseHelp(g, models.HelpAudience)
		if err != nil {
			t.Fatalf("UseHelp(audience) error: %v", err)
		}

		total := 0
		for _, key := range models.AnswerKeys {
			share, ok := help.Audience[key]
			if !ok {
				t.Fatalf("audience vote missing key %q: %v", key, help.Audience)
			}
			if share < 0 {
				t.Fatalf("negative share %d for key %q", share, key)
			}
			total += share
		}
		if total != 100 {
			t.Fatalf("audience vote sums to %d, want 100: %v", total, help.Audience)
		}
		if !g.AudienceUsed {
			t.Fatal("AudienceUsed flag not set")
		}
	}
}

func TestUseHelpFiftyFifty(t *testing.T) {
	e, _ := newTestEngine()

	for i := 0; i < 50; i++ {
		g := newTestGame(t, e)
		correct := g.CurrentQuestion().Question.CorrectKey

		help, err := e.UseHelp(g, models.HelpFiftyFifty)
		if err != nil {
			t.Fatalf("UseHelp(fifty_fifty) error: %v", err)
		}

		if len(help.FiftyFifty) != 2 {
			t.Fatalf("fifty-fifty left %d options, want 2", len(help.FiftyFifty))
		}
		found := false
		for _, key := range help.FiftyFifty {
			if key == correct {
				found = true
			}
		}
		if !found {
			t.Fatalf("fifty-fifty removed the correct answer: %v", help.FiftyFifty)
		}
	}
}

func TestUseHelpFriendCall(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	help, err := e.UseHelp(g, models.HelpFriendCall)
	if err != nil {
		t.Fatalf("UseHelp(friend_call) error: %v", err)
	}

	valid := false
	for _, key := range models.AnswerKeys {
		if help.FriendCall == key {
			valid = true
		}
	}
	if !valid {
		t.Errorf("friend call suggested invalid key %q", help.FriendCall)
	}
	if !g.FriendCallUsed {
		t.Error("FriendCallUsed flag not set")
	}
}

func TestUseHelpOncePerGame(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	if _, err := e.UseHelp(g, models.HelpAudience); err != nil {
		t.Fatalf("first UseHelp error: %v", err)
	}
	if _, err := e.UseHelp(g, models.HelpAudience); !errors.Is(err, ErrHelpAlreadyUsed) {
		t.Fatalf("second UseHelp error = %v, want ErrHelpAlreadyUsed", err)
	}

	// still blocked on a later question
	e.Answer(g, "b")
	if _, err := e.UseHelp(g, models.HelpAudience); !errors.Is(err, ErrHelpAlreadyUsed) {
		t.Fatalf("UseHelp after level up = %v, want ErrHelpAlreadyUsed", err)
	}
}

func TestUseHelpRecordsPayloadOnCurrentQuestion(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	e.Answer(g, "b")
	e.Answer(g, "b")

	if _, err := e.UseHelp(g, models.HelpFiftyFifty); err != nil {
		t.Fatalf("UseHelp error: %v", err)
	}

	if g.Questions[0].Help.Used(models.HelpFiftyFifty) || g.Questions[1].Help.Used(models.HelpFiftyFifty) {
		t.Error("help payload landed on an already answered question")
	}
	if !g.Questions[2].Help.Used(models.HelpFiftyFifty) {
		t.Error("help payload missing from the current question")
	}
}

func TestUseHelpUnknownKind(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	if _, err := e.UseHelp(g, models.HelpKind("ask_the_host")); !errors.Is(err, ErrUnknownHelp) {
		t.Errorf("UseHelp(unknown) = %v, want ErrUnknownHelp", err)
	}
}
