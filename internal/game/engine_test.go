package game

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"prizeladder/internal/models"
)

// fakeClock lets tests move the game clock by hand
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// fakeBank serves a fixed number of questions per level
type fakeBank struct {
	perLevel  int
	failLevel int // level that returns no candidates, -1 to disable
}

func (b *fakeBank) QuestionsAtLevel(level int) ([]models.Question, error) {
	if level == b.failLevel {
		return nil, nil
	}
	questions := make([]models.Question, 0, b.perLevel)
	for i := 0; i < b.perLevel; i++ {
		questions = append(questions, models.Question{
			ID:         int64(level*100 + i),
			Level:      level,
			Text:       fmt.Sprintf("question %d-%d", level, i),
			AnswerA:    "first",
			AnswerB:    "second",
			AnswerC:    "third",
			AnswerD:    "fourth",
			CorrectKey: "b",
		})
	}
	return questions, nil
}

func newTestEngine() (*Engine, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewEngine(clock, DefaultPrizePlan(), DefaultTimeLimit), clock
}

func newTestGame(t *testing.T, e *Engine) *models.Game {
	t.Helper()
	g, err := e.NewGame(42, &fakeBank{perLevel: 4, failLevel: -1})
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	return g
}

func TestNewGameBuildsFullLadder(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	if len(g.Questions) != LevelCount {
		t.Fatalf("ladder length = %d, want %d", len(g.Questions), LevelCount)
	}
	for i, gq := range g.Questions {
		if gq.Level != i {
			t.Errorf("ladder entry %d has level %d", i, gq.Level)
		}
		if gq.Question.Level != i {
			t.Errorf("ladder entry %d holds a level-%d question", i, gq.Question.Level)
		}
		if !gq.Help.Empty() {
			t.Errorf("ladder entry %d starts with non-empty help state", i)
		}
	}

	if g.CurrentLevel != 0 {
		t.Errorf("CurrentLevel = %d, want 0", g.CurrentLevel)
	}
	if g.Finished() {
		t.Error("new game reported finished")
	}
	if g.Status() != models.StatusInProgress {
		t.Errorf("Status() = %s, want %s", g.Status(), models.StatusInProgress)
	}
	if g.Prize != 0 {
		t.Errorf("new game prize = %d, want 0", g.Prize)
	}
}

func TestNewGameInsufficientContent(t *testing.T) {
	e, _ := newTestEngine()

	g, err := e.NewGame(42, &fakeBank{perLevel: 4, failLevel: 7})
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("NewGame() error = %v, want ErrInsufficientContent", err)
	}
	if g != nil {
		t.Error("NewGame() returned a partial game on failure")
	}
}

func TestAnswerCorrectContinuesGame(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	answered := g.CurrentQuestion()
	e.Answer(g, "b")

	if g.CurrentLevel != 1 {
		t.Errorf("CurrentLevel = %d, want 1", g.CurrentLevel)
	}
	if g.Finished() {
		t.Error("game finished after a correct mid-ladder answer")
	}
	if prev := g.PreviousQuestion(); prev == nil || prev.QuestionID != answered.QuestionID {
		t.Error("PreviousQuestion() does not point at the just-answered entry")
	}
	if cur := g.CurrentQuestion(); cur == nil || cur.QuestionID == answered.QuestionID {
		t.Error("CurrentQuestion() did not move to the next entry")
	}
}

func TestAnswerMonotonicProgress(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	for want := 1; want < LevelCount; want++ {
		e.Answer(g, "b")
		if g.CurrentLevel != want {
			t.Fatalf("after %d correct answers CurrentLevel = %d", want, g.CurrentLevel)
		}
		if g.PreviousLevel() != want-1 {
			t.Fatalf("PreviousLevel() = %d, want %d", g.PreviousLevel(), want-1)
		}
		if g.Finished() {
			t.Fatalf("game finished early at level %d", want)
		}
	}
}

func TestAnswerLastLevelWinsGrandPrize(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)
	g.CurrentLevel = LevelCount - 1

	e.Answer(g, "b")

	if !g.Finished() {
		t.Fatal("game not finished after answering the last level")
	}
	if g.Status() != "won" {
		t.Errorf("Status() = %s, want won", g.Status())
	}
	if g.CurrentLevel != LevelCount {
		t.Errorf("CurrentLevel = %d, want %d", g.CurrentLevel, LevelCount)
	}
	if g.Prize != e.Plan().GrandPrize() {
		t.Errorf("Prize = %d, want %d", g.Prize, e.Plan().GrandPrize())
	}
}

func TestAnswerWrongFailsGame(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	e.Answer(g, "c")

	if !g.Finished() {
		t.Fatal("game not finished after a wrong answer")
	}
	if g.Status() != "fail" {
		t.Errorf("Status() = %s, want fail", g.Status())
	}
	if g.Prize != 0 {
		t.Errorf("Prize = %d, want 0 before any fireproof level", g.Prize)
	}
	if g.CurrentLevel != 0 {
		t.Errorf("CurrentLevel = %d, want unchanged 0", g.CurrentLevel)
	}
}

func TestAnswerWrongAfterFireproofKeepsFloor(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	// answer levels 0..5 correctly, passing the first fireproof level (4)
	for i := 0; i < 6; i++ {
		e.Answer(g, "b")
	}

	e.Answer(g, "d")

	if g.Status() != "fail" {
		t.Fatalf("Status() = %s, want fail", g.Status())
	}
	if want := DefaultPrizes[4]; g.Prize != want {
		t.Errorf("Prize = %d, want fireproof floor %d", g.Prize, want)
	}
}

func TestTakeMoneyBanksPreviousPrize(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	for i := 0; i < 3; i++ {
		e.Answer(g, "b")
	}

	e.TakeMoney(g)

	if !g.Finished() {
		t.Fatal("game not finished after take money")
	}
	if g.Status() != "money" {
		t.Errorf("Status() = %s, want money", g.Status())
	}
	if want := DefaultPrizes[2]; g.Prize != want {
		t.Errorf("Prize = %d, want %d", g.Prize, want)
	}
}

func TestTakeMoneyAtLevelZeroPaysNothing(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	e.TakeMoney(g)

	if g.Status() != "money" {
		t.Errorf("Status() = %s, want money", g.Status())
	}
	if g.Prize != 0 {
		t.Errorf("Prize = %d, want 0 before any answer", g.Prize)
	}
}

func TestTimeOutBoundary(t *testing.T) {
	e, clock := newTestEngine()
	g := newTestGame(t, e)

	clock.Advance(35 * time.Minute)
	if e.TimeOut(g) {
		t.Fatal("TimeOut() fired at exactly 35 minutes")
	}
	if g.Finished() {
		t.Fatal("game finished at exactly 35 minutes")
	}

	clock.Advance(time.Minute)
	if !e.TimeOut(g) {
		t.Fatal("TimeOut() did not fire at 36 minutes")
	}
	if g.Status() != "timeout" {
		t.Errorf("Status() = %s, want timeout", g.Status())
	}
	if g.Prize != 0 {
		t.Errorf("Prize = %d, want 0 without a fireproof level passed", g.Prize)
	}
}

func TestAnswerAfterTimeLimitNeverScores(t *testing.T) {
	e, clock := newTestEngine()
	g := newTestGame(t, e)

	clock.Advance(36 * time.Minute)
	e.Answer(g, "b") // correct, but too late

	if g.Status() != "timeout" {
		t.Errorf("Status() = %s, want timeout", g.Status())
	}
	if g.CurrentLevel != 0 {
		t.Errorf("CurrentLevel = %d, want unchanged 0", g.CurrentLevel)
	}
}

func TestTerminalGameIsImmutable(t *testing.T) {
	e, clock := newTestEngine()
	g := newTestGame(t, e)

	e.Answer(g, "b")
	e.TakeMoney(g)

	level, prize, status := g.CurrentLevel, g.Prize, g.Status()
	finishedAt := *g.FinishedAt

	clock.Advance(2 * time.Hour)
	e.Answer(g, "b")
	e.TakeMoney(g)
	if e.TimeOut(g) {
		t.Error("TimeOut() fired on a finished game")
	}
	if _, err := e.UseHelp(g, models.HelpAudience); !errors.Is(err, ErrGameFinished) {
		t.Errorf("UseHelp() on finished game = %v, want ErrGameFinished", err)
	}

	if g.CurrentLevel != level || g.Prize != prize || g.Status() != status {
		t.Error("terminal game state changed after further calls")
	}
	if !g.FinishedAt.Equal(finishedAt) {
		t.Error("FinishedAt changed after further calls")
	}
}

func TestPrizeStableAcrossReads(t *testing.T) {
	e, _ := newTestEngine()
	g := newTestGame(t, e)

	for i := 0; i < 5; i++ {
		e.Answer(g, "b")
	}
	e.TakeMoney(g)

	first := g.Prize
	for i := 0; i < 3; i++ {
		if g.Prize != first {
			t.Fatalf("prize changed between reads: %d then %d", first, g.Prize)
		}
	}
}
