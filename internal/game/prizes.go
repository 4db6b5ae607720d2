package game

import (
	"fmt"
	"time"
)

// LevelCount is the fixed length of the question ladder
const LevelCount = 15

// DefaultTimeLimit is how long a player has to finish a game. The check
// is strict: a game is only over once elapsed time exceeds the limit.
const DefaultTimeLimit = 35 * time.Minute

// DefaultPrizes is the classic 15-step prize ladder
var DefaultPrizes = [LevelCount]int64{
	100, 200, 300, 500, 1000,
	2000, 4000, 8000, 16000, 32000,
	64000, 125000, 250000, 500000, 1000000,
}

// DefaultFireproof marks the levels whose prize is guaranteed once
// answered, even if the player later fails or times out
var DefaultFireproof = []int{4, 9}

// PrizePlan describes the prize ladder and its fireproof levels
type PrizePlan struct {
	Prizes    [LevelCount]int64
	Fireproof []int
}

// DefaultPrizePlan returns the standard ladder with fireproof levels 4 and 9
func DefaultPrizePlan() PrizePlan {
	return PrizePlan{Prizes: DefaultPrizes, Fireproof: DefaultFireproof}
}

// Validate checks that the ladder is strictly increasing and that every
// fireproof level is a valid ladder index
func (p PrizePlan) Validate() error {
	for i := 1; i < LevelCount; i++ {
		if p.Prizes[i] <= p.Prizes[i-1] {
			return fmt.Errorf("prize ladder must be strictly increasing, got %d after %d at level %d",
				p.Prizes[i], p.Prizes[i-1], i)
		}
	}
	for _, level := range p.Fireproof {
		if level < 0 || level >= LevelCount {
			return fmt.Errorf("fireproof level %d out of range 0..%d", level, LevelCount-1)
		}
	}
	return nil
}

// GrandPrize is the payout for completing the whole ladder
func (p PrizePlan) GrandPrize() int64 {
	return p.Prizes[LevelCount-1]
}

// PrizeFor returns the prize for having answered the question at the
// given level, or 0 when no question was answered yet
func (p PrizePlan) PrizeFor(level int) int64 {
	if level < 0 || level >= LevelCount {
		return 0
	}
	return p.Prizes[level]
}

// FloorPrize returns the guaranteed payout after a loss: the prize of the
// highest fireproof level at or below the last answered level, or 0 when
// no fireproof level was passed
func (p PrizePlan) FloorPrize(lastAnswered int) int64 {
	var floor int64
	for _, level := range p.Fireproof {
		if level <= lastAnswered && p.Prizes[level] > floor {
			floor = p.Prizes[level]
		}
	}
	return floor
}
