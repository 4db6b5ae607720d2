package game

import "testing"

func TestDefaultPrizePlanIsValid(t *testing.T) {
	if err := DefaultPrizePlan().Validate(); err != nil {
		t.Fatalf("default plan invalid: %v", err)
	}
}

func TestPrizePlanValidate(t *testing.T) {
	plan := DefaultPrizePlan()
	plan.Prizes[5] = plan.Prizes[4]
	if err := plan.Validate(); err == nil {
		t.Error("Validate() accepted a non-increasing ladder")
	}

	plan = DefaultPrizePlan()
	plan.Fireproof = []int{15}
	if err := plan.Validate(); err == nil {
		t.Error("Validate() accepted an out-of-range fireproof level")
	}
}

func TestFloorPrize(t *testing.T) {
	plan := DefaultPrizePlan()

	tests := []struct {
		name         string
		lastAnswered int
		want         int64
	}{
		{name: "nothing answered", lastAnswered: -1, want: 0},
		{name: "below first fireproof", lastAnswered: 3, want: 0},
		{name: "exactly first fireproof", lastAnswered: 4, want: plan.Prizes[4]},
		{name: "between fireproof levels", lastAnswered: 8, want: plan.Prizes[4]},
		{name: "exactly second fireproof", lastAnswered: 9, want: plan.Prizes[9]},
		{name: "past second fireproof", lastAnswered: 13, want: plan.Prizes[9]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plan.FloorPrize(tt.lastAnswered); got != tt.want {
				t.Errorf("FloorPrize(%d) = %d, want %d", tt.lastAnswered, got, tt.want)
			}
		})
	}
}

func TestPrizeFor(t *testing.T) {
	plan := DefaultPrizePlan()

	if got := plan.PrizeFor(-1); got != 0 {
		t.Errorf("PrizeFor(-1) = %d, want 0", got)
	}
	if got := plan.PrizeFor(0); got != plan.Prizes[0] {
		t.Errorf("PrizeFor(0) = %d, want %d", got, plan.Prizes[0])
	}
	if got := plan.PrizeFor(LevelCount); got != 0 {
		t.Errorf("PrizeFor(%d) = %d, want 0", LevelCount, got)
	}
	if plan.GrandPrize() != plan.Prizes[LevelCount-1] {
		t.Errorf("GrandPrize() = %d, want %d", plan.GrandPrize(), plan.Prizes[LevelCount-1])
	}
}
