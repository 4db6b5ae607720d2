package game

import "prizeladder/internal/models"

// audienceVote simulates the studio audience: every option letter gets a
// share, the shares sum to exactly 100 and the correct answer gets the
// biggest slice most of the time.
func (e *Engine) audienceVote(q models.Question) map[string]int {
	votes := make(map[string]int, len(models.AnswerKeys))

	// 45-75% for the correct answer, the rest split across the others
	correctShare := 45 + e.rng.Intn(31)
	remaining := 100 - correctShare

	wrongKeys := make([]string, 0, 3)
	for _, key := range models.AnswerKeys {
		if key == q.CorrectKey {
			votes[key] = correctShare
			continue
		}
		wrongKeys = append(wrongKeys, key)
	}

	e.rng.Shuffle(len(wrongKeys), func(i, j int) {
		wrongKeys[i], wrongKeys[j] = wrongKeys[j], wrongKeys[i]
	})

	for i, key := range wrongKeys {
		if i == len(wrongKeys)-1 {
			votes[key] = remaining
			break
		}
		share := e.rng.Intn(remaining + 1)
		votes[key] = share
		remaining -= share
	}

	return votes
}

// fiftyFifty leaves two options visible: the correct one and a random
// wrong one, in ladder letter order.
func (e *Engine) fiftyFifty(q models.Question) []string {
	wrongKeys := make([]string, 0, 3)
	for _, key := range models.AnswerKeys {
		if key != q.CorrectKey {
			wrongKeys = append(wrongKeys, key)
		}
	}

	kept := wrongKeys[e.rng.Intn(len(wrongKeys))]

	visible := make([]string, 0, 2)
	for _, key := range models.AnswerKeys {
		if key == q.CorrectKey || key == kept {
			visible = append(visible, key)
		}
	}
	return visible
}

// friendCall suggests an option letter. The friend is right most of the
// time but not always.
func (e *Engine) friendCall(q models.Question) string {
	if e.rng.Intn(100) < 80 {
		return q.CorrectKey
	}

	wrongKeys := make([]string, 0, 3)
	for _, key := range models.AnswerKeys {
		if key != q.CorrectKey {
			wrongKeys = append(wrongKeys, key)
		}
	}
	return wrongKeys[e.rng.Intn(len(wrongKeys))]
}
