package models

// HelpKind identifies one of the lifelines a player can use once per game
type HelpKind string

const (
	HelpAudience   HelpKind = "audience"
	HelpFiftyFifty HelpKind = "fifty_fifty"
	HelpFriendCall HelpKind = "friend_call"
)

// HelpKinds lists all supported lifelines
var HelpKinds = []HelpKind{HelpAudience, HelpFiftyFifty, HelpFriendCall}

// Valid reports whether the kind is one of the supported lifelines
func (k HelpKind) Valid() bool {
	switch k {
	case HelpAudience, HelpFiftyFifty, HelpFriendCall:
		return true
	}
	return false
}

// HelpState holds the lifeline payloads generated for a single game
// question. Each field is set at most once; a zero value means the
// lifeline has not been used on this question.
type HelpState struct {
	// Audience maps each option letter to a vote percentage (sums to 100)
	Audience map[string]int `json:"audience,omitempty"`
	// FiftyFifty holds the two option letters left visible, one correct
	FiftyFifty []string `json:"fifty_fifty,omitempty"`
	// FriendCall is the option letter the friend suggested
	FriendCall string `json:"friend_call,omitempty"`
}

// Used reports whether a payload for the given lifeline has been recorded
func (h *HelpState) Used(kind HelpKind) bool {
	switch kind {
	case HelpAudience:
		return h.Audience != nil
	case HelpFiftyFifty:
		return h.FiftyFifty != nil
	case HelpFriendCall:
		return h.FriendCall != ""
	}
	return false
}

// Empty reports whether no lifeline has been used on this question
func (h *HelpState) Empty() bool {
	return h.Audience == nil && h.FiftyFifty == nil && h.FriendCall == ""
}
