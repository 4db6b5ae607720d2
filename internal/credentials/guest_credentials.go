package credentials

import (
	"crypto/rand"
	"math/big"
)

// Word lists for generating guest player names
var adjectives = []string{
	"lucky", "brave", "clever", "quick", "bold", "bright", "calm", "eager",
	"fearless", "golden", "keen", "mighty", "noble", "proud", "rapid", "sharp",
	"silent", "smart", "steady", "swift", "wise", "witty", "cosmic", "daring",
}

var nouns = []string{
	"ace", "baron", "champion", "comet", "duke", "eagle", "falcon", "fox",
	"genius", "hawk", "jackpot", "knight", "lion", "maverick", "oracle", "phoenix",
	"pilot", "rocket", "sage", "scholar", "shark", "tiger", "wizard", "wolf",
}

// GenerateGuestName generates a random display name in the format
// "adjective-noun"
func GenerateGuestName() (string, error) {
	adjective, err := randomElement(adjectives)
	if err != nil {
		return "", err
	}

	noun, err := randomElement(nouns)
	if err != nil {
		return "", err
	}

	return adjective + "-" + noun, nil
}

// GenerateGuestPassword generates a random 8-character password using
// letters and numbers
func GenerateGuestPassword() (string, error) {
	chars := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	password := make([]byte, 8)

	for i := range password {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", err
		}
		password[i] = chars[num.Int64()]
	}

	return string(password), nil
}

// randomElement picks a random element from a string slice
func randomElement(slice []string) (string, error) {
	num, err := rand.Int(rand.Reader, big.NewInt(int64(len(slice))))
	if err != nil {
		return "", err
	}
	return slice[num.Int64()], nil
}
