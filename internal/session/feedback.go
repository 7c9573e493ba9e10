package session

import "math/rand"

var affirmations = []string{
	"Great job! 🎉",
	"Excellent! ⭐",
	"Brilliant! 🌟",
	"Well done! 👏",
	"Super! 💪",
	"Spot on! 🎯",
	"Fantastic! 🚀",
	"Nailed it! ✨",
}

// Affirmation returns a random message for a correct answer.
func Affirmation(rnd *rand.Rand) string {
	return affirmations[rnd.Intn(len(affirmations))]
}
