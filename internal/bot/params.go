package bot

import (
	"fmt"
	"math/rand"
)

// The tone axis is fixed; genre and age group come from config.
var tones = []string{"Tragedy", "Comedy"}

// PromptParameters are the knobs sampled fresh each day and forwarded to
// the prompt assistant. They are retained only for display on the card.
type PromptParameters struct {
	Genre    string
	AgeGroup string
	Tone     string
}

func samplePromptParameters(rng *rand.Rand, genres, ages []string) PromptParameters {
	return PromptParameters{
		Genre:    genres[rng.Intn(len(genres))],
		AgeGroup: ages[rng.Intn(len(ages))],
		Tone:     tones[rng.Intn(len(tones))],
	}
}

// instruction is the synthetic turn sent to the prompt assistant.
func (p PromptParameters) instruction() string {
	return fmt.Sprintf("%s, %s, %s", p.Genre, p.AgeGroup, p.Tone)
}
