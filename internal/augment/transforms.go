package augment

import (
	"strings"
	"unicode"

	"github.com/aadhamashraf/intentgen/internal/rng"
)

// minNoiseLen is the shortest text the character-level transforms touch.
const minNoiseLen = 5

const noiseLetters = "abcdefghijklmnopqrstuvwxyz"

// Typo swaps two adjacent characters.
func Typo(text string, r *rng.Source) string {
	rs := []rune(text)
	if len(rs) < minNoiseLen {
		return text
	}
	i := r.IntN(len(rs) - 1)
	rs[i], rs[i+1] = rs[i+1], rs[i]
	return string(rs)
}

// ShuffleEntities reorders the words of text.
func ShuffleEntities(text string, r *rng.Source) string {
	words := strings.Fields(text)
	for i := len(words) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		words[i], words[j] = words[j], words[i]
	}
	return strings.Join(words, " ")
}

// Noise applies one character-level perturbation: a deletion, an adjacent
// swap, an inserted letter or a substituted letter.
func Noise(text string, r *rng.Source) string {
	rs := []rune(text)
	if len(rs) < minNoiseLen {
		return text
	}
	i := r.IntN(len(rs) - 1)
	letter := rune(noiseLetters[r.IntN(len(noiseLetters))])

	switch r.IntN(4) {
	case 0:
		return string(rs[:i]) + string(rs[i+1:])
	case 1:
		rs[i], rs[i+1] = rs[i+1], rs[i]
		return string(rs)
	case 2:
		return string(rs[:i]) + string(letter) + string(rs[i:])
	default:
		rs[i] = letter
		return string(rs)
	}
}

var (
	offTopicRequests = []string{
		"Book a table for two at an Italian restaurant",
		"What is the weather going to be like",
		"Play some relaxing jazz in the living room",
		"Order a large pepperoni pizza",
		"Remind me to call my dentist",
		"Translate good morning into Spanish",
		"Find a cheap flight to Lisbon",
		"Set an alarm for half past six",
		"Recommend a thriller to watch",
		"Convert fifty euros to dollars",
		"Add oat milk to my shopping list",
		"Tell me a joke about cats",
		"How many calories are in a banana",
		"Turn off the kitchen lights",
		"Who won the football match",
		"Schedule a haircut appointment",
	}
	offTopicWhen = []string{
		"tonight", "tomorrow morning", "this weekend", "next Friday",
		"after lunch", "before the meeting", "right now", "later today",
	}

	vagueTails = []string{
		"the thing we talked about",
		"whatever is needed for it",
		"that stuff on the network",
		"it somewhere, somehow",
		"the usual stuff",
		"something for the issue",
	}
	vagueOpeners = []string{
		"Sort out the issue with it",
		"Can you look into the thing",
		"Do whatever you think is best",
		"Fix that stuff again",
	}
)

// OutOfScope returns a request no network controller should act on.
func OutOfScope(r *rng.Source) string {
	return rng.Pick(r, offTopicRequests) + " " + rng.Pick(r, offTopicWhen) + "."
}

// Ambiguous keeps the leading verb of text and replaces the rest with a vague
// object. Text without a usable verb gets a vague request outright.
func Ambiguous(text string, r *rng.Source) string {
	words := strings.Fields(text)
	if len(words) == 0 || r.Float64() < 0.25 {
		return rng.Pick(r, vagueOpeners) + "."
	}
	verb := []rune(strings.Trim(words[0], ".,;:!?"))
	if len(verb) == 0 || !unicode.IsLetter(verb[0]) {
		return rng.Pick(r, vagueOpeners) + "."
	}
	verb[0] = unicode.ToUpper(verb[0])
	return string(verb) + " " + rng.Pick(r, vagueTails) + "."
}
