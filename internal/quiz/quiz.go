// Package quiz turns personality quiz answers into a dominant trait and a personal motivation message.
package quiz

import (
	"fmt"
	"strings"

	"wewillshine/internal/catalog"
	"wewillshine/internal/validation"
)

// Trait is one of the six personality traits
type Trait string

const (
	Creative   Trait = "creative"
	Analytical Trait = "analytical"
	Tech       Trait = "tech"
	Social     Trait = "social"
	Leader     Trait = "leader"
	Builder    Trait = "builder"
)

// Traits lists every trait in declaration order. Ties go to the earlier entry.
var Traits = []Trait{Creative, Analytical, Tech, Social, Leader, Builder}

// aliases are extra substrings that also count toward a trait
var aliases = map[Trait][]string{
	Social:  {"collaborative"},
	Leader:  {"organizer"},
	Builder: {"entrepreneur"},
}

// Scores counts how many answers point at each trait
func Scores(answers []string) map[Trait]int {
	scores := make(map[Trait]int, len(Traits))
	for _, t := range Traits {
		scores[t] = 0
	}
	for _, answer := range answers {
		for _, t := range Traits {
			if matches(answer, t) {
				scores[t]++
			}
		}
	}
	return scores
}

func matches(answer string, t Trait) bool {
	if strings.Contains(answer, string(t)) {
		return true
	}
	for _, alias := range aliases[t] {
		if strings.Contains(answer, alias) {
			return true
		}
	}
	return false
}

// Classify returns the trait with the strictly greatest score. With no matching
// answers every score is zero and the result is Creative.
func Classify(answers []string) Trait {
	scores := Scores(answers)
	dominant := Traits[0]
	for _, t := range Traits[1:] {
		if scores[t] > scores[dominant] {
			dominant = t
		}
	}
	return dominant
}

// FirstName returns the first word of a full name
func FirstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Motivation renders the personal message for the dominant trait of answers
func Motivation(firstName string, answers []string) string {
	return Template(Classify(answers), firstName)
}

// Template renders the message for trait t. Unknown traits use the creative message.
func Template(t Trait, firstName string) string {
	tmpl, ok := templates[t]
	if !ok {
		tmpl = templates[Creative]
	}
	return fmt.Sprintf(tmpl, firstName)
}

// Validate checks that answers holds exactly one offered tag per question
func Validate(answers []string) error {
	questions := catalog.Questions()
	if len(answers) != len(questions) {
		return validation.ValidationError{
			Field:   "answers",
			Message: fmt.Sprintf("jawab semua %d pertanyaan dulu ya", len(questions)),
		}
	}
	for i, a := range answers {
		if !catalog.IsOption(i, a) {
			return validation.ValidationError{
				Field:   "answers",
				Message: fmt.Sprintf("jawaban pertanyaan %d tidak dikenal", i+1),
			}
		}
	}
	return nil
}
