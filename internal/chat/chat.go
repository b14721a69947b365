// Package chat is the canned career chatbot. Each message is classified on its
// own by keyword; there is no conversation memory.
package chat

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Bucket names a group of canned replies
type Bucket string

const (
	Greeting     Bucket = "greeting"
	Software     Bucket = "software"
	Design       Bucket = "design"
	Data         Bucket = "data"
	Marketing    Bucket = "marketing"
	Security     Bucket = "security"
	AI           Bucket = "ai"
	Creator      Bucket = "creator"
	Entrepreneur Bucket = "entrepreneur"
	Motivation   Bucket = "motivation"
	Study        Bucket = "study"
	Islam        Bucket = "islam"
	Default      Bucket = "default"
)

// Rule maps keywords to a bucket of reply variants
type Rule struct {
	Bucket   Bucket
	Keywords []string
	Replies  []string
}

// Matches reports whether the lower-cased message contains any keyword
func (r Rule) Matches(lowered string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// Responder picks replies. It is safe for concurrent use.
type Responder struct {
	rules    []Rule
	fallback Rule

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponder creates a responder over the built-in rules. A nil rng is seeded from the clock.
func NewResponder(rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Responder{rules: rules, fallback: fallback, rng: rng}
}

// Classify returns the first matching bucket, or Default
func (r *Responder) Classify(message string) Bucket {
	return r.match(strings.ToLower(message)).Bucket
}

func (r *Responder) match(lowered string) Rule {
	for _, rule := range r.rules {
		if rule.Matches(lowered) {
			return rule
		}
	}
	return r.fallback
}

// Respond classifies message and picks one of the bucket's replies uniformly at random
func (r *Responder) Respond(message string) (Bucket, string) {
	rule := r.match(strings.ToLower(message))

	r.mu.Lock()
	i := r.rng.Intn(len(rule.Replies))
	r.mu.Unlock()

	return rule.Bucket, rule.Replies[i]
}

// Rules returns the ordered rule table
func (r *Responder) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Welcome is the first bot message shown after login
func Welcome(firstName string) string {
	return fmt.Sprintf("Assalamualaikum %s! 🌟 Selamat datang di aplikasi eksplorasi karir! "+
		"Aku siap membantumu menemukan passion dan potensimu. Yuk mulai jelajahi dunia profesi yang menarik! ✨", firstName)
}
