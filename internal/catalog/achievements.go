// Package catalog holds the fixed content of the app: achievements, careers,
// quiz questions and motivational quotes.
package catalog

import "wewillshine/internal/models"

// Achievement ids
const (
	FirstLogin     = "first-login"
	QuoteMaster    = "quote-master"
	CareerExplorer = "career-explorer"
	AIChatter      = "ai-chatter"
	DreamBuilder   = "dream-builder"
	QuizMaster     = "quiz-master"
	AllCareers     = "all-careers"
	Level5         = "level-5"
)

var achievements = []models.Achievement{
	{ID: FirstLogin, Name: "First Explorer", Icon: "🥇", Description: "Login pertama kali"},
	{ID: QuoteMaster, Name: "Quote Master", Icon: "📝", Description: "Baca 5 quote motivasi"},
	{ID: CareerExplorer, Name: "Career Explorer", Icon: "🎯", Description: "Jelajahi 3 bidang karir"},
	{ID: AIChatter, Name: "AI Chatter", Icon: "🤖", Description: "Chat 10 kali dengan AI"},
	{ID: DreamBuilder, Name: "Dream Builder", Icon: "✨", Description: "Tambah 5 impian"},
	{ID: QuizMaster, Name: "Quiz Master", Icon: "🧠", Description: "Selesaikan quiz kepribadian"},
	{ID: AllCareers, Name: "Career Master", Icon: "🌟", Description: "Jelajahi semua 8 karir"},
	{ID: Level5, Name: "Rising Star", Icon: "⭐", Description: "Capai level 5"},
}

// Achievements returns a fresh copy of the achievement list with every entry locked.
// Callers own the returned slice.
func Achievements() []models.Achievement {
	out := make([]models.Achievement, len(achievements))
	copy(out, achievements)
	return out
}

// AchievementByID looks up an achievement definition
func AchievementByID(id string) (models.Achievement, bool) {
	for _, a := range achievements {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}
