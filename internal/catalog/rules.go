package catalog

import "wewillshine/internal/models"

// Thresholds for the achievement rules
const (
	QuoteMasterReads   = 5
	ExplorerCareers    = 3
	ChatterMessages    = 10
	DreamBuilderDreams = 5
	RisingStarLevel    = 5
)

type rule struct {
	id    string
	holds func(p *models.Progress) bool
}

var rules = []rule{
	{FirstLogin, func(p *models.Progress) bool { return true }},
	{QuoteMaster, func(p *models.Progress) bool { return p.QuoteCount >= QuoteMasterReads }},
	{CareerExplorer, func(p *models.Progress) bool { return len(p.ExploredItems) >= ExplorerCareers }},
	{AIChatter, func(p *models.Progress) bool { return p.ChatCount >= ChatterMessages }},
	{DreamBuilder, func(p *models.Progress) bool { return len(p.Dreams) >= DreamBuilderDreams }},
	{QuizMaster, func(p *models.Progress) bool { return p.QuizCompleted }},
	{AllCareers, func(p *models.Progress) bool { return len(p.ExploredItems) >= len(careers) }},
	{Level5, func(p *models.Progress) bool { return p.Level >= RisingStarLevel }},
}

// Evaluate returns the ids of achievements whose rule holds for p but are not yet
// unlocked, in catalogue order. A nil record yields nothing.
func Evaluate(p *models.Progress) []string {
	if p == nil {
		return nil
	}
	var ids []string
	for _, r := range rules {
		if r.holds(p) && !p.IsUnlocked(r.id) {
			ids = append(ids, r.id)
		}
	}
	return ids
}
