package catalog

// QuestionOption is one selectable answer; Value is the tag fed to the quiz classifier
type QuestionOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Question is one personality quiz question
type Question struct {
	ID       int              `json:"id"`
	Question string           `json:"question"`
	Options  []QuestionOption `json:"options"`
}

var questions = []Question{
	{ID: 1, Question: "Apa yang paling kamu suka lakukan di waktu luang?", Options: []QuestionOption{
		{Text: "Main game atau coding", Value: "tech"},
		{Text: "Menggambar atau desain", Value: "creative"},
		{Text: "Baca atau analisis data", Value: "analytical"},
		{Text: "Bikin konten atau vlog", Value: "content"},
	}},
	{ID: 2, Question: "Mata pelajaran apa yang paling kamu kuasai?", Options: []QuestionOption{
		{Text: "Matematika & IPA", Value: "analytical"},
		{Text: "Bahasa & Seni", Value: "creative"},
		{Text: "Semua mata pelajaran seimbang", Value: "balanced"},
		{Text: "Praktek & Olahraga", Value: "practical"},
	}},
	{ID: 3, Question: "Kalau ada project kelompok, kamu biasanya jadi apa?", Options: []QuestionOption{
		{Text: "Yang mikirin konsep & ide", Value: "leader"},
		{Text: "Yang ngerjain detail teknisnya", Value: "executor"},
		{Text: "Yang bikin presentasi menarik", Value: "presenter"},
		{Text: "Yang ngatur & koordinasi tim", Value: "organizer"},
	}},
	{ID: 4, Question: "Kamu lebih suka bekerja...", Options: []QuestionOption{
		{Text: "Sendiri, fokus deep work", Value: "independent"},
		{Text: "Dalam tim, brainstorming bareng", Value: "collaborative"},
		{Text: "Kombinasi keduanya", Value: "flexible"},
		{Text: "Dengan banyak orang, suka networking", Value: "social"},
	}},
	{ID: 5, Question: "Apa mimpi terbesarmu untuk masa depan?", Options: []QuestionOption{
		{Text: "Bikin produk/aplikasi yang bermanfaat", Value: "builder"},
		{Text: "Jadi expert di bidang tertentu", Value: "specialist"},
		{Text: "Punya bisnis sendiri", Value: "entrepreneur"},
		{Text: "Menginspirasi & mengajar orang lain", Value: "educator"},
	}},
	{ID: 6, Question: "Skill apa yang sudah kamu miliki sejak kecil?", Options: []QuestionOption{
		{Text: "Kreatif & imajinatif", Value: "creative"},
		{Text: "Teliti & detail", Value: "analytical"},
		{Text: "Komunikatif & persuasif", Value: "social"},
		{Text: "Problem solver yang baik", Value: "logical"},
	}},
}

// Questions returns the quiz questions in order
func Questions() []Question {
	return append([]Question(nil), questions...)
}

// IsOption reports whether value is an answer tag offered by question index i
func IsOption(i int, value string) bool {
	if i < 0 || i >= len(questions) {
		return false
	}
	for _, o := range questions[i].Options {
		if o.Value == value {
			return true
		}
	}
	return false
}
