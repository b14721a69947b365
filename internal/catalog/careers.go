package catalog

// Career describes one explorable career path
type Career struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Emoji        string   `json:"emoji"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills"`
	Path         string   `json:"path"`
	Demand       string   `json:"demand"`
	IslamicValue string   `json:"islamicValue"`
}

var careers = []Career{
	{
		ID: 1, Title: "Software Developer", Emoji: "💻",
		Description:  "Membuat aplikasi dan website yang bermanfaat untuk umat",
		Skills:       []string{"Problem Solving", "Logical Thinking", "Coding (Python, JavaScript)", "Teamwork"},
		Path:         "Mulai belajar coding dasar (Scratch, Python) → Ikut coding bootcamp/komunitas → Bangun project sederhana → Kuliah Informatika/Teknik Komputer",
		Demand:       "Sangat Tinggi - Dibutuhkan di semua industri!",
		IslamicValue: "Gunakan kemampuan coding untuk membuat tools yang bermanfaat bagi umat, seperti aplikasi ibadah, edukasi Islam, atau platform sosial yang positif.",
	},
	{
		ID: 2, Title: "UI/UX Designer", Emoji: "🎨",
		Description:  "Mendesain pengalaman digital yang indah dan mudah digunakan",
		Skills:       []string{"Kreativitas", "Design Thinking", "Empati", "Tools: Figma, Adobe XD"},
		Path:         "Belajar design basics → Eksplorasi Figma/Adobe XD → Buat portfolio project → Kuliah DKV/Desain Grafis/Informatika",
		Demand:       "Tinggi - Setiap produk digital butuh designer!",
		IslamicValue: "Ciptakan desain yang estetis namun tetap sopan dan sesuai nilai Islam. Desain yang baik bisa menyebarkan kebaikan dengan cara yang menarik.",
	},
	{
		ID: 3, Title: "Data Analyst", Emoji: "📊",
		Description:  "Mengubah data menjadi insight berharga untuk keputusan bijak",
		Skills:       []string{"Analytical Thinking", "Statistik", "Excel/Python", "Data Visualization"},
		Path:         "Kuasai matematika dasar → Belajar Excel & statistik → Python untuk data → Kuliah Statistika/Matematika/Informatika",
		Demand:       "Sangat Tinggi - Semua perusahaan butuh data analyst!",
		IslamicValue: "Gunakan data untuk membantu organisasi Islam membuat keputusan yang tepat, mengoptimalkan program dakwah, atau menganalisis kebutuhan umat.",
	},
	{
		ID: 4, Title: "Digital Marketing Specialist", Emoji: "📱",
		Description:  "Menyebarkan pesan positif melalui platform digital",
		Skills:       []string{"Content Creation", "Social Media", "Copywriting", "Analytics"},
		Path:         "Aktif di social media → Belajar content creation → Praktek personal branding → Kuliah Komunikasi/Marketing/DKV",
		Demand:       "Tinggi - Semua bisnis butuh presence digital!",
		IslamicValue: "Manfaatkan digital marketing untuk dakwah, menyebarkan konten Islami yang berkualitas, dan membangun komunitas muslim yang positif di dunia digital.",
	},
	{
		ID: 5, Title: "Cybersecurity Specialist", Emoji: "🔒",
		Description:  "Menjaga keamanan data dan sistem digital",
		Skills:       []string{"Problem Solving", "Networking", "Ethical Hacking", "Risk Analysis"},
		Path:         "Belajar networking dasar → Pahami sistem keamanan → Ikut CTF competitions → Kuliah Informatika/Sistem Informasi",
		Demand:       "Sangat Tinggi - Cyber threats terus meningkat!",
		IslamicValue: "Lindungi data dan privasi umat Muslim, amankan sistem organisasi Islam, dan jaga amanah digital dengan integritas tinggi.",
	},
	{
		ID: 6, Title: "AI/ML Engineer", Emoji: "🤖",
		Description:  "Membangun kecerdasan buatan untuk masa depan",
		Skills:       []string{"Mathematics", "Programming (Python)", "Deep Learning", "Problem Solving"},
		Path:         "Kuasai matematika & coding → Belajar AI/ML basics → Ikut competition (Kaggle) → Kuliah Informatika/Matematika/AI",
		Demand:       "Sangat Tinggi - Teknologi masa depan!",
		IslamicValue: "Kembangkan AI yang etis dan bermanfaat untuk umat, seperti AI untuk pembelajaran Al-Quran, analisis kesehatan halal, atau tools produktivitas Islami.",
	},
	{
		ID: 7, Title: "Content Creator & Educator", Emoji: "🎥",
		Description:  "Menciptakan konten edukatif yang menginspirasi",
		Skills:       []string{"Content Creation", "Video Editing", "Public Speaking", "Storytelling"},
		Path:         "Mulai buat konten di YouTube/TikTok → Belajar editing → Bangun audience → Kuliah Komunikasi/Pendidikan/DKV",
		Demand:       "Tinggi - Era creator economy!",
		IslamicValue: "Ciptakan konten edukatif Islami yang berkualitas, sebarkan ilmu agama dengan cara menarik, dan jadilah da'i digital yang menginspirasi.",
	},
	{
		ID: 8, Title: "Islamic Tech Entrepreneur", Emoji: "🚀",
		Description:  "Membangun startup teknologi berbasis nilai Islam",
		Skills:       []string{"Business Acumen", "Leadership", "Tech Knowledge", "Innovation"},
		Path:         "Belajar bisnis & teknologi → Identifikasi problem umat → Build MVP → Kuliah Bisnis/Informatika + ikut startup incubator",
		Demand:       "Berkembang Pesat - Islamic tech market huge!",
		IslamicValue: "Bangun bisnis yang halal, berkah, dan memberikan dampak positif untuk umat. Jadikan teknologi sebagai sarana untuk memakmurkan dan memberdayakan umat Muslim.",
	},
}

// Careers returns all careers in display order
func Careers() []Career {
	return append([]Career(nil), careers...)
}

// CareerByID looks up a career
func CareerByID(id int) (Career, bool) {
	for _, c := range careers {
		if c.ID == id {
			return c, true
		}
	}
	return Career{}, false
}

// CareerCount is the number of explorable careers
func CareerCount() int {
	return len(careers)
}
