package chat

// rules are evaluated in order; the first match wins
var rules = []Rule{
	{
		Bucket:   Greeting,
		Keywords: []string{"halo", "hai", "hi"},
		Replies: []string{
			"Halo! 👋 Aku di sini untuk membantu eksplorasi karirmu. Mau tanya tentang profesi tertentu atau butuh motivasi?",
			"Hai! Senang bisa menemanimu menjelajah dunia karir. Ada yang ingin kamu tanyakan? 😊",
		},
	},
	{
		Bucket:   Software,
		Keywords: []string{"software", "coding", "programmer"},
		Replies: []string{
			"Software Developer itu keren! Kamu bisa mulai dari belajar coding dasar seperti Python atau JavaScript. Coba buat project kecil seperti kalkulator atau to-do list app. Yang penting: jangan takut error, setiap bug adalah kesempatan belajar! 💻",
		},
	},
	{
		Bucket:   Design,
		Keywords: []string{"design", "ui", "ux"},
		Replies: []string{
			"UI/UX Designer perfect untuk yang suka seni dan teknologi! Mulai dengan belajar Figma (gratis!), lalu coba redesign app favoritmu. Perhatikan kenapa beberapa app enak dipakai dan yang lain nggak. That's UX thinking! 🎨",
		},
	},
	{
		Bucket:   Data,
		Keywords: []string{"data", "analyst"},
		Replies: []string{
			"Data Analyst itu seperti detective! Mulai dari Excel dulu, lalu belajar visualisasi data. Coba analisis data sederhana seperti nilai kelas atau statistik hobi teman-teman. Numbers tell stories! 📊",
		},
	},
	{
		Bucket:   Marketing,
		Keywords: []string{"marketing", "sosmed", "konten"},
		Replies: []string{
			"Digital Marketing cocok buat yang kreatif dan suka media sosial! Mulai dengan bikin konten untuk personal brand-mu. Pelajari apa yang bikin konten viral dan engaging. Content is king! 📱",
		},
	},
	{
		Bucket:   Security,
		Keywords: []string{"security", "cyber", "hacker"},
		Replies: []string{
			"Cybersecurity itu penting banget di era digital! Mulai dengan belajar dasar networking dan keamanan internet. Ikuti CTF (Capture The Flag) competition untuk practice. Be the guardian! 🔒",
		},
	},
	{
		Bucket:   AI,
		Keywords: []string{"ai", "machine learning", "kecerdasan"},
		Replies: []string{
			"AI/ML adalah masa depan! Mulai dengan matematika yang kuat dan Python. Coba project ML sederhana seperti prediksi sederhana atau image classification. The possibilities are endless! 🤖",
		},
	},
	{
		Bucket:   Creator,
		Keywords: []string{"creator", "youtube", "video"},
		Replies: []string{
			"Content Creator & Educator bisa dimulai sekarang! Pick satu platform, buat konten yang kamu passionate about, dan konsisten. Share ilmu yang kamu punya, meski masih belajar. Teaching is learning! 🎥",
		},
	},
	{
		Bucket:   Entrepreneur,
		Keywords: []string{"entrepreneur", "bisnis", "usaha"},
		Replies: []string{
			"Entrepreneur mindset bisa dimulai dari sekarang! Identifikasi masalah di sekitarmu dan pikirkan solusinya. Start small, learn fast, iterate quickly. Every big business started small! 🚀",
		},
	},
	{
		Bucket:   Motivation,
		Keywords: []string{"motivasi", "semangat", "down"},
		Replies: []string{
			"Remember: Setiap expert dulunya adalah beginner. Kamu sudah berani explore, that's a great start! Keep going! 💪",
			"Jangan bandingkan journey-mu dengan orang lain. Everyone has their own pace. Focus on progress, not perfection! 🌟",
			"Masa SMP adalah waktu terbaik untuk explore banyak hal. Try everything, fail fast, learn faster! ✨",
			"Tech industry itu sangat welcome untuk perempuan! We need more female voices in technology. You belong here! 👩‍💻",
			"Investasi terbaik adalah investasi di dirimu sendiri. Keep learning, stay curious! 📚",
		},
	},
	{
		Bucket:   Study,
		Keywords: []string{"belajar", "study", "tips"},
		Replies: []string{
			"Tips belajar: Pakai teknik Pomodoro (25 menit fokus, 5 menit break). Jangan lupa catat yang penting! 📝",
			"Belajar coding atau tech? Practice every day, meski cuma 15 menit. Consistency beats intensity! 💻",
			"Gabung komunitas atau klub tech di sekolah. Learning together is more fun! 🤝",
			"Don't just consume, create! Praktek langsung adalah cara belajar terbaik. 🛠️",
		},
	},
	{
		Bucket:   Islam,
		Keywords: []string{"islam", "agama", "allah"},
		Replies: []string{
			"Dalam Islam, menuntut ilmu itu ibadah. Setiap skill yang kamu pelajari bisa jadi amal jariyah kalau digunakan untuk kebaikan! 🤲",
			"Teknologi adalah alat. Niat dan cara menggunakannya yang menentukan berkah atau tidak. Always keep your intention pure! ☪️",
			"Prophet Muhammad SAW bilang: 'Tuntutlah ilmu sampai ke negeri China.' Itu artinya: never stop learning! 📖",
		},
	},
}

var fallback = Rule{
	Bucket: Default,
	Replies: []string{
		"Pertanyaan menarik! Mau tahu lebih spesifik tentang profesi mana? Atau butuh motivasi untuk memulai? 🤔",
		"Aku di sini untuk bantu! Coba tanya tentang: cara mulai belajar suatu skill, tips study, atau motivasi karir! 💡",
	},
}
