package quiz

var templates = map[Trait]string{
	Creative: "%s, jiwa kreatifmu adalah anugerah yang luar biasa! Kamu punya kemampuan untuk melihat dunia dengan cara yang unik dan mengubah imajinasi menjadi karya nyata. " +
		"Di era digital ini, kreativitas sepertimu sangat dibutuhkan untuk menciptakan produk dan konten yang tidak hanya fungsional, tapi juga indah dan menginspirasi. " +
		"Jangan pernah biarkan siapapun mematikan api kreatifmu. Terus eksplorasi, terus berkarya, dan ingat: setiap desainer hebat, setiap creator sukses, dulunya memulai dari titik yang sama sepertimu sekarang. " +
		"Dunia butuh sentuhan kreatif dari perempuan muslimah sepertimu! 🎨✨",

	Analytical: "%s, kemampuan analitismu adalah kekuatan super yang jarang dimiliki! Kamu punya mata yang tajam untuk detail, pikiran yang sistematis, dan kemampuan untuk memecahkan puzzle yang rumit. " +
		"Di dunia yang penuh dengan data dan informasi, skill seperti ini adalah emas! " +
		"Baik itu menjadi Data Analyst, AI Engineer, atau Cybersecurity Specialist, kemampuanmu untuk berpikir logis dan mendalam akan membawamu jauh. " +
		"Remember: otak analitis sepertimu bisa memecahkan masalah-masalah besar yang akan mengubah dunia. Don't underestimate the power of your analytical mind! 📊🧠",

	Tech: "%s, passion-mu terhadap teknologi adalah modal awal yang sempurna untuk masa depan! Di era digital ini, tech savvy sepertimu adalah game changer. " +
		"Kamu sudah punya fondasi yang kuat - sekarang tinggal diperdalam dan diasah. " +
		"Mulai dari coding, exploring AI, atau bahkan bikin app sendiri - semua dimulai dari ketertarikan seperti yang kamu punya sekarang. " +
		"Tech industry butuh lebih banyak perempuan muslimah yang paham teknologi dan punya values yang kuat. " +
		"You could be the next tech innovator that changes how Muslims interact with technology! Keep coding, keep building! 💻🚀",

	Social: "%s, kemampuan sosial dan komunikasimu adalah aset yang sangat berharga! " +
		"Dalam dunia teknologi, technical skill memang penting, tapi kemampuan untuk berkolaborasi, memimpin tim, dan mengkomunikasikan ide dengan baik adalah yang membedakan leader dengan follower. " +
		"Kamu bisa jadi Project Manager, Digital Marketing Specialist, atau Content Creator yang menginspirasi jutaan orang. Your voice matters, your leadership matters. " +
		"Gunakan kemampuan sosialmu untuk membangun komunitas, menyebarkan kebaikan, dan memimpin perubahan positif di dunia digital! 🌟👥",

	Leader: "%s, jiwa kepemimpinanmu sudah terlihat dari sekarang! " +
		"Leader bukan tentang yang paling pintar atau paling cepat - tapi tentang yang paling berani memulai, yang bisa menginspirasi orang lain, dan yang punya vision untuk masa depan. " +
		"Dengan kemampuan organize dan koordinasi yang kamu punya, kamu bisa jadi Tech Entrepreneur yang membangun startup, Project Manager yang memimpin tim international, atau Educator yang menginspirasi generasi. " +
		"Dream big, start small, but START! The world needs more young Muslim women leaders like you! 👑🎯",

	Builder: "%s, kamu adalah builder sejati! Passion-mu untuk menciptakan sesuatu, untuk mengubah ide menjadi realita, adalah DNA seorang innovator. " +
		"Baik itu build aplikasi, design produk, atau start bisnis - kamu punya mindset yang tepat. " +
		"Di dunia tech, builder mentality sepertimu adalah foundation untuk kesuksesan. Start dengan project kecil, learn from failures, iterate quickly. " +
		"Remember: semua produk besar - dari Instagram sampai Gojek - dimulai dari seseorang yang berani BUILD. Your ideas can change the world, so start building now! 🏗️💡",
}
