package catalog

import "math/rand"

var quotes = []string{
	"Masa depanmu dimulai dari keputusan kecil yang kamu buat hari ini. Keep learning, keep growing! 🌱",
	"Kamu punya potensi luar biasa! Jangan pernah ragu untuk bermimpi besar dan mengejarnya. ✨",
	"Setiap ahli pernah menjadi pemula. Yang penting adalah keberanianmu untuk memulai! 💪",
	"Teknologi adalah tools, tapi hatimu yang menentukan impact-nya. Gunakan untuk kebaikan! 🌟",
	"Kesuksesan bukan tentang seberapa cepat, tapi tentang konsistensi dan tidak menyerah. You got this! 🚀",
	"Ilmu adalah investasi terbaik. Apa yang kamu pelajari hari ini akan berguna 10 tahun ke depan! 📚",
	"Mimpi besar dimulai dari langkah kecil hari ini! 🌟",
	"Kamu lebih kuat dari yang kamu kira! 💪",
	"Setiap hari adalah kesempatan baru untuk belajar! 📚",
	"Jangan takut bermimpi, takutlah tidak bermimpi! ✨",
	"Masa depan cerah menanti mereka yang berani berusaha! 🌅",
	"Kegagalan adalah guru terbaik menuju kesuksesan! 🎯",
	"Percaya pada diri sendiri adalah langkah pertama! 🚀",
}

// Quotes returns all motivational quotes
func Quotes() []string {
	return append([]string(nil), quotes...)
}

// RandomQuote picks a quote using rng
func RandomQuote(rng *rand.Rand) string {
	return quotes[rng.Intn(len(quotes))]
}
