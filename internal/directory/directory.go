// Package directory holds the fixed class list that maps printed access codes to students.
package directory

import (
	"strings"

	"wewillshine/internal/models"
	"wewillshine/internal/validation"
)

// InvalidCodeMessage is shown when an access code does not match any student
const InvalidCodeMessage = "Kode tidak valid. Cek kembali kode di coklat hadiah kamu ya! 🍫"

var students = []models.StudentIdentity{
	{ID: "adinda-salsabila", Name: "ADINDA SALSABILA", Code: "INSPIRE2025AS"},
	{ID: "aisya-jasmine-nurmana", Name: "AISYA JASMINE NURMANA", Code: "INSPIRE2025AJN"},
	{ID: "aisyah-lovegne-restugusti", Name: "AISYAH LOVEGNE RESTUGUSTI", Code: "INSPIRE2025ALR"},
	{ID: "ashadewi-zada-aretha", Name: "ASHADEWI ZADA ARETHA", Code: "INSPIRE2025AZA"},
	{ID: "aurelia-bulan-meizzaluna", Name: "AURELIA BULAN MEIZZALUNA", Code: "INSPIRE2025ABM"},
	{ID: "cahaya-shfa-aulia", Name: "CAHAYA SHFA AULIA", Code: "INSPIRE2025CSA"},
	{ID: "chillia-aurellia-ayyatul-husna", Name: "CHILLIA AURELLIA AYYATUL HUSNA", Code: "INSPIRE2025CAAH"},
	{ID: "diya-aisyah", Name: "DIYA AISYAH", Code: "INSPIRE2025DA"},
	{ID: "kafaya-nariswari-nismara-ageng", Name: "KAFAYA NARISWARI NISMARA AGENG", Code: "INSPIRE2025KNNA"},
	{ID: "kanaya-rasheeda-syam", Name: "KANAYA RASHEEDA SYAM", Code: "INSPIRE2025KRS"},
	{ID: "khoirunnisa-radhwa-pratista", Name: "KHOIRUNNISA RADHWA PRATISTA", Code: "INSPIRE2025KRP"},
	{ID: "kintan-ambar-wati", Name: "KINTAN AMBAR WATI", Code: "INSPIRE2025KAW"},
	{ID: "nadia-aurora-salsabila", Name: "NADIA AURORA SALSABILA", Code: "INSPIRE2025NAS"},
	{ID: "najwa-nafeeza-meidina-la-zahra", Name: "NAJWA NAFEEZA MEIDINA LA ZAHRA", Code: "INSPIRE2025NNMLZ"},
	{ID: "nayla-azahra-saputra", Name: "NAYLA AZAHRA SAPUTRA", Code: "INSPIRE2025NAS2"},
	{ID: "nayla-putri-ramadhani", Name: "NAYLA PUTRI RAMADHANI", Code: "INSPIRE2025NPR"},
	{ID: "naysa-ilmira-kusrachmasari", Name: "NAYSA ILMIRA KUSRACHMASARI", Code: "INSPIRE2025NIK"},
	{ID: "qaireena-agenta-kean", Name: "QAIREENA AGNETA KEAN", Code: "INSPIRE2025QAK"},
	{ID: "rainasari-jihan-sabela", Name: "RAINASARI JIHAN SABELA", Code: "INSPIRE2025RJS"},
	{ID: "rizkya-ayu-mahardika", Name: "RIZKYA AYU MAHARDIKA", Code: "INSPIRE2025RAM"},
	{ID: "shakila-elza-zamari-loong", Name: "SHAKILA ELZA ZAMARI LOONG", Code: "INSPIRE2025SEZL"},
	{ID: "vina-aretha-indriani", Name: "VINA ARETHA INDRIANI", Code: "INSPIRE2025VAI"},
}

// Normalize trims and upper-cases a typed access code
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve looks a student up by access code
func Resolve(code string) (models.StudentIdentity, bool) {
	normalized := Normalize(code)
	for _, s := range students {
		if s.Code == normalized {
			return s, true
		}
	}
	return models.StudentIdentity{}, false
}

// MustResolve is Resolve for callers that want a user-facing error on a miss
func MustResolve(code string) (models.StudentIdentity, error) {
	s, ok := Resolve(code)
	if !ok {
		return models.StudentIdentity{}, validation.ValidationError{Field: "code", Message: InvalidCodeMessage}
	}
	return s, nil
}

// ByID looks a student up by opaque id
func ByID(id string) (models.StudentIdentity, bool) {
	for _, s := range students {
		if s.ID == id {
			return s, true
		}
	}
	return models.StudentIdentity{}, false
}

// All returns a copy of the class list
func All() []models.StudentIdentity {
	return append([]models.StudentIdentity(nil), students...)
}
