// Copyright (c) 2026 AtharHuda. All rights reserved.

/*
Package juz provides the static catalog of the 30 Quran divisions.

Each juz has a traditional name (the opening words of its first ayah) and an
ordered list of the surahs it spans. The tables are fixed at compile time
and never mutated; they exist purely for display in the khatma board and
the juz reader.
*/
package juz

import "strconv"

// Count is the fixed number of ajza' in the Quran.
const Count = 30

// names holds the traditional juz names, indexed by juz number minus one.
var names = [Count]string{
	"الم", "سيقول", "تلك الرسل", "لن تنالوا", "والمحصنات",
	"لا يحب الله", "وإذا سمعوا", "ولو أننا", "قال الملأ", "واعلموا",
	"يعتذرون", "وما من دابة", "وما أبرئ", "ربما", "سبحان الذي",
	"قال ألم", "اقترب", "قد أفلح", "وقال الذين", "أمن خلق",
	"اتلُ ما أوحي", "ومن يقنت", "وما لي", "فمن أظلم", "إليه يُرد",
	"حم", "قال فما خطبكم", "قد سمع الله", "تبارك", "عمّ",
}

// surahs maps each juz number to the surahs it spans, in reading order.
var surahs = map[int][]string{
	1:  {"الفاتحة", "البقرة"},
	2:  {"البقرة"},
	3:  {"البقرة", "آل عمران"},
	4:  {"آل عمران", "النساء"},
	5:  {"النساء"},
	6:  {"النساء", "المائدة"},
	7:  {"المائدة", "الأنعام"},
	8:  {"الأنعام", "الأعراف"},
	9:  {"الأعراف", "الأنفال"},
	10: {"الأنفال", "التوبة"},
	11: {"التوبة", "يونس", "هود"},
	12: {"يوسف", "الرعد", "إبراهيم"},
	13: {"الحجر", "النحل"},
	14: {"النحل", "الإسراء"},
	15: {"الإسراء", "الكهف", "مريم"},
	16: {"الأنبياء", "الحج"},
	17: {"المؤمنون", "النور", "الفرقان"},
	18: {"الفرقان", "الشعراء", "النمل"},
	19: {"النمل", "القصص"},
	20: {"القصص", "العنكبوت", "الروم"},
	21: {"لقمان", "السجدة", "الأحزاب"},
	22: {"الأحزاب", "سبأ", "فاطر"},
	23: {"يس", "الصافات", "ص", "الزمر"},
	24: {"الزمر", "غافر", "فصلت"},
	25: {"فصلت", "الشورى", "الزخرف", "الدخان", "الجاثية"},
	26: {"الأحقاف", "محمد", "الفتح", "الحجرات", "ق", "الذاريات"},
	27: {"الطور", "النجم", "القمر", "الرحمن", "الواقعة", "الحديد"},
	28: {"المجادلة", "الحشر", "الممتحنة", "الصف", "الجمعة", "المنافقون", "التغابن", "الطلاق", "التحريم"},
	29: {"الملك", "القلم", "الحاقة", "المعارج", "نوح", "الجن", "المزمل", "المدثر", "القيامة", "الإنسان", "المرسلات"},
	30: {
		"النبأ", "النازعات", "عبس", "التكوير", "الانفطار", "المطففين",
		"الانشقاق", "البروج", "الطارق", "الأعلى", "الغاشية", "الفجر",
		"البلد", "الشمس", "الليل", "الضحى", "الشرح", "التين",
		"العلق", "القدر", "البينة", "الزلزلة", "العاديات", "القارعة",
		"التكاثر", "العصر", "الهمزة", "الفيل", "قريش", "الماعون",
		"الكوثر", "الكافرون", "النصر", "المسد", "الإخلاص", "الفلق", "الناس",
	},
}

// Name returns the traditional name of the given juz.
//
// Fail-soft: out-of-catalog numbers echo the numeral back ("31") rather
// than erroring, so a stale UI reference renders something sensible.
func Name(number int) string {
	if number < 1 || number > Count {
		return strconv.Itoa(number)
	}
	return names[number-1]
}

// Surahs returns the surahs spanned by the given juz, in reading order.
//
// Fail-soft: out-of-catalog numbers return an empty list.
func Surahs(number int) []string {
	list, ok := surahs[number]
	if !ok {
		return []string{}
	}

	// Copy so callers cannot mutate the catalog.
	clone := make([]string, len(list))
	copy(clone, list)
	return clone
}

// Valid reports whether number identifies one of the 30 ajza'.
func Valid(number int) bool {
	return number >= 1 && number <= Count
}
