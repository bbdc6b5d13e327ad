// Copyright (c) 2026 AtharHuda. All rights reserved.

/*
Package adhkar implements the daily dhikr counter.

The catalog is a fixed three-level hierarchy (group, category, dhikr) with
per-dhikr target counts and hadith references. The [Service] tracks how many
times each dhikr was recited today; counts reset at the first operation of a
new calendar day.
*/
package adhkar

// Dhikr is one remembrance with its prescribed repetition count.
type Dhikr struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Count     int    `json:"count"`
	Reference string `json:"reference,omitempty"`
}

// Category is a situational set of adhkar (morning, after prayer, ...).
type Category struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Icon   string  `json:"icon"`
	Color  string  `json:"color"`
	Adhkar []Dhikr `json:"adhkar"`
}

// Group is the top navigation level, bundling related categories.
type Group struct {
	Title      string     `json:"groupTitle"`
	Icon       string     `json:"groupIcon"`
	Color      string     `json:"groupColor"`
	Categories []Category `json:"categories"`
}

// catalog holds the built-in adhkar content. Texts and counts follow the
// common printed collections; the reference names the narrating source.
var catalog = []Group{
	{
		Title: "أذكار الصباح والمساء", Icon: "🌤️", Color: "#f59e0b",
		Categories: []Category{
			{
				ID: "morning", Title: "أذكار الصباح", Icon: "🌅", Color: "#f59e0b",
				Adhkar: []Dhikr{
					{ID: 1, Text: "أَصْبَحْنَا وَأَصْبَحَ الْمُلْكُ لِلَّهِ، وَالْحَمْدُ لِلَّهِ، لَا إِلَهَ إِلَّا اللَّهُ وَحْدَهُ لَا شَرِيكَ لَهُ، لَهُ الْمُلْكُ وَلَهُ الْحَمْدُ وَهُوَ عَلَى كُلِّ شَيْءٍ قَدِيرٌ", Count: 1, Reference: "مسلم"},
					{ID: 2, Text: "اللَّهُمَّ بِكَ أَصْبَحْنَا وَبِكَ أَمْسَيْنَا وَبِكَ نَحْيَا وَبِكَ نَمُوتُ وَإِلَيْكَ النُّشُورُ", Count: 1, Reference: "الترمذي"},
					{ID: 3, Text: "اللَّهُمَّ مَا أَصْبَحَ بِي مِنْ نِعْمَةٍ أَوْ بِأَحَدٍ مِنْ خَلْقِكَ فَمِنْكَ وَحْدَكَ لَا شَرِيكَ لَكَ فَلَكَ الْحَمْدُ وَلَكَ الشُّكْرُ", Count: 1, Reference: "أبو داود"},
					{ID: 4, Text: "اللَّهُمَّ عَافِنِي فِي بَدَنِي، اللَّهُمَّ عَافِنِي فِي سَمْعِي، اللَّهُمَّ عَافِنِي فِي بَصَرِي", Count: 3, Reference: "أبو داود"},
					{ID: 5, Text: "أَعُوذُ بِكَلِمَاتِ اللَّهِ التَّامَّاتِ مِنْ شَرِّ مَا خَلَقَ", Count: 3, Reference: "مسلم"},
					{ID: 6, Text: "بِسْمِ اللَّهِ الَّذِي لَا يَضُرُّ مَعَ اسْمِهِ شَيْءٌ فِي الأَرْضِ وَلَا فِي السَّمَاءِ وَهُوَ السَّمِيعُ الْعَلِيمُ", Count: 3, Reference: "الترمذي"},
					{ID: 7, Text: "حَسْبِيَ اللَّهُ لاَ إِلَهَ إِلاَّ هُوَ عَلَيْهِ تَوَكَّلْتُ وَهُوَ رَبُّ الْعَرْشِ الْعَظِيمِ", Count: 7, Reference: "أبو داود"},
					{ID: 8, Text: "سُبْحَانَ اللَّهِ وَبِحَمْدِهِ", Count: 100, Reference: "مسلم"},
					{ID: 9, Text: "لَا إِلَهَ إِلَّا اللَّهُ وَحْدَهُ لَا شَرِيكَ لَهُ، لَهُ الْمُلْكُ وَلَهُ الْحَمْدُ وَهُوَ عَلَى كُلِّ شَيْءٍ قَدِيرٌ", Count: 10, Reference: "متفق عليه"},
					{ID: 10, Text: "أَسْتَغْفِرُ اللَّهَ وَأَتُوبُ إِلَيْهِ", Count: 100, Reference: "البخاري"},
				},
			},
			{
				ID: "evening", Title: "أذكار المساء", Icon: "🌙", Color: "#6366f1",
				Adhkar: []Dhikr{
					{ID: 11, Text: "أَمْسَيْنَا وَأَمْسَى الْمُلْكُ لِلَّهِ، وَالْحَمْدُ لِلَّهِ، لَا إِلَهَ إِلَّا اللَّهُ وَحْدَهُ لَا شَرِيكَ لَهُ", Count: 1, Reference: "مسلم"},
					{ID: 12, Text: "اللَّهُمَّ بِكَ أَمْسَيْنَا وَبِكَ أَصْبَحْنَا وَبِكَ نَحْيَا وَبِكَ نَمُوتُ وَإِلَيْكَ الْمَصِيرُ", Count: 1, Reference: "الترمذي"},
					{ID: 13, Text: "اللَّهُمَّ مَا أَمْسَى بِي مِنْ نِعْمَةٍ أَوْ بِأَحَدٍ مِنْ خَلْقِكَ فَمِنْكَ وَحْدَكَ لَا شَرِيكَ لَكَ", Count: 1, Reference: "أبو داود"},
					{ID: 14, Text: "أَعُوذُ بِكَلِمَاتِ اللَّهِ التَّامَّاتِ مِنْ شَرِّ مَا خَلَقَ", Count: 3, Reference: "مسلم"},
					{ID: 15, Text: "بِسْمِ اللَّهِ الَّذِي لَا يَضُرُّ مَعَ اسْمِهِ شَيْءٌ فِي الأَرْضِ وَلَا فِي السَّمَاءِ وَهُوَ السَّمِيعُ الْعَلِيمُ", Count: 3, Reference: "الترمذي"},
					{ID: 16, Text: "سُبْحَانَ اللَّهِ وَبِحَمْدِهِ", Count: 100, Reference: "مسلم"},
					{ID: 17, Text: "أَسْتَغْفِرُ اللَّهَ وَأَتُوبُ إِلَيْهِ", Count: 100, Reference: "البخاري"},
				},
			},
		},
	},
	{
		Title: "أذكار النوم والاستيقاظ", Icon: "🌙", Color: "#8b5cf6",
		Categories: []Category{
			{
				ID: "wakeup", Title: "أذكار الاستيقاظ من النوم", Icon: "☀️", Color: "#f97316",
				Adhkar: []Dhikr{
					{ID: 20, Text: "الْحَمْدُ لِلَّهِ الَّذِي أَحْيَانَا بَعْدَ مَا أَمَاتَنَا وَإِلَيْهِ النُّشُورُ", Count: 1, Reference: "البخاري"},
					{ID: 21, Text: "لَا إِلَهَ إِلَّا اللَّهُ وَحْدَهُ لَا شَرِيكَ لَهُ، لَهُ الْمُلْكُ وَلَهُ الْحَمْدُ وَهُوَ عَلَى كُلِّ شَيْءٍ قَدِيرٌ، سُبْحَانَ اللَّهِ وَالْحَمْدُ لِلَّهِ وَلَا إِلَهَ إِلَّا اللَّهُ وَاللَّهُ أَكْبَرُ", Count: 1, Reference: "البخاري"},
				},
			},
			{
				ID: "sleep", Title: "أذكار النوم", Icon: "🌜", Color: "#8b5cf6",
				Adhkar: []Dhikr{
					{ID: 25, Text: "بِاسْمِكَ اللَّهُمَّ أَمُوتُ وَأَحْيَا", Count: 1, Reference: "البخاري"},
					{ID: 26, Text: "اللَّهُمَّ قِنِي عَذَابَكَ يَوْمَ تَبْعَثُ عِبَادَكَ", Count: 1, Reference: "أبو داود"},
					{ID: 27, Text: "سُبْحَانَ اللَّهِ", Count: 33, Reference: "متفق عليه"},
					{ID: 28, Text: "الْحَمْدُ لِلَّهِ", Count: 33, Reference: "متفق عليه"},
					{ID: 29, Text: "اللَّهُ أَكْبَرُ", Count: 34, Reference: "متفق عليه"},
					{ID: 30, Text: "اللَّهُمَّ أَسْلَمْتُ نَفْسِي إِلَيْكَ، وَوَجَّهْتُ وَجْهِي إِلَيْكَ، وَفَوَّضْتُ أَمْرِي إِلَيْكَ", Count: 1, Reference: "متفق عليه"},
				},
			},
		},
	},
	{
		Title: "أذكار المسجد والصلاة", Icon: "🕌", Color: "#10b981",
		Categories: []Category{
			{
				ID: "masjid-enter", Title: "أذكار دخول المسجد", Icon: "🕌", Color: "#10b981",
				Adhkar: []Dhikr{
					{ID: 40, Text: "بِسْمِ اللَّهِ وَالصَّلَاةُ وَالسَّلَامُ عَلَى رَسُولِ اللَّهِ، اللَّهُمَّ افْتَحْ لِي أَبْوَابَ رَحْمَتِكَ", Count: 1, Reference: "مسلم"},
				},
			},
			{
				ID: "masjid-exit", Title: "أذكار الخروج من المسجد", Icon: "🏠", Color: "#059669",
				Adhkar: []Dhikr{
					{ID: 41, Text: "بِسْمِ اللَّهِ وَالصَّلَاةُ وَالسَّلَامُ عَلَى رَسُولِ اللَّهِ، اللَّهُمَّ إِنِّي أَسْأَلُكَ مِنْ فَضْلِكَ", Count: 1, Reference: "مسلم"},
				},
			},
			{
				ID: "after-prayer", Title: "أذكار بعد الصلاة", Icon: "📿", Color: "#a855f7",
				Adhkar: []Dhikr{
					{ID: 45, Text: "أَسْتَغْفِرُ اللَّهَ", Count: 3, Reference: "مسلم"},
					{ID: 46, Text: "اللَّهُمَّ أَنْتَ السَّلَامُ وَمِنْكَ السَّلَامُ تَبَارَكْتَ يَا ذَا الْجَلَالِ وَالإِكْرَامِ", Count: 1, Reference: "مسلم"},
					{ID: 47, Text: "سُبْحَانَ اللَّهِ", Count: 33, Reference: "مسلم"},
					{ID: 48, Text: "الْحَمْدُ لِلَّهِ", Count: 33, Reference: "مسلم"},
					{ID: 49, Text: "اللَّهُ أَكْبَرُ", Count: 33, Reference: "مسلم"},
					{ID: 50, Text: "لَا إِلَهَ إِلَّا اللَّهُ وَحْدَهُ لَا شَرِيكَ لَهُ، لَهُ الْمُلْكُ وَلَهُ الْحَمْدُ وَهُوَ عَلَى كُلِّ شَيْءٍ قَدِيرٌ", Count: 1, Reference: "مسلم"},
					{ID: 51, Text: "آيَةُ الْكُرْسِيِّ: اللَّهُ لَا إِلَهَ إِلَّا هُوَ الْحَيُّ الْقَيُّومُ...", Count: 1, Reference: "النسائي"},
				},
			},
			{
				ID: "tasbeeh", Title: "أذكار التسبيح والتحميد والتكبير", Icon: "🔢", Color: "#ec4899",
				Adhkar: []Dhikr{
					{ID: 52, Text: "سُبْحَانَ اللَّهِ", Count: 33, Reference: "مسلم"},
					{ID: 53, Text: "الْحَمْدُ لِلَّهِ", Count: 33, Reference: "مسلم"},
					{ID: 54, Text: "اللَّهُ أَكْبَرُ", Count: 34, Reference: "مسلم"},
					{ID: 55, Text: "سُبْحَانَ اللَّهِ وَبِحَمْدِهِ سُبْحَانَ اللَّهِ الْعَظِيمِ", Count: 100, Reference: "البخاري ومسلم"},
					{ID: 56, Text: "لَا حَوْلَ وَلَا قُوَّةَ إِلَّا بِاللَّهِ", Count: 100, Reference: "متفق عليه"},
				},
			},
		},
	},
	{
		Title: "أذكار القرآن", Icon: "📖", Color: "#0d9488",
		Categories: []Category{
			{
				ID: "quran-read", Title: "أذكار قراءة القرآن", Icon: "📖", Color: "#0d9488",
				Adhkar: []Dhikr{
					{ID: 60, Text: "أَعُوذُ بِاللَّهِ مِنَ الشَّيْطَانِ الرَّجِيمِ", Count: 1, Reference: "النحل: 98"},
					{ID: 61, Text: "بِسْمِ اللَّهِ الرَّحْمَنِ الرَّحِيمِ", Count: 1},
				},
			},
			{
				ID: "quran-khatm", Title: "أذكار ختم القرآن", Icon: "🏅", Color: "#eab308",
				Adhkar: []Dhikr{
					{ID: 62, Text: "صَدَقَ اللَّهُ الْعَظِيمُ، اللَّهُمَّ انْفَعْنِي بِمَا عَلَّمْتَنِي وَعَلِّمْنِي مَا يَنْفَعُنِي وَزِدْنِي عِلْمًا", Count: 1},
				},
			},
		},
	},
	{
		Title: "أذكار الحالات النفسية", Icon: "💚", Color: "#ef4444",
		Categories: []Category{
			{
				ID: "distress", Title: "أذكار الكرب والهمّ", Icon: "😞", Color: "#dc2626",
				Adhkar: []Dhikr{
					{ID: 82, Text: "لَا إِلَهَ إِلَّا اللَّهُ الْعَظِيمُ الْحَلِيمُ، لَا إِلَهَ إِلَّا اللَّهُ رَبُّ الْعَرْشِ الْعَظِيمِ، لَا إِلَهَ إِلَّا اللَّهُ رَبُّ السَّمَوَاتِ وَرَبُّ الأَرْضِ وَرَبُّ الْعَرْشِ الْكَرِيمِ", Count: 1, Reference: "متفق عليه"},
					{ID: 83, Text: "اللَّهُمَّ إِنِّي أَعُوذُ بِكَ مِنَ الْهَمِّ وَالْحَزَنِ وَالْعَجْزِ وَالْكَسَلِ وَالْبُخْلِ وَالْجُبْنِ وَضَلَعِ الدَّيْنِ وَغَلَبَةِ الرِّجَالِ", Count: 1, Reference: "البخاري"},
					{ID: 84, Text: "اللَّهُمَّ رَحْمَتَكَ أَرْجُو فَلَا تَكِلْنِي إِلَى نَفْسِي طَرْفَةَ عَيْنٍ وَأَصْلِحْ لِي شَأْنِي كُلَّهُ لَا إِلَهَ إِلَّا أَنْتَ", Count: 1, Reference: "أبو داود"},
				},
			},
			{
				ID: "sadness", Title: "أذكار الحزن والضيق", Icon: "💔", Color: "#be185d",
				Adhkar: []Dhikr{
					{ID: 85, Text: "إِنَّا لِلَّهِ وَإِنَّا إِلَيْهِ رَاجِعُونَ، اللَّهُمَّ أْجُرْنِي فِي مُصِيبَتِي وَأَخْلِفْ لِي خَيْرًا مِنْهَا", Count: 1, Reference: "مسلم"},
					{ID: 86, Text: "حَسْبُنَا اللَّهُ وَنِعْمَ الْوَكِيلُ", Count: 7, Reference: "البخاري"},
				},
			},
		},
	},
	{
		Title: "أذكار المناسبات", Icon: "🎉", Color: "#10b981",
		Categories: []Category{
			{
				ID: "last10", Title: "أذكار العشر الأواخر (رمضان)", Icon: "🌟", Color: "#f59e0b",
				Adhkar: []Dhikr{
					{ID: 125, Text: "اللَّهُمَّ إِنَّكَ عَفُوٌّ تُحِبُّ الْعَفْوَ فَاعْفُ عَنِّي", Count: 100, Reference: "الترمذي"},
				},
			},
			{
				ID: "friday", Title: "أذكار يوم الجمعة", Icon: "🕌", Color: "#0ea5e9",
				Adhkar: []Dhikr{
					{ID: 127, Text: "اللَّهُمَّ صَلِّ وَسَلِّمْ عَلَى نَبِيِّنَا مُحَمَّدٍ", Count: 100, Reference: "أبو داود"},
				},
			},
		},
	},
}

// findDhikr resolves a (category, dhikr) pair in the catalog.
func findDhikr(categoryID string, dhikrID int) (Dhikr, bool) {
	for _, group := range catalog {
		for _, category := range group.Categories {
			if category.ID != categoryID {
				continue
			}
			for _, dhikr := range category.Adhkar {
				if dhikr.ID == dhikrID {
					return dhikr, true
				}
			}
		}
	}
	return Dhikr{}, false
}

// findCategory resolves a category in the catalog.
func findCategory(categoryID string) (Category, bool) {
	for _, group := range catalog {
		for _, category := range group.Categories {
			if category.ID == categoryID {
				return category, true
			}
		}
	}
	return Category{}, false
}
