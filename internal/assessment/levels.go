package assessment

// MaturityLevel is one of the five ordered tiers describing the overall
// assessment outcome. Min/Max are the inclusive score bounds; together the
// five ranges cover [1.0, 5.0].
type MaturityLevel struct {
	Level        int
	Min          float64
	Max          float64
	Name         map[Locale]string
	Description  map[Locale]string
	TypicalNeeds map[Locale]string
}

var MaturityLevels = []MaturityLevel{
	{
		Level: 1, Min: 1.0, Max: 1.8,
		Name: map[Locale]string{LocaleSwedish: "Nybörjare", LocaleEnglish: "Beginner"},
		Description: map[Locale]string{
			LocaleSwedish: "Organisationen har ännu inte påbörjat något strukturerat AI-arbete. Enstaka medarbetare experimenterar på egen hand, men det saknas strategi, styrning och en gemensam kunskapsbas.",
			LocaleEnglish: "The organization has not yet started any structured AI work. Individual employees experiment on their own, but strategy, governance and a shared knowledge base are missing.",
		},
		TypicalNeeds: map[Locale]string{
			LocaleSwedish: "Genomför en grundläggande AI-utbildning för ledning och nyckelpersoner. Ta därefter fram en enkel nulägesanalys och en första strategisk riktning för AI-arbetet.",
			LocaleEnglish: "Run a foundational AI training for leadership and key people. Then produce a simple baseline analysis and a first strategic direction for the AI work.",
		},
	},
	{
		Level: 2, Min: 1.9, Max: 2.6,
		Name: map[Locale]string{LocaleSwedish: "Utforskare", LocaleEnglish: "Explorer"},
		Description: map[Locale]string{
			LocaleSwedish: "Organisationen har börjat utforska AI genom enstaka piloter och verktyg. Initiativen är dock spridda och drivs av eldsjälar snarare än av en gemensam plan.",
			LocaleEnglish: "The organization has started exploring AI through scattered pilots and tools. Initiatives are driven by enthusiasts rather than by a shared plan.",
		},
		TypicalNeeds: map[Locale]string{
			LocaleSwedish: "Samla pågående initiativ under en gemensam AI-plan med tydliga prioriteringar. Etablera grundläggande riktlinjer för dataanvändning och ansvarsfull AI.",
			LocaleEnglish: "Consolidate ongoing initiatives under a shared AI plan with clear priorities. Establish basic guidelines for data use and responsible AI.",
		},
	},
	{
		Level: 3, Min: 2.7, Max: 3.4,
		Name: map[Locale]string{LocaleSwedish: "Utövare", LocaleEnglish: "Practitioner"},
		Description: map[Locale]string{
			LocaleSwedish: "AI används i delar av verksamheten och det finns en uttalad ambition från ledningen. Arbetet är delvis strukturerat men styrning, kompetens och datakvalitet varierar mellan områden.",
			LocaleEnglish: "AI is used in parts of the business and leadership has a stated ambition. The work is partly structured, but governance, competence and data quality vary between areas.",
		},
		TypicalNeeds: map[Locale]string{
			LocaleSwedish: "Stärk styrningen med tydliga roller, riskbedömningar och uppföljning av effekt. Bredda kompetensutvecklingen så att fler funktioner kan ta AI till vardagen.",
			LocaleEnglish: "Strengthen governance with clear roles, risk assessments and impact follow-up. Broaden competence development so more functions can bring AI into daily work.",
		},
	},
	{
		Level: 4, Min: 3.5, Max: 4.2,
		Name: map[Locale]string{LocaleSwedish: "Avancerad", LocaleEnglish: "Advanced"},
		Description: map[Locale]string{
			LocaleSwedish: "AI är en integrerad del av flera kärnprocesser och arbetet styrs av mätbara mål. Organisationen har etablerade rutiner för data, risk och förvaltning av AI-lösningar.",
			LocaleEnglish: "AI is an integrated part of several core processes and the work is steered by measurable goals. The organization has established routines for data, risk and lifecycle management of AI solutions.",
		},
		TypicalNeeds: map[Locale]string{
			LocaleSwedish: "Skala upp de lösningar som bevisat sitt värde och industrialisera förvaltningen av dem. Utveckla partnerskap och rekrytering för att säkra spetskompetens över tid.",
			LocaleEnglish: "Scale the solutions that have proven their value and industrialize how they are maintained. Develop partnerships and recruitment to secure deep expertise over time.",
		},
	},
	{
		Level: 5, Min: 4.3, Max: 5.0,
		Name: map[Locale]string{LocaleSwedish: "Ledande", LocaleEnglish: "Leading"},
		Description: map[Locale]string{
			LocaleSwedish: "Organisationen är ledande inom AI i sin bransch och använder AI som en strategisk konkurrensfördel. Innovation, styrning och kompetens samspelar i en lärande organisation.",
			LocaleEnglish: "The organization is an AI leader in its industry and uses AI as a strategic competitive advantage. Innovation, governance and competence reinforce each other in a learning organization.",
		},
		TypicalNeeds: map[Locale]string{
			LocaleSwedish: "Behåll försprånget genom att systematiskt pröva ny teknik och dela lärdomar externt. Fortsätt investera i ansvarsfull AI för att möta kommande regulatoriska krav.",
			LocaleEnglish: "Keep the lead by systematically trying new technology and sharing lessons externally. Keep investing in responsible AI to meet upcoming regulatory requirements.",
		},
	},
}

// LevelByNumber returns the tier definition for level 1..5; the first tier is
// returned for anything out of range.
func LevelByNumber(level int) MaturityLevel {
	for _, l := range MaturityLevels {
		if l.Level == level {
			return l
		}
	}
	return MaturityLevels[0]
}

// ResolveMaturityLevel maps an overall score to a maturity tier. Scores
// between two tier bounds (such as 1.85, which the declared inclusive ranges
// leave uncovered) resolve upward to the nearest tier by its upper bound.
// Anything that matches no tier falls back to tier 1.
func ResolveMaturityLevel(score float64) int {
	for _, l := range MaturityLevels {
		if score <= l.Max {
			return l.Level
		}
	}
	return MaturityLevels[0].Level
}
