package assessment

// Locale selects one of the two supported survey languages.
type Locale string

const (
	LocaleSwedish Locale = "sv"
	LocaleEnglish Locale = "en"
)

// ParseLocale maps a raw locale string to a supported Locale, defaulting to Swedish.
func ParseLocale(s string) Locale {
	if Locale(s) == LocaleEnglish {
		return LocaleEnglish
	}
	return LocaleSwedish
}

// Dimension identifies one of the 8 fixed thematic groupings of questions.
type Dimension string

const (
	DimStrategiLedarskap    Dimension = "strategiLedarskap"
	DimDataInformation      Dimension = "dataInformation"
	DimTeknikInfrastruktur  Dimension = "teknikInfrastruktur"
	DimKompetensKultur      Dimension = "kompetensKultur"
	DimProcesserAnvandning  Dimension = "processerAnvandning"
	DimStyrningAnsvar       Dimension = "styrningAnsvar"
	DimKundVarde            Dimension = "kundVarde"
	DimInnovationUtveckling Dimension = "innovationUtveckling"
)

// Dimensions lists all dimensions in catalog order. Each owns exactly
// QuestionsPerDimension consecutive question ids.
var Dimensions = []Dimension{
	DimStrategiLedarskap,
	DimDataInformation,
	DimTeknikInfrastruktur,
	DimKompetensKultur,
	DimProcesserAnvandning,
	DimStyrningAnsvar,
	DimKundVarde,
	DimInnovationUtveckling,
}

const (
	QuestionCount         = 32
	QuestionsPerDimension = 4
	MinAnswerValue        = 1
	MaxAnswerValue        = 5
)

var dimensionNames = map[Dimension]map[Locale]string{
	DimStrategiLedarskap:    {LocaleSwedish: "Strategi & Ledarskap", LocaleEnglish: "Strategy & Leadership"},
	DimDataInformation:      {LocaleSwedish: "Data & Informationshantering", LocaleEnglish: "Data & Information Management"},
	DimTeknikInfrastruktur:  {LocaleSwedish: "Teknik & Infrastruktur", LocaleEnglish: "Technology & Infrastructure"},
	DimKompetensKultur:      {LocaleSwedish: "Kompetens & Kultur", LocaleEnglish: "Competence & Culture"},
	DimProcesserAnvandning:  {LocaleSwedish: "Processer & Användning", LocaleEnglish: "Processes & Adoption"},
	DimStyrningAnsvar:       {LocaleSwedish: "Styrning & Ansvarsfull AI", LocaleEnglish: "Governance & Responsible AI"},
	DimKundVarde:            {LocaleSwedish: "Kundvärde & Affärsnytta", LocaleEnglish: "Customer Value & Business Impact"},
	DimInnovationUtveckling: {LocaleSwedish: "Innovation & Utveckling", LocaleEnglish: "Innovation & Development"},
}

// Name returns the localized display name of the dimension.
func (d Dimension) Name(locale Locale) string {
	return dimensionNames[d][locale]
}

// IsValid reports whether d is one of the 8 catalog dimensions.
func (d Dimension) IsValid() bool {
	_, ok := dimensionNames[d]
	return ok
}

// Question is one immutable survey statement rated on a 1-5 Likert scale.
type Question struct {
	ID        int               `json:"id"`
	Dimension Dimension         `json:"dimension"`
	Text      map[Locale]string `json:"-"`
}

// LocalizedQuestion is the wire form of a question for one locale.
type LocalizedQuestion struct {
	ID        int       `json:"id"`
	Dimension Dimension `json:"dimension"`
	Text      string    `json:"text"`
}

// Questions is the fixed catalog: ids 1..32, four per dimension, no gaps.
var Questions = []Question{
	{1, DimStrategiLedarskap, map[Locale]string{
		LocaleSwedish: "Vi har en tydlig och kommunicerad AI-strategi som är kopplad till våra affärsmål.",
		LocaleEnglish: "We have a clear, communicated AI strategy linked to our business goals.",
	}},
	{2, DimStrategiLedarskap, map[Locale]string{
		LocaleSwedish: "Ledningen prioriterar AI-frågor och avsätter resurser för AI-initiativ.",
		LocaleEnglish: "Leadership prioritizes AI and allocates resources for AI initiatives.",
	}},
	{3, DimStrategiLedarskap, map[Locale]string{
		LocaleSwedish: "AI-frågor finns återkommande på ledningsgruppens agenda.",
		LocaleEnglish: "AI topics appear regularly on the management team's agenda.",
	}},
	{4, DimStrategiLedarskap, map[Locale]string{
		LocaleSwedish: "Vi följer upp våra AI-satsningar mot mätbara mål.",
		LocaleEnglish: "We track our AI investments against measurable targets.",
	}},
	{5, DimDataInformation, map[Locale]string{
		LocaleSwedish: "Våra data är tillgängliga, dokumenterade och av tillräcklig kvalitet för AI-användning.",
		LocaleEnglish: "Our data is accessible, documented and of sufficient quality for AI use.",
	}},
	{6, DimDataInformation, map[Locale]string{
		LocaleSwedish: "Vi har tydligt dataägarskap och etablerade rutiner för datahantering.",
		LocaleEnglish: "We have clear data ownership and established data management routines.",
	}},
	{7, DimDataInformation, map[Locale]string{
		LocaleSwedish: "Vi kan kombinera data från olika system när det behövs.",
		LocaleEnglish: "We can combine data from different systems when needed.",
	}},
	{8, DimDataInformation, map[Locale]string{
		LocaleSwedish: "Personuppgifter hanteras i enlighet med GDPR även i AI-sammanhang.",
		LocaleEnglish: "Personal data is handled in line with the GDPR, including in AI contexts.",
	}},
	{9, DimTeknikInfrastruktur, map[Locale]string{
		LocaleSwedish: "Vår tekniska infrastruktur klarar att utveckla och driftsätta AI-lösningar.",
		LocaleEnglish: "Our technical infrastructure supports developing and deploying AI solutions.",
	}},
	{10, DimTeknikInfrastruktur, map[Locale]string{
		LocaleSwedish: "Vi har etablerade miljöer och verktyg för att testa AI-lösningar på ett säkert sätt.",
		LocaleEnglish: "We have established environments and tools for testing AI solutions safely.",
	}},
	{11, DimTeknikInfrastruktur, map[Locale]string{
		LocaleSwedish: "Våra system har integrationer och API:er som gör det enkelt att koppla på AI-tjänster.",
		LocaleEnglish: "Our systems expose integrations and APIs that make it easy to attach AI services.",
	}},
	{12, DimTeknikInfrastruktur, map[Locale]string{
		LocaleSwedish: "Vi har en process för att förvalta och övervaka AI-lösningar i drift.",
		LocaleEnglish: "We have a process for maintaining and monitoring AI solutions in production.",
	}},
	{13, DimKompetensKultur, map[Locale]string{
		LocaleSwedish: "Medarbetarna har grundläggande förståelse för vad AI kan och inte kan göra.",
		LocaleEnglish: "Employees have a basic understanding of what AI can and cannot do.",
	}},
	{14, DimKompetensKultur, map[Locale]string{
		LocaleSwedish: "Vi utbildar löpande medarbetare i AI-verktyg och nya arbetssätt.",
		LocaleEnglish: "We continuously train employees in AI tools and new ways of working.",
	}},
	{15, DimKompetensKultur, map[Locale]string{
		LocaleSwedish: "Det finns en nyfikenhet och vilja i organisationen att pröva AI i vardagen.",
		LocaleEnglish: "There is curiosity and willingness in the organization to try AI in everyday work.",
	}},
	{16, DimKompetensKultur, map[Locale]string{
		LocaleSwedish: "Vi har tillgång till specialistkompetens inom AI, internt eller via partner.",
		LocaleEnglish: "We have access to AI specialist expertise, in-house or through partners.",
	}},
	{17, DimProcesserAnvandning, map[Locale]string{
		LocaleSwedish: "AI används i dag i våra kärnprocesser, inte bara i enstaka experiment.",
		LocaleEnglish: "AI is used in our core processes today, not only in isolated experiments.",
	}},
	{18, DimProcesserAnvandning, map[Locale]string{
		LocaleSwedish: "Vi har ett strukturerat sätt att identifiera och prioritera AI-användningsfall.",
		LocaleEnglish: "We have a structured way of identifying and prioritizing AI use cases.",
	}},
	{19, DimProcesserAnvandning, map[Locale]string{
		LocaleSwedish: "Nya AI-lösningar införs med tydlig förändringsledning.",
		LocaleEnglish: "New AI solutions are introduced with clear change management.",
	}},
	{20, DimProcesserAnvandning, map[Locale]string{
		LocaleSwedish: "Vi utvärderar effekten av AI-lösningar efter införandet.",
		LocaleEnglish: "We evaluate the effect of AI solutions after rollout.",
	}},
	{21, DimStyrningAnsvar, map[Locale]string{
		LocaleSwedish: "Vi har riktlinjer för ansvarsfull användning av AI.",
		LocaleEnglish: "We have guidelines for responsible use of AI.",
	}},
	{22, DimStyrningAnsvar, map[Locale]string{
		LocaleSwedish: "Roller och ansvar för AI-beslut är tydligt definierade.",
		LocaleEnglish: "Roles and responsibilities for AI decisions are clearly defined.",
	}},
	{23, DimStyrningAnsvar, map[Locale]string{
		LocaleSwedish: "Vi riskbedömer AI-lösningar innan de tas i bruk.",
		LocaleEnglish: "We risk-assess AI solutions before putting them to use.",
	}},
	{24, DimStyrningAnsvar, map[Locale]string{
		LocaleSwedish: "Vi bevakar regulatoriska krav som EU:s AI-förordning och anpassar vår verksamhet efter dem.",
		LocaleEnglish: "We monitor regulatory requirements such as the EU AI Act and adapt our operations to them.",
	}},
	{25, DimKundVarde, map[Locale]string{
		LocaleSwedish: "AI bidrar i dag till konkret värde för våra kunder.",
		LocaleEnglish: "AI contributes concrete value to our customers today.",
	}},
	{26, DimKundVarde, map[Locale]string{
		LocaleSwedish: "Vi använder AI för att förbättra kundupplevelsen.",
		LocaleEnglish: "We use AI to improve the customer experience.",
	}},
	{27, DimKundVarde, map[Locale]string{
		LocaleSwedish: "Vi mäter affärsnyttan av våra AI-satsningar.",
		LocaleEnglish: "We measure the business value of our AI investments.",
	}},
	{28, DimKundVarde, map[Locale]string{
		LocaleSwedish: "Våra AI-initiativ utgår från verkliga kund- och verksamhetsbehov.",
		LocaleEnglish: "Our AI initiatives start from real customer and business needs.",
	}},
	{29, DimInnovationUtveckling, map[Locale]string{
		LocaleSwedish: "Vi avsätter tid och resurser för att experimentera med ny AI-teknik.",
		LocaleEnglish: "We set aside time and resources to experiment with new AI technology.",
	}},
	{30, DimInnovationUtveckling, map[Locale]string{
		LocaleSwedish: "Vi omvärldsbevakar AI-utvecklingen på ett systematiskt sätt.",
		LocaleEnglish: "We systematically monitor developments in AI.",
	}},
	{31, DimInnovationUtveckling, map[Locale]string{
		LocaleSwedish: "Lärdomar från AI-piloter tas tillvara och sprids i organisationen.",
		LocaleEnglish: "Lessons from AI pilots are captured and shared across the organization.",
	}},
	{32, DimInnovationUtveckling, map[Locale]string{
		LocaleSwedish: "Vi samarbetar med externa parter för att utveckla vår AI-förmåga.",
		LocaleEnglish: "We collaborate with external partners to develop our AI capability.",
	}},
}

var questionsByID = func() map[int]Question {
	m := make(map[int]Question, len(Questions))
	for _, q := range Questions {
		m[q.ID] = q
	}
	return m
}()

var questionsByDimension = func() map[Dimension][]int {
	m := make(map[Dimension][]int, len(Dimensions))
	for _, q := range Questions {
		m[q.Dimension] = append(m[q.Dimension], q.ID)
	}
	return m
}()

// QuestionByID returns the catalog question with the given id.
func QuestionByID(id int) (Question, bool) {
	q, ok := questionsByID[id]
	return q, ok
}

// QuestionIDs returns the four question ids owned by a dimension.
func QuestionIDs(d Dimension) []int {
	ids := questionsByDimension[d]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// LocalizedQuestions returns the full catalog rendered in one locale,
// in question-id order.
func LocalizedQuestions(locale Locale) []LocalizedQuestion {
	out := make([]LocalizedQuestion, 0, len(Questions))
	for _, q := range Questions {
		out = append(out, LocalizedQuestion{
			ID:        q.ID,
			Dimension: q.Dimension,
			Text:      q.Text[locale],
		})
	}
	return out
}
