package insights

import (
	"fmt"
	"strings"

	"github.com/Criterio-inc/mognadsmataren/internal/assessment"
)

// Fallback builds the five-part bundle deterministically from fixed template
// text, keyed by the single strongest and single weakest dimension plus the
// resolved maturity tier. Given the same score set and locale the output is
// byte-identical across calls.
func Fallback(c Context) Bundle {
	strongest, weakest := c.Strongest(), c.Weakest()
	locale := c.Locale

	strengths := append(
		[]string{fmt.Sprintf(strengthLead[locale], strongest.Name, formatScore(strongest.Score))},
		dimensionStrengths[strongest.Dimension][locale]...,
	)
	improvements := append(
		[]string{fmt.Sprintf(improvementLead[locale], weakest.Name, formatScore(weakest.Score))},
		dimensionImprovements[weakest.Dimension][locale]...,
	)

	recommendations := []string{
		fmt.Sprintf(recommendWeakest[locale], weakest.Name),
		fmt.Sprintf(recommendStrongest[locale], strongest.Name),
		firstSentence(c.Level.TypicalNeeds[locale]),
	}

	return Bundle{
		Summary: fmt.Sprintf(summaryTemplate[locale],
			c.LevelName, formatScore(c.OverallScore), strongest.Name, weakest.Name) +
			" " + regulatorySentence[locale],
		Strengths:       strengths,
		Improvements:    improvements,
		Recommendations: recommendations,
		NextSteps:       append([]string(nil), nextSteps[locale]...),
	}
}

// firstSentence cuts the text at the first period.
func firstSentence(text string) string {
	if i := strings.Index(text, "."); i >= 0 {
		return text[:i+1]
	}
	return text
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

const (
	sv = assessment.LocaleSwedish
	en = assessment.LocaleEnglish
)

var summaryTemplate = map[assessment.Locale]string{
	sv: "Er organisation befinner sig på mognadsnivån %s med ett samlat resultat på %s av 5. Starkast är ni inom %s, medan %s har störst utvecklingspotential.",
	en: "Your organization is at the %s maturity level with an overall score of %s out of 5. You are strongest in %s, while %s holds the greatest potential for development.",
}

var regulatorySentence = map[assessment.Locale]string{
	sv: "EU:s AI-förordning ställer ökande krav på styrning och transparens, vilket gör ett strukturerat mognadsarbete till en regulatorisk nödvändighet.",
	en: "The EU AI Act places growing demands on governance and transparency, making structured maturity work a regulatory necessity.",
}

var strengthLead = map[assessment.Locale]string{
	sv: "%s är ert starkaste område med %s av 5.",
	en: "%s is your strongest area at %s out of 5.",
}

var improvementLead = map[assessment.Locale]string{
	sv: "%s är ert svagaste område med %s av 5.",
	en: "%s is your weakest area at %s out of 5.",
}

var recommendWeakest = map[assessment.Locale]string{
	sv: "Prioritera riktade insatser inom %s under det kommande kvartalet.",
	en: "Prioritize targeted efforts within %s over the coming quarter.",
}

var recommendStrongest = map[assessment.Locale]string{
	sv: "Använd er styrka inom %s som hävstång i förändringsarbetet.",
	en: "Use your strength in %s as leverage in the change effort.",
}

var nextSteps = map[assessment.Locale][]string{
	sv: {
		"Gå igenom rapporten tillsammans med ledningsgruppen.",
		"Välj ut två till tre prioriterade förbättringsområden och utse ansvariga.",
		"Boka en uppföljande mätning inom sex till tolv månader.",
	},
	en: {
		"Review the report together with the management team.",
		"Select two or three priority improvement areas and assign owners.",
		"Schedule a follow-up assessment within six to twelve months.",
	},
}

// Two pre-written bullets per dimension and locale, used for the single
// top-ranked dimension.
var dimensionStrengths = map[assessment.Dimension]map[assessment.Locale][]string{
	assessment.DimStrategiLedarskap: {
		sv: {
			"Ledningens engagemang ger AI-arbetet legitimitet och riktning.",
			"En förankrad strategi gör det lättare att prioritera rätt initiativ.",
		},
		en: {
			"Leadership engagement gives the AI work legitimacy and direction.",
			"An anchored strategy makes it easier to prioritize the right initiatives.",
		},
	},
	assessment.DimDataInformation: {
		sv: {
			"En solid datagrund gör era AI-initiativ både snabbare och säkrare.",
			"Tydligt dataägarskap minskar friktionen när nya användningsfall ska byggas.",
		},
		en: {
			"A solid data foundation makes your AI initiatives both faster and safer.",
			"Clear data ownership reduces friction when new use cases are built.",
		},
	},
	assessment.DimTeknikInfrastruktur: {
		sv: {
			"En modern teknisk plattform gör att nya AI-lösningar kan driftsättas snabbt.",
			"Etablerade testmiljöer sänker tröskeln för att pröva ny teknik.",
		},
		en: {
			"A modern technical platform lets new AI solutions be deployed quickly.",
			"Established test environments lower the bar for trying new technology.",
		},
	},
	assessment.DimKompetensKultur: {
		sv: {
			"En nyfiken kultur gör att AI-verktyg tas upp naturligt i vardagen.",
			"Bred grundkompetens minskar beroendet av enskilda specialister.",
		},
		en: {
			"A curious culture means AI tools are adopted naturally in daily work.",
			"Broad baseline competence reduces dependence on individual specialists.",
		},
	},
	assessment.DimProcesserAnvandning: {
		sv: {
			"AI är redan en del av era kärnprocesser, inte bara ett sidospår.",
			"Ett strukturerat urval av användningsfall gör att insatserna hamnar rätt.",
		},
		en: {
			"AI is already part of your core processes, not just a side track.",
			"A structured selection of use cases puts the effort where it matters.",
		},
	},
	assessment.DimStyrningAnsvar: {
		sv: {
			"Tydlig styrning gör att AI kan införas utan att riskerna växer okontrollerat.",
			"Ert proaktiva regelarbete ger försprång när kraven skärps.",
		},
		en: {
			"Clear governance lets AI be introduced without risks growing unchecked.",
			"Your proactive regulatory work gives a head start as requirements tighten.",
		},
	},
	assessment.DimKundVarde: {
		sv: {
			"AI skapar redan mätbart värde i era kundrelationer.",
			"Att initiativen utgår från verkliga behov gör nyttan lätt att påvisa.",
		},
		en: {
			"AI already creates measurable value in your customer relationships.",
			"Grounding initiatives in real needs makes the benefit easy to demonstrate.",
		},
	},
	assessment.DimInnovationUtveckling: {
		sv: {
			"Ett systematiskt experimenterande håller organisationen i framkant.",
			"Lärdomar sprids i organisationen i stället för att stanna hos enskilda team.",
		},
		en: {
			"Systematic experimentation keeps the organization at the forefront.",
			"Lessons spread across the organization instead of staying with single teams.",
		},
	},
}

// Two pre-written bullets per dimension and locale, used for the single
// bottom-ranked dimension.
var dimensionImprovements = map[assessment.Dimension]map[assessment.Locale][]string{
	assessment.DimStrategiLedarskap: {
		sv: {
			"Utan en tydlig strategi riskerar AI-initiativ att bli spridda punktinsatser.",
			"Sätt mätbara mål för AI-arbetet och följ upp dem i ledningsgruppen.",
		},
		en: {
			"Without a clear strategy, AI initiatives risk becoming scattered one-offs.",
			"Set measurable goals for the AI work and follow them up in the management team.",
		},
	},
	assessment.DimDataInformation: {
		sv: {
			"Brister i datakvalitet och tillgänglighet bromsar alla övriga AI-satsningar.",
			"Inför tydligt dataägarskap och grundläggande rutiner för datahantering.",
		},
		en: {
			"Gaps in data quality and accessibility slow down every other AI effort.",
			"Introduce clear data ownership and basic data management routines.",
		},
	},
	assessment.DimTeknikInfrastruktur: {
		sv: {
			"En föråldrad teknisk miljö gör varje AI-projekt dyrare än det behöver vara.",
			"Etablera en säker miljö där AI-lösningar kan testas innan driftsättning.",
		},
		en: {
			"An outdated technical environment makes every AI project more expensive than it needs to be.",
			"Establish a safe environment where AI solutions can be tested before deployment.",
		},
	},
	assessment.DimKompetensKultur: {
		sv: {
			"Låg AI-kompetens gör organisationen beroende av externa leverantörer.",
			"Börja med en bred grundutbildning och identifiera interna ambassadörer.",
		},
		en: {
			"Low AI competence makes the organization dependent on external vendors.",
			"Start with broad foundational training and identify internal ambassadors.",
		},
	},
	assessment.DimProcesserAnvandning: {
		sv: {
			"Så länge AI stannar i pilotfasen uteblir den verkliga effekten.",
			"Välj ett avgränsat kärnflöde och inför AI där med tydlig förändringsledning.",
		},
		en: {
			"As long as AI stays in the pilot phase, the real effect never materializes.",
			"Pick one well-bounded core flow and introduce AI there with clear change management.",
		},
	},
	assessment.DimStyrningAnsvar: {
		sv: {
			"Avsaknad av riktlinjer skapar både juridisk och affärsmässig risk.",
			"Ta fram riktlinjer för ansvarsfull AI och riskbedöm lösningar före införande.",
		},
		en: {
			"The absence of guidelines creates both legal and business risk.",
			"Produce responsible-AI guidelines and risk-assess solutions before rollout.",
		},
	},
	assessment.DimKundVarde: {
		sv: {
			"AI-satsningar utan koppling till kundvärde blir svåra att motivera över tid.",
			"Koppla varje AI-initiativ till ett konkret kund- eller affärsbehov och mät effekten.",
		},
		en: {
			"AI investments without a link to customer value become hard to justify over time.",
			"Tie every AI initiative to a concrete customer or business need and measure the effect.",
		},
	},
	assessment.DimInnovationUtveckling: {
		sv: {
			"Utan avsatt tid för experiment halkar organisationen efter i AI-utvecklingen.",
			"Avsätt regelbunden tid för omvärldsbevakning och småskaliga experiment.",
		},
		en: {
			"Without dedicated time for experiments, the organization falls behind in AI.",
			"Set aside regular time for monitoring developments and small-scale experiments.",
		},
	},
}
