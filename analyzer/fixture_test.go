package analyzer

import (
	"strings"
	"time"

	"github.com/seo-optimizer/contentgate/lexical"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

const guideKeyword = "roadmap"

const guideTitle = "Roadmap Planning Guide: How Product Teams Ship Better"

// guideSections is the hand-written part of the publishable article. It
// avoids AI clichés and passive constructions.
var guideSections = []string{
	`# Roadmap Planning Guide for Product Teams
A product roadmap is a shared plan that shows where a product goes next and why it matters to every customer. This introduction gives an overview of roadmap strategy, tools and workflow for teams in 2026.`,

	`## Roadmap Basics
First, name the **goal** of each release. Second, agree on an **owner** and a **date** for every feature. However, keep the plan short. For example, a team can track one metric per quarter and review the kpi with each stakeholder.`,

	`- Set a clear goal for the sprint
- Share the plan with every user group
- Check progress against the backlog each week`,

	`## Implementation Steps
Implementation starts with research and discovery. Therefore, collect feedback from each customer interview before you set a priority. Furthermore, write each requirement in plain words. Additionally, plan the mvp first and grow it with every iteration.`,

	`1. Draft the plan with the team
2. Review the draft with leadership
3. Publish the plan on the shared platform`,

	`## Best Practices and Tools
A good best practice is to pick one solution and stay with it. Moreover, light automation saves time and raises efficiency across the enterprise. As a result, teams spend more time with users. Finally, every challenge gets a clear answer.`,

	`Read the [planning checklist](/guides/checklist), the [team rituals](/guides/rituals) and the [metrics primer](/guides/metrics). Outside data comes from the [annual survey](https://example.com/survey) and the [industry report](https://example.org/report).`,

	`![roadmap board](/img/board.png)
![team workshop](/img/workshop.png)
![release timeline](/img/timeline.png)`,

	`## FAQ
How often should a team update the plan? Who owns the plan? What belongs on it? When should leadership see it? Why share it at all? Specifically, each answer depends on the size of the team.`,

	`### Further Reading
In short, this conclusion wraps up the guide. Learn more in the next example and get started today.`,
}

const (
	fillerOnsets  = "bcfghjklmnprstvwz"
	fillerVowels  = "aeiou"
	fillerCodas   = "bcfgklmnprstvz"
	fillerPerLine = 10
	fillerPerPara = 8
)

// fillerWord returns a distinct one-syllable pseudo-word for every i. Codas
// never contain 'd', 'e' or 'y' so no filler word reads as a passive
// participle, a silent-e syllable or a keyword.
func fillerWord(i int) string {
	var b strings.Builder
	b.WriteByte(fillerOnsets[i%len(fillerOnsets)])
	i /= len(fillerOnsets)
	b.WriteByte(fillerVowels[i%len(fillerVowels)])
	i /= len(fillerVowels)
	b.WriteByte(fillerCodas[i%len(fillerCodas)])
	i /= len(fillerCodas)
	b.WriteByte(fillerCodas[i%len(fillerCodas)])
	return b.String()
}

// buildGuide returns an article of exactly words words whose keyword
// density is exactly density percent.
func buildGuide(words int, density float64) string {
	fixed := strings.Join(guideSections, "\n\n")
	fixedWords := lexical.WordCount(fixed)
	fixedKeywords := lexical.CountOccurrences(fixed, guideKeyword)

	fillerCount := words - fixedWords
	wantKeywords := int(float64(words)*density/100+0.5) - fixedKeywords

	tokens := make([]string, fillerCount)
	for i := range tokens {
		tokens[i] = fillerWord(i)
	}
	if wantKeywords > 0 {
		step := fillerCount / wantKeywords
		for k := 0; k < wantKeywords; k++ {
			tokens[k*step] = guideKeyword
		}
	}

	var paragraphs []string
	var sentences []string
	for start := 0; start < len(tokens); start += fillerPerLine {
		end := min(start+fillerPerLine, len(tokens))
		sentences = append(sentences, strings.Join(tokens[start:end], " ")+".")
		if len(sentences) == fillerPerPara {
			paragraphs = append(paragraphs, strings.Join(sentences, " "))
			sentences = nil
		}
	}
	if len(sentences) > 0 {
		paragraphs = append(paragraphs, strings.Join(sentences, " "))
	}

	return fixed + "\n\n" + strings.Join(paragraphs, "\n\n") + "\n"
}

const copiedPassage = `Product discovery is the practice of learning what customers need before building anything.
Teams that skip discovery often ship features nobody asked for, which wastes a full quarter of effort.
A steady rhythm of interviews, prototypes and small experiments keeps the backlog honest and focused.`
