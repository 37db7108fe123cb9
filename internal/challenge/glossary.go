package challenge

import (
	"fmt"
	"math/rand"

	"concurseiro-challenge-service/internal/domain"
)

// Fixed distractors for glossary items. Placeholder quality on purpose; the
// correct definition is the only option that describes the term.
var glossaryDecoys = [4]string{
	"Princípio que não se aplica a este conceito.",
	"Definição de um instituto jurídico diverso.",
	"Regra revogada, sem correspondência com o termo.",
	"Conceito de outra área do edital.",
}

// SelectGlossary turns a deduplicated glossary pool into synthetic
// multiple-choice items: each statement asks for the term's definition, the
// options are the real definition shuffled among the four fixed decoys.
func SelectGlossary(rnd *rand.Rand, terms []domain.GlossaryTerm, targetCount int) []domain.Question {
	if targetCount <= 0 || len(terms) == 0 {
		return []domain.Question{}
	}

	shuffled := make([]domain.GlossaryTerm, len(terms))
	copy(shuffled, terms)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > targetCount {
		shuffled = shuffled[:targetCount]
	}

	items := make([]domain.Question, 0, len(shuffled))
	for i, term := range shuffled {
		options := make([]string, 0, len(glossaryDecoys)+1)
		options = append(options, term.Definition)
		options = append(options, glossaryDecoys[:]...)
		rnd.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})

		items = append(items, domain.Question{
			ID:            fmt.Sprintf("glossary-%d-%s", i, term.Term),
			Statement:     fmt.Sprintf("Qual é a definição correta do termo \"%s\"?", term.Term),
			Options:       options,
			CorrectAnswer: term.Definition,
			Justification: fmt.Sprintf("\"%s\": %s", term.Term, term.Definition),
		})
	}
	return items
}
