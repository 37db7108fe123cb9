package challenge

import "concurseiro-challenge-service/internal/domain"

// BuildPool flattens the enrolled subjects into a single candidate list, each
// question annotated with its subject/topic ids and names. Allow-lists are
// opt-in narrowing: an empty list means everything passes. A subtopic is
// checked against the topic allow-list by its own id, never its parent
// topic's, so scoping to a topic requires listing the subtopic ids too.
//
// Emission order is subject order, then topic order (questions before
// tecQuestions), then subtopic order. The order carries no meaning downstream
// but stays deterministic for a fixed input.
func BuildPool(subjects []domain.Subject, subjectAllow, topicAllow []string) []domain.Question {
	allowSubject := toSet(subjectAllow)
	allowTopic := toSet(topicAllow)

	var pool []domain.Question
	for _, subject := range subjects {
		if len(allowSubject) > 0 {
			if _, ok := allowSubject[subject.ID]; !ok {
				continue
			}
		}
		for _, topic := range subject.Topics {
			if len(allowTopic) > 0 {
				if _, ok := allowTopic[topic.ID]; !ok {
					continue
				}
			}
			pool = appendAnnotated(pool, topic.Questions, subject, topic.ID, topic.Name)
			pool = appendAnnotated(pool, topic.TecQuestions, subject, topic.ID, topic.Name)
			for _, sub := range topic.SubTopics {
				if len(allowTopic) > 0 {
					if _, ok := allowTopic[sub.ID]; !ok {
						continue
					}
				}
				pool = appendAnnotated(pool, sub.Questions, subject, sub.ID, sub.Name)
				pool = appendAnnotated(pool, sub.TecQuestions, subject, sub.ID, sub.Name)
			}
		}
	}
	return pool
}

// BuildGlossaryPool flattens glossary terms the same way BuildPool flattens
// questions, then deduplicates by term with last-write-wins.
func BuildGlossaryPool(subjects []domain.Subject, subjectAllow, topicAllow []string) []domain.GlossaryTerm {
	allowSubject := toSet(subjectAllow)
	allowTopic := toSet(topicAllow)

	var terms []domain.GlossaryTerm
	for _, subject := range subjects {
		if len(allowSubject) > 0 {
			if _, ok := allowSubject[subject.ID]; !ok {
				continue
			}
		}
		for _, topic := range subject.Topics {
			if len(allowTopic) > 0 {
				if _, ok := allowTopic[topic.ID]; !ok {
					continue
				}
			}
			terms = append(terms, topic.Glossary...)
			for _, sub := range topic.SubTopics {
				if len(allowTopic) > 0 {
					if _, ok := allowTopic[sub.ID]; !ok {
						continue
					}
				}
				terms = append(terms, sub.Glossary...)
			}
		}
	}
	return dedupeTerms(terms)
}

// dedupeTerms keeps one entry per term string; the last occurrence wins while
// the deduplicated slice preserves first-seen position.
func dedupeTerms(terms []domain.GlossaryTerm) []domain.GlossaryTerm {
	index := make(map[string]int, len(terms))
	out := make([]domain.GlossaryTerm, 0, len(terms))
	for _, term := range terms {
		if term.Term == "" {
			continue
		}
		if i, ok := index[term.Term]; ok {
			out[i] = term
			continue
		}
		index[term.Term] = len(out)
		out = append(out, term)
	}
	return out
}

func appendAnnotated(pool, questions []domain.Question, subject domain.Subject, topicID, topicName string) []domain.Question {
	for _, q := range questions {
		if q.ID == "" {
			continue
		}
		q.SubjectID = subject.ID
		q.SubjectName = subject.Name
		q.TopicID = topicID
		q.TopicName = topicName
		pool = append(pool, q)
	}
	return pool
}

func toSet(ids []string) map[string]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
