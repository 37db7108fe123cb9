package domain

// Question models a multiple-choice item authored by a professor.
// SubjectID/TopicID and the display names are denormalized onto the question
// when a pool is built; they are not part of the stored identity.
type Question struct {
	ID                   string            `json:"id"`
	Statement            string            `json:"statement"`
	Options              []string          `json:"options"`
	CorrectAnswer        string            `json:"correctAnswer"`
	Justification        string            `json:"justification,omitempty"`
	OptionJustifications map[string]string `json:"optionJustifications,omitempty"`

	SubjectID   string `json:"subjectId,omitempty"`
	TopicID     string `json:"topicId,omitempty"`
	SubjectName string `json:"subjectName,omitempty"`
	TopicName   string `json:"topicName,omitempty"`
}

// GlossaryTerm is a term/definition pair attached to a topic or subtopic.
type GlossaryTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// SubTopic carries its own question banks and glossary.
type SubTopic struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Questions    []Question     `json:"questions,omitempty"`
	TecQuestions []Question     `json:"tecQuestions,omitempty"`
	Glossary     []GlossaryTerm `json:"glossary,omitempty"`
}

// Topic groups questions and subtopics inside a subject. The effective
// question/glossary pool of a topic is its direct content plus the content of
// every subtopic.
type Topic struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Questions    []Question     `json:"questions,omitempty"`
	TecQuestions []Question     `json:"tecQuestions,omitempty"`
	Glossary     []GlossaryTerm `json:"glossary,omitempty"`
	SubTopics    []SubTopic     `json:"subTopics,omitempty"`
}

// Subject is the root of the content tree a professor maintains.
type Subject struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Topics []Topic `json:"topics,omitempty"`
}

// CourseDiscipline references a subject within a course, optionally excluding
// specific topics or subtopics from the enrollment.
type CourseDiscipline struct {
	SubjectID        string   `json:"subjectId"`
	ExcludedTopicIDs []string `json:"excludedTopicIds,omitempty"`
}

// Course links enrolled students to the subjects of its disciplines.
type Course struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Disciplines        []CourseDiscipline `json:"disciplines,omitempty"`
	EnrolledStudentIDs []string           `json:"enrolledStudentIds,omitempty"`
}
