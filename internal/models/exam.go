package models

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrDuplicateSubject = errors.New("subject with this name already exists")
	ErrSubjectNotFound  = errors.New("no subject found with that name")
	ErrTopicNotFound    = errors.New("no topic found with that name in the subject")
	ErrInvalidOptions   = errors.New("invalid options array")
)

// Exam is a single document holding the whole subject/topic/question
// hierarchy for one category. Field names follow the persisted schema.
type Exam struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
	Subjects []Subject          `bson:"subjects" json:"subjects"`
	// Version backs the optimistic write check on the load-mutate-save path.
	Version int64 `bson:"__v" json:"-"`
}

type Subject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SubjectName string             `bson:"subjectName" json:"subjectName"`
	ActualName  string             `bson:"actualName" json:"actualName"`
	Topics      []Topic            `bson:"arrayOfQuestions" json:"arrayOfQuestions"`
}

type Topic struct {
	Month     string     `bson:"month" json:"month"`
	TopicName string     `bson:"topicName" json:"topicName"`
	Questions []Question `bson:"actualQuestion" json:"actualQuestion"`
}

type Question struct {
	ID         int              `bson:"id" json:"id"`
	Difficulty string           `bson:"easy" json:"easy"`
	Type       string           `bson:"type" json:"type"`
	Year       string           `bson:"year" json:"year"`
	ExamBody   string           `bson:"exambody" json:"exambody"`
	Subtopic   string           `bson:"subtopic" json:"subtopic"`
	Content    []ContentItem    `bson:"content" json:"content"`
	Options    []QuestionOption `bson:"options" json:"options"`
}

// ContentItem is one piece of question content, either text or an image URL.
type ContentItem struct {
	Type  string `bson:"type" json:"type"`
	Value string `bson:"value" json:"value"`
}

type QuestionOption struct {
	ID        int    `bson:"id" json:"id"`
	Text      string `bson:"text" json:"text"`
	IsCorrect bool   `bson:"isCorrect" json:"isCorrect"`
}

// AddSubject appends a new empty subject. A collision on either subjectName
// or actualName against any existing subject is a conflict.
func (e *Exam) AddSubject(subjectName, actualName string) error {
	for _, s := range e.Subjects {
		if s.SubjectName == subjectName || s.ActualName == actualName {
			return ErrDuplicateSubject
		}
	}
	e.Subjects = append(e.Subjects, Subject{
		ID:          primitive.NewObjectID(),
		SubjectName: subjectName,
		ActualName:  actualName,
		Topics:      []Topic{},
	})
	return nil
}

// FindSubject returns the subject with the given name, keyed by subjectName.
func (e *Exam) FindSubject(subjectName string) *Subject {
	for i := range e.Subjects {
		if e.Subjects[i].SubjectName == subjectName {
			return &e.Subjects[i]
		}
	}
	return nil
}

// AddTopic appends a topic unconditionally; topics are not deduplicated.
func (s *Subject) AddTopic(month, topicName string) {
	s.Topics = append(s.Topics, Topic{
		Month:     month,
		TopicName: topicName,
		Questions: []Question{},
	})
}

// FindTopic returns the topic with the given name.
func (s *Subject) FindTopic(topicName string) *Topic {
	for i := range s.Topics {
		if s.Topics[i].TopicName == topicName {
			return &s.Topics[i]
		}
	}
	return nil
}

// AddQuestion validates and appends a question. Every question must carry at
// least one answer option.
func (t *Topic) AddQuestion(q Question) error {
	if len(q.Options) == 0 {
		return ErrInvalidOptions
	}
	t.Questions = append(t.Questions, q)
	return nil
}

// NewQuestionContent assembles the content sequence from an optional text
// item and an optional image URL, in that order.
func NewQuestionContent(text, imageURL string) []ContentItem {
	content := []ContentItem{}
	if text != "" {
		content = append(content, ContentItem{Type: "text", Value: text})
	}
	if imageURL != "" {
		content = append(content, ContentItem{Type: "image", Value: imageURL})
	}
	return content
}
