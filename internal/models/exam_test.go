package models

import (
	"errors"
	"testing"
)

func TestAddSubjectRejectsDuplicates(t *testing.T) {
	exam := &Exam{Name: "WAEC Prep", Category: "waec"}

	if err := exam.AddSubject("math", "Mathematics"); err != nil {
		t.Fatalf("first AddSubject failed: %v", err)
	}

	tests := []struct {
		name        string
		subjectName string
		actualName  string
	}{
		{"same subjectName", "math", "Further Mathematics"},
		{"same actualName", "further-math", "Mathematics"},
		{"both same", "math", "Mathematics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exam.AddSubject(tt.subjectName, tt.actualName)
			if !errors.Is(err, ErrDuplicateSubject) {
				t.Fatalf("expected ErrDuplicateSubject, got %v", err)
			}
		})
	}

	if len(exam.Subjects) != 1 {
		t.Fatalf("expected exactly 1 subject after rejected duplicates, got %d", len(exam.Subjects))
	}
}

func TestAddSubjectAssignsID(t *testing.T) {
	exam := &Exam{}
	if err := exam.AddSubject("eng", "English"); err != nil {
		t.Fatalf("AddSubject failed: %v", err)
	}
	if exam.Subjects[0].ID.IsZero() {
		t.Fatal("expected new subject to carry an ID")
	}
	if exam.Subjects[0].Topics == nil {
		t.Fatal("expected new subject to carry an empty topic list")
	}
}

func TestAddTopicAppendsInOrder(t *testing.T) {
	exam := &Exam{}
	if err := exam.AddSubject("math", "Mathematics"); err != nil {
		t.Fatalf("AddSubject failed: %v", err)
	}

	subject := exam.FindSubject("math")
	if subject == nil {
		t.Fatal("FindSubject returned nil for existing subject")
	}

	// Topics are not deduplicated; two sequential adds both land.
	subject.AddTopic("January", "Algebra")
	subject.AddTopic("February", "Geometry")

	if len(subject.Topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(subject.Topics))
	}
	if subject.Topics[0].TopicName != "Algebra" || subject.Topics[1].TopicName != "Geometry" {
		t.Fatalf("topics out of call order: %q, %q", subject.Topics[0].TopicName, subject.Topics[1].TopicName)
	}
}

func TestFindSubjectMissing(t *testing.T) {
	exam := &Exam{}
	if got := exam.FindSubject("nope"); got != nil {
		t.Fatalf("expected nil for missing subject, got %+v", got)
	}
}

func TestAddQuestionRequiresOptions(t *testing.T) {
	topic := &Topic{TopicName: "Algebra"}

	tests := []struct {
		name    string
		options []QuestionOption
	}{
		{"nil options", nil},
		{"empty options", []QuestionOption{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := topic.AddQuestion(Question{ID: 1, Options: tt.options})
			if !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
	if len(topic.Questions) != 0 {
		t.Fatalf("rejected questions must not be appended, got %d", len(topic.Questions))
	}
}

func TestAddQuestionAppendsOne(t *testing.T) {
	topic := &Topic{TopicName: "Algebra"}
	q := Question{
		ID:         4,
		Difficulty: "easy",
		Year:       "2021",
		Options: []QuestionOption{
			{ID: 1, Text: "x = 2", IsCorrect: true},
			{ID: 2, Text: "x = 3"},
		},
	}
	if err := topic.AddQuestion(q); err != nil {
		t.Fatalf("AddQuestion failed: %v", err)
	}
	if len(topic.Questions) != 1 {
		t.Fatalf("expected exactly 1 question, got %d", len(topic.Questions))
	}
	if topic.Questions[0].Options[0].Text != "x = 2" {
		t.Fatalf("unexpected stored question: %+v", topic.Questions[0])
	}
}

func TestNewQuestionContent(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		image string
		want  []ContentItem
	}{
		{"text only", "What is 1+1?", "", []ContentItem{{Type: "text", Value: "What is 1+1?"}}},
		{"image only", "", "/img/q.jpeg", []ContentItem{{Type: "image", Value: "/img/q.jpeg"}}},
		{"text then image", "See diagram", "/img/q.jpeg", []ContentItem{
			{Type: "text", Value: "See diagram"},
			{Type: "image", Value: "/img/q.jpeg"},
		}},
		{"neither", "", "", []ContentItem{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewQuestionContent(tt.text, tt.image)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d items, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("item %d: expected %+v, got %+v", i, tt.want[i], got[i])
				}
			}
		})
	}
}
