package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result is a scored outcome linking one student to one exam.
type Result struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StudentID      string             `bson:"studentId" json:"studentId"`
	ExamID         primitive.ObjectID `bson:"examId" json:"examId"`
	SubjectResults []SubjectResult    `bson:"subjectResults" json:"subjectResults"`
	TotalScore     float64            `bson:"totalScore" json:"totalScore"`
	Grade          string             `bson:"grade" json:"grade"`
	Date           time.Time          `bson:"date" json:"date"`
}

type SubjectResult struct {
	SubjectID primitive.ObjectID `bson:"subjectId" json:"subjectId"`
	Score     float64            `bson:"score" json:"score"`
	Grade     string             `bson:"grade" json:"grade"`
}
