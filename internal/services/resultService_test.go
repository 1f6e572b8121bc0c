package services

import (
	"strings"
	"testing"

	"github.com/oladayo/exambank/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidateResult(t *testing.T) {
	valid := models.Result{
		StudentID: "507f1f77bcf86cd799439011",
		ExamID:    primitive.NewObjectID(),
		SubjectResults: []models.SubjectResult{
			{SubjectID: primitive.NewObjectID(), Score: 72, Grade: "B"},
		},
		TotalScore: 72,
		Grade:      "B",
	}

	tests := []struct {
		name    string
		mutate  func(*models.Result)
		wantMsg string
	}{
		{"missing studentId", func(r *models.Result) { r.StudentID = "" }, "required"},
		{"missing examId", func(r *models.Result) { r.ExamID = primitive.ObjectID{} }, "required"},
		{"no subject results", func(r *models.Result) { r.SubjectResults = nil }, "required"},
		{"missing grade", func(r *models.Result) { r.Grade = "" }, "required"},
		{"negative totalScore", func(r *models.Result) { r.TotalScore = -1 }, "cannot be negative"},
		{"subject entry without grade", func(r *models.Result) { r.SubjectResults[0].Grade = "" }, "subjectId and grade"},
		{"subject entry without subjectId", func(r *models.Result) { r.SubjectResults[0].SubjectID = primitive.ObjectID{} }, "subjectId and grade"},
		{"negative subject score", func(r *models.Result) { r.SubjectResults[0].Score = -5 }, "cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			r.SubjectResults = append([]models.SubjectResult(nil), valid.SubjectResults...)
			tt.mutate(&r)
			err := validateResult(r)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected error mentioning %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}

	if err := validateResult(valid); err != nil {
		t.Fatalf("valid result rejected: %v", err)
	}
}

func TestValidateResultZeroScoresAllowed(t *testing.T) {
	// A zero score is a legitimate result; only negative scores are
	// rejected.
	err := validateResult(models.Result{
		StudentID: "507f1f77bcf86cd799439011",
		ExamID:    primitive.NewObjectID(),
		SubjectResults: []models.SubjectResult{
			{SubjectID: primitive.NewObjectID(), Score: 0, Grade: "F"},
		},
		TotalScore: 0,
		Grade:      "F",
	})
	if err != nil {
		t.Fatalf("zero scores rejected: %v", err)
	}
}
