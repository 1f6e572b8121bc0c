package services

import (
	"context"
	"errors"
	"time"

	"github.com/oladayo/exambank/internal/db"
	"github.com/oladayo/exambank/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const resultsCollection = "results"

var (
	ErrResultNotFound     = errors.New("no result found for this ID")
	ErrNoExamsInCategory  = errors.New("no exams found for this category")
	ErrNoSubjectResults   = errors.New("no results found for this subject in the given category")
	ErrNoStudentResults   = errors.New("no results found for this student")
	ErrStudentNotFound    = errors.New("student not found")
	errResultFieldsNeeded = errors.New("studentId, examId, subjectResults and grade are required")
)

func resultColl() *mongo.Collection {
	return db.GetCollection(DatabaseName, resultsCollection)
}

// ListResults returns every result record.
func ListResults() ([]models.Result, error) {
	cursor, err := resultColl().Find(context.TODO(), bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())

	var results []models.Result
	if err := cursor.All(context.TODO(), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// validateResult checks the required fields of a submitted result. Scores
// are not checked for presence, zero is legitimate, but they cannot be
// negative.
func validateResult(result models.Result) error {
	if result.StudentID == "" || result.ExamID.IsZero() || len(result.SubjectResults) == 0 || result.Grade == "" {
		return errResultFieldsNeeded
	}
	if result.TotalScore < 0 {
		return errors.New("totalScore cannot be negative")
	}
	for _, sr := range result.SubjectResults {
		if sr.SubjectID.IsZero() || sr.Grade == "" {
			return errors.New("each subject result needs subjectId and grade")
		}
		if sr.Score < 0 {
			return errors.New("subject result score cannot be negative")
		}
	}
	return nil
}

// CreateResult stores a submitted result. totalScore and grade are trusted
// as supplied, not recomputed from the subject entries.
func CreateResult(result models.Result) (models.Result, error) {
	if err := validateResult(result); err != nil {
		return models.Result{}, err
	}

	result.ID = primitive.NewObjectID()
	if result.Date.IsZero() {
		result.Date = time.Now()
	}
	if _, err := resultColl().InsertOne(context.TODO(), result); err != nil {
		return models.Result{}, err
	}
	return result, nil
}

// GetResultByID loads one result.
func GetResultByID(id string) (models.Result, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Result{}, ErrResultNotFound
	}

	var result models.Result
	err = resultColl().FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&result)
	if err != nil {
		return models.Result{}, ErrResultNotFound
	}
	return result, nil
}

// ResultPatch carries updatable result fields.
type ResultPatch struct {
	SubjectResults []models.SubjectResult `json:"subjectResults"`
	TotalScore     *float64               `json:"totalScore"`
	Grade          string                 `json:"grade"`
}

// UpdateResult patches an existing result.
func UpdateResult(id string, patch ResultPatch) (models.Result, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Result{}, ErrResultNotFound
	}

	set := bson.M{}
	if patch.SubjectResults != nil {
		set["subjectResults"] = patch.SubjectResults
	}
	if patch.TotalScore != nil {
		set["totalScore"] = *patch.TotalScore
	}
	if patch.Grade != "" {
		set["grade"] = patch.Grade
	}
	if len(set) == 0 {
		return GetResultByID(id)
	}

	var updated models.Result
	err = resultColl().FindOneAndUpdate(
		context.TODO(),
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		return models.Result{}, ErrResultNotFound
	}
	return updated, nil
}

// DeleteResult removes a result record. Exams and users are unaffected.
func DeleteResult(id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrResultNotFound
	}

	result, err := resultColl().DeleteOne(context.TODO(), bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrResultNotFound
	}
	return nil
}

// ListResultsByCategoryAndSubject finds results for one subject across every
// exam in a category: first the exams in the category, then results whose
// examId is among them and which carry an entry for the subject.
func ListResultsByCategoryAndSubject(category, subjectID string) ([]models.Result, error) {
	subjObjID, err := primitive.ObjectIDFromHex(subjectID)
	if err != nil {
		return nil, ErrNoSubjectResults
	}

	cursor, err := examColl().Find(context.TODO(), bson.M{"category": category})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())

	var exams []models.Exam
	if err := cursor.All(context.TODO(), &exams); err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, ErrNoExamsInCategory
	}

	examIDs := make([]primitive.ObjectID, 0, len(exams))
	for _, exam := range exams {
		examIDs = append(examIDs, exam.ID)
	}

	resultCursor, err := resultColl().Find(context.TODO(), bson.M{
		"examId":                   bson.M{"$in": examIDs},
		"subjectResults.subjectId": subjObjID,
	})
	if err != nil {
		return nil, err
	}
	defer resultCursor.Close(context.TODO())

	var results []models.Result
	if err := resultCursor.All(context.TODO(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoSubjectResults
	}
	return results, nil
}

// ListResultsByStudent returns every result for a student. The student must
// exist (and be active) or the lookup fails.
func ListResultsByStudent(studentID string) ([]models.Result, error) {
	if _, err := GetUserByID(studentID); err != nil {
		return nil, ErrStudentNotFound
	}

	cursor, err := resultColl().Find(context.TODO(), bson.M{"studentId": studentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())

	var results []models.Result
	if err := cursor.All(context.TODO(), &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoStudentResults
	}
	return results, nil
}
