package services

import (
	"context"
	"errors"

	"github.com/oladayo/exambank/internal/db"
	"github.com/oladayo/exambank/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const examsCollection = "exams"

var (
	ErrExamNotFound      = errors.New("no exam found with that ID")
	ErrDuplicateCategory = errors.New("an exam already exists for this category")
	// ErrExamConflict means another writer updated the document between our
	// read and write; the caller should retry.
	ErrExamConflict = errors.New("exam was modified concurrently, please retry")
)

func examColl() *mongo.Collection {
	return db.GetCollection(DatabaseName, examsCollection)
}

// ExamPatch carries the whole-document updatable fields.
type ExamPatch struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ListExams returns every exam document.
func ListExams() ([]models.Exam, error) {
	cursor, err := examColl().Find(context.TODO(), bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.TODO())

	var exams []models.Exam
	if err := cursor.All(context.TODO(), &exams); err != nil {
		return nil, err
	}
	return exams, nil
}

// GetExamByID loads one exam document.
func GetExamByID(id string) (models.Exam, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Exam{}, ErrExamNotFound
	}

	var exam models.Exam
	err = examColl().FindOne(context.TODO(), bson.M{"_id": objID}).Decode(&exam)
	if err != nil {
		return models.Exam{}, ErrExamNotFound
	}
	return exam, nil
}

// CreateExam inserts a new exam document. Category is unique across exams.
func CreateExam(exam models.Exam) (models.Exam, error) {
	if exam.Name == "" || exam.Category == "" {
		return models.Exam{}, errors.New("name and category are required")
	}

	var existing models.Exam
	err := examColl().FindOne(context.TODO(), bson.M{"category": exam.Category}).Decode(&existing)
	if err == nil {
		return models.Exam{}, ErrDuplicateCategory
	}

	exam.ID = primitive.NewObjectID()
	if exam.Subjects == nil {
		exam.Subjects = []models.Subject{}
	}
	exam.Version = 0
	if _, err := examColl().InsertOne(context.TODO(), exam); err != nil {
		// The precheck races concurrent creates; the unique index on
		// category decides.
		return models.Exam{}, duplicateKeyAs(err, ErrDuplicateCategory)
	}
	return exam, nil
}

// UpdateExam patches top-level fields on the document.
func UpdateExam(id string, patch ExamPatch) (models.Exam, error) {
	exam, err := GetExamByID(id)
	if err != nil {
		return models.Exam{}, err
	}

	if patch.Name != "" {
		exam.Name = patch.Name
	}
	if patch.Category != "" && patch.Category != exam.Category {
		var existing models.Exam
		if err := examColl().FindOne(context.TODO(), bson.M{"category": patch.Category}).Decode(&existing); err == nil {
			return models.Exam{}, ErrDuplicateCategory
		}
		exam.Category = patch.Category
	}

	if err := saveExam(&exam); err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}

// DeleteExam removes the whole document.
func DeleteExam(id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrExamNotFound
	}

	result, err := examColl().DeleteOne(context.TODO(), bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrExamNotFound
	}
	return nil
}

// saveExam persists a loaded-and-mutated document. The write is guarded by
// the version the document was read at: if another writer bumped it first,
// nothing matches and the caller gets ErrExamConflict instead of silently
// clobbering the other write.
func saveExam(exam *models.Exam) error {
	readVersion := exam.Version
	exam.Version = readVersion + 1

	result, err := examColl().ReplaceOne(
		context.TODO(),
		bson.M{"_id": exam.ID, "__v": readVersion},
		exam,
	)
	if err != nil {
		// A category rename can collide with another exam's category.
		return duplicateKeyAs(err, ErrDuplicateCategory)
	}
	if result.MatchedCount == 0 {
		return ErrExamConflict
	}
	return nil
}

// AddSubject appends a subject to the exam, rejecting duplicates on either
// subjectName or actualName.
func AddSubject(examID, subjectName, actualName string) (models.Exam, error) {
	if subjectName == "" || actualName == "" {
		return models.Exam{}, errors.New("subjectName and actualName are required")
	}

	exam, err := GetExamByID(examID)
	if err != nil {
		return models.Exam{}, err
	}
	if err := exam.AddSubject(subjectName, actualName); err != nil {
		return models.Exam{}, err
	}
	if err := saveExam(&exam); err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}

// AddTopic appends a topic to the named subject.
func AddTopic(examID, subjectName, month, topicName string) (models.Exam, error) {
	exam, err := GetExamByID(examID)
	if err != nil {
		return models.Exam{}, err
	}

	subject := exam.FindSubject(subjectName)
	if subject == nil {
		return models.Exam{}, models.ErrSubjectNotFound
	}
	subject.AddTopic(month, topicName)

	if err := saveExam(&exam); err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}

// AddQuestion appends a question to the named topic of the named subject.
func AddQuestion(examID, subjectName, topicName string, question models.Question) (models.Exam, error) {
	exam, err := GetExamByID(examID)
	if err != nil {
		return models.Exam{}, err
	}

	subject := exam.FindSubject(subjectName)
	if subject == nil {
		return models.Exam{}, models.ErrSubjectNotFound
	}
	topic := subject.FindTopic(topicName)
	if topic == nil {
		return models.Exam{}, models.ErrTopicNotFound
	}
	if err := topic.AddQuestion(question); err != nil {
		return models.Exam{}, err
	}

	if err := saveExam(&exam); err != nil {
		return models.Exam{}, err
	}
	return exam, nil
}
