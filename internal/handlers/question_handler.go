package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oladayo/exambank/internal/models"
	"github.com/oladayo/exambank/internal/services"
	"github.com/oladayo/exambank/internal/storage"
	"github.com/oladayo/exambank/internal/utils"
)

// examFailStatus maps exam-store errors to HTTP statuses.
func examFailStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrExamNotFound),
		errors.Is(err, models.ErrSubjectNotFound),
		errors.Is(err, models.ErrTopicNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrDuplicateSubject),
		errors.Is(err, models.ErrInvalidOptions),
		errors.Is(err, services.ErrDuplicateCategory):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrExamConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func GetAllExamsHandler(c *fiber.Ctx) error {
	exams, err := services.ListExams()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Error fetching questions", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":     "success",
		"message":    "All questions fetched successfully",
		"numResults": len(exams),
		"data":       fiber.Map{"allExams": exams},
	})
}

func GetExamHandler(c *fiber.Ctx) error {
	exam, err := services.GetExamByID(c.Params("examId"))
	if err != nil {
		return c.Status(examFailStatus(err)).JSON(fiber.Map{"status": "fail", "message": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "A question retrieved successfully",
		"data":    fiber.Map{"oneExam": exam},
	})
}

func CreateExamHandler(c *fiber.Ctx) error {
	var exam models.Exam
	if err := c.BodyParser(&exam); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	created, err := services.CreateExam(exam)
	if err != nil {
		return c.Status(examFailStatus(err)).JSON(fiber.Map{"status": "fail", "message": "Error creating the question", "error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Question successfully created",
		"data":    fiber.Map{"createExam": created},
	})
}

func UpdateExamHandler(c *fiber.Ctx) error {
	var patch services.ExamPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	updated, err := services.UpdateExam(c.Params("examId"), patch)
	if err != nil {
		return c.Status(examFailStatus(err)).JSON(fiber.Map{"status": "fail", "message": "Error updating the question", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Question successfully updated",
		"data":    fiber.Map{"updateExam": updated},
	})
}

func DeleteExamHandler(c *fiber.Ctx) error {
	if err := services.DeleteExam(c.Params("examId")); err != nil {
		return c.Status(examFailStatus(err)).JSON(fiber.Map{"status": "fail", "message": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "Question successfully deleted"})
}

func AddSubjectHandler(c *fiber.Ctx) error {
	var request struct {
		SubjectName string `json:"subjectName"`
		ActualName  string `json:"actualName"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	exam, err := services.AddSubject(c.Params("examId"), request.SubjectName, request.ActualName)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateSubject) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Subject with this name already exists"})
		}
		return c.Status(examFailStatus(err)).JSON(fiber.Map{"status": "fail", "message": "Error adding subject to the school", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Subject successfully added to the school",
		"data":    fiber.Map{"school": exam},
	})
}

func AddTopicHandler(c *fiber.Ctx) error {
	var request struct {
		SubjectName string `json:"subjectName"`
		Month       string `json:"month"`
		TopicName   string `json:"topicName"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	exam, err := services.AddTopic(c.Params("examId"), request.SubjectName, request.Month, request.TopicName)
	if err != nil {
		return c.Status(examFailStatus(err)).JSON(fiber.Map{"status": "fail", "message": "Error adding topic to the subject", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Topic successfully added to the subject",
		"data":    fiber.Map{"school": exam},
	})
}

type addQuestionRequest struct {
	SubjectName string                  `json:"subjectName" form:"subjectName"`
	TopicName   string                  `json:"topicName" form:"topicName"`
	TextContent string                  `json:"textContent" form:"textContent"`
	ID          int                     `json:"id" form:"id"`
	Easy        string                  `json:"easy" form:"easy"`
	Type        string                  `json:"type" form:"type"`
	Year        string                  `json:"year" form:"year"`
	ExamBody    string                  `json:"exambody" form:"exambody"`
	Subtopic    string                  `json:"subtopic" form:"subtopic"`
	Options     []models.QuestionOption `json:"options"`
}

// AddQuestionHandler accepts JSON, or multipart form data carrying an
// optional image file under "value" and options as a JSON-encoded field.
func AddQuestionHandler(c *fiber.Ctx) error {
	var request addQuestionRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}
	if len(request.Options) == 0 {
		if raw := c.FormValue("options"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &request.Options); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid options array"})
			}
		}
	}

	imageURL, err := resizeQuestionImage(c, request.TopicName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": err.Error()})
	}

	question := models.Question{
		ID:         request.ID,
		Difficulty: request.Easy,
		Type:       request.Type,
		Year:       request.Year,
		ExamBody:   request.ExamBody,
		Subtopic:   request.Subtopic,
		Content:    models.NewQuestionContent(request.TextContent, imageURL),
		Options:    request.Options,
	}

	exam, err := services.AddQuestion(c.Params("examId"), request.SubjectName, request.TopicName, question)
	if err != nil {
		if errors.Is(err, models.ErrInvalidOptions) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid options array"})
		}
		return c.Status(examFailStatus(err)).JSON(fiber.Map{"status": "fail", "message": "Error adding question to the topic", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Question successfully added with text and/or image",
		"data":    fiber.Map{"school": exam},
	})
}

// resizeQuestionImage handles the optional uploaded image: resize to 500x500
// JPEG and store it, returning the URL to embed as an image content item.
func resizeQuestionImage(c *fiber.Ctx, topicName string) (string, error) {
	header, err := c.FormFile("value")
	if err != nil {
		return "", nil // no image attached
	}
	if !utils.IsImageUpload(header) {
		return "", errors.New("not an image! Please upload only images")
	}

	file, err := header.Open()
	if err != nil {
		return "", errors.New("failed to read image")
	}
	defer file.Close()

	resized, err := utils.ResizeImage(file)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("questions-%s-%d-image.jpeg", topicName, time.Now().Unix())
	return storage.UploadImage(objectName, resized)
}
