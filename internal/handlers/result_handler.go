package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/oladayo/exambank/internal/models"
	"github.com/oladayo/exambank/internal/services"
)

func resultFailStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrResultNotFound),
		errors.Is(err, services.ErrNoExamsInCategory),
		errors.Is(err, services.ErrNoSubjectResults),
		errors.Is(err, services.ErrNoStudentResults),
		errors.Is(err, services.ErrStudentNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func GetAllResultsHandler(c *fiber.Ctx) error {
	results, err := services.ListResults()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":    "success",
		"numResult": len(results),
		"data":      fiber.Map{"results": results},
	})
}

func CreateResultHandler(c *fiber.Ctx) error {
	var result models.Result
	if err := c.BodyParser(&result); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	created, err := services.CreateResult(result)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"msg":    "Result created",
		"data":   fiber.Map{"result": created},
	})
}

func GetResultHandler(c *fiber.Ctx) error {
	result, err := services.GetResultByID(c.Params("id"))
	if err != nil {
		return c.Status(resultFailStatus(err)).JSON(fiber.Map{"msg": "No result found for this ID"})
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"result": result}})
}

func UpdateResultHandler(c *fiber.Ctx) error {
	var patch services.ResultPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	updated, err := services.UpdateResult(c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "No result found for this ID"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"result": updated}})
}

func DeleteResultHandler(c *fiber.Ctx) error {
	if err := services.DeleteResult(c.Params("id")); err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "No result found for this ID"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetResultsBySubjectAndCategoryHandler joins exams in a category with the
// results carrying an entry for the given subject.
func GetResultsBySubjectAndCategoryHandler(c *fiber.Ctx) error {
	results, err := services.ListResultsByCategoryAndSubject(c.Params("category"), c.Params("subjectId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoExamsInCategory):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "No exams found for this category"})
		case errors.Is(err, services.ErrNoSubjectResults):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "No results found for this subject in the given category"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{
		"status":     "success",
		"numResults": len(results),
		"data":       fiber.Map{"results": results},
	})
}

func GetResultsForStudentHandler(c *fiber.Ctx) error {
	results, err := services.ListResultsByStudent(c.Params("studentId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "Student not found"})
		case errors.Is(err, services.ErrNoStudentResults):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"msg": "No results found for this student"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "error": err.Error()})
		}
	}
	return c.JSON(fiber.Map{
		"status":     "success",
		"numResults": len(results),
		"data":       fiber.Map{"results": results},
	})
}
