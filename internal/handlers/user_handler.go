package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oladayo/exambank/internal/middleware"
	"github.com/oladayo/exambank/internal/services"
	"github.com/oladayo/exambank/internal/storage"
	"github.com/oladayo/exambank/internal/utils"
)

// ListUsersHandler returns every active user.
func ListUsersHandler(c *fiber.Ctx) error {
	users, err := services.ListUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Error fetching users", "error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":     "success",
		"message":    "All users fetched successfully",
		"numResults": len(users),
		"data":       fiber.Map{"allUser": users},
	})
}

// GetMeHandler returns the authenticated user's own record.
func GetMeHandler(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "fail", "message": "You are not logged in. Please log in to get access."})
	}
	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"user": user}})
}

// UpdateMeHandler applies whitelisted profile fields. An uploaded photo is
// resized to 500x500 JPEG and stored before the reference is saved.
func UpdateMeHandler(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "fail", "message": "You are not logged in. Please log in to get access."})
	}

	var request struct {
		Name            string `json:"name" form:"name"`
		Email           string `json:"email" form:"email"`
		Password        string `json:"password" form:"password"`
		PasswordConfirm string `json:"passwordConfirm" form:"passwordConfirm"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	if request.Password != "" || request.PasswordConfirm != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "This route is not for password updates. Please use /updatePassword."})
	}

	input := services.UpdateMeInput{Name: request.Name, Email: request.Email}

	if header, err := c.FormFile("photo"); err == nil {
		if !utils.IsImageUpload(header) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Please upload only images"})
		}
		file, err := header.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Failed to read photo"})
		}
		defer file.Close()

		resized, err := utils.ResizeImage(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Failed to process photo", "error": err.Error()})
		}

		objectName := fmt.Sprintf("user-%s-%d.jpeg", user.ID.Hex(), time.Now().Unix())
		url, err := storage.UploadImage(objectName, resized)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Failed to store photo", "error": err.Error()})
		}
		input.Photo = url
	}

	updated, err := services.UpdateMe(user.ID.Hex(), input)
	if err != nil {
		if errors.Is(err, services.ErrEmailInUse) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Email already in use"})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "fail", "message": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Error updating user data", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"user": updated}})
}

// DeleteMeHandler soft-deletes the authenticated account.
func DeleteMeHandler(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "fail", "message": "You are not logged in. Please log in to get access."})
	}

	if err := services.DeleteMe(user.ID.Hex()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Something went wrong while deleting the account", "error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
