package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oladayo/exambank/internal/middleware"
	"github.com/oladayo/exambank/internal/services"
)

// setSessionCookie mirrors the token into an httpOnly cookie so browser
// clients don't need to manage the Authorization header.
func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(90 * 24 * time.Hour),
		HTTPOnly: true,
	})
}

func SignupHandler(c *fiber.Ctx) error {
	var request services.SignupInput
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	user, err := services.Signup(request)
	if err != nil {
		// Validation and duplicate failures are the caller's to fix; only
		// hashing or store failures are 500s.
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidInput) || errors.Is(err, services.ErrPasswordMismatch) || errors.Is(err, services.ErrEmailInUse) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{"status": "fail", "message": "Error adding user", "error": err.Error()})
	}

	token, err := services.IssueSessionToken(user.ID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Error issuing token", "error": err.Error()})
	}
	setSessionCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"token":   token,
		"message": "Your account is successfully created",
		"data":    fiber.Map{"newUser": user},
	})
}

func LoginHandler(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	if request.Email == "" || request.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Please provide email and password"})
	}

	user, err := services.Login(request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "fail", "message": "No user found with that email"})
		case errors.Is(err, services.ErrWrongPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "fail", "message": "Incorrect password"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Something went wrong during login", "error": err.Error()})
		}
	}

	token, err := services.IssueSessionToken(user.ID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Error issuing token", "error": err.Error()})
	}
	setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"status":  "success",
		"token":   token,
		"message": "Login successful",
		"data":    fiber.Map{"findUser": user},
	})
}

// LogoutHandler overwrites the session cookie with a short-lived dummy.
func LogoutHandler(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt",
		Value:    "loggedout",
		Expires:  time.Now().Add(10 * time.Second),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"status": "success", "message": "You have successfully logged out"})
}

func ForgotPasswordHandler(c *fiber.Ctx) error {
	var request struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&request); err != nil || request.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Please provide your email"})
	}

	if err := services.ForgotPassword(request.Email, c.BaseURL()); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "fail", "message": "No user found with that email"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Something went wrong while sending the email", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "Token sent to email!"})
}

func ResetPasswordHandler(c *fiber.Ctx) error {
	var request struct {
		Password        string `json:"password"`
		PasswordConfirm string `json:"passwordConfirm"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	user, err := services.ResetPassword(c.Params("token"), request.Password, request.PasswordConfirm)
	if err != nil {
		if errors.Is(err, services.ErrResetTokenExpired) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Token is invalid or has expired."})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Something went wrong during password reset", "error": err.Error()})
	}

	// Reset doubles as re-authentication.
	token, err := services.IssueSessionToken(user.ID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Error issuing token", "error": err.Error()})
	}
	setSessionCookie(c, token)

	return c.JSON(fiber.Map{"status": "success", "token": token, "message": "Password reset successful!"})
}

func UpdatePasswordHandler(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "fail", "message": "You are not logged in. Please log in to get access."})
	}

	var request struct {
		CurrentPassword string `json:"currentPassword"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Invalid request body"})
	}

	updated, err := services.UpdatePassword(user.ID.Hex(), request.CurrentPassword, request.Password, request.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "fail", "message": "Your current password is incorrect"})
		case errors.Is(err, services.ErrPasswordMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "Passwords are not the same!"})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "An error occurred while updating the password", "error": err.Error()})
		}
	}

	token, err := services.IssueSessionToken(updated.ID.Hex())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "fail", "message": "Error issuing token", "error": err.Error()})
	}
	setSessionCookie(c, token)

	return c.JSON(fiber.Map{"status": "success", "token": token, "message": "Your password has been updated successfully"})
}
