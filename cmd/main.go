package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/oladayo/exambank/internal/db"
	"github.com/oladayo/exambank/internal/handlers"
	"github.com/oladayo/exambank/internal/middleware"
	"github.com/oladayo/exambank/internal/models"
	"github.com/oladayo/exambank/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	// Initialize Fiber
	app := fiber.New()
	// Initialize MinIO
	storage.InitMinio()
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Get MongoDB URI from environment
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/exambank" // Default fallback
	}

	// Connect to MongoDB
	database := db.ConnectMongoDB(mongoURI, "exambank")
	db.EnsureIndexes(database)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Backend is running")
	})

	api := app.Group("/api/v1")

	// User routes
	users := api.Group("/users")
	users.Post("/signup", handlers.SignupHandler)
	users.Post("/login", handlers.LoginHandler)
	users.Post("/logout", handlers.LogoutHandler)
	users.Post("/forgotpassword", handlers.ForgotPasswordHandler)
	users.Patch("/resetpassword/:token", handlers.ResetPasswordHandler)
	users.Patch("/updatePassword", middleware.Protect, handlers.UpdatePasswordHandler)
	users.Patch("/updateMe", middleware.Protect, handlers.UpdateMeHandler)
	users.Delete("/deleteMe", middleware.Protect, handlers.DeleteMeHandler)
	users.Get("/me", middleware.Protect, handlers.GetMeHandler)
	users.Get("/", middleware.Protect, middleware.RestrictTo(models.RoleTeacher, models.RoleAdmin), handlers.ListUsersHandler)

	// Question bank routes
	questions := api.Group("/questions")
	questions.Get("/examination", middleware.Protect, middleware.RestrictTo(models.RoleAdmin), handlers.GetAllExamsHandler)
	questions.Post("/examination", handlers.CreateExamHandler)
	questions.Get("/examination/:examId", middleware.Protect, middleware.RestrictTo(models.RoleTeacher, models.RoleAdmin), handlers.GetExamHandler)
	questions.Patch("/examination/:examId", middleware.Protect, middleware.RestrictTo(models.RoleTeacher, models.RoleAdmin), handlers.UpdateExamHandler)
	questions.Delete("/examination/:examId", middleware.Protect, middleware.RestrictTo(models.RoleTeacher, models.RoleAdmin), handlers.DeleteExamHandler)
	questions.Patch("/examination/:examId/add-subject", middleware.Protect, middleware.RestrictTo(models.RoleTeacher), handlers.AddSubjectHandler)
	questions.Patch("/examination/:examId/add-topic", middleware.Protect, middleware.RestrictTo(models.RoleTeacher), handlers.AddTopicHandler)
	questions.Patch("/examination/:examId/add-question", middleware.Protect, middleware.RestrictTo(models.RoleTeacher, models.RoleAdmin), handlers.AddQuestionHandler)

	// Result routes
	results := api.Group("/results")
	results.Get("/result", middleware.Protect, middleware.RestrictTo(models.RoleTeacher), handlers.GetAllResultsHandler)
	results.Post("/result", middleware.Protect, middleware.RestrictTo(models.RoleTeacher, models.RoleAdmin), handlers.CreateResultHandler)
	results.Get("/category/:category/subject/:subjectId", handlers.GetResultsBySubjectAndCategoryHandler)
	results.Get("/student/:studentId", handlers.GetResultsForStudentHandler)
	results.Get("/:id", handlers.GetResultHandler)
	results.Patch("/:id", middleware.Protect, middleware.RestrictTo(models.RoleTeacher, models.RoleAdmin), handlers.UpdateResultHandler)
	results.Delete("/:id", middleware.Protect, middleware.RestrictTo(models.RoleTeacher, models.RoleAdmin), handlers.DeleteResultHandler)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Default port
	}

	// Start server
	log.Fatal(app.Listen(":" + port))
}
