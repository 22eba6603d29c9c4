package main

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quizling/config"
	"github.com/lshigami/Quizling/database"
	_ "github.com/lshigami/Quizling/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Quizling/internal/controller/admin"
	userctrl "github.com/lshigami/Quizling/internal/controller/user"
	"github.com/lshigami/Quizling/internal/logger"
	"github.com/lshigami/Quizling/internal/model"
	"github.com/lshigami/Quizling/internal/repository"
	"github.com/lshigami/Quizling/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Quizling Exam API
// @version 1.0
// @description Exam composition and grading engine: randomized exam assembly from a question bank, draft persistence and submit-once grading.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			NewRandomSource,      // Provides *rand.Rand for the composer's draw
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewExamRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQuestionAdminService,
			service.NewExamService,
			service.NewExamSubmissionService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewQuestionController,
			userctrl.NewExamController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewRandomSource seeds the composer's random draw from the clock. Tests
// construct services with a fixed seed instead.
func NewRandomSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through Zerolog instead of Gin's default logger.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	questionCtrl *adminctrl.QuestionController,
	examCtrl *userctrl.ExamController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		questionsGroup := adminAPIGroup.Group("/questions")
		questionsGroup.POST("", questionCtrl.CreateQuestion)
		questionsGroup.GET("", questionCtrl.ListQuestions)
		questionsGroup.GET("/:question_id", questionCtrl.GetQuestion)
		questionsGroup.PUT("/:question_id", questionCtrl.UpdateQuestion)
		questionsGroup.DELETE("/:question_id", questionCtrl.DeleteQuestion)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		examsGroup := userAPIGroup.Group("/exams")
		examsGroup.POST("", examCtrl.ComposeExam)
		examsGroup.GET("/:exam_id", examCtrl.GetExam)
		examsGroup.PUT("/:exam_id/draft", examCtrl.SaveDraft)
		examsGroup.POST("/:exam_id/submit", examCtrl.SubmitExam)
		examsGroup.DELETE("/:exam_id", examCtrl.DeleteExam)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quizling exam API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.Exam{},
		&model.ExamQuestion{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
