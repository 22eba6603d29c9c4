package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quizling/internal/dto"
	"github.com/lshigami/Quizling/internal/service"
	"github.com/rs/zerolog/log"
)

type QuestionController struct {
	questionService service.QuestionAdminService
}

func NewQuestionController(qs service.QuestionAdminService) *QuestionController {
	return &QuestionController{questionService: qs}
}

// CreateQuestion godoc
// @Summary (Admin) Add a question to the bank
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question body dto.QuestionCreateDTO true "Question data"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateQuestion: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create question", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetQuestion godoc
// @Summary (Admin) Get one question
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	id, ok := questionID(ctx)
	if !ok {
		return
	}
	resp, err := c.questionService.GetQuestion(id)
	if err != nil {
		respondError(ctx, err, "Failed to load question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListQuestions godoc
// @Summary (Admin) List questions, optionally filtered by type and subject
// @Tags Admin - Questions
// @Produce json
// @Param type query string false "Question type filter"
// @Param subject_id query int false "Subject filter (0 or absent = all subjects)"
// @Success 200 {array} dto.QuestionResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	var subjectID uint
	if raw := ctx.Query("subject_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid subject_id format"})
			return
		}
		subjectID = uint(val)
	}

	resp, err := c.questionService.ListQuestions(ctx.Query("type"), subjectID)
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list questions", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestion godoc
// @Summary (Admin) Replace a question
// @Description Edits do not propagate into already-composed exams; snapshots reference questions by id only.
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question_id path int true "Question ID"
// @Param question body dto.QuestionUpdateDTO true "Replacement question data"
// @Success 200 {object} dto.QuestionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	id, ok := questionID(ctx)
	if !ok {
		return
	}
	var req dto.QuestionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.questionService.UpdateQuestion(id, req)
	if err != nil {
		respondError(ctx, err, "Failed to update question")
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question from the bank
// @Description Snapshots keep their weak reference; exams composed earlier lose displayable content for this question.
// @Tags Admin - Questions
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.AckResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	id, ok := questionID(ctx)
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(id); err != nil {
		respondError(ctx, err, "Failed to delete question")
		return
	}
	ctx.JSON(http.StatusOK, dto.AckResponse{Message: "question deleted"})
}

func questionID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param("question_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid question_id format"})
		return 0, false
	}
	return uint(val), true
}

func respondError(ctx *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrQuestionNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	log.Error().Err(err).Msg(fallback)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
}
