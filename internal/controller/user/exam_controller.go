package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quizling/internal/dto"
	"github.com/lshigami/Quizling/internal/service"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	examService       service.ExamService
	submissionService service.ExamSubmissionService
}

func NewExamController(es service.ExamService, ss service.ExamSubmissionService) *ExamController {
	return &ExamController{examService: es, submissionService: ss}
}

// ComposeExam godoc
// @Summary Compose a randomized exam from the question bank
// @Description Draws questions per requested (type, count, score) item in item order. Out-of-range numbers are clamped, undersized pools contribute what they have.
// @Tags Exams
// @Accept json
// @Produce json
// @Param compose_request body dto.ExamComposeDTO true "Owner, subject scope, duration and per-type items"
// @Success 201 {object} map[string]uint
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 500 {object} dto.ErrorResponse "Composition failed"
// @Router /exams [post]
func (c *ExamController) ComposeExam(ctx *gin.Context) {
	var req dto.ExamComposeDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	examID, err := c.examService.Compose(req)
	if err != nil {
		log.Error().Err(err).Msg("ComposeExam: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to compose exam", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"exam_id": examID})
}

// GetExam godoc
// @Summary Get an exam with its ordered question snapshots
// @Description Owner-gated; a viewer with admin=true gets a read-only bypass. Answer keys appear only after submission.
// @Tags Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param user_id query int true "Viewer user ID"
// @Param admin query bool false "Administrative read-only bypass"
// @Success 200 {object} dto.ExamDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 403 {object} dto.ErrorResponse "Viewer is not the owner"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	viewerID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	isAdmin := ctx.Query("admin") == "true"

	detail, err := c.examService.GetExam(examID, viewerID, isAdmin)
	if err != nil {
		respondServiceError(ctx, err, "Failed to load exam")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// SaveDraft godoc
// @Summary Save partial answers for an ongoing exam
// @Description Repeatable pre-submission persistence. Only user answers change; unmatched question ids are ignored, last write wins.
// @Tags Exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param draft body dto.ExamSubmitDTO true "Owner ID and partial answers"
// @Success 200 {object} dto.AckResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the owner"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam already submitted"
// @Router /exams/{exam_id}/draft [put]
func (c *ExamController) SaveDraft(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.ExamSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.submissionService.SaveDraft(examID, req.UserID, req.Answers); err != nil {
		respondServiceError(ctx, err, "Failed to save draft")
		return
	}
	ctx.JSON(http.StatusOK, dto.AckResponse{Message: "draft saved"})
}

// SubmitExam godoc
// @Summary Submit an exam for grading
// @Description Grades every snapshot (unanswered ones against the empty string), freezes the exam and returns the totals. A second submit fails with 409 and writes nothing.
// @Tags Exams
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param submission body dto.ExamSubmitDTO true "Owner ID and answers"
// @Success 200 {object} dto.ExamResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the owner"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam already submitted"
// @Router /exams/{exam_id}/submit [post]
func (c *ExamController) SubmitExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.ExamSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.Submit(examID, req.UserID, req.Answers)
	if err != nil {
		respondServiceError(ctx, err, "Failed to submit exam")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// DeleteExam godoc
// @Summary Delete an exam and all its snapshots
// @Tags Exams
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param user_id query int true "Owner user ID"
// @Success 200 {object} dto.AckResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 403 {object} dto.ErrorResponse "Caller is not the owner"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	callerID, ok := queryUserID(ctx)
	if !ok {
		return
	}

	if err := c.examService.DeleteExam(examID, callerID); err != nil {
		respondServiceError(ctx, err, "Failed to delete exam")
		return
	}
	ctx.JSON(http.StatusOK, dto.AckResponse{Message: "exam deleted"})
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func queryUserID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id query parameter"})
		return 0, false
	}
	return uint(val), true
}

func respondServiceError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrExamNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrAlreadySubmitted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg(fallback)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
	}
}
