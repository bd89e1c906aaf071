package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/essaymark/essaymark-api/internal/assess"
	"github.com/essaymark/essaymark-api/internal/dto"
	"github.com/essaymark/essaymark-api/internal/rubric"
	"github.com/essaymark/essaymark-api/internal/service"
	"github.com/essaymark/essaymark-api/internal/utils"
)

// AssessmentHandler manages the marking endpoints.
type AssessmentHandler struct {
	service service.AssessmentService
	logger  zerolog.Logger
}

// NewAssessmentHandler builds an assessment handler instance.
func NewAssessmentHandler(service service.AssessmentService, logger zerolog.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assessment_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *AssessmentHandler) Register(router fiber.Router) {
	router.Post("/essay", h.assessEssay)
	router.Post("/component", h.assessComponent)
	router.Post("/petal", h.assessPetal)
	router.Post("/short-answer", h.assessShortAnswer)
	router.Post("/short-answer/batch", h.assessShortAnswerBatch)
	router.Get("/results/:id", h.getResult)
}

func (h *AssessmentHandler) assessEssay(c *fiber.Ctx) error {
	var payload dto.EssayAssessRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.AssessEssay(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "essay assessed", result)
}

func (h *AssessmentHandler) assessComponent(c *fiber.Ctx) error {
	var payload dto.ComponentAssessRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.AssessComponent(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "component assessed", result)
}

func (h *AssessmentHandler) assessPetal(c *fiber.Ctx) error {
	var payload dto.PetalAssessRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.AssessPetal(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "paragraph assessed", result)
}

func (h *AssessmentHandler) assessShortAnswer(c *fiber.Ctx) error {
	var payload dto.ShortAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.AssessShortAnswer(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "answer assessed", result)
}

func (h *AssessmentHandler) assessShortAnswerBatch(c *fiber.Ctx) error {
	var payload dto.ShortAnswerBatchRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.AssessShortAnswerBatch(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "section assessed", result)
}

func (h *AssessmentHandler) getResult(c *fiber.Ctx) error {
	submissionID := c.Params("id")
	if submissionID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "submission id is required")
	}

	result, err := h.service.GetResult(c.Context(), submissionID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "assessment retrieved", result)
}

func (h *AssessmentHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	var unknownRubric rubric.ErrUnknownRubric
	switch {
	case errors.Is(err, assess.ErrSubmissionTooShort):
		return utils.SendError(c, fiber.StatusBadRequest, "submission is too short to assess")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	case errors.As(err, &unknownRubric):
		return utils.SendError(c, fiber.StatusBadRequest, unknownRubric.Error())
	case errors.Is(err, service.ErrAssessmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assessment not found")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
