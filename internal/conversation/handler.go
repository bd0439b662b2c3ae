package conversation

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/genie-desktop/genie-backend/internal/dto"
	"github.com/genie-desktop/genie-backend/internal/shared"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/screen/explain", h.ExplainScreen)
	g.GET("/screen/explain/stream", h.ExplainScreenStream)
	g.POST("/ask", h.Ask)
	g.POST("/chat", h.Chat)
	g.GET("/chat/ws", h.ChatWS)
}

// toHTTPError maps orchestrator errors onto the 4xx/5xx split: input errors
// are the caller's fault, edge and backend failures are not.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, shared.ErrEmptyMessage):
		return shared.BadRequest("empty_message", "message must not be empty")
	case errors.Is(err, shared.ErrInvalidSession):
		return shared.NotFound("invalid_session", "no such session")
	case errors.Is(err, shared.ErrEmptyExtractedText):
		return shared.UnprocessableEntity("empty_extracted_text", "no text could be extracted from the screen")
	case errors.Is(err, shared.ErrCaptureFailed):
		return shared.InternalError("capture_failed", err.Error())
	case errors.Is(err, shared.ErrOCRFailed):
		return shared.InternalError("ocr_failed", err.Error())
	case errors.Is(err, shared.ErrModelInvocation):
		return shared.BadGateway("model_invocation_failed", err.Error())
	default:
		return shared.InternalError("internal_error", err.Error())
	}
}

// @Summary      Explain the captured screen
// @Description  Captures the screen, extracts text with OCR and returns a structured classification in a fresh session
// @Tags         screen
// @Produce      json
// @Success      200  {object}  dto.ExplainResponse
// @Failure      422  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Failure      502  {object}  shared.APIError
// @Router       /screen/explain [post]
func (h *Handler) ExplainScreen(c echo.Context) error {
	result, err := h.service.ExplainScreen(c.Request().Context())
	if err != nil {
		h.logger.Error("explain screen failed", "error", err)
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ExplainResponse{
		SessionID:     result.SessionID,
		ExtractedText: result.ExtractedText,
		Result: dto.StructuredResult{
			Type:                  result.Result.Type,
			SolutionOrExplanation: result.Result.SolutionOrExplanation,
			ExtraNotes:            result.Result.ExtraNotes,
		},
	})
}

// @Summary      Stream a screen explanation
// @Description  Captures the screen, extracts text with OCR and streams a markdown explanation as server-sent events
// @Tags         screen
// @Produce      text/event-stream
// @Success      200  {string}  string  "markdown fragments"
// @Failure      422  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /screen/explain/stream [get]
func (h *Handler) ExplainScreenStream(c echo.Context) error {
	ctx := c.Request().Context()

	_, fragments, err := h.service.ExplainScreenStream(ctx)
	if err != nil {
		h.logger.Error("explain screen stream failed", "error", err)
		return toHTTPError(err)
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	for fragment := range fragments {
		if err := writeSSE(w, fragment); err != nil {
			return nil
		}
		w.Flush()
	}

	fmt.Fprint(w, "event: done\ndata: \n\n")
	w.Flush()
	return nil
}

func writeSSE(w *echo.Response, fragment string) error {
	for _, line := range strings.Split(fragment, "\n") {
		if _, err := fmt.Fprintf(w, "data: %s\n", line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "\n")
	return err
}

// @Summary      Ask a one-shot question
// @Description  Starts a fresh session, answers the question and returns the session id for follow-ups
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AskRequest  true  "question"
// @Success      200      {object}  dto.AskResponse
// @Failure      400      {object}  shared.APIError
// @Failure      502      {object}  shared.APIError
// @Router       /ask [post]
func (h *Handler) Ask(c echo.Context) error {
	var req dto.AskRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	result, err := h.service.AskOnce(c.Request().Context(), req.Question)
	if err != nil {
		if !errors.Is(err, shared.ErrEmptyMessage) {
			h.logger.Error("ask failed", "error", err)
		}
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.AskResponse{
		SessionID: result.SessionID,
		Reply:     result.Reply,
	})
}

// @Summary      Continue a conversation
// @Description  Appends one exchange to an existing session, replaying its full history to the model
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ChatRequest  true  "session id and message"
// @Success      200      {object}  dto.ChatResponse
// @Failure      400      {object}  shared.APIError
// @Failure      404      {object}  shared.APIError
// @Failure      502      {object}  shared.APIError
// @Router       /chat [post]
func (h *Handler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	result, err := h.service.Continue(c.Request().Context(), req.SessionID, req.Message)
	if err != nil {
		if !errors.Is(err, shared.ErrEmptyMessage) && !errors.Is(err, shared.ErrInvalidSession) {
			h.logger.Error("chat failed", "error", err, "session_id", req.SessionID)
		}
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ChatResponse{
		SessionID: result.SessionID,
		Reply:     result.Reply,
	})
}
