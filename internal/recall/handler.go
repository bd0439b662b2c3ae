package recall

import (
	"log/slog"
	"net/http"
	"strconv"

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
	g.GET("/recall", h.Search)
}

// @Summary      Search past exchanges
// @Description  Semantic search over archived exchanges using embeddings
// @Tags         recall
// @Produce      json
// @Param        q      query     string  true   "search query"
// @Param        limit  query     int     false  "max matches (default 10)"
// @Success      200    {object}  dto.RecallResponse
// @Failure      400    {object}  shared.APIError
// @Failure      503    {object}  shared.APIError
// @Router       /recall [get]
func (h *Handler) Search(c echo.Context) error {
	if !h.service.Enabled() {
		return shared.ServiceUnavailable("recall_disabled", "recall index is not configured")
	}

	query := c.QueryParam("q")
	if query == "" {
		return shared.BadRequest("missing_query", "q parameter is required")
	}

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	matches, err := h.service.Search(c.Request().Context(), query, limit)
	if err != nil {
		h.logger.Error("recall search failed", "error", err)
		return shared.InternalError("search_failed", "failed to search exchanges")
	}

	resp := dto.RecallResponse{Query: query, Matches: make([]dto.RecallMatch, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, dto.RecallMatch{
			SessionID: m.SessionID,
			Kind:      m.Kind,
			Prompt:    m.Prompt,
			Reply:     m.Reply,
			Score:     m.Score,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
