package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"flashcard-srs/internal/application/usecases"
	"flashcard-srs/internal/domain/card"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the review engine over HTTP.
type Handler struct {
	cards  *usecases.CardUseCase
	study  *usecases.StudyUseCase
	review *usecases.ReviewUseCase
	stats  *usecases.StatsUseCase
	cfg    card.SchedulerConfig
}

// NewHandler creates a new REST handler.
func NewHandler(
	cards *usecases.CardUseCase,
	study *usecases.StudyUseCase,
	review *usecases.ReviewUseCase,
	stats *usecases.StatsUseCase,
	cfg card.SchedulerConfig,
) *Handler {
	return &Handler{
		cards:  cards,
		study:  study,
		review: review,
		stats:  stats,
		cfg:    cfg,
	}
}

// RegisterRoutes mounts the engine's endpoints under /api/v1.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/cards", h.HandleCreateCard)
		api.GET("/cards/:id", h.HandleGetCard)
		api.DELETE("/cards/:id", h.HandleDeleteCard)

		api.GET("/decks/:deckId/due-cards", h.HandleGetDueCards)
		api.GET("/decks/:deckId/new-cards", h.HandleGetNewCards)
		api.GET("/decks/:deckId/session", h.HandleGetSession)
		api.GET("/decks/:deckId/stats", h.HandleGetDeckStats)

		api.POST("/reviews", h.HandleSubmitReview)
	}
}

// HandleCreateCard processes POST /api/v1/cards
func (h *Handler) HandleCreateCard(c *gin.Context) {
	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deckID, err := uuid.Parse(req.DeckID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deck id"})
		return
	}

	created, err := h.cards.RegisterCard(c.Request.Context(), deckID, req.Front, req.Back, req.Hint, time.Now().UTC())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCardResponse(created, h.cfg))
}

// HandleGetCard processes GET /api/v1/cards/:id
func (h *Handler) HandleGetCard(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	found, err := h.cards.GetCard(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponse(found, h.cfg))
}

// HandleDeleteCard processes DELETE /api/v1/cards/:id
func (h *Handler) HandleDeleteCard(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.cards.RemoveCard(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleGetDueCards processes GET /api/v1/decks/:deckId/due-cards
func (h *Handler) HandleGetDueCards(c *gin.Context) {
	deckID, ok := h.pathUUID(c, "deckId")
	if !ok {
		return
	}
	limit := h.queryLimit(c, 50)

	cards, err := h.study.DueCards(c.Request.Context(), deckID, time.Now().UTC(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": toCardResponses(cards, h.cfg)})
}

// HandleGetNewCards processes GET /api/v1/decks/:deckId/new-cards
func (h *Handler) HandleGetNewCards(c *gin.Context) {
	deckID, ok := h.pathUUID(c, "deckId")
	if !ok {
		return
	}
	limit := h.queryLimit(c, 20)

	cards, err := h.study.NewCards(c.Request.Context(), deckID, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": toCardResponses(cards, h.cfg)})
}

// HandleGetSession processes GET /api/v1/decks/:deckId/session
func (h *Handler) HandleGetSession(c *gin.Context) {
	deckID, ok := h.pathUUID(c, "deckId")
	if !ok {
		return
	}

	queue, err := h.study.BuildSession(c.Request.Context(), deckID, time.Now().UTC())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": toCardResponses(queue, h.cfg)})
}

// HandleGetDeckStats processes GET /api/v1/decks/:deckId/stats
func (h *Handler) HandleGetDeckStats(c *gin.Context) {
	deckID, ok := h.pathUUID(c, "deckId")
	if !ok {
		return
	}

	stats, err := h.stats.ComputeStats(c.Request.Context(), deckID, time.Now().UTC())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDeckStatsResponse(stats))
}

// HandleSubmitReview processes POST /api/v1/reviews
func (h *Handler) HandleSubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cardID, err := uuid.Parse(req.FlashcardID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flashcard id"})
		return
	}

	updated, err := h.review.SubmitReview(c.Request.Context(), cardID,
		card.Quality(req.Quality), req.TimeTakenSeconds, time.Now().UTC())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCardResponse(updated, h.cfg))
}

// writeError maps the engine's error taxonomy onto HTTP status codes.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, card.ErrInvalidQuality), errors.Is(err, card.ErrInvalidTiming):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, card.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, card.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) queryLimit(c *gin.Context, fallback int) int {
	raw := c.Query("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
