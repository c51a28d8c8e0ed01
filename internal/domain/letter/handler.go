package letter

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medisecure/medisecure/internal/domain/coverage"
	"github.com/medisecure/medisecure/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/letters", h.GenerateLetter)
	api.GET("/letters", h.ListLetters)
	api.GET("/letters/:letter_id/download", h.DownloadLetter)
}

type generateRequest struct {
	Phone      string `json:"phone"`
	LetterType string `json:"letter_type"`
}

func (h *Handler) GenerateLetter(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	l, err := h.svc.Generate(c.Request().Context(), req.Phone, req.LetterType)
	if err != nil {
		if errors.Is(err, coverage.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, l)
}

func (h *Handler) ListLetters(c echo.Context) error {
	phone := c.QueryParam("phone")
	if phone == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "phone query parameter is required")
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPhone(c.Request().Context(), phone, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) DownloadLetter(c echo.Context) error {
	letterID, err := uuid.Parse(c.Param("letter_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid letter_id")
	}

	result, err := h.svc.Download(c.Request().Context(), letterID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "letter not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
