package medication

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/admin/import/medications", h.ImportMedications)
}

func (h *Handler) ImportMedications(c echo.Context) error {
	count, err := h.svc.ImportCSV(c.Request().Context(), c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "medication catalog loaded",
		"imported": count,
	})
}
