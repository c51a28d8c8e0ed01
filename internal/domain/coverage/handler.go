package coverage

import (
	"errors"
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
	api.POST("/patients/register", h.RegisterPatient)
	api.GET("/patients/:phone/dashboard", h.GetDashboard)
	api.POST("/admin/import/members", h.ImportMembers)
}

type registerRequest struct {
	Name  string `json:"name"`
	DOB   string `json:"dob"`
	Phone string `json:"phone"`
}

type registerResponse struct {
	Patient *Patient `json:"patient"`
	Plan    *Plan    `json:"plan"`
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patient, plan, err := h.svc.ResolveAndRegister(c.Request().Context(), req.Name, req.DOB, req.Phone)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, "name, dob, phone are required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, registerResponse{Patient: patient, Plan: plan})
}

func (h *Handler) GetDashboard(c echo.Context) error {
	phone := c.Param("phone")

	dashboard, err := h.svc.Dashboard(c.Request().Context(), phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dashboard)
}

func (h *Handler) ImportMembers(c echo.Context) error {
	count, err := h.svc.ImportMembersCSV(c.Request().Context(), c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "insurance members loaded",
		"imported": count,
	})
}
