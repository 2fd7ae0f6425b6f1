package student

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Shermawns/Library-API/model"
	studentsvc "github.com/Shermawns/Library-API/service/student"
)

type Controller struct {
	Svc studentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/v1/students
func (h *Controller) Create(c echo.Context) error {
	var req CreateStudentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	st := &model.Student{
		Name:       req.Name,
		Enrollment: req.Enrollment,
		Email:      req.Email,
	}
	if err := h.Svc.Create(c.Request().Context(), st); err != nil {
		switch {
		case errors.Is(err, studentsvc.ErrEnrollmentTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "enrollment already registered"})
		case errors.Is(err, studentsvc.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already in use"})
		default:
			h.Log.Error("student create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, st)
}

// PUT /api/v1/students/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStudentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	st, err := h.Svc.Update(c.Request().Context(), id, studentsvc.UpdateReq{
		Name:       req.Name,
		Enrollment: req.Enrollment,
		Email:      req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, studentsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		case errors.Is(err, studentsvc.ErrEnrollmentTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "enrollment already registered"})
		case errors.Is(err, studentsvc.ErrEmailTaken):
			return c.JSON(http.StatusConflict, echo.Map{"message": "email already in use"})
		default:
			h.Log.Error("student update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, st)
}

// DELETE /api/v1/students/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, studentsvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		case errors.Is(err, studentsvc.ErrHasRentals):
			return c.JSON(http.StatusConflict, echo.Map{"message": "student has rental history"})
		default:
			h.Log.Error("student delete", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "student removed"})
}

// GET /api/v1/students
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("student list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /api/v1/students/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	st, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, studentsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		}
		h.Log.Error("student detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, st)
}
