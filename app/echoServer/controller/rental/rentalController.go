package rental

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	rs "github.com/Shermawns/Library-API/service/rental"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/v1/rentals
func (h *Controller) Rent(c echo.Context) error {
	var req RentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "due_date must be YYYY-MM-DD"})
	}

	rt, err := h.Svc.Rent(c.Request().Context(), req.StudentID, req.BookID, due)
	if err != nil {
		h.Log.Error("rental create", "err", err)
		switch rs.Code(err) {
		case rs.ErrStudentNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		case rs.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		case rs.ErrBookNotAvailable:
			return c.JSON(http.StatusConflict, echo.Map{"message": "book not available for rental"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, rt)
}

// POST /api/v1/rentals/:id/return
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	if err := h.Svc.Return(c.Request().Context(), id); err != nil {
		h.Log.Error("rental return", "err", err)
		switch rs.Code(err) {
		case rs.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrAlreadyReturned:
			return c.JSON(http.StatusConflict, echo.Map{"message": "rental already returned"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "book returned"})
}

// POST /api/v1/rentals/:id/extend
func (h *Controller) Extend(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req ExtendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	newDue, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "due_date must be YYYY-MM-DD"})
	}

	if err := h.Svc.Extend(c.Request().Context(), id, newDue); err != nil {
		h.Log.Error("rental extend", "err", err)
		switch rs.Code(err) {
		case rs.ErrRentalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "rental not found"})
		case rs.ErrAlreadyReturned:
			return c.JSON(http.StatusConflict, echo.Map{"message": "rental already returned"})
		case rs.ErrBadDueDate:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "new due date must be after the current one"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rental extended"})
}

// GET /api/v1/rentals/student/:studentId
func (h *Controller) ByStudent(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("studentId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ListByStudent(c.Request().Context(), id)
	if err != nil {
		if rs.Code(err) == rs.ErrStudentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "student not found"})
		}
		h.Log.Error("rentals by student", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /api/v1/rentals/book/:bookId
func (h *Controller) ByBook(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ListByBook(c.Request().Context(), id)
	if err != nil {
		if rs.Code(err) == rs.ErrBookNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "book not found"})
		}
		h.Log.Error("rentals by book", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /api/v1/rentals/active
func (h *Controller) Active(c echo.Context) error {
	rows, err := h.Svc.ListActive(c.Request().Context())
	if err != nil {
		h.Log.Error("active rentals", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /api/v1/rentals/overdue
func (h *Controller) Overdue(c echo.Context) error {
	rows, err := h.Svc.ListOverdue(c.Request().Context())
	if err != nil {
		h.Log.Error("overdue rentals", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /api/v1/ranking/students
func (h *Controller) Ranking(c echo.Context) error {
	rows, err := h.Svc.RankStudents(c.Request().Context())
	if err != nil {
		h.Log.Error("student ranking", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
