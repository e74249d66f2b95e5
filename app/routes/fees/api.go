package fees

import (
	"errors"
	"strings"
	"time"

	"github.com/aria7-op/School-MIS-sub029/app/logger"
	"github.com/aria7-op/School-MIS-sub029/app/models"
	"github.com/aria7-op/School-MIS-sub029/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Handler serves the fee engine over HTTP.
type Handler struct {
	service  *services.FeeService
	validate *validator.Validate
	loc      *time.Location
	log      zerolog.Logger
}

// NewHandler creates a handler. Dates in query strings are read in loc.
func NewHandler(service *services.FeeService, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	v := validator.New()
	if err := v.RegisterValidation("payment_statuses", validPaymentStatuses); err != nil {
		panic(err)
	}
	return &Handler{
		service:  service,
		validate: v,
		loc:      loc,
		log:      logger.WithComponent("fees-api"),
	}
}

type studentParams struct {
	SchoolID  string `validate:"required,max=64"`
	StudentID string `validate:"required,max=64"`
}

type paymentsQuery struct {
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Status string `query:"status" validate:"omitempty,payment_statuses"`
}

type duesQuery struct {
	ClassID      string `query:"classId" validate:"omitempty,max=64"`
	MinDueAmount string `query:"minDueAmount" validate:"omitempty,numeric"`
	Limit        int    `query:"limit" validate:"omitempty,min=1,max=1000"`
}

func validPaymentStatuses(fl validator.FieldLevel) bool {
	for _, s := range splitStatuses(fl.Field().String()) {
		if !s.Valid() {
			return false
		}
	}
	return true
}

func splitStatuses(raw string) []models.PaymentStatus {
	parts := lo.Compact(lo.Map(strings.Split(raw, ","), func(s string, _ int) string {
		return strings.ToUpper(strings.TrimSpace(s))
	}))
	return lo.Map(parts, func(s string, _ int) models.PaymentStatus { return models.PaymentStatus(s) })
}

func (h *Handler) studentParams(c *fiber.Ctx) (studentParams, error) {
	p := studentParams{SchoolID: c.Params("schoolId"), StudentID: c.Params("studentId")}
	return p, h.validate.Struct(p)
}

// GetBalanceAPI returns the balance report of a student
func (h *Handler) GetBalanceAPI(c *fiber.Ctx) error {
	p, err := h.studentParams(c)
	if err != nil {
		return h.fail(c, err)
	}

	report, err := h.service.Balance(c.UserContext(), p.StudentID, p.SchoolID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": report})
}

// GetExpectedFeesAPI returns the monthly fee entitlement of a student
func (h *Handler) GetExpectedFeesAPI(c *fiber.Ctx) error {
	p, err := h.studentParams(c)
	if err != nil {
		return h.fail(c, err)
	}

	fees, err := h.service.ExpectedFees(c.UserContext(), p.StudentID, p.SchoolID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fees})
}

// GetPaymentTotalsAPI aggregates a student's payments, optionally filtered by
// date range and status list
func (h *Handler) GetPaymentTotalsAPI(c *fiber.Ctx) error {
	p, err := h.studentParams(c)
	if err != nil {
		return h.fail(c, err)
	}

	var q paymentsQuery
	if err := c.QueryParser(&q); err != nil {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters"))
	}
	if err := h.validate.Struct(q); err != nil {
		return h.fail(c, err)
	}

	filter := models.PaymentFilter{}
	if q.From != "" {
		from, _ := time.ParseInLocation(dateLayout, q.From, h.loc)
		filter.From = &from
	}
	if q.To != "" {
		to, _ := time.ParseInLocation(dateLayout, q.To, h.loc)
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "'to' must not be before 'from'"))
	}
	if q.Status != "" {
		filter.Statuses = splitStatuses(q.Status)
	}

	totals, err := h.service.TotalPayments(c.UserContext(), p.StudentID, p.SchoolID, filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": totals})
}

// GetDuesAPI returns the month by month dues of a student
func (h *Handler) GetDuesAPI(c *fiber.Ctx) error {
	p, err := h.studentParams(c)
	if err != nil {
		return h.fail(c, err)
	}

	dues, err := h.service.Dues(c.UserContext(), p.StudentID, p.SchoolID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": dues})
}

// GetStudentsWithDuesAPI lists the students of a school that owe money
func (h *Handler) GetStudentsWithDuesAPI(c *fiber.Ctx) error {
	schoolID := c.Params("schoolId")

	var q duesQuery
	if err := c.QueryParser(&q); err != nil {
		return h.fail(c, fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters"))
	}
	if err := h.validate.Struct(q); err != nil {
		return h.fail(c, err)
	}

	query := models.DuesQuery{ClassID: q.ClassID, Limit: q.Limit}
	if q.MinDueAmount != "" {
		query.MinDueAmount = decimal.RequireFromString(q.MinDueAmount)
	}

	scan, err := h.service.StudentsWithDues(c.UserContext(), schoolID, query)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": scan})
}

// ReconcilePaymentsAPI re-derives payment statuses for the school
func (h *Handler) ReconcilePaymentsAPI(c *fiber.Ctx) error {
	schoolID := c.Params("schoolId")

	result, err := h.service.ReconcilePaymentStatuses(c.UserContext(), schoolID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": result})
}

// fail maps an error onto the API envelope.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var (
		ve validator.ValidationErrors
		fe *fiber.Error
	)

	switch {
	case errors.Is(err, models.ErrStudentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Student not found"})
	case errors.As(err, &ve):
		details := make(map[string]string, len(ve))
		for _, fieldErr := range ve {
			details[fieldErr.Field()] = fieldErr.Tag()
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": details})
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"success": false, "message": fe.Message})
	}

	h.log.Error().Err(err).
		Str("path", c.Path()).
		Str("school_id", c.Params("schoolId")).
		Str("student_id", c.Params("studentId")).
		Msg("Fee request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Internal server error"})
}
