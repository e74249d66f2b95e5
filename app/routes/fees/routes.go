package fees

import (
	"github.com/aria7-op/School-MIS-sub029/app/routes/auth"
	"github.com/gofiber/fiber/v2"
)

// SetupFeesRoutes mounts the balance, dues and reconciliation API for a school.
func SetupFeesRoutes(app *fiber.App, h *Handler, jwtSecret string) {
	school := app.Group("/api/schools/:schoolId", auth.AuthMiddleware(jwtSecret), auth.SchoolScope("schoolId"))

	students := school.Group("/students/:studentId")
	students.Get("/balance", h.GetBalanceAPI)
	students.Get("/expected-fees", h.GetExpectedFeesAPI)
	students.Get("/payments", h.GetPaymentTotalsAPI)
	students.Get("/dues", h.GetDuesAPI)

	school.Get("/dues", h.GetStudentsWithDuesAPI)
	school.Post("/payments/reconcile", auth.RoleMiddleware("admin", "accountant"), h.ReconcilePaymentsAPI)
}
