package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/workzen/hrms-backend-go/internal/domain/user"
	"github.com/workzen/hrms-backend-go/internal/handler/http/middleware"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterDeps struct {
	JWTService        jwt.Service
	AuthHandler       AuthHandler
	EmployeeHandler   EmployeeHandler
	MasterHandler     MasterHandler
	AttendanceHandler AttendanceHandler
	LeaveHandler      LeaveHandler
	PayrollHandler    PayrollHandler
	AnalyticsHandler  AnalyticsHandler
	AllowedOrigins    []string
	Environment       string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hrms-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.AuthHandler.Register)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", deps.AuthHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", deps.AuthHandler.Login)
				r.Post("/login-id", deps.AuthHandler.LoginWithLoginID)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", deps.AuthHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Get("/auth/me", deps.AuthHandler.Me)

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Put("/{id}", deps.AuthHandler.UpdateUser)
				r.Delete("/{id}", deps.AuthHandler.DeleteUser)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", deps.EmployeeHandler.GetMyProfile)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", deps.EmployeeHandler.ListEmployees)
					r.Post("/", deps.EmployeeHandler.CreateEmployee)
					r.Get("/{id}", deps.EmployeeHandler.GetEmployee)
					r.Put("/{id}", deps.EmployeeHandler.UpdateEmployee)
					r.Delete("/{id}", deps.EmployeeHandler.DeleteEmployee)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", deps.MasterHandler.ListDepartments)
				r.Get("/{id}", deps.MasterHandler.GetDepartment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", deps.MasterHandler.CreateDepartment)
					r.Put("/{id}", deps.MasterHandler.UpdateDepartment)
					r.Delete("/{id}", deps.MasterHandler.DeleteDepartment)
				})
			})

			r.Route("/designations", func(r chi.Router) {
				r.Get("/", deps.MasterHandler.ListDesignations)
				r.Get("/{id}", deps.MasterHandler.GetDesignation)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", deps.MasterHandler.CreateDesignation)
					r.Put("/{id}", deps.MasterHandler.UpdateDesignation)
					r.Delete("/{id}", deps.MasterHandler.DeleteDesignation)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", deps.AttendanceHandler.CheckIn)
				r.Post("/check-out", deps.AttendanceHandler.CheckOut)
				r.Get("/me", deps.AttendanceHandler.ListMy)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", deps.AttendanceHandler.List)
					r.Post("/", deps.AttendanceHandler.Mark)
					r.Post("/mark-absentees", deps.AttendanceHandler.MarkAbsentees)
					r.Get("/summary/{employeeID}", deps.AttendanceHandler.GetSummary)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", deps.LeaveHandler.ListLeaveTypes)
				r.Post("/requests", deps.LeaveHandler.Apply)
				r.Get("/requests/me", deps.LeaveHandler.ListMy)
				r.Get("/balance/me", deps.LeaveHandler.GetMyBalance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/types", deps.LeaveHandler.CreateLeaveType)
					r.Get("/balance/{employeeID}", deps.LeaveHandler.GetBalance)
					r.Put("/balance/{employeeID}", deps.LeaveHandler.SetAllocation)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Get("/requests", deps.LeaveHandler.ListAll)
					r.Get("/requests/pending", deps.LeaveHandler.ListPending)
					r.Put("/requests/{id}/review", deps.LeaveHandler.Review)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequirePayroll)

				r.Route("/employees/{employeeID}/salary-components", func(r chi.Router) {
					r.Post("/", deps.PayrollHandler.CreateSalaryComponent)
					r.Get("/", deps.PayrollHandler.ListSalaryComponents)
					r.Get("/current", deps.PayrollHandler.GetCurrentSalaryComponent)
				})

				r.Post("/generate-payrun", deps.PayrollHandler.GeneratePayrun)
				r.Post("/validate-payrun", deps.PayrollHandler.ValidatePayrun)
				r.Post("/compute-payslip/{id}", deps.PayrollHandler.ComputePayslip)
				r.Post("/validate-payslip/{id}", deps.PayrollHandler.ValidatePayslip)
				r.Get("/payslips/{month}/{year}", deps.PayrollHandler.ListPayslips)
				r.Get("/payruns", deps.PayrollHandler.GetPayrunHistory)
				r.Get("/warnings", deps.PayrollHandler.GetWarnings)
				r.Get("/cost-series", deps.PayrollHandler.GetEmployerCostSeries)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAnalyticsView))
				r.Get("/employees", deps.AnalyticsHandler.GetEmployeeStats)
				r.Get("/attendance", deps.AnalyticsHandler.GetAttendanceSummary)
				r.Get("/leave", deps.AnalyticsHandler.GetLeaveSummary)
				r.Get("/payroll", deps.AnalyticsHandler.GetPayrollSummary)
			})
		})
	})
	return r
}
