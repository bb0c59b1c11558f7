package main

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/workzen/hrms-backend-go/internal/config"
	appHTTP "github.com/workzen/hrms-backend-go/internal/handler/http"
	"github.com/workzen/hrms-backend-go/internal/pkg/cron"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
	"github.com/workzen/hrms-backend-go/internal/pkg/jwt"
	"github.com/workzen/hrms-backend-go/internal/pkg/oauth"
	"github.com/workzen/hrms-backend-go/internal/repository/postgresql"
	analyticsService "github.com/workzen/hrms-backend-go/internal/service/analytics"
	attendanceService "github.com/workzen/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/workzen/hrms-backend-go/internal/service/auth"
	employeeService "github.com/workzen/hrms-backend-go/internal/service/employee"
	leaveService "github.com/workzen/hrms-backend-go/internal/service/leave"
	"github.com/workzen/hrms-backend-go/internal/service/master"
	payrollService "github.com/workzen/hrms-backend-go/internal/service/payroll"
)

func main() {
	// Monetary amounts serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveAllocationRepo := postgresql.NewLeaveAllocationRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	salaryComponentRepo := postgresql.NewSalaryComponentRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	analyticsRepo := postgresql.NewAnalyticsRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveAllocationRepo, leaveRequestRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, userRepo, departmentRepo, designationRepo, leaveSvc)
	masterService := master.NewMasterService(departmentRepo, designationRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(db, salaryComponentRepo, payslipRepo, attendanceRepo, leaveRequestRepo, employeeRepo)
	analyticsSvc := analyticsService.NewAnalyticsService(analyticsRepo)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	masterHandler := appHTTP.NewMasterHandler(masterService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)

	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc, leaveSvc, employeeRepo)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:        JWTService,
		AuthHandler:       authHandler,
		EmployeeHandler:   employeeHandler,
		MasterHandler:     masterHandler,
		AttendanceHandler: attendanceHandler,
		LeaveHandler:      leaveHandler,
		PayrollHandler:    payrollHandler,
		AnalyticsHandler:  analyticsHandler,
		AllowedOrigins:    cfg.App.AllowedOrigins,
		Environment:       cfg.App.Env,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
