package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-engine-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/attendance-engine-go/internal/service/auth"
	periodOverrideService "github.com/cmlabs-hris/attendance-engine-go/internal/service/periodoverride"
	reportService "github.com/cmlabs-hris/attendance-engine-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	periodOverrideRepo := postgresql.NewPeriodOverrideRepository(db)
	payPeriodRepo := postgresql.NewPayPeriodRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	roundingRuleRepo := postgresql.NewRoundingRuleRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	userRepo := postgresql.NewUserRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	calculator := attendanceService.NewCalculator(
		cfg.Engine.StandardDailyHours,
		cfg.Engine.DefaultEntitlementHours,
	)

	attendanceSvc := attendanceService.NewService(
		db,
		attendanceRepo,
		employeeRepo,
		payPeriodRepo,
		holidayRepo,
		roundingRuleRepo,
		calculator,
		cfg.Engine.ImportMaxRows,
	)
	periodOverrideSvc := periodOverrideService.NewService(periodOverrideRepo, employeeRepo)
	reportSvc := reportService.NewService(attendanceRepo, periodOverrideRepo, employeeRepo)
	authSvc := authService.NewService(userRepo, jwtService)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	periodOverrideHandler := appHTTP.NewPeriodOverrideHandler(periodOverrideSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		attendanceHandler,
		periodOverrideHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, payPeriodRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
