package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/wforce/workforce-backend-go/internal/config"
	appHTTP "github.com/wforce/workforce-backend-go/internal/handler/http"
	"github.com/wforce/workforce-backend-go/internal/pkg/cron"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
	"github.com/wforce/workforce-backend-go/internal/pkg/email"
	"github.com/wforce/workforce-backend-go/internal/pkg/jwt"
	"github.com/wforce/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/wforce/workforce-backend-go/internal/service/attendance"
	ledgerService "github.com/wforce/workforce-backend-go/internal/service/ledger"
	requestService "github.com/wforce/workforce-backend-go/internal/service/request"
	taskService "github.com/wforce/workforce-backend-go/internal/service/task"
	userService "github.com/wforce/workforce-backend-go/internal/service/user"
)

func main() {
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

	txManager := postgresql.NewTxManager(db)
	userRepo := postgresql.NewUserRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	ledgerSvc := ledgerService.NewLedgerService(leaveBalanceRepo, userRepo, cfg.Leave.DefaultAllotment)
	requestSvc := requestService.NewRequestService(txManager, requestRepo, userRepo, ledgerSvc)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, cfg.Attendance.OrgPrefix)
	userSvc := userService.NewUserService(txManager, userRepo, departmentRepo, emailSvc)
	taskSvc := taskService.NewTaskService(taskRepo, userRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	userHandler := appHTTP.NewUserHandler(userSvc)
	requestHandler := appHTTP.NewRequestHandler(requestSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	taskHandler := appHTTP.NewTaskHandler(taskSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		userHandler,
		requestHandler,
		attendanceHandler,
		taskHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
