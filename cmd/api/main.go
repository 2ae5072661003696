package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	groupService "github.com/cmlabs-hris/attendance-backend-go/internal/service/group"
	holidayService "github.com/cmlabs-hris/attendance-backend-go/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	overtimeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/overtime"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(context.Background(), cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: int32(cfg.Database.MaxConns),
		MinConns: int32(cfg.Database.MinConns),
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	tx := postgresql.NewTransactor(db)
	clk := clock.New(cfg.Attendance.Location)

	groupRepo := postgresql.NewAttendanceGroupRepository(db)
	shiftRepo := postgresql.NewWorkShiftRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	recordRepo := postgresql.NewAttendanceRecordRepository(db)
	leaveRepo := postgresql.NewLeaveApplicationRepository(db)
	overtimeRepo := postgresql.NewOvertimeApplicationRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration)
	groupSvc := groupService.NewGroupService(tx, groupRepo, shiftRepo)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		tx,
		recordRepo,
		leaveRepo,
		groupRepo,
		groupSvc,
		holidaySvc,
		clk,
		cfg.Attendance,
	)
	leaveSvc := leaveService.NewLeaveService(tx, leaveRepo, overtimeRepo, groupSvc, clk)
	overtimeSvc := overtimeService.NewOvertimeService(tx, overtimeRepo, groupSvc, holidaySvc, clk, cfg.Attendance.Location)
	reportSvc := reportService.NewReportService(reportRepo, recordRepo, leaveRepo, overtimeRepo, clk)

	router := appHTTP.NewRouter(cfg.App, JWTService, appHTTP.Handlers{
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
		Group:      appHTTP.NewGroupHandler(groupSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, clk, cfg.Attendance.AbsenceJobInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.Attendance.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
}
