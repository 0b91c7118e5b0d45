package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/wforce/workforce-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	// The immediate run on Start covers the current day after a restart; the
	// seeding is idempotent either way.
	scheduler.AddJob("initialize_attendance_day", DailyAt(0, 0), j.InitializeDay)
}

// InitializeDay seeds today's absent placeholder rows.
func (j *AttendanceJobs) InitializeDay(ctx context.Context) error {
	slog.Info("Cron: Starting attendance day initializer")

	inserted, err := j.attendanceService.InitializeDay(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	slog.Info("Cron: Attendance day initialized", "inserted", inserted)
	return nil
}
