package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wforce/workforce-backend-go/internal/domain/attendance"
	"github.com/wforce/workforce-backend-go/internal/domain/user"
	"github.com/wforce/workforce-backend-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	txm database.TxManager
	attendance.AttendanceRepository
	orgPrefix string
	now       func() time.Time
}

func NewAttendanceService(
	txm database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	orgPrefix string,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txm:                  txm,
		AttendanceRepository: attendanceRepo,
		orgPrefix:            orgPrefix,
		now:                  time.Now,
	}
}

// Scan implements attendance.AttendanceService. The row for (user, today) is
// locked for the whole transition so two concurrent scans serialize: the
// second one sees the state the first one left behind.
func (s *AttendanceServiceImpl) Scan(ctx context.Context, req attendance.ScanRequest) (*attendance.ScanResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	generatedAt, err := attendance.ParseToken(req.Token, now)
	if err != nil {
		return nil, err
	}
	today := dateOf(now)

	var result *attendance.Attendance
	err = s.txm.RunInTx(ctx, func(ctx context.Context) error {
		att, err := s.AttendanceRepository.GetByUserAndDateForUpdate(ctx, actor.UserID, today)
		switch {
		case err == attendance.ErrAttendanceNotFound:
			att = &attendance.Attendance{
				UserID:      actor.UserID,
				Date:        today,
				CheckInTime: &now,
				Status:      attendance.StatusForCheckIn(generatedAt, now),
			}
			if _, err := s.AttendanceRepository.Create(ctx, att); err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}

		case err != nil:
			return err

		case !att.CheckedIn():
			// Seeded absent row from the daily initializer: promote it.
			att.CheckInTime = &now
			att.Status = attendance.StatusForCheckIn(generatedAt, now)
			if err := s.AttendanceRepository.Update(ctx, att); err != nil {
				return err
			}

		case !att.CheckedOut():
			checkOut := now
			hours := decimal.NewFromFloat(checkOut.Sub(*att.CheckInTime).Hours()).Round(2)
			att.CheckOutTime = &checkOut
			att.WorkHours = &hours
			if err := s.AttendanceRepository.Update(ctx, att); err != nil {
				return err
			}

		default:
			return attendance.ErrAlreadyCheckedOut
		}

		result = att
		return nil
	})
	if err != nil {
		return nil, err
	}

	return attendance.ToScanResponse(result), nil
}

// DailyToken implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DailyToken(ctx context.Context) (*attendance.TokenResponse, error) {
	now := s.now().UTC()
	endOfDay := dateOf(now).Add(24*time.Hour - time.Second)

	return &attendance.TokenResponse{
		Token:       attendance.GenerateToken(s.orgPrefix, now),
		GeneratedAt: now,
		ValidUntil:  endOfDay,
	}, nil
}

// MyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MyAttendance(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	attendances, err := s.AttendanceRepository.ListByUser(ctx, actor.UserID, 30)
	if err != nil {
		return nil, err
	}
	return toResponses(attendances), nil
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceResponse, error) {
	attendances, err := s.AttendanceRepository.ListByDate(ctx, dateOf(date.UTC()))
	if err != nil {
		return nil, err
	}
	return toResponses(attendances), nil
}

// InitializeDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) InitializeDay(ctx context.Context, date time.Time) (int64, error) {
	inserted, err := s.AttendanceRepository.SeedAbsentForDate(ctx, dateOf(date.UTC()))
	if err != nil {
		return 0, fmt.Errorf("failed to seed attendance for %s: %w", date.Format("2006-01-02"), err)
	}

	slog.Info("attendance day initialized",
		"date", date.Format("2006-01-02"),
		"inserted", inserted,
	)
	return inserted, nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toResponses(attendances []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, *attendance.ToResponse(&att))
	}
	return responses
}
