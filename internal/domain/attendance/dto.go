package attendance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wforce/workforce-backend-go/internal/pkg/validator"
)

type ScanRequest struct {
	Token string `json:"token"`
}

func (r ScanRequest) Validate() error {
	if validator.IsEmpty(r.Token) {
		return validator.ValidationErrors{{Field: "token", Message: "token is required"}}
	}
	return nil
}

type ScanResponse struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	Status       Status           `json:"status"`
	CheckInTime  *time.Time       `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time       `json:"check_out_time,omitempty"`
	WorkHours    *decimal.Decimal `json:"work_hours,omitempty"`
}

type AttendanceResponse struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	UserName     *string          `json:"user_name,omitempty"`
	Date         string           `json:"date"`
	Status       Status           `json:"status"`
	CheckInTime  *time.Time       `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time       `json:"check_out_time,omitempty"`
	WorkHours    *decimal.Decimal `json:"work_hours,omitempty"`
}

type InitializeResponse struct {
	Date     string `json:"date"`
	Inserted int64  `json:"inserted"`
}

type TokenResponse struct {
	Token       string    `json:"token"`
	GeneratedAt time.Time `json:"generated_at"`
	ValidUntil  time.Time `json:"valid_until"`
}

func ToScanResponse(a *Attendance) *ScanResponse {
	return &ScanResponse{
		ID:           a.ID,
		Date:         a.Date.Format("2006-01-02"),
		Status:       a.Status,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		WorkHours:    a.WorkHours,
	}
}

func ToResponse(a *Attendance) *AttendanceResponse {
	return &AttendanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		UserName:     a.UserName,
		Date:         a.Date.Format("2006-01-02"),
		Status:       a.Status,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		WorkHours:    a.WorkHours,
	}
}
