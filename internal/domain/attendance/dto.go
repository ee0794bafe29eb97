package attendance

import (
	"strconv"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

const (
	ActionCheckIn  = "checkin"
	ActionCheckOut = "checkout"

	// MaxListRows caps every attendance listing.
	MaxListRows = 100
)

type RecordRequest struct {
	Action string `json:"action"`
}

func (r *RecordRequest) Validate() error {
	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	if r.Action != ActionCheckIn && r.Action != ActionCheckOut {
		return validator.New("action", `Invalid action. Use "checkin" or "checkout"`)
	}
	return nil
}

// AttendanceFilter is parsed from the query string. UserID zero means everyone.
type AttendanceFilter struct {
	UserID    int64
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// ParseFilter reads userId, startDate and endDate.
func ParseFilter(userID, startDate, endDate string) (AttendanceFilter, error) {
	var (
		f    AttendanceFilter
		errs validator.ValidationErrors
	)

	if userID != "" {
		id, err := strconv.ParseInt(userID, 10, 64)
		if err != nil || id <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "userId",
				Message: "userId must be a positive integer",
			})
		}
		f.UserID = id
	}

	if startDate != "" {
		d, ok := validator.IsValidDate(startDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be YYYY-MM-DD",
			})
		}
		f.StartDate = &d
	}

	if endDate != "" {
		d, ok := validator.IsValidDate(endDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be YYYY-MM-DD",
			})
		}
		f.EndDate = &d
	}

	if len(errs) > 0 {
		return AttendanceFilter{}, errs
	}
	return f, nil
}

type AttendanceResponse struct {
	ID            int64   `json:"attendanceId"`
	UserID        int64   `json:"userId"`
	Date          string  `json:"date"`
	CheckIn       *string `json:"checkIn"`
	CheckOut      *string `json:"checkOut"`
	Status        Status  `json:"status"`
	WorkHours     float64 `json:"workHours,omitempty"`
	EmployeeName  *string `json:"employeeName,omitempty"`
	EmployeeEmail *string `json:"employeeEmail,omitempty"`
}

// NewAttendanceResponse formats timestamps as RFC 3339.
func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		Date:          a.Date.Format("2006-01-02"),
		Status:        a.Status,
		EmployeeName:  a.EmployeeName,
		EmployeeEmail: a.EmployeeEmail,
	}
	if a.CheckIn != nil {
		s := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &s
	}
	if a.CheckOut != nil {
		s := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &s
	}
	if d := a.WorkDuration(); d > 0 {
		resp.WorkHours = float64(int(d.Hours()*100)) / 100
	}
	return resp
}
