package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/notification"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
)

// Notifier delivers notifications to a user.
type Notifier interface {
	Notify(ctx context.Context, req notification.CreateNotificationRequest) error
}

type PayrollServiceImpl struct {
	payrollRepo payroll.PayrollRepository
	notifier    Notifier
}

func NewPayrollService(payrollRepo payroll.PayrollRepository, notifier Notifier) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		payrollRepo: payrollRepo,
		notifier:    notifier,
	}
}

// CreatePayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayrollRecord(ctx context.Context, req payroll.CreatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !user.CanManagePayroll(principal.Role) {
		return payroll.PayrollRecordResponse{}, user.ErrAdminAccessRequired
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	deductions, netPay := req.Amounts()
	created, err := s.payrollRepo.Create(ctx, payroll.PayrollRecord{
		UserID:          req.UserID,
		Month:           req.Month,
		Year:            req.Year,
		SalaryStructure: req.SalaryStructure,
		Deductions:      deductions,
		NetPay:          netPay,
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	slog.Info("payroll record created", "payroll_id", created.ID, "user_id", created.UserID, "period", created.Period())
	s.notify(ctx, created, "Payslip available")
	return payroll.NewPayrollRecordResponse(created), nil
}

// UpdatePayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayrollRecord(ctx context.Context, id int64, req payroll.UpdatePayrollRecordRequest) (payroll.PayrollRecordResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !user.CanManagePayroll(principal.Role) {
		return payroll.PayrollRecordResponse{}, user.ErrAdminAccessRequired
	}

	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if err := s.payrollRepo.Update(ctx, id, req); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	updated, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	s.notify(ctx, updated, "Payslip updated")
	return payroll.NewPayrollRecordResponse(updated), nil
}

// GetPayrollRecord implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrollRecord(ctx context.Context, id int64) (payroll.PayrollRecordResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if !principal.CanAccess(record.UserID) {
		return payroll.PayrollRecordResponse{}, user.ErrAccessDenied
	}

	return payroll.NewPayrollRecordResponse(record), nil
}

// ListPayrollRecords implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecordResponse, error) {
	principal, err := auth.FromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !user.CanViewAllRecords(principal.Role) {
		if filter.UserID != 0 && filter.UserID != principal.UserID {
			return nil, user.ErrAccessDenied
		}
		filter.UserID = principal.UserID
	}

	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.NewPayrollRecordResponse(r))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) notify(ctx context.Context, record payroll.PayrollRecord, title string) {
	if s.notifier == nil {
		return
	}

	link := fmt.Sprintf("/api/v1/payroll/%d", record.ID)
	err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		UserID:  record.UserID,
		Type:    notification.TypePayrollUpdate,
		Title:   title,
		Message: fmt.Sprintf("Net pay for %s: %s", record.Period(), record.NetPay.StringFixed(2)),
		Link:    &link,
	})
	if err != nil {
		slog.Error("failed to send payroll notification", "payroll_id", record.ID, "error", err)
	}
}
