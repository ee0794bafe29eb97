package payroll

import (
	"context"
	"sync"
	"testing"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/notification"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite/sqlitetest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.CreateNotificationRequest
}

func (n *recordingNotifier) Notify(_ context.Context, req notification.CreateNotificationRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, req)
	return nil
}

func asUser(id int64, role user.Role) context.Context {
	return auth.NewContext(context.Background(), auth.Principal{UserID: id, Role: role})
}

func strPtr(s string) *string { return &s }

func TestPayrollService_CreatePayrollRecord(t *testing.T) {
	db := sqlitetest.NewDB(t)
	notifier := &recordingNotifier{}
	svc := NewPayrollService(sqlite.NewPayrollRepository(db), notifier)
	emp := sqlitetest.InsertUser(t, db, "Alice", "alice@example.com", "EMPLOYEE")
	admin := sqlitetest.InsertUser(t, db, "Ada", "admin@example.com", "ADMIN")
	hr := sqlitetest.InsertUser(t, db, "Helen", "hr@example.com", "HR")

	req := payroll.CreatePayrollRecordRequest{
		UserID:     emp,
		Month:      3,
		Year:       2024,
		Deductions: strPtr("150.25"),
		NetPay:     "4849.75",
	}

	resp, err := svc.CreatePayrollRecord(asUser(admin, user.RoleAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", resp.Period)
	assert.True(t, decimal.RequireFromString("4849.75").Equal(resp.NetPay))
	assert.True(t, decimal.RequireFromString("150.25").Equal(resp.Deductions))
	assert.Equal(t, "Alice", *resp.EmployeeName)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, notification.TypePayrollUpdate, notifier.sent[0].Type)
	assert.Equal(t, emp, notifier.sent[0].UserID)

	t.Run("duplicate period conflicts", func(t *testing.T) {
		_, err := svc.CreatePayrollRecord(asUser(admin, user.RoleAdmin), req)
		assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)
	})

	t.Run("unknown employee", func(t *testing.T) {
		bad := req
		bad.UserID = 9999
		_, err := svc.CreatePayrollRecord(asUser(admin, user.RoleAdmin), bad)
		assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
	})

	t.Run("hr cannot write", func(t *testing.T) {
		_, err := svc.CreatePayrollRecord(asUser(hr, user.RoleHR), req)
		assert.ErrorIs(t, err, user.ErrAdminAccessRequired)
	})

	t.Run("invalid month", func(t *testing.T) {
		bad := req
		bad.Month = 13
		_, err := svc.CreatePayrollRecord(asUser(admin, user.RoleAdmin), bad)
		assert.Error(t, err)
	})
}

func TestPayrollService_UpdatePayrollRecord(t *testing.T) {
	db := sqlitetest.NewDB(t)
	svc := NewPayrollService(sqlite.NewPayrollRepository(db), nil)
	emp := sqlitetest.InsertUser(t, db, "Alice", "alice@example.com", "EMPLOYEE")
	admin := sqlitetest.InsertUser(t, db, "Ada", "admin@example.com", "ADMIN")
	ctx := asUser(admin, user.RoleAdmin)

	created, err := svc.CreatePayrollRecord(ctx, payroll.CreatePayrollRecordRequest{UserID: emp, Month: 1, Year: 2024, NetPay: "1000"})
	require.NoError(t, err)

	netPay := decimal.RequireFromString("1200.50")
	updated, err := svc.UpdatePayrollRecord(ctx, created.ID, payroll.UpdatePayrollRecordRequest{NetPay: &netPay})
	require.NoError(t, err)
	assert.True(t, netPay.Equal(updated.NetPay))
	assert.True(t, decimal.Zero.Equal(updated.Deductions))

	_, err = svc.UpdatePayrollRecord(ctx, created.ID, payroll.UpdatePayrollRecordRequest{})
	assert.ErrorIs(t, err, payroll.ErrNoFieldsToUpdate)

	_, err = svc.UpdatePayrollRecord(ctx, 9999, payroll.UpdatePayrollRecordRequest{NetPay: &netPay})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPayrollService_ListIsCappedAndOrdered(t *testing.T) {
	db := sqlitetest.NewDB(t)
	svc := NewPayrollService(sqlite.NewPayrollRepository(db), nil)
	emp := sqlitetest.InsertUser(t, db, "Alice", "alice@example.com", "EMPLOYEE")
	other := sqlitetest.InsertUser(t, db, "Bob", "bob@example.com", "EMPLOYEE")
	admin := sqlitetest.InsertUser(t, db, "Ada", "admin@example.com", "ADMIN")
	hr := sqlitetest.InsertUser(t, db, "Helen", "hr@example.com", "HR")

	for _, year := range []int{2023, 2024} {
		for month := 1; month <= 12; month++ {
			_, err := svc.CreatePayrollRecord(asUser(admin, user.RoleAdmin), payroll.CreatePayrollRecordRequest{
				UserID: emp, Month: month, Year: year, NetPay: "1000",
			})
			require.NoError(t, err)
		}
	}

	own, err := svc.ListPayrollRecords(asUser(emp, user.RoleEmployee), payroll.PayrollFilter{})
	require.NoError(t, err)
	require.Len(t, own, payroll.MaxListRows)
	assert.Equal(t, "2024-12", own[0].Period)
	assert.Equal(t, "2024-01", own[11].Period)

	filtered, err := svc.ListPayrollRecords(asUser(hr, user.RoleHR), payroll.PayrollFilter{UserID: emp, Year: 2023, Month: 6})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2023-06", filtered[0].Period)

	_, err = svc.ListPayrollRecords(asUser(other, user.RoleEmployee), payroll.PayrollFilter{UserID: emp})
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	_, err = svc.GetPayrollRecord(asUser(other, user.RoleEmployee), own[0].ID)
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	got, err := svc.GetPayrollRecord(asUser(emp, user.RoleEmployee), own[0].ID)
	require.NoError(t, err)
	assert.Equal(t, own[0].ID, got.ID)
}
