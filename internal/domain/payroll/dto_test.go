package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayrollRecordRequest_Validate(t *testing.T) {
	t.Run("valid with default deductions", func(t *testing.T) {
		req := CreatePayrollRecordRequest{UserID: 1, Month: 3, Year: 2024, NetPay: "4500.00"}
		require.NoError(t, req.Validate())

		deductions, netPay := req.Amounts()
		assert.True(t, deductions.IsZero())
		assert.True(t, netPay.Equal(decimal.RequireFromString("4500")))
	})

	t.Run("out of range period and negative pay", func(t *testing.T) {
		req := CreatePayrollRecordRequest{UserID: 1, Month: 13, Year: 1999, NetPay: "-5"}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "month")
		assert.Contains(t, err.Error(), "year")
		assert.Contains(t, err.Error(), "netPay")
	})

	t.Run("missing user and net pay", func(t *testing.T) {
		req := CreatePayrollRecordRequest{Month: 1, Year: 2024}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "userId")
		assert.Contains(t, err.Error(), "netPay is required")
	})
}

func TestUpdatePayrollRecordRequest_Validate(t *testing.T) {
	empty := UpdatePayrollRecordRequest{}
	assert.ErrorIs(t, empty.Validate(), ErrNoFieldsToUpdate)

	neg := decimal.NewFromInt(-1)
	assert.Error(t, (&UpdatePayrollRecordRequest{NetPay: &neg}).Validate())

	pay := decimal.NewFromInt(100)
	assert.NoError(t, (&UpdatePayrollRecordRequest{NetPay: &pay}).Validate())
}

func TestPayrollRecord_Period(t *testing.T) {
	r := PayrollRecord{Month: 3, Year: 2024}
	assert.Equal(t, "2024-03", r.Period())
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("", "2", "2024")
	require.NoError(t, err)
	assert.Equal(t, PayrollFilter{Month: 2, Year: 2024}, f)

	_, err = ParseFilter("x", "0", "")
	require.Error(t, err)
}
