package identity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite"
	"github.com/dayflow-hr/hrms-backend-go/internal/repository/sqlite/sqlitetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAllocator(t *testing.T) (*Allocator, func(query string, args ...any)) {
	db := sqlitetest.NewDB(t)
	a := NewAllocator(sqlite.NewEmployeeRepository(db), sqlite.NewUserRepository(db)).WithBcryptCost(bcrypt.MinCost)
	exec := func(query string, args ...any) {
		_, err := db.ExecContext(context.Background(), query, args...)
		require.NoError(t, err)
	}
	return a, exec
}

func TestAllocateLoginID_IncrementsSerial(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestAllocator(t)
	joined := time.Date(2019, 4, 1, 0, 0, 0, 0, time.UTC)

	first, err := a.AllocateLoginID(ctx, "Acme Corp", "John Doe", joined)
	require.NoError(t, err)
	assert.Equal(t, "ACJODO20190001", first)

	second, err := a.AllocateLoginID(ctx, "Acme Corp", "Jane Roe", joined)
	require.NoError(t, err)
	assert.Equal(t, "ACJARO20190002", second)
}

func TestAllocateLoginID_SeedsFromExistingEmployees(t *testing.T) {
	ctx := context.Background()
	a, exec := newTestAllocator(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		exec(`INSERT INTO users (name, email, password, user_type, joining_date) VALUES ('X', ?, 'h', 'EMPLOYEE', '2018-02-01')`, email)
	}

	id, err := a.AllocateLoginID(ctx, "Acme", "Ann Lee", time.Date(2018, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "AXANLE20180004", id)
}

func TestAllocateLoginID_SkipsTakenIDs(t *testing.T) {
	ctx := context.Background()
	a, exec := newTestAllocator(t)
	joined := time.Date(2019, 1, 10, 0, 0, 0, 0, time.UTC)

	exec(`INSERT INTO users (name, email, password, user_type, employee_id) VALUES ('Legacy', 'legacy@example.com', 'h', 'HR', 'ACJODO20190001')`)

	id, err := a.AllocateLoginID(ctx, "Acme Corp", "John Doe", joined)
	require.NoError(t, err)
	assert.Equal(t, "ACJODO20190002", id)
}

func TestAllocateLoginID_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	a, exec := newTestAllocator(t)
	joined := time.Date(2019, 1, 10, 0, 0, 0, 0, time.UTC)

	for serial := 1; serial <= maxAttempts; serial++ {
		exec(`INSERT INTO users (name, email, password, user_type, employee_id) VALUES ('Legacy', ?, 'h', 'HR', ?)`,
			fmt.Sprintf("legacy%d@example.com", serial),
			fmt.Sprintf("ACJODO2019%04d", serial))
	}

	_, err := a.AllocateLoginID(ctx, "Acme Corp", "John Doe", joined)
	assert.ErrorIs(t, err, employee.ErrLoginIDAllocation)
}

func TestAllocateLoginID_StopsAtLastSerial(t *testing.T) {
	ctx := context.Background()
	a, exec := newTestAllocator(t)
	joined := time.Date(2019, 1, 10, 0, 0, 0, 0, time.UTC)

	exec(`INSERT INTO login_id_counters (year, last_serial) VALUES (2019, 9998)`)

	last, err := a.AllocateLoginID(ctx, "Acme Corp", "John Doe", joined)
	require.NoError(t, err)
	assert.Equal(t, "ACJODO20199999", last)

	_, err = a.AllocateLoginID(ctx, "Acme Corp", "Jane Roe", joined)
	assert.ErrorIs(t, err, employee.ErrLoginIDAllocation)
}

func TestIssue_ReturnsPlaintextOnceAndHash(t *testing.T) {
	a, _ := newTestAllocator(t)

	creds, err := a.Issue(context.Background(), "Acme Corp", "John Doe", time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, creds.Password, 12)
	assert.NotEqual(t, creds.Password, creds.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(creds.Password)))
}
