package service_test

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/service"
)

func newTestServices(t *testing.T) (*service.Services, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return service.New(sqlx.NewDb(mockDB, "sqlmock")), mock
}

// argRecorder captures a bound query argument for later assertions.
type argRecorder struct{ v driver.Value }

func (r *argRecorder) Match(v driver.Value) bool {
	r.v = v
	return true
}

func accountRow(id, email, hash, role, fieldID, adminID string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "contact_number", "field_id", "admin_id", "created_at"}).
		AddRow(id, email, hash, role, "0123456789", fieldID, adminID, time.Now())
}

func TestSignupFarmerRequiresAdminForField(t *testing.T) {
	svcs, mock := newTestServices(t)

	mock.ExpectQuery("FROM accounts WHERE email").
		WithArgs("f@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM accounts WHERE role").
		WithArgs("admin", "F1").
		WillReturnError(sql.ErrNoRows)

	err := svcs.Auth.Signup(service.SignupInput{
		Email: "f@x.com", Password: "pw", Role: "farmer", FieldID: "F1",
	})
	assert.ErrorIs(t, err, service.ErrNoAdminForField)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupFarmerLinksMatchingAdmin(t *testing.T) {
	svcs, mock := newTestServices(t)

	mock.ExpectQuery("FROM accounts WHERE email").
		WithArgs("f@x.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM accounts WHERE role").
		WithArgs("admin", "F1").
		WillReturnRows(accountRow("admin-id-1", "a@x.com", "hash", "admin", "F1", "admin-id-1"))

	hash := &argRecorder{}
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(sqlmock.AnyArg(), "f@x.com", hash, "farmer", "0123", "F1", "admin-id-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := svcs.Auth.Signup(service.SignupInput{
		Email: "f@x.com", Password: "secret", Role: "farmer", ContactNumber: "0123", FieldID: "F1",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Stored value is a bcrypt hash of the password, never the plain form.
	stored, ok := hash.v.(string)
	require.True(t, ok)
	assert.NotEqual(t, "secret", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("secret")))
}

func TestSignupAdminSelfLinks(t *testing.T) {
	svcs, mock := newTestServices(t)

	mock.ExpectQuery("FROM accounts WHERE email").
		WithArgs("a@x.com").
		WillReturnError(sql.ErrNoRows)

	id := &argRecorder{}
	adminID := &argRecorder{}
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(id, "a@x.com", sqlmock.AnyArg(), "admin", "", "F1", adminID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := svcs.Auth.Signup(service.SignupInput{
		Email: "a@x.com", Password: "pw", Role: "admin", FieldID: "F1",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NotEmpty(t, id.v)
	assert.Equal(t, id.v, adminID.v)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svcs, mock := newTestServices(t)

	mock.ExpectQuery("FROM accounts WHERE email").
		WithArgs("a@x.com").
		WillReturnRows(accountRow("id-1", "a@x.com", "hash", "admin", "F1", "id-1"))

	err := svcs.Auth.Signup(service.SignupInput{
		Email: "a@x.com", Password: "pw", Role: "admin", FieldID: "F1",
	})
	assert.ErrorIs(t, err, service.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginReturnsStoredRole(t *testing.T) {
	svcs, mock := newTestServices(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM accounts WHERE email").
		WithArgs("f@x.com").
		WillReturnRows(accountRow("farmer-id", "f@x.com", string(hash), "farmer", "F1", "admin-id-1"))

	res, err := svcs.Auth.Login("f@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "farmer", res.Role)
	assert.Equal(t, "F1", res.FieldID)
	assert.Equal(t, "admin-id-1", res.AdminID)
}

func TestLoginAdminGetsOwnID(t *testing.T) {
	svcs, mock := newTestServices(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM accounts WHERE email").
		WithArgs("a@x.com").
		WillReturnRows(accountRow("admin-id-1", "a@x.com", string(hash), "admin", "F1", "admin-id-1"))

	res, err := svcs.Auth.Login("a@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin-id-1", res.AdminID)
}

func TestLoginWrongPassword(t *testing.T) {
	svcs, mock := newTestServices(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery("FROM accounts WHERE email").
		WithArgs("a@x.com").
		WillReturnRows(accountRow("admin-id-1", "a@x.com", string(hash), "admin", "F1", "admin-id-1"))

	_, err = svcs.Auth.Login("a@x.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredential)
}

func TestLoginUnknownEmail(t *testing.T) {
	svcs, mock := newTestServices(t)

	mock.ExpectQuery("FROM accounts WHERE email").
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := svcs.Auth.Login("nobody@x.com", "pw")
	assert.ErrorIs(t, err, service.ErrNotFound)
}
