package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/repository"
)

func newTestRepos(t *testing.T) (*repository.Repos, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return repository.New(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func TestLatestWaterFlowNilWhenEmpty(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery("FROM water_flows WHERE field_id").
		WithArgs("F1").
		WillReturnError(sql.ErrNoRows)

	latest, err := repos.LatestWaterFlow("F1")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestLatestWaterFlowPicksNewest(t *testing.T) {
	repos, mock := newTestRepos(t)

	now := time.Now()
	mock.ExpectQuery("FROM water_flows WHERE field_id .* ORDER BY timestamp DESC LIMIT 1").
		WithArgs("F1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "field_id", "flow_rate", "status", "timestamp"}).
			AddRow(3, "F1", 8.2, "flowing", now))

	latest, err := repos.LatestWaterFlow("F1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 8.2, latest.FlowRate)
	assert.Equal(t, "flowing", latest.Status)
}

func TestFindRuleNilWhenMissing(t *testing.T) {
	repos, mock := newTestRepos(t)

	mock.ExpectQuery("FROM flow_rules WHERE canal_id").
		WithArgs("C1", "A1").
		WillReturnError(sql.ErrNoRows)

	rule, err := repos.FindRule("C1", "A1")
	require.NoError(t, err)
	assert.Nil(t, rule)
}
