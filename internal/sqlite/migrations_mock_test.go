package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// widgetStep is a step whose Up issues one ALTER against a fake table.
var widgetStep = Migration{
	Version:     2,
	Description: "add widgets.size",
	Applied:     func(context.Context, Querier) (bool, error) { return false, nil },
	Up: func(ctx context.Context, q Querier) error {
		_, err := q.ExecContext(ctx, `ALTER TABLE widgets ADD COLUMN size INTEGER`)
		return err
	},
}

func expectCatalogTables(mock sqlmock.Sqlmock) {
	for range catalogTables {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func expectCatalogIndexes(mock sqlmock.Sqlmock) {
	for range catalogIndexes {
		mock.ExpectExec("CREATE INDEX IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

// expectPopulated answers the empty-store check with a store that already
// has tables.
func expectPopulated(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(3))
}

func expectVersion(mock sqlmock.Sqlmock, version int) {
	mock.ExpectQuery("PRAGMA user_version").
		WillReturnRows(sqlmock.NewRows([]string{"user_version"}).AddRow(version))
}

// TestRunMigrations_DriverFailures drives the engine against a scripted
// driver to check which statements run, and that every failure inside the
// transaction ends in a rollback with no version stamp.
func TestRunMigrations_DriverFailures(t *testing.T) {
	boom := errors.New("disk I/O error")
	tests := []struct {
		name    string
		script  func(mock sqlmock.Sqlmock)
		wantErr string
	}{
		{
			name: "begin fails",
			script: func(mock sqlmock.Sqlmock) {
				expectVersion(mock, 1)
				mock.ExpectBegin().WillReturnError(boom)
			},
			wantErr: "begin migration",
		},
		{
			name: "catalog table fails",
			script: func(mock sqlmock.Sqlmock) {
				expectVersion(mock, 1)
				mock.ExpectBegin()
				expectPopulated(mock)
				mock.ExpectExec("CREATE TABLE IF NOT EXISTS properties").WillReturnError(boom)
				mock.ExpectRollback()
			},
			wantErr: "create table properties",
		},
		{
			name: "step fails",
			script: func(mock sqlmock.Sqlmock) {
				expectVersion(mock, 1)
				mock.ExpectBegin()
				expectPopulated(mock)
				expectCatalogTables(mock)
				mock.ExpectExec("ALTER TABLE widgets").WillReturnError(boom)
				mock.ExpectRollback()
			},
			wantErr: "apply migration v2 (add widgets.size)",
		},
		{
			name: "commit fails",
			script: func(mock sqlmock.Sqlmock) {
				expectVersion(mock, 1)
				mock.ExpectBegin()
				expectPopulated(mock)
				expectCatalogTables(mock)
				mock.ExpectExec("ALTER TABLE widgets").WillReturnResult(sqlmock.NewResult(0, 0))
				expectCatalogIndexes(mock)
				mock.ExpectCommit().WillReturnError(boom)
			},
			wantErr: "commit migration",
		},
		{
			name: "stamp fails after commit",
			script: func(mock sqlmock.Sqlmock) {
				expectVersion(mock, 1)
				mock.ExpectBegin()
				expectPopulated(mock)
				expectCatalogTables(mock)
				mock.ExpectExec("ALTER TABLE widgets").WillReturnResult(sqlmock.NewResult(0, 0))
				expectCatalogIndexes(mock)
				mock.ExpectCommit()
				mock.ExpectExec("PRAGMA user_version = 2").WillReturnError(boom)
			},
			wantErr: "stamp schema version",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.script(mock)

			_, err = RunMigrations(context.Background(), db, []Migration{widgetStep}, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRunMigrations_StampsOnlyWhenRaised(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The store already claims the step's version, so no PRAGMA write
	// follows the commit.
	expectVersion(mock, 2)
	mock.ExpectBegin()
	expectPopulated(mock)
	expectCatalogTables(mock)
	mock.ExpectExec("ALTER TABLE widgets").WillReturnResult(sqlmock.NewResult(0, 0))
	expectCatalogIndexes(mock)
	mock.ExpectCommit()

	report, err := RunMigrations(context.Background(), db, []Migration{widgetStep}, nil)
	require.NoError(t, err)
	assert.Equal(t, MigrationReport{From: 2, To: 2, Applied: []int{2}}, report)
	assert.NoError(t, mock.ExpectationsWereMet())
}
