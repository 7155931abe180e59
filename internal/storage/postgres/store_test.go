package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tutordash-web/internal/model"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(db), mock
}

func TestStore_Get(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		want    string
		wantErr error
	}{
		{
			name: "found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM browser_state WHERE key = $1`)).
					WithArgs("browser:1:token").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("abc"))
			},
			want: "abc",
		},
		{
			name: "missing",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM browser_state WHERE key = $1`)).
					WithArgs("browser:1:token").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "database error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM browser_state WHERE key = $1`)).
					WithArgs("browser:1:token").
					WillReturnError(assert.AnError)
			},
			wantErr: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			tt.setup(mock)

			got, err := s.Get(context.Background(), "browser:1:token")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Set(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO browser_state`).
		WithArgs("browser:1:user", `{"id":1}`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(context.Background(), "browser:1:user", `{"id":1}`))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Set_Error(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(`INSERT INTO browser_state`).WillReturnError(assert.AnError)

	err := s.Set(context.Background(), "k", "v")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStore_Remove(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM browser_state WHERE key IN ($1, $2, $3)`)).
		WithArgs("p:token", "p:user", "p:student").
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, s.Remove(context.Background(), "p:token", "p:user", "p:student"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Remove_NoKeys(t *testing.T) {
	s, mock := newMockStore(t)

	require.NoError(t, s.Remove(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
