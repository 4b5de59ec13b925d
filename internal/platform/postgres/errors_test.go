package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/craigmharris/TKDojang-sub007/internal/store"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		err      error
		wantIs   error
		passThru bool
	}{
		{
			name:   "no rows maps to not found",
			err:    sql.ErrNoRows,
			wantIs: store.ErrNotFound,
		},
		{
			name:   "wrapped no rows maps to not found",
			err:    fmt.Errorf("query: %w", sql.ErrNoRows),
			wantIs: store.ErrNotFound,
		},
		{
			name:   "unique violation maps to duplicate",
			err:    &pgconn.PgError{Code: uniqueViolationCode},
			wantIs: store.ErrDuplicate,
		},
		{
			name:   "check violation maps to invalid entity",
			err:    &pgconn.PgError{Code: checkViolationCode, ConstraintName: "star_rating_range"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:   "not null violation maps to invalid entity",
			err:    &pgconn.PgError{Code: notNullViolationCode, ColumnName: "mode"},
			wantIs: store.ErrInvalidEntity,
		},
		{
			name:     "unrelated errors pass through",
			err:      errors.New("connection refused"),
			passThru: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mapped := MapError(tc.err)
			if tc.passThru {
				assert.Equal(t, tc.err, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.wantIs)
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapError(nil))
}
