package repos

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsDuplicateKey(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm_duplicated_key", err: gorm.ErrDuplicatedKey, want: true},
		{name: "wrapped_gorm_duplicated_key", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "pg_unique_violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "wrapped_pg_unique_violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "pg_other_error", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "plain_error", err: errors.New("connection refused"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateKey(tc.err); got != tc.want {
				t.Fatalf("IsDuplicateKey(%v)=%v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
