package rest

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"Duplicate email", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, true},
		{"Wrapped duplicate", fmt.Errorf("inserting user: %w", &pgconn.PgError{Code: "23505"}), true},
		{"Other postgres error", &pgconn.PgError{Code: "23503"}, false},
		{"Plain error", fmt.Errorf("connection reset"), false},
		{"Nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isUniqueViolation(tc.err); got != tc.want {
				t.Errorf("isUniqueViolation(%v) = %v; want %v", tc.err, got, tc.want)
			}
		})
	}
}
