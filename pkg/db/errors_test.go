package db

import (
	"errors"
	"testing"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{name: "nil error", err: nil, constraint: "idx_users_email", want: false},
		{
			name:       "postgres duplicate key",
			err:        errors.New(`duplicate key value violates unique constraint "idx_users_email"`),
			constraint: "idx_users_email",
			want:       true,
		},
		{
			name:       "sqlite unique constraint",
			err:        errors.New("UNIQUE constraint failed: users.email"),
			constraint: "idx_users_email",
			want:       true,
		},
		{
			name:       "constraint name match only",
			err:        errors.New("ERROR: conflicting row for idx_users_email"),
			constraint: "idx_users_email",
			want:       true,
		},
		{
			name:       "no constraint name supplied still matches phrasing",
			err:        errors.New("duplicate key value violates unique constraint"),
			constraint: "",
			want:       true,
		},
		{
			name:       "unrelated error",
			err:        errors.New("connection refused"),
			constraint: "idx_users_email",
			want:       false,
		},
	}

	for _, tt := range tests {
		if got := IsUniqueViolation(tt.err, tt.constraint); got != tt.want {
			t.Fatalf("%s: got %v want %v", tt.name, got, tt.want)
		}
	}
}
