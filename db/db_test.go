package db

import "testing"

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"plain", "keepsake.db", "keepsake.db?_foreign_keys=on"},
		{"memory", ":memory:", ":memory:?_foreign_keys=on"},
		{"with params", "file:test.db?cache=shared", "file:test.db?cache=shared&_foreign_keys=on"},
		{"already set", "keepsake.db?_foreign_keys=off", "keepsake.db?_foreign_keys=off"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SQLiteDSN(tt.file); got != tt.want {
				t.Errorf("SQLiteDSN() = %v, want %v", got, tt.want)
			}
		})
	}
}
