package database

import (
	"strings"
	"testing"
)

func TestSettingsDSN(t *testing.T) {
	dsn := Settings{User: "villa", Password: "s3cret", Host: "db", Port: "3306", Name: "bali"}.DSN()
	for _, want := range []string{"villa:s3cret@tcp(db:3306)/bali", "parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %q lacks %q", dsn, want)
		}
	}
}
