package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&mysql.MySQLError{Number: 1054}, "database schema is missing a column"},
		{fmt.Errorf("insert booking: %w", &mysql.MySQLError{Number: 1366}), "a value does not match the column type"},
		{&mysql.MySQLError{Number: 1292}, "a value does not match the column type"},
		{&mysql.MySQLError{Number: 1045}, "database authentication failed"},
		{&mysql.MySQLError{Number: 1146}, "database table is missing"},
		{&mysql.MySQLError{Number: 1213}, ""},
		{errors.New("boom"), ""},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := Describe(tc.err); got != tc.want {
			t.Errorf("Describe(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestIsDuplicate(t *testing.T) {
	if !isDuplicate(fmt.Errorf("wrap: %w", &mysql.MySQLError{Number: 1062})) {
		t.Fatal("1062 should be a duplicate")
	}
	if isDuplicate(errors.New("Duplicate entry")) {
		t.Fatal("plain errors are not classified")
	}
}
