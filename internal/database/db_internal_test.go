package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithPragmas(t *testing.T) {
	t.Parallel()

	all := "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"

	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{name: "plain path", dsn: "sheets.db", want: "sheets.db?" + all},
		{name: "keeps existing query", dsn: "file:sheets.db?mode=rwc", want: "file:sheets.db?mode=rwc&" + all},
		{
			name: "caller pragma wins",
			dsn:  "sheets.db?_pragma=journal_mode(DELETE)",
			want: "sheets.db?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=synchronous(NORMAL)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, withPragmas(tt.dsn))
		})
	}
}
