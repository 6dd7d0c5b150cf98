package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordbook-admin/internal/config"
)

func TestPoolConfig(t *testing.T) {
	t.Parallel()

	base := config.DatabaseConfig{
		MaxConns:        8,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}

	tests := []struct {
		name    string
		dsn     string
		appName string
		want    string
	}{
		{name: "sets application name", dsn: "postgres://u:p@localhost:5432/words", appName: "word-import", want: "word-import"},
		{name: "dsn wins", dsn: "postgres://u:p@localhost:5432/words?application_name=ops", appName: "word-import", want: "ops"},
		{name: "no name", dsn: "postgres://u:p@localhost:5432/words", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base
			cfg.DSN = tt.dsn

			got, err := poolConfig(cfg, tt.appName)
			require.NoError(t, err)

			assert.Equal(t, int32(8), got.MaxConns)
			assert.Equal(t, int32(2), got.MinConns)
			assert.Equal(t, time.Hour, got.MaxConnLifetime)
			assert.Equal(t, time.Minute, got.MaxConnIdleTime)
			assert.Equal(t, tt.want, got.ConnConfig.RuntimeParams["application_name"])
		})
	}
}

func TestPoolConfig_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := poolConfig(config.DatabaseConfig{DSN: "postgres://%zz"}, "x")
	assert.ErrorContains(t, err, "parse database DSN")
}
