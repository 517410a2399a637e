package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		user, pass string
		want       string
	}{
		{name: "empty", input: "", want: ""},
		{
			name:  "native dsn untouched",
			input: "root:pw@tcp(127.0.0.1:3306)/todo?parseTime=true",
			want:  "root:pw@tcp(127.0.0.1:3306)/todo?parseTime=true",
		},
		{
			name:  "url form gets defaults",
			input: "mysql://root:pw@127.0.0.1:3306/todo",
			want:  "root:pw@tcp(127.0.0.1:3306)/todo?charset=utf8mb4&parseTime=true",
		},
		{
			name:  "jdbc prefix and overrides",
			input: "jdbc:mysql://127.0.0.1:3306/todo?useSSL=false&useUnicode=true",
			user:  "app",
			pass:  "secret",
			want:  "app:secret@tcp(127.0.0.1:3306)/todo?charset=utf8mb4&parseTime=true&tls=false",
		},
		{
			name:  "characterEncoding maps to charset",
			input: "mysql://u@db:3306/todo?characterEncoding=latin1",
			want:  "u@tcp(db:3306)/todo?charset=latin1&parseTime=true",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeMySQLDSN(tt.input, tt.user, tt.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "root:****@tcp(db:3306)/todo", maskDSN("root:pw@tcp(db:3306)/todo"))
	assert.Equal(t, "tcp(db:3306)/todo", maskDSN("tcp(db:3306)/todo"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedDriver))
}

func TestNewGorm_SQLiteAutoMigrate(t *testing.T) {
	db, err := NewGorm(Opts{
		Driver:       "sqlite",
		DSN:          "file:gorm_test?mode=memory&cache=shared&_foreign_keys=on",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, Migrate("sqlite", "", db))

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("todos"))
}
