package config

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestLoad_Defaults(t *testing.T) {
	is := is.New(t)
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Server.Port, 3000)
	is.Equal(cfg.Database.Driver, "mongo")
	is.True(cfg.Database.AutoMigrate)
	is.Equal(cfg.JWT.ExpiresIn, 24*time.Hour)
	is.Equal(cfg.Logger.Format, "json")
	is.True(cfg.Metrics.Enabled)
	is.True(cfg.App.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	is := is.New(t)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8081")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_LIFETIME", "2h")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	is.NoErr(err)
	is.Equal(cfg.Server.Port, 8081)
	is.Equal(cfg.Server.Addr(), "0.0.0.0:8081")
	is.Equal(cfg.Database.URI, "mongodb://db:27017")
	is.Equal(cfg.Database.Driver, "memory")
	is.True(!cfg.Database.AutoMigrate)
	is.Equal(cfg.JWT.ExpiresIn, 2*time.Hour)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"default secret", map[string]string{}},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "DB_DRIVER": "postgres"}},
		{"bad port", map[string]string{"JWT_SECRET": "s", "PORT": "70000"}},
		{"bcrypt cost too high", map[string]string{"JWT_SECRET": "s", "BCRYPT_COST": "40"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			is.True(err != nil)
		})
	}
}
