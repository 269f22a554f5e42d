package config

import (
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("POPULAR_DEFAULT_COUNT", "")
	t.Setenv("APP_ENV", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Backend != BackendMemory {
		t.Errorf("Backend = %q, want %q", cfg.Backend, BackendMemory)
	}
	if cfg.PopularDefaultCount != 10 {
		t.Errorf("PopularDefaultCount = %d, want 10", cfg.PopularDefaultCount)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true for default APP_ENV")
	}
}

func TestLoadConfig_Postgres(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendPostgres)
	t.Setenv("DB_PASSWORD", "test_password")
	t.Setenv("DB_NAME", "catalog")
	t.Setenv("POPULAR_DEFAULT_COUNT", "25")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}
	if cfg.DBName != "catalog" {
		t.Errorf("DBName = %q, want %q", cfg.DBName, "catalog")
	}
	if cfg.PopularDefaultCount != 25 {
		t.Errorf("PopularDefaultCount = %d, want 25", cfg.PopularDefaultCount)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Postgres without DB_PASSWORD",
			envVars: map[string]string{
				"STORAGE_BACKEND": BackendPostgres,
				"DB_PASSWORD":     "",
			},
		},
		{
			name: "Unknown backend",
			envVars: map[string]string{
				"STORAGE_BACKEND": "cassandra",
			},
		},
		{
			name: "Negative popular count",
			envVars: map[string]string{
				"STORAGE_BACKEND":       BackendMemory,
				"POPULAR_DEFAULT_COUNT": "-3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error, got nil")
			}
		})
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:    "production",
				Backend:   BackendPostgres,
				DBSSLMode: "require",
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:    "development",
				Backend:   BackendPostgres,
				DBSSLMode: "disable",
			},
			shouldErr: false,
		},
		{
			name: "Production memory backend",
			cfg: &Config{
				AppEnv:  "production",
				Backend: BackendMemory,
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:    "production",
				Backend:   BackendPostgres,
				DBSSLMode: "disable",
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	dsn := cfg.GetDSN()

	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}
