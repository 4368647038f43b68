package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST,required"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID,required"`
	CredentialsFile   string `env:"GOOGLE_APPLICATION_CREDENTIALS"`

	// Public bucket for product images; private bucket for license documents.
	StorageBucket string `env:"STORAGE_BUCKET"`
	LicenseBucket string `env:"LICENSE_BUCKET"`

	Environment string `env:"APP_ENV" envDefault:"development"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
