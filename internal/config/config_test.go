package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	for _, key := range []string{
		"RUN_ADDRESS", "DATABASE_URI", "MIGRATIONS_DIR", "API_PREFIX", "JWT_SECRET", "SESSION_TTL",
		"OPENING_BALANCE", "PAYMENT_TTL", "EXPIRE_BATCH", "RABBITMQ_URL",
	} {
		unsetenv(s.T(), key)
	}
}

func (s *ConfigTestSuite) TestDefaults() {
	s.T().Setenv("JWT_SECRET", "secret")

	conf, err := loadConfig([]string{"-d", "postgres://localhost/delivery"})
	s.Require().NoError(err)

	s.Equal("localhost:8080", conf.RunAddress)
	s.Equal("postgres://localhost/delivery", conf.DatabaseDSN)
	s.Equal("internal/db/migrations", conf.MigrationsDir)
	s.Equal("/api/v1", conf.APIPrefix)
	s.Equal(time.Hour, conf.SessionTTL)
	s.Equal("1000", conf.OpeningBalance.String())
	s.Equal(24*time.Hour, conf.PaymentTTL)
	s.Equal(50, conf.ExpireBatch)
	s.Empty(conf.RabbitURL)
}

func (s *ConfigTestSuite) TestEnvOverridesFlags() {
	s.T().Setenv("JWT_SECRET", "secret")
	s.T().Setenv("RUN_ADDRESS", ":9000")
	s.T().Setenv("DATABASE_URI", "postgres://env/delivery")
	s.T().Setenv("PAYMENT_TTL", "0s")

	conf, err := loadConfig([]string{"-a", ":8000", "-d", "postgres://flag/delivery"})
	s.Require().NoError(err)

	s.Equal(":9000", conf.RunAddress)
	s.Equal("postgres://env/delivery", conf.DatabaseDSN)
	s.Zero(conf.PaymentTTL)
}

func (s *ConfigTestSuite) TestRequired() {
	_, err := loadConfig([]string{"-d", "postgres://localhost/delivery"})
	s.Require().ErrorContains(err, "jwt secret")

	s.T().Setenv("JWT_SECRET", "secret")
	_, err = loadConfig(nil)
	s.Require().ErrorContains(err, "database DSN")
}

func (s *ConfigTestSuite) TestInvalidValues() {
	s.T().Setenv("JWT_SECRET", "secret")
	s.T().Setenv("OPENING_BALANCE", "-1")

	_, err := loadConfig([]string{"-d", "postgres://localhost/delivery"})
	s.Require().Error(err)
}

// unsetenv убирает переменную на время теста.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	prev, ok := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, prev)
		}
	})
}
