package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_DRIVER", "DATABASE_URL", "DATABASE_NAME", "SEED_ON_START",
		"PAYMENT_BASE_URL", "JWT_SECRET", "PASSWORD_HASHING", "CORS_ALLOW_ORIGINS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	conf := CreateNewConfig()

	assert.Equal(t, "8000", conf.ServicePort)
	assert.Equal(t, DriverMongo, conf.StoreConfig.Driver)
	assert.Equal(t, "ecommerce", conf.StoreConfig.Name)
	assert.True(t, conf.StoreConfig.SeedOnStart)
	assert.Equal(t, DefaultPaymentBaseURL, conf.PaymentBaseURL)
	assert.False(t, conf.PasswordHashing)
	assert.Equal(t, []string{"*"}, conf.CORSAllowOrigins)
	assert.Equal(t, "info", conf.LogLevel)
}

func TestCreateNewConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("PAYMENT_BASE_URL", "https://pay.example.com/c/")
	t.Setenv("PASSWORD_HASHING", "true")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")

	conf := CreateNewConfig()

	assert.Equal(t, "9090", conf.ServicePort)
	assert.Equal(t, DriverMemory, conf.StoreConfig.Driver)
	assert.False(t, conf.StoreConfig.SeedOnStart)
	assert.Equal(t, "https://pay.example.com/c", conf.PaymentBaseURL)
	assert.True(t, conf.PasswordHashing)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, conf.CORSAllowOrigins)
}
