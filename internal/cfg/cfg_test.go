package cfg

import (
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("KAFKA_BROKERS", "")

	config, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, config.Storage.Backend)
	assert.Equal(t, "8080", config.Http.Port)
	assert.Equal(t, 2*time.Hour, config.Session.IdleTTL)
	assert.Equal(t, "https://wa.me/", config.Checkout.LinkBase)
	assert.True(t, config.Grpc.Enabled)
	assert.False(t, config.Kafka.Enabled())
	assert.Nil(t, config.Db)
	assert.Nil(t, config.Redis)
	assert.Nil(t, config.Minio)
}

func TestLoadRedisBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("READ_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "4s")

	config, err := Load(logger.NewNop())
	require.NoError(t, err)

	require.NotNil(t, config.Redis)
	assert.Equal(t, "cache:6380", config.Redis.Addr)
	assert.Equal(t, 4*time.Second, config.Redis.Timeout)
}

func TestLoadPostgresRequiresCredentials(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", StoragePostgres)
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(logger.NewNop())
	require.Error(t, err)
}

func TestLoadUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "localstorage")

	_, err := Load(logger.NewNop())
	require.ErrorIs(t, err, e.ErrUnknownStorageBackend)
}

func TestLoadKafkaBrokers(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")

	config, err := Load(logger.NewNop())
	require.NoError(t, err)

	assert.True(t, config.Kafka.Enabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "orders", config.Kafka.OrdersTopic)
}

func TestParseIntEnvRejectsGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")

	_, err := parseIntEnv("SOME_INT", 1)
	require.ErrorIs(t, err, e.ErrIncorrectEnvVariable)
}
