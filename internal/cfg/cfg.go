package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

// Поддерживаемые бэкенды долговременного хранилища каталога.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMinio    = "minio"
)

type Config struct {
	Storage  *StorageCfg
	Session  *SessionCfg
	Checkout *CheckoutCfg
	Http     *HTTPConfig
	Grpc     *GRPCConfig
	Db       *PGDBCfg
	Redis    *RedisCfg
	Minio    *MinIOCfg
	Kafka    *KafkaCfg
}

type StorageCfg struct {
	Backend string
	Timeout time.Duration // таймаут одной операции с хранилищем
}

type SessionCfg struct {
	IdleTTL          time.Duration
	SweepInterval    time.Duration
	NotificationsCap int // ёмкость буфера уведомлений одной сессии
}

type CheckoutCfg struct {
	LinkBase     string // например https://wa.me/33600000000
	CurrencySign string
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SwaggerURL   string
}

type GRPCConfig struct {
	Enabled     bool
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MigrationsURL string
	MaxConns      int32
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	KeyPrefix   string
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет, в котором лежат объекты каталога
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	MaxRetries        int
}

// KafkaCfg — настройки брокера. Пустой список брокеров отключает публикацию событий.
type KafkaCfg struct {
	Brokers           []string
	OrdersTopic       string
	CatalogTopic      string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	MaxRetries        int
}

// Enabled сообщает, настроен ли брокер.
func (k *KafkaCfg) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Перед чтением окружения подхватывает .env, если он есть.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warnf("failed to read .env: %v", err)
		}
	}

	storage, err := loadStorageCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	grpc, err := loadGRPCConfig()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	config := &Config{
		Storage:  storage,
		Session:  session,
		Checkout: loadCheckoutCfg(),
		Http:     http,
		Grpc:     grpc,
	}

	switch storage.Backend {
	case StoragePostgres:
		if config.Db, err = loadPGDBCfg(log); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	case StorageRedis:
		if config.Redis, err = loadRedisCfg(log); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	case StorageMinio:
		if config.Minio, err = loadMinIOCfg(log); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
	}

	if config.Kafka, err = loadKafkaCfg(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return config, nil
}

func loadStorageCfg() (*StorageCfg, error) {
	const (
		defaultBackend = StorageMemory
		defaultTimeout = 3 * time.Second
	)

	backend := strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", defaultBackend))
	switch backend {
	case StorageMemory, StorageRedis, StoragePostgres, StorageMinio:
	default:
		return nil, e.Wrap(backend, e.ErrUnknownStorageBackend)
	}

	timeout, err := parseDurationEnv("STORAGE_TIMEOUT", defaultTimeout)
	if err != nil {
		return nil, e.Wrap("STORAGE_TIMEOUT", err)
	}

	return &StorageCfg{Backend: backend, Timeout: timeout}, nil
}

func loadSessionCfg(log logger.Logger) (*SessionCfg, error) {
	const (
		defaultIdleTTL          = 2 * time.Hour
		defaultSweepInterval    = 5 * time.Minute
		defaultNotificationsCap = 32
	)

	idleTTL, err := parseDurationEnv("SESSION_IDLE_TTL", defaultIdleTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_IDLE_TTL")
		return nil, err
	}

	sweep, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		log.Errorf(err, "invalid SESSION_SWEEP_INTERVAL")
		return nil, err
	}

	notificationsCap, err := parseIntEnv("SESSION_NOTIFICATIONS_CAP", defaultNotificationsCap)
	if err != nil {
		return nil, e.Wrap("SESSION_NOTIFICATIONS_CAP", err)
	}

	return &SessionCfg{
		IdleTTL:          idleTTL,
		SweepInterval:    sweep,
		NotificationsCap: notificationsCap,
	}, nil
}

func loadCheckoutCfg() *CheckoutCfg {
	const (
		defaultLinkBase     = "https://wa.me/"
		defaultCurrencySign = "$"
	)

	return &CheckoutCfg{
		LinkBase:     getEnvOrDefault("CHECKOUT_LINK_BASE", defaultLinkBase),
		CurrencySign: getEnvOrDefault("CHECKOUT_CURRENCY_SIGN", defaultCurrencySign),
	}
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		SwaggerURL:   getEnvOrDefault("SWAGGER_URL", fmt.Sprintf("http://localhost:%s/swagger/doc.json", port)),
	}, nil
}

func loadGRPCConfig() (*GRPCConfig, error) {
	const (
		defaultEnabled     = true
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	enabled, err := strconv.ParseBool(getEnvOrDefault("GRPC_ENABLED", strconv.FormatBool(defaultEnabled)))
	if err != nil {
		return nil, e.Wrap("GRPC_ENABLED", e.ErrIncorrectEnvVariable)
	}

	return &GRPCConfig{
		Enabled:     enabled,
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost          = "localhost"
		defaultPort          = "5432"
		defaultSSLMode       = "disable"
		defaultMigrationsURL = "file://db/migrations"
		defaultMaxConns      = 4
	)

	maxConns, err := parseIntEnv("POSTGRES_MAX_CONNS", defaultMaxConns)
	if err != nil || maxConns < 1 {
		log.Errorf(err, "invalid POSTGRES_MAX_CONNS")
		return nil, e.Wrap("POSTGRES_MAX_CONNS", e.ErrIncorrectEnvVariable)
	}

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:          getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:          getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:          user,
		Password:      password,
		DBName:        dbName,
		SSLMode:       getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MigrationsURL: getEnvOrDefault("MIGRATIONS_URL", defaultMigrationsURL),
		MaxConns:      int32(maxConns),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		KeyPrefix:   getEnv("REDIS_KEY_PREFIX"),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL     = false
		defaultEndpoint   = "minio:9000"
		defaultBucket     = "storefront-catalog"
		defaultMaxRetries = 3
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MINIO_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MINIO_MAX_RETRIES")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		MaxRetries:        maxRetries,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultOrdersTopic       = "orders"
		defaultCatalogTopic      = "catalog-events"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultMaxRetries        = 3
	)

	var brokers []string
	if brokerStr := getEnv("KAFKA_BROKERS"); brokerStr != "" {
		for _, b := range strings.Split(brokerStr, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	maxRetries, err := parseIntEnv("KAFKA_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("KAFKA_MAX_RETRIES", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		OrdersTopic:       getEnvOrDefault("KAFKA_ORDERS_TOPIC", defaultOrdersTopic),
		CatalogTopic:      getEnvOrDefault("KAFKA_CATALOG_TOPIC", defaultCatalogTopic),
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		MaxRetries:        maxRetries,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
