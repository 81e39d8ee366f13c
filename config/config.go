package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr    string
	CORSOrigins []string

	MongoURI            string
	RecordsDB           string
	PkgCollection       string
	MfgCollection       string
	ComponentCollection string
	TrackerDB           string
	TrackerCollection   string

	FileStoreBackend       string
	SynoHost               string
	SynoPort               string
	SynoUser               string
	SynoPassword           string
	SynoSecure             bool
	SynoInsecureSkipVerify bool
	FileStoreTimeout       time.Duration
	PublicPortStrip        string
	FolderCacheSize        int
	FolderCacheTTL         time.Duration

	MinioHost     string
	MinioPort     string
	MinioUsername string
	MinioPassword string
	MinioUseSSL   bool
	BucketName    string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	LinkTTL         time.Duration
	DMRLinkTTL      time.Duration
	SweepInterval   time.Duration
	SweepDeleteRate float64
	SweepLockTTL    time.Duration
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// LoadDotEnv reads a .env file into the process environment if one exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

// InitConfig loads configuration and initializes sub-configs.
func InitConfig() {
	LoadDotEnv()

	AppConfig = Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8742"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{
			"http://docs.bhd-ny.com",
			"https://docs.bhd-ny.com",
			"http://localhost",
			"http://localhost:8742",
		}),

		MongoURI:            getEnv("MONGODB", "mongodb://localhost:27017"),
		RecordsDB:           getEnv("RECORDS_DB", "busse_data"),
		PkgCollection:       getEnv("PKG_COLLECTION", "pkg"),
		MfgCollection:       getEnv("MFG_COLLECTION", "mfg"),
		ComponentCollection: getEnv("COMPONENT_COLLECTION", "components"),
		TrackerDB:           getEnv("TRACKER_DB", "synology_data"),
		TrackerCollection:   getEnv("TRACKER_COLLECTION", "link_tracker"),

		FileStoreBackend:       strings.ToLower(getEnv("FILESTORE_BACKEND", "synology")),
		SynoHost:               getEnv("SYNO_IP", "localhost"),
		SynoPort:               getEnv("SYNO_PORT", "5001"),
		SynoUser:               getEnv("SYNO_USER", ""),
		SynoPassword:           getEnv("SYNO_PASSWORD", ""),
		SynoSecure:             getEnvBool("SYNO_SECURE", true),
		SynoInsecureSkipVerify: getEnvBool("SYNO_INSECURE_SKIP_VERIFY", false),
		FileStoreTimeout:       getEnvDuration("FILESTORE_TIMEOUT", 60*time.Second),
		PublicPortStrip:        getEnv("FILESTORE_PUBLIC_PORT_STRIP", "5001"),
		FolderCacheSize:        getEnvInt("FOLDER_CACHE_SIZE", 256),
		FolderCacheTTL:         getEnvDuration("FOLDER_CACHE_TTL", 2*time.Minute),

		MinioHost:     getEnv("MINIO_HOST", "localhost"),
		MinioPort:     getEnv("MINIO_PORT", "9000"),
		MinioUsername: getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword: getEnv("MINIO_PASSWORD", "minioadmin"),
		MinioUseSSL:   getEnvBool("MINIO_USE_SSL", false),
		BucketName:    getEnv("BUCKET_NAME", "documents"),

		RedisEnabled:  getEnvBool("REDIS_ENABLED", true),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		LinkTTL:         getEnvDuration("LINK_TTL", 30*time.Minute),
		DMRLinkTTL:      getEnvDuration("DMR_LINK_TTL", 5*time.Minute),
		SweepInterval:   getEnvDuration("SWEEP_INTERVAL", 20*time.Minute),
		SweepDeleteRate: getEnvFloat("SWEEP_DELETE_RATE", 5),
		SweepLockTTL:    getEnvDuration("SWEEP_LOCK_TTL", 2*time.Minute),
	}

	InitFolderConfig()
}
