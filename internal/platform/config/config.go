package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JudgeQueueName      string
	CompileDelay        time.Duration
	ExecuteDelay        time.Duration
	MaxConcurrentJudges int
	// JudgeRandSeed fixes the grader's fallback draws when non-zero;
	// zero means seed from the wall clock.
	JudgeRandSeed int64
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:             getEnv("API_PORT", "8080"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "user"),
		DBPassword:          getEnv("DB_PASSWORD", "password"),
		DBName:              getEnv("DB_NAME", "codearena_db"),
		DBSslMode:           getEnv("DB_SSLMODE", "disable"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvAsInt("REDIS_DB", 0),
		JudgeQueueName:      getEnv("JUDGE_QUEUE_NAME", "judge_queue"),
		CompileDelay:        time.Duration(getEnvAsInt("JUDGE_COMPILE_DELAY_MS", 1000)) * time.Millisecond,
		ExecuteDelay:        time.Duration(getEnvAsInt("JUDGE_EXECUTE_DELAY_MS", 2000)) * time.Millisecond,
		MaxConcurrentJudges: getEnvAsInt("JUDGE_MAX_CONCURRENT", 4),
		JudgeRandSeed:       int64(getEnvAsInt("JUDGE_RAND_SEED", 0)),
	}

	AppConfig.DBConnStr = "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=" + AppConfig.DBSslMode
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
