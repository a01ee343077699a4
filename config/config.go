package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided via env files or the environment.
type AppConfig struct {
	AppPort   string
	JWTSecret string

	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Redis for ephemeral state: motivation cache, token blacklist, OAuth state
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Gamification rewards
	DailyLoginXP        int
	StreakBonusXP       int
	StreakBonusInterval int
	TaskCompletionXP    int

	// Generative motivation backend (Gemini); empty key means unconfigured
	GeminiAPIKey          string
	GeminiModel           string
	MotivationTimeoutSec  int
	MotivationCacheTTLSec int

	// OAuth providers
	GitHubClientID     string
	GitHubClientSecret string
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectBase  string

	// SMTP for due-date reminder mails
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
	SMTPFromName  string
	SMTPTLS       bool
	RemindersOn   bool
	ReminderHours int

	RateLimitPerMinute int
	AllowedOrigins     []string

	// Registration abuse limits
	RegisterMaxPerIPPerDay     int
	RegisterAttemptCooldownSec int

	// Gin framework configuration
	GinMode string
	GinPath string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. It should be called once during boot.
// Precedence: config/config.json -> defaults -> environment variable overrides.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return strings.EqualFold(val, "true") || val == "1"
	}
	return defaultVal
}

// loadJSONConfig reads a flat JSON file into cfg if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var raw map[string]any
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return err
	}

	getString := func(key string) string {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return ""
	}
	getInt := func(key string) int {
		if v, ok := raw[key]; ok {
			switch t := v.(type) {
			case float64:
				return int(t)
			case int:
				return t
			case json.Number:
				i, _ := t.Int64()
				return int(i)
			}
		}
		return 0
	}
	getBool := func(key string) bool {
		if v, ok := raw[key]; ok {
			if b, ok := v.(bool); ok {
				return b
			}
		}
		return false
	}
	getStringSlice := func(key string) []string {
		if v, ok := raw[key]; ok {
			if arr, ok := v.([]any); ok {
				res := make([]string, 0, len(arr))
				for _, it := range arr {
					if s, ok := it.(string); ok {
						res = append(res, s)
					}
				}
				return res
			}
		}
		return nil
	}

	out.AppPort = getString("AppPort")
	out.JWTSecret = getString("JWTSecret")
	out.DatabaseURI = getString("DatabaseURI")
	out.DBHost = getString("DBHost")
	out.DBPort = getString("DBPort")
	out.DBUser = getString("DBUser")
	out.DBPassword = getString("DBPassword")
	out.DBName = getString("DBName")
	out.RedisHost = getString("RedisHost")
	out.RedisPort = getInt("RedisPort")
	out.RedisDB = getInt("RedisDB")
	out.RedisPassword = getString("RedisPassword")
	out.DailyLoginXP = getInt("DailyLoginXP")
	out.StreakBonusXP = getInt("StreakBonusXP")
	out.StreakBonusInterval = getInt("StreakBonusInterval")
	out.TaskCompletionXP = getInt("TaskCompletionXP")
	out.GeminiAPIKey = getString("GeminiAPIKey")
	out.GeminiModel = getString("GeminiModel")
	out.MotivationTimeoutSec = getInt("MotivationTimeoutSec")
	out.MotivationCacheTTLSec = getInt("MotivationCacheTTLSec")
	out.GitHubClientID = getString("GitHubClientID")
	out.GitHubClientSecret = getString("GitHubClientSecret")
	out.GoogleClientID = getString("GoogleClientID")
	out.GoogleClientSecret = getString("GoogleClientSecret")
	out.OAuthRedirectBase = getString("OAuthRedirectBase")
	out.SMTPHost = getString("SMTPHost")
	out.SMTPPort = getInt("SMTPPort")
	out.SMTPUsername = getString("SMTPUsername")
	out.SMTPPassword = getString("SMTPPassword")
	out.SMTPFrom = getString("SMTPFrom")
	out.SMTPFromName = getString("SMTPFromName")
	out.SMTPTLS = getBool("SMTPTLS")
	out.RemindersOn = getBool("RemindersOn")
	out.ReminderHours = getInt("ReminderHours")
	out.RateLimitPerMinute = getInt("RateLimitPerMinute")
	out.AllowedOrigins = getStringSlice("AllowedOrigins")
	out.RegisterMaxPerIPPerDay = getInt("RegisterMaxPerIPPerDay")
	out.RegisterAttemptCooldownSec = getInt("RegisterAttemptCooldownSec")
	out.GinMode = getString("GinMode")
	out.GinPath = getString("GinPath")
	out.LogLevel = getString("LogLevel")
	out.LogPath = getString("LogPath")
	out.LogMaxSizeMB = getInt("LogMaxSizeMB")
	out.LogMaxBackups = getInt("LogMaxBackups")
	out.LogMaxAgeDays = getInt("LogMaxAgeDays")
	out.LogCompress = getBool("LogCompress")
	return nil
}

func applyDefaults(out *AppConfig) {
	if out.AppPort == "" {
		out.AppPort = "8080"
	}
	if out.DBHost == "" {
		out.DBHost = "127.0.0.1"
	}
	if out.DBPort == "" {
		out.DBPort = "3306"
	}
	if out.DBUser == "" {
		out.DBUser = "root"
	}
	if out.DBName == "" {
		out.DBName = "studyplanner"
	}
	if out.RedisHost == "" {
		out.RedisHost = "127.0.0.1"
	}
	if out.RedisPort == 0 {
		out.RedisPort = 6379
	}
	if out.DailyLoginXP == 0 {
		out.DailyLoginXP = 10
	}
	if out.StreakBonusXP == 0 {
		out.StreakBonusXP = 70
	}
	if out.StreakBonusInterval == 0 {
		out.StreakBonusInterval = 7
	}
	if out.TaskCompletionXP == 0 {
		out.TaskCompletionXP = 5
	}
	if out.GeminiModel == "" {
		out.GeminiModel = "gemini-1.5-flash"
	}
	if out.MotivationTimeoutSec == 0 {
		out.MotivationTimeoutSec = 8
	}
	if out.MotivationCacheTTLSec == 0 {
		out.MotivationCacheTTLSec = 300
	}
	if out.ReminderHours == 0 {
		out.ReminderHours = 24
	}
	if out.RateLimitPerMinute == 0 {
		out.RateLimitPerMinute = 60
	}
	if len(out.AllowedOrigins) == 0 {
		out.AllowedOrigins = []string{"*"}
	}
	if out.RegisterMaxPerIPPerDay == 0 {
		out.RegisterMaxPerIPPerDay = 10
	}
	if out.RegisterAttemptCooldownSec == 0 {
		out.RegisterAttemptCooldownSec = 10
	}
	if out.GinMode == "" {
		out.GinMode = "release"
	}
	if out.GinPath == "" {
		out.GinPath = "logs/gin.log"
	}
	if out.LogLevel == "" {
		out.LogLevel = "info"
	}
	if out.LogPath == "" {
		out.LogPath = "logs/app.log"
	}
}

func applyEnvOverrides(out *AppConfig) {
	out.AppPort = getEnv("APP_PORT", out.AppPort)
	out.JWTSecret = getEnv("JWT_SECRET", out.JWTSecret)
	out.DatabaseURI = getEnv("DATABASE_URI", out.DatabaseURI)
	out.DBHost = getEnv("DB_HOST", out.DBHost)
	out.DBPort = getEnv("DB_PORT", out.DBPort)
	out.DBUser = getEnv("DB_USER", out.DBUser)
	out.DBPassword = getEnv("DB_PASSWORD", out.DBPassword)
	out.DBName = getEnv("DB_NAME", out.DBName)
	out.RedisHost = getEnv("REDIS_HOST", out.RedisHost)
	out.RedisPort = getEnvInt("REDIS_PORT", out.RedisPort)
	out.RedisDB = getEnvInt("REDIS_DB", out.RedisDB)
	out.RedisPassword = getEnv("REDIS_PASSWORD", out.RedisPassword)
	out.DailyLoginXP = getEnvInt("DAILY_LOGIN_XP", out.DailyLoginXP)
	out.StreakBonusXP = getEnvInt("STREAK_BONUS_XP", out.StreakBonusXP)
	out.StreakBonusInterval = getEnvInt("STREAK_BONUS_INTERVAL", out.StreakBonusInterval)
	out.TaskCompletionXP = getEnvInt("TASK_COMPLETION_XP", out.TaskCompletionXP)
	out.GeminiAPIKey = getEnv("GEMINI_API_KEY", out.GeminiAPIKey)
	out.GeminiModel = getEnv("GEMINI_MODEL", out.GeminiModel)
	out.MotivationTimeoutSec = getEnvInt("MOTIVATION_TIMEOUT_SEC", out.MotivationTimeoutSec)
	out.MotivationCacheTTLSec = getEnvInt("MOTIVATION_CACHE_TTL_SEC", out.MotivationCacheTTLSec)
	out.GitHubClientID = getEnv("GITHUB_CLIENT_ID", out.GitHubClientID)
	out.GitHubClientSecret = getEnv("GITHUB_CLIENT_SECRET", out.GitHubClientSecret)
	out.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", out.GoogleClientID)
	out.GoogleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", out.GoogleClientSecret)
	out.OAuthRedirectBase = getEnv("OAUTH_REDIRECT_BASE", out.OAuthRedirectBase)
	out.SMTPHost = getEnv("SMTP_HOST", out.SMTPHost)
	out.SMTPPort = getEnvInt("SMTP_PORT", out.SMTPPort)
	out.SMTPUsername = getEnv("SMTP_USERNAME", out.SMTPUsername)
	out.SMTPPassword = getEnv("SMTP_PASSWORD", out.SMTPPassword)
	out.SMTPFrom = getEnv("SMTP_FROM", out.SMTPFrom)
	out.SMTPFromName = getEnv("SMTP_FROM_NAME", out.SMTPFromName)
	out.SMTPTLS = getEnvBool("SMTP_TLS", out.SMTPTLS)
	out.RemindersOn = getEnvBool("REMINDERS_ON", out.RemindersOn)
	out.ReminderHours = getEnvInt("REMINDER_HOURS", out.ReminderHours)
	out.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", out.RateLimitPerMinute)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				origins = append(origins, s)
			}
		}
		if len(origins) > 0 {
			out.AllowedOrigins = origins
		}
	}
	out.RegisterMaxPerIPPerDay = getEnvInt("REGISTER_MAX_PER_IP_PER_DAY", out.RegisterMaxPerIPPerDay)
	out.RegisterAttemptCooldownSec = getEnvInt("REGISTER_ATTEMPT_COOLDOWN_SEC", out.RegisterAttemptCooldownSec)
	out.GinMode = getEnv("GIN_MODE", out.GinMode)
	out.GinPath = getEnv("GIN_PATH", out.GinPath)
	out.LogLevel = getEnv("LOG_LEVEL", out.LogLevel)
	out.LogPath = getEnv("LOG_PATH", out.LogPath)
	out.LogMaxSizeMB = getEnvInt("LOG_MAX_SIZE_MB", out.LogMaxSizeMB)
	out.LogMaxBackups = getEnvInt("LOG_MAX_BACKUPS", out.LogMaxBackups)
	out.LogMaxAgeDays = getEnvInt("LOG_MAX_AGE_DAYS", out.LogMaxAgeDays)
	out.LogCompress = getEnvBool("LOG_COMPRESS", out.LogCompress)
}
