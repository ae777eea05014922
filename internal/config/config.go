package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/safetyedu/safety-edu/internal/api"
)

const (
	DefaultSchoolID           = "i7kbawgs4kfesy5it2xp0w"
	DefaultAssessmentCourseID = "qkcfawcsxyrom0zrwghhwq"
	DefaultAnswersPath        = "./answers.json"
	DefaultHTTPTimeout        = 30 * time.Second
)

type Config struct {
	// Platform
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// Account
	SchoolID           string
	AssessmentCourseID string

	// Answer bank
	AnswersPath string
}

// Load reads an optional .env file and then the SAFETYEDU_* environment.
// Unset or malformed values fall back to the built-in defaults.
func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		BaseURL:            getEnvOrDefault("SAFETYEDU_BASE_URL", api.DefaultBaseURL),
		UserAgent:          getEnvOrDefault("SAFETYEDU_USER_AGENT", api.DefaultUserAgent),
		Timeout:            getEnvAsDurationOrDefault("SAFETYEDU_HTTP_TIMEOUT", DefaultHTTPTimeout),
		SchoolID:           getEnvOrDefault("SAFETYEDU_SCHOOL_ID", DefaultSchoolID),
		AssessmentCourseID: getEnvOrDefault("SAFETYEDU_ASSESSMENT_COURSE_ID", DefaultAssessmentCourseID),
		AnswersPath:        getEnvOrDefault("SAFETYEDU_ANSWERS", DefaultAnswersPath),
	}
}

// API returns the client settings derived from the configuration
func (c *Config) API() api.Config {
	return api.Config{
		BaseURL:   c.BaseURL,
		UserAgent: c.UserAgent,
		Timeout:   c.Timeout,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
