package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env    string
	Server ServerConfig
	Parser ParserConfig
	Chat   ChatConfig
	Budget BudgetConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type ParserConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ChatConfig struct {
	GreetingDelay      time.Duration
	ExampleDelay       time.Duration
	HelpDelay          time.Duration
	NotificationTTL    time.Duration
	RateLimitPerMinute int
	RateLimitBurst     int
}

type BudgetConfig struct {
	YearlyIncome float64
	MonthlyRatio float64
}

// Load reads the application configuration from the environment and .env.
func Load() (Config, error) {
	cfg := Config{}

	if err := loadEnv(); err != nil {
		return cfg, err
	}

	cfg.Env = getEnv("APP_ENV", "local")

	serverPort, err := parseIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return cfg, err
	}

	readTimeout, err := parseDurationEnv("SERVER_READ_TIMEOUT", 5*time.Second)
	if err != nil {
		return cfg, err
	}

	writeTimeout, err := parseDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return cfg, err
	}

	idleTimeout, err := parseDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second)
	if err != nil {
		return cfg, err
	}

	cfg.Server = ServerConfig{
		Host:         getEnv("SERVER_HOST", "0.0.0.0"),
		Port:         serverPort,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	parserTimeout, err := parseDurationEnv("PARSER_TIMEOUT", 20*time.Second)
	if err != nil {
		return cfg, err
	}

	cfg.Parser = ParserConfig{
		BaseURL: getEnv("PARSER_BASE_URL", "http://localhost:8000/api/v1/chatbot"),
		Timeout: parserTimeout,
	}

	greetingDelay, err := parseDurationEnv("CHAT_GREETING_DELAY", 300*time.Millisecond)
	if err != nil {
		return cfg, err
	}

	exampleDelay, err := parseDurationEnv("CHAT_EXAMPLE_DELAY", 500*time.Millisecond)
	if err != nil {
		return cfg, err
	}

	helpDelay, err := parseDurationEnv("CHAT_HELP_DELAY", time.Second)
	if err != nil {
		return cfg, err
	}

	notificationTTL, err := parseDurationEnv("NOTIFICATION_TTL", 5*time.Second)
	if err != nil {
		return cfg, err
	}

	chatRateLimitPerMinute, err := parseIntEnv("CHAT_RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return cfg, err
	}

	chatRateLimitBurst, err := parseIntEnv("CHAT_RATE_LIMIT_BURST", 10)
	if err != nil {
		return cfg, err
	}

	cfg.Chat = ChatConfig{
		GreetingDelay:      greetingDelay,
		ExampleDelay:       exampleDelay,
		HelpDelay:          helpDelay,
		NotificationTTL:    notificationTTL,
		RateLimitPerMinute: chatRateLimitPerMinute,
		RateLimitBurst:     chatRateLimitBurst,
	}

	yearlyIncome, err := parseFloatEnv("BUDGET_YEARLY_INCOME", 1000000)
	if err != nil {
		return cfg, err
	}

	monthlyRatio, err := parseFloatEnv("BUDGET_MONTHLY_RATIO", 0.4)
	if err != nil {
		return cfg, err
	}

	cfg.Budget = BudgetConfig{
		YearlyIncome: yearlyIncome,
		MonthlyRatio: monthlyRatio,
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// MonthlyBudget returns the reference baseline used by the monthly aggregate:
// the configured fraction of one month of income.
func (c BudgetConfig) MonthlyBudget() float64 {
	return c.YearlyIncome / 12 * c.MonthlyRatio
}

func (c Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("SERVER_PORT must be greater than 0")
	}

	if c.Parser.BaseURL == "" {
		return fmt.Errorf("PARSER_BASE_URL is required")
	}

	if c.Chat.RateLimitPerMinute <= 0 {
		return fmt.Errorf("CHAT_RATE_LIMIT_PER_MINUTE must be greater than 0")
	}

	if c.Chat.RateLimitBurst <= 0 {
		return fmt.Errorf("CHAT_RATE_LIMIT_BURST must be greater than 0")
	}

	if c.Budget.MonthlyRatio > 1 {
		return fmt.Errorf("BUDGET_MONTHLY_RATIO cannot exceed 1")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseIntEnv(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func parseFloatEnv(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}

	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}

	return parsed, nil
}

func loadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
