package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN          string        `mapstructure:"dsn"`
		QueryTimeout time.Duration `mapstructure:"query_timeout"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	GitHub struct {
		BaseURL  string        `mapstructure:"base_url"`
		Token    string        `mapstructure:"token"`
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"github"`
}

func LoadConfig(paths ...string) (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		viper.AddConfigPath(p)
	}
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("db.dsn", "DB_DSN")
	viper.BindEnv("db.query_timeout", "DB_QUERY_TIMEOUT")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	viper.BindEnv("github.base_url", "GITHUB_API_BASE_URL")
	viper.BindEnv("github.token", "GITHUB_TOKEN")
	viper.BindEnv("github.timeout", "GITHUB_TIMEOUT")
	viper.BindEnv("github.cache_ttl", "GITHUB_CACHE_TTL")

	viper.SetDefault("app.port", "5000")
	viper.SetDefault("db.query_timeout", 5*time.Second)
	viper.SetDefault("app.env", "development")
	// 36000 seconds, matching the token expiry the frontend was built against.
	viper.SetDefault("auth.token_lifespan", 36000*time.Second)
	viper.SetDefault("github.base_url", "https://api.github.com")
	viper.SetDefault("github.timeout", 10*time.Second)
	viper.SetDefault("github.cache_ttl", 10*time.Minute)

	err = viper.Unmarshal(&cfg)
	return
}
