package configuration

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"content-planner/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Backend     Backend     `json:"backend"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Events      Events      `json:"events"`
	Compose     Compose     `json:"compose"`
	Calendar    Calendar    `json:"calendar"`
	Logger      Logger      `json:"logger"`
}

type App struct {
	Port        int      `json:"port"`
	SecretKey   string   `json:"secretKey"`
	TLSEnabled  bool     `json:"tlsEnabled"`
	TLSCertFile string   `json:"tlsCertFile"`
	TLSKeyFile  string   `json:"tlsKeyFile"`
	Timezone    string   `json:"timezone"`
	CorsOrigins []string `json:"corsOrigins"`
}

// Backend is the publication service this app fronts.
type Backend struct {
	BaseURL        string `json:"baseURL"`
	PublishNowPath string `json:"publishNowPath"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

type Database struct {
	Psql  Db `json:"psql"`
	Mssql Db `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Events selects the broker used for publication events: none, pubsub or servicebus.
type Events struct {
	Driver           string `json:"driver"`
	ProjectID        string `json:"projectID"`
	CredentialsFile  string `json:"credentialsFile"`
	Topic            string `json:"topic"`
	Namespace        string `json:"namespace"`
	ConnectionString string `json:"connectionString"`
	Queue            string `json:"queue"`
}

type Compose struct {
	SessionTTLMinutes int `json:"sessionTTLMinutes"`
}

type Calendar struct {
	CacheTTLSeconds int `json:"cacheTTLSeconds"`
}

type Logger struct {
	Format string `json:"format"`
}

var C Config

func init() {
	Reload()
}

// Reload re-reads the config file and environment into C; call it after loading env files.
func Reload() {
	C = Config{}
	LoadConfig()
	initApp(&C)
	initBackend(&C)
	initDatabase(&C)
	initEvents(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}
	if v := os.Getenv("APP_TIMEZONE"); v != "" {
		C.App.Timezone = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		C.App.CorsOrigins = splitList(v)
	}
	if len(C.App.CorsOrigins) == 0 {
		C.App.CorsOrigins = []string{"http://localhost:3000"}
	}
	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func initBackend(C *Config) {
	if v := os.Getenv("BACKEND_URL"); v != "" {
		C.Backend.BaseURL = v
	}
	if C.Backend.BaseURL == "" {
		C.Backend.BaseURL = "http://localhost:5000"
	}
	C.Backend.BaseURL = strings.TrimRight(C.Backend.BaseURL, "/")
	if C.Backend.PublishNowPath == "" {
		C.Backend.PublishNowPath = "/instagram/publish"
	}
	if C.Backend.TimeoutSeconds <= 0 {
		C.Backend.TimeoutSeconds = 10
	}
	if C.Compose.SessionTTLMinutes <= 0 {
		C.Compose.SessionTTLMinutes = 30
	}
	if C.Calendar.CacheTTLSeconds < 0 {
		C.Calendar.CacheTTLSeconds = 0
	}
}

func initDatabase(C *Config) {
	if C.Database.Psql.Name == "" {
		C.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if C.Database.Psql.Host == "" {
		C.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if C.Database.Psql.User == "" {
		C.Database.Psql.User = os.Getenv("DB_USER")
	}
	if C.Database.Psql.Password == "" {
		C.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if C.Database.Psql.Port == "" {
		C.Database.Psql.Port = "5432"
	}

	if C.Database.Mssql.Name == "" {
		C.Database.Mssql.Name = os.Getenv("MSSQL_DB_NAME")
	}
	if C.Database.Mssql.Host == "" {
		C.Database.Mssql.Host = os.Getenv("MSSQL_HOST")
	}
	if C.Database.Mssql.User == "" {
		C.Database.Mssql.User = os.Getenv("MSSQL_USER")
	}
	if C.Database.Mssql.Password == "" {
		C.Database.Mssql.Password = os.Getenv("MSSQL_PASSWORD")
	}
	if C.Database.Mssql.Port == "" {
		if v := os.Getenv("MSSQL_PORT"); v != "" {
			C.Database.Mssql.Port = v
		} else {
			C.Database.Mssql.Port = "1433"
		}
	}
}

func initEvents(C *Config) {
	if v := os.Getenv("EVENTS_DRIVER"); v != "" {
		C.Events.Driver = v
	}
	C.Events.Driver = strings.ToLower(C.Events.Driver)
	if v := os.Getenv("PUBSUB_PROJECT_ID"); v != "" {
		C.Events.ProjectID = v
	}
	if v := os.Getenv("SERVICEBUS_NAMESPACE"); v != "" {
		C.Events.Namespace = v
	}
	if v := os.Getenv("SERVICEBUS_CONNECTION_STRING"); v != "" {
		C.Events.ConnectionString = v
	}
	if C.Events.Driver == "" {
		C.Events.Driver = "none"
	}
	if C.Events.Topic == "" {
		C.Events.Topic = "publication-events"
	}
	if C.Events.Queue == "" {
		C.Events.Queue = "publication-events"
	}
}

// Location resolves the configured timezone, falling back to the host's local zone.
func (a App) Location() *time.Location {
	if a.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		logger.GetLogger().WithField("timezone", a.Timezone).WithField("error", err).Warn("unknown timezone; using host local time")
		return time.Local
	}
	return loc
}

func (b Backend) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
