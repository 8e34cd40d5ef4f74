package models

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrUnknownLocation = errors.New("unknown location")

// Config holds the application configuration
type Config struct {
	Port         string `json:"port"`
	DataFile     string `json:"data_file"`
	LogDir       string `json:"log_dir"`
	NtfyEndpoint string `json:"ntfy_endpoint"`
	NtfyAuth     string `json:"ntfy_auth"`
	OpenBrowser  bool   `json:"open_browser"`
	LogStdout    bool   `json:"log_stdout"`

	// bootstrap admin, created at start-up when missing
	AdminUsername string `json:"admin_username"`
	AdminPassword string `json:"-"`
}

// LoadConfig reads the .env file, when there is one, and the environment.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded, using environment only")
	}

	cfg := Config{
		Port:         os.Getenv("PORT"),
		DataFile:     os.Getenv("DATA_FILE"),
		LogDir:       os.Getenv("LOG_DIR"),
		NtfyEndpoint: os.Getenv("NTFY_ENDPOINT"),
		NtfyAuth:     os.Getenv("NTFY_AUTH"),
		LogStdout:    true,

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
	cfg.OpenBrowser = envBool("OPEN_BROWSER", cfg.OpenBrowser)
	cfg.LogStdout = envBool("LOG_STDOUT", cfg.LogStdout)
	return cfg
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return b
}

// Occurrence is one recorded event
type Occurrence struct {
	Time     time.Time `json:"time"`
	Location string    `json:"location"`
	Target   string    `json:"target"`
	Context  string    `json:"context"`
}

// Location maps a location label to coordinates. Coordinates stay nil until
// the label is mapped.
type Location struct {
	Label     string   `json:"label"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Mapped reports whether the location has coordinates
func (l Location) Mapped() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// titleCase capitalises chart names and option labels for display.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
