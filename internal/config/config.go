package config

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	cfg  *APIConfig
	once sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	Pagination     PaginationConfig     `xml:"PAGINATION"`
	Scoring        ScoringConfig        `xml:"SCORING"`
	Reports        ReportsConfig        `xml:"REPORTS"`
	DB             DBConfig             `xml:"DB"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AuthenticationConfig holds authentication settings.
type AuthenticationConfig struct {
	EnableTokenAuth bool    `xml:"ENABLE_TOKEN_AUTH"`
	SessionTimeout  int     `xml:"SESSION_TIMEOUT"`
	LoginRatePerSec float64 `xml:"LOGIN_RATE_PER_SEC"`
	LoginBurst      int     `xml:"LOGIN_BURST"`
}

// PaginationConfig holds pagination settings.
type PaginationConfig struct {
	PageSize int `xml:"PAGE_SIZE"`
}

// ScoringConfig holds the topic approval threshold.
type ScoringConfig struct {
	PassPercent float64 `xml:"PASS_PERCENT"`
}

// ReportsConfig holds settings for generated PDF reports.
type ReportsConfig struct {
	OutputDir string `xml:"OUTPUT_DIR"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Initialize bool         `xml:"INITIALIZE"`
	Host       string       `xml:"HOST"`
	Port       int          `xml:"PORT"`
	SSLMode    string       `xml:"SSL_MODE"`
	Names      DBNames      `xml:"NAMES"`
	Username   string       `xml:"USERNAME"`
	Password   DBPassword   `xml:"PASSWORD"`
	Pool       DBPoolConfig `xml:"POOL"`
}

// DBNames holds the names defined in the DB section.
type DBNames struct {
	MATELOG string `xml:"MATELOG,attr"`
}

// DBPassword holds password details. When Type is "env" the value names
// the environment variable carrying the real password.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// Resolve returns the effective password.
func (p DBPassword) Resolve() string {
	if p.Type == "env" {
		return os.Getenv(p.Value)
	}
	return p.Value
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// LoadConfig loads and parses the XML configuration from the given file.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	var loadErr error
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			loadErr = err
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			loadErr = err
			return
		}

		var newCfg APIConfig
		if err := xml.Unmarshal(data, &newCfg); err != nil {
			loadErr = err
			return
		}
		newCfg.applyDefaults()

		if err := newCfg.Validate(); err != nil {
			loadErr = err
			return
		}

		cfg = &newCfg
	})

	if loadErr != nil {
		return nil, loadErr
	}
	if cfg == nil {
		return nil, os.ErrInvalid
	}
	return cfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

func (c *APIConfig) applyDefaults() {
	if c.Pagination.PageSize <= 0 {
		c.Pagination.PageSize = 20
	}
	if c.Scoring.PassPercent == 0 {
		c.Scoring.PassPercent = 80
	}
	if c.Reports.OutputDir == "" {
		c.Reports.OutputDir = "working/reports"
	}
	if c.Authentication.LoginRatePerSec == 0 {
		c.Authentication.LoginRatePerSec = 1
	}
	if c.Authentication.LoginBurst == 0 {
		c.Authentication.LoginBurst = 5
	}
}

// Validate checks the settings that have no usable zero value.
func (c *APIConfig) Validate() error {
	if c.Context.Port <= 0 || c.Context.Port > 65535 {
		return fmt.Errorf("CONTEXT.PORT must be between 1 and 65535, got %d", c.Context.Port)
	}
	if c.DB.Host == "" {
		return fmt.Errorf("DB.HOST cannot be empty")
	}
	if c.DB.Names.MATELOG == "" {
		return fmt.Errorf("DB.NAMES.MATELOG cannot be empty")
	}
	if c.Scoring.PassPercent < 0 || c.Scoring.PassPercent > 100 {
		return fmt.Errorf("SCORING.PASS_PERCENT must be between 0 and 100, got %v", c.Scoring.PassPercent)
	}
	return nil
}
