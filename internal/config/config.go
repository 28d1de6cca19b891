package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"adp-lms-sync/internal/apperr"
)

type Config struct {
	ADP       ADPConfig       `yaml:"adp"`
	TalentLMS TalentLMSConfig `yaml:"talentlms"`
	HTTP      HTTPConfig      `yaml:"http"`
	Sync      SyncConfig      `yaml:"sync"`
	SFTP      SFTPConfig      `yaml:"sftp"`
	Log       LogConfig       `yaml:"log"`
	Secrets   SecretsConfig   `yaml:"secrets"`
}

type ADPConfig struct {
	BaseURL      string `yaml:"base_url"`
	TokenURL     string `yaml:"token_url"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	CertFile     string `yaml:"cert_file"`
	KeyFile      string `yaml:"key_file"`
	// PEM content wins over the file paths; secret stores fill these.
	CertPEM  string `yaml:"cert_pem"`
	KeyPEM   string `yaml:"key_pem"`
	PageSize int    `yaml:"page_size"`
}

type TalentLMSConfig struct {
	Domain             string `yaml:"domain"`
	BaseURL            string `yaml:"base_url"`
	APIKey             string `yaml:"api_key"`
	OnboardingCourseID string `yaml:"onboarding_course_id"`
	InitialPassword    string `yaml:"initial_password"`
}

type HTTPConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
}

type SyncConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type SFTPConfig struct {
	Host                  string `yaml:"host"`
	Port                  int    `yaml:"port"`
	User                  string `yaml:"user"`
	Pass                  string `yaml:"pass"`
	Dir                   string `yaml:"dir"`
	KnownHostsFile        string `yaml:"known_hosts_file"`
	InsecureIgnoreHostKey bool   `yaml:"insecure_ignore_host_key"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

type SecretsConfig struct {
	Source          string `yaml:"source"` // "", "keeper" or "aws"
	KeeperConfig    string `yaml:"keeper_config"`
	KeeperRecordUID string `yaml:"keeper_record_uid"`
	AWSSecretID     string `yaml:"aws_secret_id"`
}

func defaults() Config {
	return Config{
		ADP: ADPConfig{
			BaseURL:  "https://api.adp.com",
			TokenURL: "https://accounts.adp.com/auth/oauth/v2/token",
			PageSize: 100,
		},
		HTTP: HTTPConfig{
			Timeout:     2 * time.Minute,
			MaxAttempts: 1,
		},
		Sync: SyncConfig{
			Timeout: 2 * time.Hour,
		},
		SFTP: SFTPConfig{
			Port:                  22,
			Dir:                   "/inbound",
			InsecureIgnoreHostKey: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by CONFIG_FILE, and the environment, in that order of precedence.
// Credentials held in a secret store are applied separately with ApplySecrets.
func Load() (Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return apperr.Wrap(apperr.CodeConfig, "config: read "+path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return apperr.Wrap(apperr.CodeConfig, "config: parse "+path, err)
	}
	return nil
}

func applyEnv(c *Config) {
	// ADP
	c.ADP.BaseURL = getenv("ADP_BASE_URL", c.ADP.BaseURL)
	c.ADP.TokenURL = getenv("ADP_TOKEN_URL", c.ADP.TokenURL)
	c.ADP.ClientID = getenv("ADP_CLIENT_ID", c.ADP.ClientID)
	c.ADP.ClientSecret = getenv("ADP_CLIENT_SECRET", c.ADP.ClientSecret)
	c.ADP.CertFile = getenv("ADP_CERT_FILE", c.ADP.CertFile)
	c.ADP.KeyFile = getenv("ADP_KEY_FILE", c.ADP.KeyFile)
	c.ADP.CertPEM = getenv("ADP_CERT_PEM", c.ADP.CertPEM)
	c.ADP.KeyPEM = getenv("ADP_KEY_PEM", c.ADP.KeyPEM)
	c.ADP.PageSize = getenvInt("ADP_PAGE_SIZE", c.ADP.PageSize)

	// TalentLMS
	c.TalentLMS.Domain = getenv("TALENTLMS_DOMAIN", c.TalentLMS.Domain)
	c.TalentLMS.BaseURL = getenv("TALENTLMS_BASE_URL", c.TalentLMS.BaseURL)
	c.TalentLMS.APIKey = getenv("TALENTLMS_API_KEY", c.TalentLMS.APIKey)
	c.TalentLMS.OnboardingCourseID = getenv("TALENTLMS_ONBOARDING_COURSE_ID", c.TalentLMS.OnboardingCourseID)
	c.TalentLMS.InitialPassword = getenv("TALENTLMS_INITIAL_PASSWORD", c.TalentLMS.InitialPassword)

	c.HTTP.Timeout = getenvDuration("HTTP_TIMEOUT", c.HTTP.Timeout)
	c.HTTP.MaxAttempts = getenvInt("HTTP_MAX_ATTEMPTS", c.HTTP.MaxAttempts)
	c.Sync.Timeout = getenvDuration("SYNC_TIMEOUT", c.Sync.Timeout)

	// SFTP
	c.SFTP.Host = getenv("SFTP_HOST", c.SFTP.Host)
	c.SFTP.Port = getenvInt("SFTP_PORT", c.SFTP.Port)
	c.SFTP.User = getenv("SFTP_USER", c.SFTP.User)
	c.SFTP.Pass = getenv("SFTP_PASS", c.SFTP.Pass)
	c.SFTP.Dir = getenv("SFTP_DIR", c.SFTP.Dir)
	c.SFTP.KnownHostsFile = getenv("SFTP_KNOWN_HOSTS", c.SFTP.KnownHostsFile)
	c.SFTP.InsecureIgnoreHostKey = getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", c.SFTP.InsecureIgnoreHostKey)

	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getenv("LOG_FORMAT", c.Log.Format)

	// Secret stores
	c.Secrets.Source = getenv("SECRETS_SOURCE", c.Secrets.Source)
	c.Secrets.KeeperConfig = getenv("KSM_CONFIG_BASE64", c.Secrets.KeeperConfig)
	c.Secrets.KeeperRecordUID = getenv("KSM_RECORD_UID", c.Secrets.KeeperRecordUID)
	c.Secrets.AWSSecretID = getenv("AWS_SECRET_ID", c.Secrets.AWSSecretID)
	if c.Secrets.Source == "" {
		switch {
		case c.Secrets.KeeperConfig != "":
			c.Secrets.Source = "keeper"
		case c.Secrets.AWSSecretID != "":
			c.Secrets.Source = "aws"
		}
	}
}

// ApplySecrets fills credentials that are still empty from values keyed by
// their environment variable names (e.g. "TALENTLMS_API_KEY").
func (c *Config) ApplySecrets(values map[string]string) {
	fill := func(dst *string, key string) {
		if strings.TrimSpace(*dst) != "" {
			return
		}
		if v, ok := values[key]; ok {
			*dst = strings.TrimSpace(v)
		}
	}
	fill(&c.ADP.ClientID, "ADP_CLIENT_ID")
	fill(&c.ADP.ClientSecret, "ADP_CLIENT_SECRET")
	fill(&c.ADP.CertPEM, "ADP_CERT_PEM")
	fill(&c.ADP.KeyPEM, "ADP_KEY_PEM")
	fill(&c.TalentLMS.Domain, "TALENTLMS_DOMAIN")
	fill(&c.TalentLMS.APIKey, "TALENTLMS_API_KEY")
	fill(&c.SFTP.Pass, "SFTP_PASS")
}

// TalentLMSURL is the API root, derived from the domain unless set explicitly.
func (c TalentLMSConfig) TalentLMSURL() string {
	if u := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/"); u != "" {
		return u
	}
	d := strings.TrimSpace(c.Domain)
	if d == "" {
		return ""
	}
	if !strings.Contains(d, ".") {
		d += ".talentlms.com"
	}
	return "https://" + d + "/api/v1"
}

func (c ADPConfig) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "ADP_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "ADP_CLIENT_SECRET")
	}
	if c.CertPEM == "" && c.CertFile == "" {
		missing = append(missing, "ADP_CERT_FILE|ADP_CERT_PEM")
	}
	if c.KeyPEM == "" && c.KeyFile == "" {
		missing = append(missing, "ADP_KEY_FILE|ADP_KEY_PEM")
	}
	if len(missing) > 0 {
		return apperr.Newf(apperr.CodeConfig, "config", "missing env: %s", strings.Join(missing, " / "))
	}
	return nil
}

func (c TalentLMSConfig) Validate() error {
	if c.TalentLMSURL() == "" || c.APIKey == "" {
		return apperr.New(apperr.CodeConfig, "config", "missing env: TALENTLMS_DOMAIN (or TALENTLMS_BASE_URL) / TALENTLMS_API_KEY")
	}
	return nil
}

func (c SFTPConfig) Validate() error {
	if c.Host == "" || c.User == "" || c.Pass == "" {
		return apperr.New(apperr.CodeConfig, "config", "missing env: SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	if !c.InsecureIgnoreHostKey && c.KnownHostsFile == "" {
		return apperr.New(apperr.CodeConfig, "config", "missing env: SFTP_KNOWN_HOSTS (or set SFTP_INSECURE_IGNORE_HOSTKEY=true)")
	}
	return nil
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

func getenvBool(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return d
}

func (c Config) String() string {
	return fmt.Sprintf("adp=%s talentlms=%s secrets=%s log=%s/%s",
		c.ADP.BaseURL, c.TalentLMS.TalentLMSURL(), c.Secrets.Source, c.Log.Level, c.Log.Format)
}
