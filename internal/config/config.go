package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SMTPConfig holds the outgoing mail relay used by the contact form.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// SiteConfig names the portfolio in prompts and the welcome banner.
type SiteConfig struct {
	Name      string
	ShortName string
	Version   string
}

type AdminConfig struct {
	Username string
	Password string
}

type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration of the server and the shell.
// Values come from the environment (a .env file is auto-loaded by main) and
// optionally from a YAML file; the environment wins.
type AppConfig struct {
	Port         string
	GinMode      string
	DBPath       string
	ContentFile  string
	DefaultTheme string
	TypeSpeed    time.Duration
	FrameRate    time.Duration
	SMTP         SMTPConfig
	Site         SiteConfig
	Admin        AdminConfig
	Log          LogConfig
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("db_path", "termfolio.db")
	v.SetDefault("content_file", "")
	v.SetDefault("default_theme", "dark")
	v.SetDefault("type_speed_ms", 20)
	v.SetDefault("frame_interval_ms", 16)
	v.SetDefault("smtp_host", "smtp.gmail.com")
	v.SetDefault("smtp_port", "587")
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_pass", "")
	v.SetDefault("contact_email", "")
	v.SetDefault("site_name", "kyawzinhtet-portfolio")
	v.SetDefault("site_short_name", "kzh-portfolio")
	v.SetDefault("site_version", "1.0.0")
	v.SetDefault("admin_username", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// Load reads configuration. file may be empty; a missing file is an error
// only when one was named explicitly.
func Load(file string) (*AppConfig, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &AppConfig{
		Port:         v.GetString("port"),
		GinMode:      v.GetString("gin_mode"),
		DBPath:       v.GetString("db_path"),
		ContentFile:  v.GetString("content_file"),
		DefaultTheme: v.GetString("default_theme"),
		TypeSpeed:    millis(v.GetInt("type_speed_ms")),
		FrameRate:    millis(v.GetInt("frame_interval_ms")),
		SMTP: SMTPConfig{
			Host: v.GetString("smtp_host"),
			Port: v.GetString("smtp_port"),
			User: v.GetString("smtp_user"),
			Pass: v.GetString("smtp_pass"),
			To:   v.GetString("contact_email"),
		},
		Site: SiteConfig{
			Name:      v.GetString("site_name"),
			ShortName: v.GetString("site_short_name"),
			Version:   v.GetString("site_version"),
		},
		Admin: AdminConfig{
			Username: v.GetString("admin_username"),
			Password: v.GetString("admin_password"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
	}, nil
}

func millis(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	return time.Duration(n) * time.Millisecond
}
