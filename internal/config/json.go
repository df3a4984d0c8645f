package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// JSONConfig описывает JSON-файл конфигурации.
// Указатели отличают отсутствующее поле от нулевого значения.
type JSONConfig struct {
	APIToken      *string `json:"api_token,omitempty"`
	WebhookSecret *string `json:"webhook_secret,omitempty"`
	LogoPath      *string `json:"logo_path,omitempty"`
	ServerAddress *string `json:"server_address,omitempty"`
	RunMode       *string `json:"run_mode,omitempty"`
	WebhookURL    *string `json:"webhook_url,omitempty"`
	WebhookPath   *string `json:"webhook_path,omitempty"`
	LogLevel      *string `json:"log_level,omitempty"`
	FooterText    *string `json:"footer_text,omitempty"`
	MaxLabels     *int    `json:"max_labels,omitempty"`
	ShowProgress  *bool   `json:"show_progress,omitempty"`
	EnableHTTPS   *bool   `json:"enable_https,omitempty"`
	TLSCertFile   *string `json:"tls_cert_file,omitempty"`
	TLSKeyFile    *string `json:"tls_key_file,omitempty"`
}

// loadJSONConfig читает JSON-файл конфигурации.
// Пустое имя или отсутствующий файл дают пустую конфигурацию.
func loadJSONConfig(filename string) (*JSONConfig, error) {
	cfg := &JSONConfig{}
	if filename == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	return cfg, nil
}

// applyJSONConfig переносит заданные в файле значения в конфигурацию.
func (c *Config) applyJSONConfig(j *JSONConfig) {
	setString(&c.APIToken, j.APIToken)
	setString(&c.WebhookSecret, j.WebhookSecret)
	setString(&c.LogoPath, j.LogoPath)
	setString(&c.ServerAddress, j.ServerAddress)
	setString(&c.RunMode, j.RunMode)
	setString(&c.WebhookURL, j.WebhookURL)
	setString(&c.WebhookPath, j.WebhookPath)
	setString(&c.LogLevel, j.LogLevel)
	setString(&c.FooterText, j.FooterText)
	setString(&c.TLSCertFile, j.TLSCertFile)
	setString(&c.TLSKeyFile, j.TLSKeyFile)
	if j.MaxLabels != nil {
		c.MaxLabels = *j.MaxLabels
	}
	if j.ShowProgress != nil {
		c.ShowProgress = *j.ShowProgress
	}
	if j.EnableHTTPS != nil {
		c.EnableHTTPS = strconv.FormatBool(*j.EnableHTTPS)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
