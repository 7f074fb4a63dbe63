package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// The bot reads three static documents at startup: display templates,
// tunable parameters, and credentials. All three are immutable for the
// lifetime of the process.
const (
	EmbedsFilename  = "embeds.json"
	ConfigFilename  = "config.json"
	SecretsFilename = "secrets.json"
)

const (
	DefaultCronSpec       = "0 0 * * *"
	DefaultPollIntervalMS = 500
	DefaultPollTimeoutS   = 120
)

type Config struct {
	Discord  DiscordConfig  `json:"Discord"`
	OpenAI   OpenAIConfig   `json:"OpenAI"`
	Schedule ScheduleConfig `json:"Schedule"`
	Poll     PollConfig     `json:"Poll"`
}

type DiscordConfig struct {
	Channel string `json:"channel"`
}

type OpenAIConfig struct {
	BaseURL string `json:"base_url"`
	// PromptAssistant authors the daily writing prompt; CritAssistant
	// grades responses to it.
	PromptAssistant string   `json:"p_assistant"`
	CritAssistant   string   `json:"c_assistant"`
	Genres          []string `json:"genres"`
	Ages            []string `json:"ages"`
}

type ScheduleConfig struct {
	// Cron is evaluated in UTC. Empty means daily at midnight.
	Cron string `json:"cron"`
}

type PollConfig struct {
	IntervalMS int `json:"interval_ms"`
	TimeoutS   int `json:"timeout_s"`
}

func (p PollConfig) Interval() time.Duration {
	if p.IntervalMS <= 0 {
		return DefaultPollIntervalMS * time.Millisecond
	}
	return time.Duration(p.IntervalMS) * time.Millisecond
}

func (p PollConfig) Timeout() time.Duration {
	if p.TimeoutS <= 0 {
		return DefaultPollTimeoutS * time.Second
	}
	return time.Duration(p.TimeoutS) * time.Second
}

type Secrets struct {
	Discord TokenSecret `json:"Discord"`
	OpenAI  TokenSecret `json:"OpenAI"`
}

type TokenSecret struct {
	Token string `json:"token"`
}

// Embeds holds the two card templates. Descriptions, field values and
// thumbnails are filled in at render time.
type Embeds struct {
	Prompt   EmbedTemplate `json:"prompt"`
	Response EmbedTemplate `json:"response"`
}

type EmbedTemplate struct {
	Title  string          `json:"title"`
	Color  int             `json:"color"`
	Fields []TemplateField `json:"fields"`
	Footer string          `json:"footer"`
}

type TemplateField struct {
	Name   string `json:"name"`
	Inline bool   `json:"inline"`
}

// Documents bundles everything loaded at startup.
type Documents struct {
	Config  Config
	Secrets Secrets
	Embeds  Embeds
}

// Load reads and validates the three documents from dir. Any failure is
// fatal to startup; the process must not run half-configured.
func Load(dir string) (*Documents, error) {
	var docs Documents

	if err := readJSON(filepath.Join(dir, ConfigFilename), &docs.Config); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, SecretsFilename), &docs.Secrets); err != nil {
		return nil, err
	}
	if err := readJSON(filepath.Join(dir, EmbedsFilename), &docs.Embeds); err != nil {
		return nil, err
	}

	applyEnvOverrides(&docs.Secrets)

	if err := docs.validate(); err != nil {
		return nil, err
	}
	return &docs, nil
}

func readJSON(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s failed: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s failed: %w", filepath.Base(path), err)
	}
	return nil
}

func applyEnvOverrides(s *Secrets) {
	if v := strings.TrimSpace(os.Getenv("DISCORD_TOKEN")); v != "" {
		s.Discord.Token = v
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		s.OpenAI.Token = v
	}
}

func (d *Documents) validate() error {
	if strings.TrimSpace(d.Config.Discord.Channel) == "" {
		return fmt.Errorf("config incomplete: Discord.channel is required")
	}
	if strings.TrimSpace(d.Config.OpenAI.PromptAssistant) == "" {
		return fmt.Errorf("config incomplete: OpenAI.p_assistant is required")
	}
	if strings.TrimSpace(d.Config.OpenAI.CritAssistant) == "" {
		return fmt.Errorf("config incomplete: OpenAI.c_assistant is required")
	}
	if len(d.Config.OpenAI.Genres) == 0 {
		return fmt.Errorf("config incomplete: OpenAI.genres must not be empty")
	}
	if len(d.Config.OpenAI.Ages) == 0 {
		return fmt.Errorf("config incomplete: OpenAI.ages must not be empty")
	}
	if strings.TrimSpace(d.Secrets.Discord.Token) == "" {
		return fmt.Errorf("secrets incomplete: Discord token is required (secrets.json or DISCORD_TOKEN)")
	}
	if strings.TrimSpace(d.Secrets.OpenAI.Token) == "" {
		return fmt.Errorf("secrets incomplete: OpenAI token is required (secrets.json or OPENAI_API_KEY)")
	}
	return nil
}

// CronSpec returns the configured daily trigger, defaulting to midnight UTC.
func (c Config) CronSpec() string {
	if s := strings.TrimSpace(c.Schedule.Cron); s != "" {
		return s
	}
	return DefaultCronSpec
}
