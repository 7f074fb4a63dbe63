package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const validConfig = `{
	"Discord": {"channel": "123456789"},
	"OpenAI": {
		"p_assistant": "asst_prompt",
		"c_assistant": "asst_crit",
		"genres": ["Mystery", "Fantasy"],
		"ages": ["Teen", "Adult"]
	}
}`

const validSecrets = `{
	"Discord": {"token": "discord-token"},
	"OpenAI": {"token": "openai-token"}
}`

const validEmbeds = `{
	"prompt": {
		"title": "Daily Writing Prompt",
		"color": 3447003,
		"fields": [
			{"name": "Genre", "inline": true},
			{"name": "Age Group", "inline": true},
			{"name": "Tone", "inline": true}
		]
	},
	"response": {
		"title": "Your Grade",
		"color": 15844367
	}
}`

func writeDocs(t *testing.T, cfg, secrets, embeds string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		ConfigFilename:  cfg,
		SecretsFilename: secrets,
		EmbedsFilename:  embeds,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoad_Valid(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "")
	dir := writeDocs(t, validConfig, validSecrets, validEmbeds)

	docs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if docs.Config.Discord.Channel != "123456789" {
		t.Fatalf("unexpected channel: %q", docs.Config.Discord.Channel)
	}
	if docs.Config.OpenAI.PromptAssistant != "asst_prompt" || docs.Config.OpenAI.CritAssistant != "asst_crit" {
		t.Fatalf("unexpected assistants: %+v", docs.Config.OpenAI)
	}
	if len(docs.Config.OpenAI.Genres) != 2 || len(docs.Config.OpenAI.Ages) != 2 {
		t.Fatalf("unexpected enumerations: %+v", docs.Config.OpenAI)
	}
	if docs.Embeds.Prompt.Title != "Daily Writing Prompt" || len(docs.Embeds.Prompt.Fields) != 3 {
		t.Fatalf("unexpected prompt template: %+v", docs.Embeds.Prompt)
	}
	if docs.Secrets.OpenAI.Token != "openai-token" {
		t.Fatalf("unexpected openai token: %q", docs.Secrets.OpenAI.Token)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeDocs(t, validConfig, validSecrets, validEmbeds)

	docs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got := docs.Config.CronSpec(); got != DefaultCronSpec {
		t.Fatalf("unexpected cron default: %q", got)
	}
	if got := docs.Config.Poll.Interval(); got != 500*time.Millisecond {
		t.Fatalf("unexpected poll interval default: %s", got)
	}
	if got := docs.Config.Poll.Timeout(); got != 120*time.Second {
		t.Fatalf("unexpected poll timeout default: %s", got)
	}
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	dir := writeDocs(t, validConfig, validSecrets, validEmbeds)
	t.Setenv("DISCORD_TOKEN", "env-discord")
	t.Setenv("OPENAI_API_KEY", "env-openai")

	docs, err := Load(dir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if docs.Secrets.Discord.Token != "env-discord" {
		t.Fatalf("discord token not overridden: %q", docs.Secrets.Discord.Token)
	}
	if docs.Secrets.OpenAI.Token != "env-openai" {
		t.Fatalf("openai token not overridden: %q", docs.Secrets.OpenAI.Token)
	}
}

func TestLoad_MissingDocumentFails(t *testing.T) {
	dir := writeDocs(t, validConfig, validSecrets, validEmbeds)
	if err := os.Remove(filepath.Join(dir, SecretsFilename)); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for missing secrets document")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		config  string
		secrets string
		wantSub string
	}{
		{
			name:    "missing channel",
			config:  `{"Discord": {}, "OpenAI": {"p_assistant": "a", "c_assistant": "b", "genres": ["x"], "ages": ["y"]}}`,
			secrets: validSecrets,
			wantSub: "Discord.channel",
		},
		{
			name:    "missing prompt assistant",
			config:  `{"Discord": {"channel": "1"}, "OpenAI": {"c_assistant": "b", "genres": ["x"], "ages": ["y"]}}`,
			secrets: validSecrets,
			wantSub: "p_assistant",
		},
		{
			name:    "empty genres",
			config:  `{"Discord": {"channel": "1"}, "OpenAI": {"p_assistant": "a", "c_assistant": "b", "genres": [], "ages": ["y"]}}`,
			secrets: validSecrets,
			wantSub: "genres",
		},
		{
			name:    "missing discord token",
			config:  validConfig,
			secrets: `{"OpenAI": {"token": "t"}}`,
			wantSub: "Discord token",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DISCORD_TOKEN", "")
			t.Setenv("OPENAI_API_KEY", "")
			dir := writeDocs(t, tc.config, tc.secrets, validEmbeds)
			_, err := Load(dir)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoad_MalformedJSONFails(t *testing.T) {
	dir := writeDocs(t, "{not json", validSecrets, validEmbeds)
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}
