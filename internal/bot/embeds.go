package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/PENTASHIFT/prosebot/internal/config"
)

// Field names used when the template document leaves them out.
var defaultPromptFieldNames = []string{"Genre", "Age Group", "Tone"}

const unavailableText = "Grading is unavailable right now. Your response was not counted; feel free to reply again."

func baseEmbed(tpl config.EmbedTemplate) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title: tpl.Title,
		Color: tpl.Color,
	}
	if tpl.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: tpl.Footer}
	}
	return e
}

// promptEmbed renders the daily prompt card: the assistant's text as the
// description, the three sampled parameters as fields.
func promptEmbed(tpl config.EmbedTemplate, text string, params PromptParameters) *discordgo.MessageEmbed {
	e := baseEmbed(tpl)
	e.Description = text

	values := []string{params.Genre, params.AgeGroup, params.Tone}
	for i, value := range values {
		name := defaultPromptFieldNames[i]
		if i < len(tpl.Fields) && tpl.Fields[i].Name != "" {
			name = tpl.Fields[i].Name
		}
		inline := true
		if i < len(tpl.Fields) {
			inline = tpl.Fields[i].Inline
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value,
			Inline: inline,
		})
	}
	return e
}

// gradeEmbed renders the grading card. An empty avatarURL leaves the
// thumbnail off rather than pointing at nothing.
func gradeEmbed(tpl config.EmbedTemplate, text, avatarURL string) *discordgo.MessageEmbed {
	e := baseEmbed(tpl)
	e.Description = text
	if avatarURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatarURL}
	}
	return e
}

func unavailableEmbed(tpl config.EmbedTemplate) *discordgo.MessageEmbed {
	e := baseEmbed(tpl)
	e.Description = unavailableText
	return e
}
