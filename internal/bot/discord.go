package bot

import (
	"github.com/bwmarrin/discordgo"
)

// SessionChat adapts a live discord session to the Chat interface.
type SessionChat struct {
	Session *discordgo.Session
}

func (c *SessionChat) BotUserID() string {
	if c.Session.State != nil && c.Session.State.User != nil {
		return c.Session.State.User.ID
	}
	return ""
}

func (c *SessionChat) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	msg, err := c.Session.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return "", err
	}
	return msg.ID, nil
}

func (c *SessionChat) ReplyEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	_, err := c.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Reference: &discordgo.MessageReference{
			MessageID: messageID,
			ChannelID: channelID,
		},
	})
	return err
}
