package bot

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"
)

// gradeReply correlates an inbound reply with the open prompt and, when it
// qualifies, grades it and replies with the result. Non-qualifying messages
// are dropped silently: stale replies to superseded prompts, second replies
// from the same user, and replayed duplicate events all fail the Accept
// check.
func (r *Runner) gradeReply(ctx context.Context, m *discordgo.MessageCreate) {
	userID := m.Author.ID
	if !r.state.Accept(m.MessageReference.MessageID, userID) {
		return
	}

	grade, err := r.gen.Run(ctx, r.cfg.OpenAI.CritAssistant, r.state.ThreadID(), m.Content, r.poll)
	if err != nil {
		log.Printf("%s grading failed: user=%s message=%s err=%v", logPrefix, userID, m.ID, err)
		// Give the slot back so the user may retry, and say so instead
		// of going silent.
		r.state.Unmark(userID)
		if replyErr := r.chat.ReplyEmbed(m.ChannelID, m.ID, unavailableEmbed(r.embeds.Response)); replyErr != nil {
			log.Printf("%s grading-unavailable reply failed: user=%s err=%v", logPrefix, userID, replyErr)
		}
		return
	}

	// No avatar configured means no thumbnail, not a broken image link.
	avatarURL := ""
	if m.Author.Avatar != "" {
		avatarURL = m.Author.AvatarURL("")
	}

	if err := r.chat.ReplyEmbed(m.ChannelID, m.ID, gradeEmbed(r.embeds.Response, grade, avatarURL)); err != nil {
		log.Printf("%s grade reply failed: user=%s message=%s err=%v", logPrefix, userID, m.ID, err)
		return
	}
	log.Printf("%s grade published: user=%s message=%s", logPrefix, userID, m.ID)
}
