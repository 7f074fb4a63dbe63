package bot

import (
	"context"
	"log"
)

// openDaily runs one scheduled firing: reset the day, sample parameters,
// open a fresh thread, ask the prompt assistant for a prompt, publish it,
// and record the message as the day's open prompt. A failure anywhere
// leaves the day without an open prompt; there is no same-day retry.
func (r *Runner) openDaily(ctx context.Context) {
	r.state.Reset()

	params := samplePromptParameters(r.rng, r.cfg.OpenAI.Genres, r.cfg.OpenAI.Ages)

	threadID, err := r.gen.CreateThread(ctx)
	if err != nil {
		log.Printf("%s daily firing failed: create thread: %v", logPrefix, err)
		return
	}

	text, err := r.gen.Run(ctx, r.cfg.OpenAI.PromptAssistant, threadID, params.instruction(), r.poll)
	if err != nil {
		log.Printf("%s daily firing failed: prompt generation: %v", logPrefix, err)
		return
	}

	messageID, err := r.chat.SendEmbed(r.cfg.Discord.Channel, promptEmbed(r.embeds.Prompt, text, params))
	if err != nil {
		log.Printf("%s daily firing failed: publish: %v", logPrefix, err)
		return
	}

	r.state.Open(messageID, threadID)
	log.Printf("%s prompt published: message=%s thread=%s genre=%q age=%q tone=%q",
		logPrefix, messageID, threadID, params.Genre, params.AgeGroup, params.Tone)
}
