package bot

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/PENTASHIFT/prosebot/internal/assistant"
	"github.com/PENTASHIFT/prosebot/internal/config"
)

const logPrefix = "[prosebot]"

// Sized so a burst of replies arriving while a grading call is in flight
// is not dropped.
const eventBuffer = 64

// Generator is the slice of the assistant client the runner needs.
type Generator interface {
	CreateThread(ctx context.Context) (string, error)
	Run(ctx context.Context, assistantID, threadID, content string, policy assistant.PollPolicy) (string, error)
}

// Chat is the outbound chat-platform surface.
type Chat interface {
	BotUserID() string
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) (messageID string, err error)
	ReplyEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error
}

// Runner owns the day's state and multiplexes the two inputs — the daily
// trigger and inbound messages — onto a single loop goroutine. All state
// mutation happens on that goroutine.
type Runner struct {
	cfg    config.Config
	embeds config.Embeds
	poll   assistant.PollPolicy

	gen  Generator
	chat Chat
	rng  *rand.Rand

	state  *DailyPromptState
	fireCh chan struct{}
	events chan *discordgo.MessageCreate
}

// NewRunner wires a runner. rng may be nil, in which case a time-seeded
// source is used.
func NewRunner(docs *config.Documents, gen Generator, chat Chat, rng *rand.Rand) *Runner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Runner{
		cfg:    docs.Config,
		embeds: docs.Embeds,
		poll: assistant.PollPolicy{
			Interval: docs.Config.Poll.Interval(),
			Timeout:  docs.Config.Poll.Timeout(),
		},
		gen:    gen,
		chat:   chat,
		rng:    rng,
		state:  NewDailyPromptState(),
		fireCh: make(chan struct{}, 1),
		events: make(chan *discordgo.MessageCreate, eventBuffer),
	}
}

// Fire requests a daily firing. Called from the cron goroutine; coalesces
// if the loop has not picked up a previous request yet.
func (r *Runner) Fire() {
	select {
	case r.fireCh <- struct{}{}:
	default:
	}
}

// HandleMessageCreate is registered with the discord session. It runs on
// the session's event goroutine and only filters and enqueues; everything
// stateful happens on the runner loop.
func (r *Runner) HandleMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	r.enqueue(m)
}

func (r *Runner) enqueue(m *discordgo.MessageCreate) {
	if m == nil || m.Author == nil {
		return
	}
	if m.Author.ID == r.chat.BotUserID() {
		return
	}
	if m.MessageReference == nil || m.MessageReference.MessageID == "" {
		return
	}
	select {
	case r.events <- m:
	default:
		log.Printf("%s event dropped: intake full (author=%s)", logPrefix, m.Author.ID)
	}
}

// Run is the single consumer loop. It returns when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.fireCh:
			r.openDaily(ctx)
		case m := <-r.events:
			r.gradeReply(ctx, m)
		}
	}
}
