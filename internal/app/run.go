// Package app wires the process together: configuration, the discord
// session, the assistant client, the daily trigger, and shutdown.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/PENTASHIFT/prosebot/internal/assistant"
	"github.com/PENTASHIFT/prosebot/internal/bot"
	"github.com/PENTASHIFT/prosebot/internal/config"
)

const logPrefix = "[prosebot]"

func Run() error {
	// Optional; env vars may also come from the environment directly.
	_ = godotenv.Load()

	dir := strings.TrimSpace(os.Getenv("PROSEBOT_CONFIG_DIR"))
	if dir == "" {
		dir = "."
	}

	docs, err := config.Load(dir)
	if err != nil {
		return err
	}

	gen, err := assistant.NewClient(docs.Config.OpenAI.BaseURL, docs.Secrets.OpenAI.Token, nil)
	if err != nil {
		return err
	}

	session, err := discordgo.New("Bot " + docs.Secrets.Discord.Token)
	if err != nil {
		return fmt.Errorf("discord session failed: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	runner := bot.NewRunner(docs, gen, &bot.SessionChat{Session: session}, nil)

	session.AddHandler(runner.HandleMessageCreate)
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		log.Printf("%s logged on as %s", logPrefix, r.User.Username)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := session.Open(); err != nil {
		return fmt.Errorf("discord gateway failed: %w", err)
	}
	defer session.Close()

	sched := cron.New(cron.WithLocation(time.UTC))
	if _, err := sched.AddFunc(docs.Config.CronSpec(), runner.Fire); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", docs.Config.CronSpec(), err)
	}
	sched.Start()
	defer sched.Stop()

	g := newGroup(ctx)
	g.Go(runner.Run)

	log.Printf("%s started: channel=%s schedule=%q", logPrefix, docs.Config.Discord.Channel, docs.Config.CronSpec())
	<-ctx.Done()
	log.Printf("%s shutting down", logPrefix)
	g.Stop()
	return nil
}
