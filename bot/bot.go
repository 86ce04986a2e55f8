package bot

import (
	"context"
	"fmt"
	log "log/slog"
	"os"
	"os/signal"
	"syscall"

	"botswatter/command"
	"botswatter/database"
	"botswatter/enforcer"
	botgrpc "botswatter/grpc"
	"botswatter/models"
	"botswatter/platform"
	"botswatter/scanner"
	"botswatter/utils"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"
)

// Bot encapsulates the bot's state.
type Bot struct {
	Session  *discordgo.Session
	Commands map[string]command.Command
	Config   *models.Config

	Store    database.PolicyStore
	Client   *platform.Client
	Enforcer *enforcer.Enforcer
	Sweeper  *scanner.Sweeper
	Auth     *utils.Auth
	Health   *botgrpc.HealthServer

	ctx       context.Context
	cancel    context.CancelFunc
	scheduler *Scheduler
}

// NewBot creates the session and wires the moderation engines to it.
func NewBot(ctx context.Context, cfg *models.Config) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("no bot token provided")
	}

	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsGuilds | discordgo.IntentsMessageContent

	store, err := database.Open(ctx, cfg.Policy)
	if err != nil {
		return nil, fmt.Errorf("error opening policy store: %w", err)
	}

	b := New(dg, cfg, store)
	if cfg.GRPC.HealthAddress != "" {
		b.Health = botgrpc.NewHealthServer(cfg.GRPC.HealthAddress)
	}
	return b, nil
}

// New wires a bot around an existing session and store.
func New(s *discordgo.Session, cfg *models.Config, store database.PolicyStore) *Bot {
	ctx, cancel := context.WithCancel(context.Background())
	client := platform.NewClient(s, platform.FromConfig(cfg.Platform))
	return &Bot{
		Session:  s,
		Commands: make(map[string]command.Command),
		Config:   cfg,
		Store:    store,
		Client:   client,
		Enforcer: enforcer.New(store, client, reportEnforcement),
		Sweeper:  scanner.New(client),
		Auth:     utils.NewAuth(cfg.Commands.Auth),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Context is cancelled when the bot stops; long-running work (sweeps) should use it.
func (b *Bot) Context() context.Context {
	return b.ctx
}

// RegisterCommands registers the provided commands.
func (b *Bot) RegisterCommands(commands []command.Command) {
	for _, cmd := range commands {
		b.Commands[cmd.Definition().Name] = cmd
	}
}

// Start opens the bot's session and registers handlers.
func (b *Bot) Start(registerHandlers func(*Bot)) error {
	registerHandlers(b)

	err := b.Session.Open()
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	utils.InitLogger(b.Session, b.Config.Bot.AdminChannelID)

	// Register slash commands
	for _, cmd := range b.Commands {
		_, err := b.Session.ApplicationCommandCreate(b.Session.State.User.ID, b.Config.Bot.GuildID, cmd.Definition())
		if err != nil {
			log.Error("cannot create command", "command", cmd.Definition().Name, "error", err)
		}
	}

	b.scheduler, err = NewScheduler(b.ctx, b.Sweeper.Sweep, b.Config.Sweep.Schedules)
	if err != nil {
		b.Session.Close()
		return err
	}
	b.scheduler.Start()

	log.Info("bot is now running, press CTRL-C to exit")
	return nil
}

// Stop gracefully closes the bot's session.
func (b *Bot) Stop() {
	b.cancel()
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	if b.Health != nil {
		b.Health.Stop()
	}
	if b.Session != nil {
		b.Session.Close()
	}
	if b.Store != nil {
		if err := b.Store.Close(); err != nil {
			log.Error("error closing policy store", "error", err)
		}
	}
	log.Info("bot stopped gracefully")
}

// Run starts the bot and blocks until SIGINT/SIGTERM or a fatal error in a supervised component.
func Run(cfg *models.Config, registerHandlers func(*Bot), commands []command.Command) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	bot, err := NewBot(ctx, cfg)
	if err != nil {
		return fmt.Errorf("error initializing bot: %w", err)
	}

	bot.RegisterCommands(commands)

	if err := bot.Start(registerHandlers); err != nil {
		bot.Stop()
		return fmt.Errorf("error starting bot: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	if bot.Health != nil {
		g.Go(bot.Health.Serve)
	}
	g.Go(func() error {
		<-gctx.Done()
		bot.Stop()
		return nil
	})
	return g.Wait()
}

func reportEnforcement(msg models.InboundMessage, outcome models.EnforcementOutcome) {
	switch outcome.Status {
	case models.EnforcementEnforced:
		details := fmt.Sprintf("Banned <@%s> in <#%s> for phrase `%s`", msg.AuthorID, msg.ChannelID, outcome.Phrase)
		if outcome.Err != nil {
			details += fmt.Sprintf(" (message not deleted: %v)", outcome.Err)
		}
		utils.Info("Autoban", "Enforce", details)
	case models.EnforcementFailed:
		utils.Warn("Autoban", "Enforce", fmt.Sprintf("Could not ban <@%s> in <#%s> for phrase `%s`: %v",
			msg.AuthorID, msg.ChannelID, outcome.Phrase, outcome.Err))
	}
}
