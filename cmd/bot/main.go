package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/eventline-bot/eventline/internal/common/clock"
	lineHandler "github.com/eventline-bot/eventline/internal/handlers/line"
	eventRepo "github.com/eventline-bot/eventline/internal/repositories/event"
	sessionRepo "github.com/eventline-bot/eventline/internal/repositories/session"
	"github.com/eventline-bot/eventline/internal/services/flow"
	"github.com/eventline-bot/eventline/internal/services/query"
	"github.com/eventline-bot/eventline/internal/services/reminder"
)

type config struct {
	ChannelSecret string `env:"LINE_CHANNEL_SECRET,required"`
	ChannelToken  string `env:"LINE_CHANNEL_ACCESS_TOKEN,required"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8000"`

	ReminderCron string `env:"REMINDER_CRON" envDefault:"0 6 * * *"`

	// ReminderRecipients are the user IDs the daily digest is pushed to
	ReminderRecipients []string `env:"REMINDER_RECIPIENTS"`

	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`
}

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	clk := clock.New()

	events, err := eventRepo.NewRedis(&eventRepo.Config{
		RedisClient: redisClient,
	})
	if err != nil {
		log.Fatalf("Failed to create event repository: %v", err)
	}

	sessions, err := sessionRepo.NewMemory(&sessionRepo.Config{
		TTL:   cfg.SessionTTL,
		Clock: clk,
	})
	if err != nil {
		log.Fatalf("Failed to create session repository: %v", err)
	}
	defer sessions.Close()

	flowSvc, err := flow.New(&flow.Config{
		SessionRepo: sessions,
		EventRepo:   events,
		Clock:       clk,
	})
	if err != nil {
		log.Fatalf("Failed to create flow service: %v", err)
	}

	querySvc, err := query.New(&query.Config{
		SessionRepo: sessions,
		EventRepo:   events,
		Clock:       clk,
	})
	if err != nil {
		log.Fatalf("Failed to create query service: %v", err)
	}

	// The reminder service and the bot depend on each other through the LINE
	// client, so the bot is built first with a placeholder and gets the real
	// service after the notifier exists.
	reminderSvc, err := reminder.New(&reminder.Config{
		EventRepo:  events,
		Notifier:   noopNotifier{},
		Clock:      clk,
		Recipients: cfg.ReminderRecipients,
	})
	if err != nil {
		log.Fatalf("Failed to create reminder service: %v", err)
	}

	bot, err := lineHandler.New(&lineHandler.Config{
		ChannelSecret:   cfg.ChannelSecret,
		ChannelToken:    cfg.ChannelToken,
		FlowService:     flowSvc,
		QueryService:    querySvc,
		ReminderService: reminderSvc,
		Clock:           clk,
	})
	if err != nil {
		log.Fatalf("Failed to create LINE bot: %v", err)
	}

	notifier, err := lineHandler.NewPushNotifier(bot.Client())
	if err != nil {
		log.Fatalf("Failed to create push notifier: %v", err)
	}
	reminderSvc.SetNotifier(notifier)

	scheduler, err := reminder.NewScheduler(&reminder.SchedulerConfig{
		Service:  reminderSvc,
		CronSpec: cfg.ReminderCron,
	})
	if err != nil {
		log.Fatalf("Failed to create reminder scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer scheduler.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		bot.Callback(w, r)
	})

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: mux,
	}

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Print("Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	log.Print("Bot has been shut down")
}

// noopNotifier stands in until the LINE client exists.
type noopNotifier struct{}

func (noopNotifier) Push(context.Context, string, string) error { return nil }
