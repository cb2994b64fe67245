package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	notificationUsecases "github.com/qreserve/qreserve/internal/application/notification/usecases"
	"github.com/qreserve/qreserve/internal/infrastructure/email"
	"github.com/qreserve/qreserve/internal/infrastructure/pubsub"
	"github.com/qreserve/qreserve/internal/interfaces/cli/clienv"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the notification worker",
		Long: `Consume ticket notifications from the configured queue and deliver them
by email. The memory driver is drained inside the server process instead.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := clienv.Load(env, configPath)
	if err != nil {
		return err
	}
	log = log.Named("notification.worker")

	if strings.EqualFold(cfg.Notification.Driver, "memory") {
		return fmt.Errorf("the memory notification driver has no external queue; the server drains it in-process")
	}

	var redisClient *redis.Client
	if strings.EqualFold(cfg.Notification.Driver, "redis") {
		redisClient = pubsub.NewRedisClient(&cfg.Redis)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.GetAddr(), err)
		}
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
	}

	consumer, err := pubsub.NewConsumer(&cfg.Notification, redisClient, log)
	if err != nil {
		return fmt.Errorf("failed to initialize notification consumer: %w", err)
	}
	defer consumer.Close()

	send, err := notificationUsecases.NewSendNotificationUseCase(email.NewSender(&cfg.Email, log), cfg.Server.BaseURL, log)
	if err != nil {
		return fmt.Errorf("failed to initialize notification templates: %w", err)
	}

	log.Infow("starting notification worker", "environment", env, "driver", cfg.Notification.Driver)
	return notificationUsecases.NewWorker(consumer, send, log).Run(cmd.Context())
}
