package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/psharishgithub/open-space-platform-pro/api"
	"github.com/psharishgithub/open-space-platform-pro/config"
	"github.com/psharishgithub/open-space-platform-pro/database"
	"github.com/psharishgithub/open-space-platform-pro/logger"
	"github.com/psharishgithub/open-space-platform-pro/models"
	"github.com/psharishgithub/open-space-platform-pro/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	logger.Init(config.GetString(c, "LOG_LEVEL", "info"))

	if prefix := config.GetString(c, "SSM_PARAMETER_PATH", ""); prefix != "" {
		params, err := loadSSM(prefix, config.GetString(c, "AWS_REGION", "us-east-1"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load parameters from SSM")
		}
		c = config.Merge(c, params)
		log.Info().Int("count", len(params)).Str("path", prefix).Msg("merged SSM parameters")
	}
	settings := config.Load(c)

	log.Info().Str("dbType", settings.Database.Type).Msg("connecting to database")
	db, err := database.Open(settings.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		fmt.Println("Generating column mismatch report...")
		if err := models.LogColumnMismatchReport(db); err != nil {
			log.Fatal().Err(err).Msg("column mismatch report failed")
		}
		return
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	currentDB := database.New(db)

	var limiter *services.RateLimiter
	if settings.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: settings.RedisAddr, Password: settings.RedisPassword})
		defer rdb.Close()
		limiter = services.NewRedisRateLimiter(rdb, "", settings.VoteRateLimit, settings.VoteBurst)
		log.Info().Str("addr", settings.RedisAddr).Msg("vote rate limiting enabled")
	}

	var store services.ObjectStore
	if settings.S3Bucket != "" {
		s3Store, err := services.NewS3Store(context.Background(), settings.S3Bucket, settings.S3Region, settings.S3PublicBaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to configure S3")
		}
		store = s3Store
		log.Info().Str("bucket", settings.S3Bucket).Msg("project image uploads enabled")
	}

	github := services.NewGithubOAuth(services.GithubOAuthConfig{
		ClientID:     settings.GithubClientID,
		ClientSecret: settings.GithubClientSecret,
		RedirectURL:  settings.BaseURL + "/api/github/callback",
		APIBaseURL:   settings.GithubAPIBaseURL,
	})

	svc := api.NewServices(currentDB, settings, github, store, limiter)

	scheduler, err := services.NewScheduler(svc.Voting, settings.VotingSweepSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure scheduler")
	}
	scheduler.Start()

	// one slot each for the server and the signal listener, so neither blocks after shutdown
	errChannel := make(chan error, 2)

	server, err := api.NewServer(svc, settings)
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	scheduler.Stop(ctx)
}

func loadSSM(prefix, region string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(strings.TrimSpace(region)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return config.LoadSSMParameters(ctx, ssm.NewFromConfig(cfg), prefix)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
