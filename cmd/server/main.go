package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/codeclash/backend/conf"
	"github.com/codeclash/backend/http"
	"github.com/codeclash/backend/judge"
	"github.com/codeclash/backend/scoring"
	"github.com/codeclash/backend/submqueue"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		panic("Error loading .env file")
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.PgConnStrFromEnv())
	if err != nil {
		slog.Error("failed to create pg pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	policy, err := conf.ReadScoringPolicy(os.Getenv("SCORING_POLICY_FILE"))
	if err != nil {
		slog.Error("failed to load scoring policy", "error", err)
		os.Exit(1)
	}

	judgeClient := judge.NewHttpClient(judge.HttpClientConfig{
		BaseURL:  os.Getenv("JUDGE_BASE_URL"),
		Username: os.Getenv("JUDGE_USERNAME"),
		Password: os.Getenv("JUDGE_PASSWORD"),
		Timeout:  60 * time.Second,
	}, slog.Default())

	engine := scoring.NewEngine(scoring.NewPgStore(pool), judgeClient, policy)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load aws config", "error", err)
		os.Exit(1)
	}
	sqsClient := sqs.NewFromConfig(awsCfg)

	publisher := submqueue.NewSqsResultPublisher(sqsClient,
		os.Getenv("SUBMIT_RESULT_QUEUE_URL"))
	consumer := submqueue.NewConsumer(engine, sqsClient,
		os.Getenv("SUBMIT_CMD_QUEUE_URL"), publisher)

	go func() {
		if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
			slog.Error("queue consumer stopped", "error", err)
		}
	}()

	httpServer := http.NewHttpServer(engine, []byte(jwtKey))

	address := ":8080"
	log.Printf("Starting server on %s", address)
	err = httpServer.Start(address)
	log.Printf("Server stopped with error: %v", err)
}
