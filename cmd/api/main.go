package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/cloud"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/config"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/database"
	httpHandlers "github.com/irrigatech/irrigation-monitoring-backend/internal/http"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	svcs := service.New(db)

	if config.UseCloudServices() {
		snsClient, err := cloud.NewSNSClient(config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Fatal().Err(err).Msg("sns client init failed")
		}
		dynamoClient, err := cloud.NewDynamoDBClient(config.AWSRegion(), config.DynamoTable())
		if err != nil {
			log.Fatal().Err(err).Msg("dynamodb client init failed")
		}
		s3Client, err := cloud.NewS3Client(config.AWSRegion(), config.S3Bucket())
		if err != nil {
			log.Fatal().Err(err).Msg("s3 client init failed")
		}
		svcs.EnableCloud(snsClient, dynamoClient, s3Client)
		log.Info().Msg("cloud services enabled")
	}

	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	httpHandlers.Register(app, svcs)

	addr := viper.GetString("API_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}
