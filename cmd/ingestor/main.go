package main

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/config"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/database"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/service"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	svcs := service.New(db)

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	canalHandler := func(_ mqtt.Client, msg mqtt.Message) {
		if err := svcs.Telemetry.CanalFlowFromMQTT(msg.Payload()); err != nil {
			log.Error().Err(err).Msg("canal flow ingest failed")
		}
	}
	waterHandler := func(_ mqtt.Client, msg mqtt.Message) {
		if err := svcs.Telemetry.WaterFlowFromMQTT(msg.Payload()); err != nil {
			log.Error().Err(err).Msg("water flow ingest failed")
		}
	}

	if token := client.Subscribe("irrigation/canal-flow", 0, canalHandler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}
	if token := client.Subscribe("irrigation/water-flow", 0, waterHandler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Msg("ingestor running; Ctrl+C to stop")
	for {
		time.Sleep(10 * time.Second)
	}
}
