package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/config"
)

type canalFlow struct {
	CanalID  string  `json:"canalId"`
	FlowRate float64 `json:"flowRate"`
	AdminID  string  `json:"adminId"`
}

type waterFlow struct {
	FieldID   string    `json:"fieldId"`
	FlowRate  float64   `json:"flowRate"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func main() {
	rand.Seed(time.Now().UnixNano())
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	for i := 0; i < 100; i++ {
		cf := canalFlow{
			CanalID:  fmt.Sprintf("canal-%03d", 1+rand.Intn(3)),
			FlowRate: 10 + rand.Float64()*50,
			AdminID:  "admin-001",
		}
		payload, _ := json.Marshal(cf)
		token := client.Publish("irrigation/canal-flow", 0, false, payload)
		token.Wait()

		wf := waterFlow{
			FieldID:   "field-001",
			FlowRate:  5 + rand.Float64()*10,
			Status:    "flowing",
			Timestamp: time.Now(),
		}
		payload, _ = json.Marshal(wf)
		token = client.Publish("irrigation/water-flow", 0, false, payload)
		token.Wait()

		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
