package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/irrigatech/irrigation-monitoring-backend/internal/cloud"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/domain"
	"github.com/irrigatech/irrigation-monitoring-backend/internal/repository"
)

type TelemetryService struct {
	repos  *repository.Repos
	sns    *cloud.SNSClient
	dynamo *cloud.DynamoDBClient
}

// RecordCanalFlow persists a canal reading and evaluates it against the
// canal's flow rule. The reading insert and the notification insert are
// independent writes; a notification failure is logged, not surfaced, so the
// telemetry write still reports success.
func (s *TelemetryService) RecordCanalFlow(canalID string, flowRate float64, adminID string) error {
	rd := &domain.CanalFlowReading{
		CanalID:   canalID,
		FlowRate:  flowRate,
		AdminID:   adminID,
		Timestamp: time.Now(),
	}
	if err := s.repos.InsertCanalFlow(rd); err != nil {
		return fmt.Errorf("canal flow insert failed: %w", err)
	}

	if s.dynamo != nil {
		if err := s.dynamo.PutFlowReading(rd); err != nil {
			log.Warn().Err(err).Str("canal", canalID).Msg("dynamodb mirror failed")
		}
	}

	s.evaluate(canalID, flowRate, adminID)
	return nil
}

// evaluate checks the reading against the most recently created matching rule.
// No rule means no action. Every out-of-range reading produces a fresh
// notification; there is no debouncing.
func (s *TelemetryService) evaluate(canalID string, flowRate float64, adminID string) {
	rule, err := s.repos.FindRule(canalID, adminID)
	if err != nil {
		log.Error().Err(err).Str("canal", canalID).Msg("rule lookup failed")
		return
	}
	if rule == nil {
		return
	}
	if flowRate >= rule.MinFlowRate && flowRate <= rule.MaxFlowRate {
		return
	}

	msg := fmt.Sprintf("%s flow %g L/min violated rule (%g-%g)", canalID, flowRate, rule.MinFlowRate, rule.MaxFlowRate)
	n := &domain.Notification{
		CanalID:   canalID,
		Message:   msg,
		AdminID:   adminID,
		Timestamp: time.Now(),
		Read:      false,
	}
	if err := s.repos.InsertNotification(n); err != nil {
		log.Error().Err(err).Str("canal", canalID).Msg("notification insert failed")
		return
	}

	if s.sns != nil {
		if err := s.sns.SendViolationAlert(canalID, flowRate, rule.MinFlowRate, rule.MaxFlowRate); err != nil {
			log.Warn().Err(err).Str("canal", canalID).Msg("sns alert failed")
		}
	}
}

// RecordWaterFlow persists a field-level water reading from a sensor.
func (s *TelemetryService) RecordWaterFlow(fieldID string, flowRate float64, status string, ts time.Time) error {
	if ts.IsZero() {
		ts = time.Now()
	}
	w := &domain.WaterFlowReading{
		FieldID:   fieldID,
		FlowRate:  flowRate,
		Status:    status,
		Timestamp: ts,
	}
	if err := s.repos.InsertWaterFlow(w); err != nil {
		return fmt.Errorf("water flow insert failed: %w", err)
	}
	return nil
}

// CanalFlowFromMQTT decodes a sensor payload off the canal-flow topic and
// records it through the same path as the HTTP endpoint.
func (s *TelemetryService) CanalFlowFromMQTT(payload []byte) error {
	var m struct {
		CanalID  string  `json:"canalId"`
		FlowRate float64 `json:"flowRate"`
		AdminID  string  `json:"adminId"`
	}
	if err := json.Unmarshal(payload, &m); err != nil {
		return err
	}
	return s.RecordCanalFlow(m.CanalID, m.FlowRate, m.AdminID)
}

func (s *TelemetryService) WaterFlowFromMQTT(payload []byte) error {
	var m struct {
		FieldID   string    `json:"fieldId"`
		FlowRate  float64   `json:"flowRate"`
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
	}
	if err := json.Unmarshal(payload, &m); err != nil {
		return err
	}
	return s.RecordWaterFlow(m.FieldID, m.FlowRate, m.Status, m.Timestamp)
}
