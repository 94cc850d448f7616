package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"sluice-scada/internal/domain"
	"sluice-scada/internal/service"

	"go.uber.org/zap"
)

// Publisher is the subset of common/mqtt.Client used here.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	QoS() byte
}

// GateCommandPublisher forwards accepted gate commands to the field
// controllers on <prefix>/<gate_id>/command.
type GateCommandPublisher struct {
	client      Publisher
	topicPrefix string
	logger      *zap.Logger
}

var _ service.CommandPublisher = (*GateCommandPublisher)(nil)

func NewGateCommandPublisher(client Publisher, topicPrefix string, logger *zap.Logger) *GateCommandPublisher {
	return &GateCommandPublisher{
		client:      client,
		topicPrefix: strings.TrimRight(topicPrefix, "/"),
		logger:      logger,
	}
}

// CommandTopic topic for commands addressed to one gate.
func (p *GateCommandPublisher) CommandTopic(id domain.GateID) string {
	return fmt.Sprintf("%s/%d/command", p.topicPrefix, int(id))
}

type commandMessage struct {
	GateID   int    `json:"gate_id"`
	Command  string `json:"command"`
	Position int    `json:"position"`
	UserID   int64  `json:"user_id"`
	IssuedAt string `json:"issued_at"`
}

// PublishGateCommand ctx is unused: paho bounds the wait with its own timeout.
func (p *GateCommandPublisher) PublishGateCommand(ctx context.Context, evt service.GateCommandEvent) error {
	payload, err := json.Marshal(commandMessage{
		GateID:   int(evt.GateID),
		Command:  evt.Command,
		Position: evt.Position,
		UserID:   evt.UserID,
		IssuedAt: evt.IssuedAt.Format(domain.TimestampLayout),
	})
	if err != nil {
		return fmt.Errorf("failed to encode gate command: %w", err)
	}

	topic := p.CommandTopic(evt.GateID)
	if err := p.client.Publish(topic, p.client.QoS(), false, payload); err != nil {
		return err
	}

	p.logger.Debug("Gate command published",
		zap.String("topic", topic),
		zap.Int("gate_id", int(evt.GateID)),
		zap.Int("position", evt.Position),
	)
	return nil
}
