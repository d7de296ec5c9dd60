package nickname

import (
	"fmt"

	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	"github.com/TrapoCloud/TrapoBotGo/pkg/models"
	"github.com/TrapoCloud/TrapoBotGo/pkg/mqtt"
)

// progressMessage is the wire shape of one progress publish
type progressMessage struct {
	models.MigrationRun
	Final bool `json:"final"`
}

// TelemetrySink publishes run snapshots to the MQTT migration topic
type TelemetrySink struct {
	communicator *mqtt.MqttCommunicator
	topic        string
}

// NewTelemetrySink creates a TelemetrySink publishing to the given topic
func NewTelemetrySink(communicator *mqtt.MqttCommunicator, topic string) *TelemetrySink {
	return &TelemetrySink{communicator: communicator, topic: topic}
}

// Publish sends the snapshot as JSON telemetry; a disconnected broker drops it
func (s *TelemetrySink) Publish(run models.MigrationRun, final bool) {
	if s.communicator == nil || !s.communicator.IsConnected() {
		return
	}
	msg := progressMessage{MigrationRun: run, Final: final}
	if err := s.communicator.Publish(s.topic, msg); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo publicar progreso de migración: %v", err), "Nickname")
	}
}
