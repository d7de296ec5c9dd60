// Package mqtt provides the telemetry publisher for the bot.
// Moderation events and migration progress are published as JSON messages.
package mqtt

import (
	"fmt"
	"sync"
	"time"

	"github.com/TrapoCloud/TrapoBotGo/pkg/logger"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Topics used by the bot
const (
	TopicModeration = "trapobot/moderation"
	TopicMigration  = "trapobot/migration"
)

// MqttCommunicator handles MQTT communication
type MqttCommunicator struct {
	client        mqtt.Client
	subscriptions map[string]mqtt.MessageHandler
	mu            sync.RWMutex
	clientID      string
}

var (
	communicator *MqttCommunicator
	once         sync.Once
)

// Init initializes the global MQTT communicator
func Init(host, port, username, password, clientID string) *MqttCommunicator {
	once.Do(func() {
		communicator = NewMqttCommunicator(host, port, username, password, clientID)
	})
	return communicator
}

// Get returns the global MQTT communicator
func Get() *MqttCommunicator {
	return communicator
}

// NewMqttCommunicator creates a new MQTT communicator
func NewMqttCommunicator(host, port, username, password, clientID string) *MqttCommunicator {
	mc := &MqttCommunicator{
		subscriptions: make(map[string]mqtt.MessageHandler),
		clientID:      clientID,
	}

	uniqueID := fmt.Sprintf("%s_%s", clientID, uuid.New().String())

	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%s", host, port)).
		SetClientID(uniqueID).
		SetUsername(username).
		SetPassword(password).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(c mqtt.Client) {
			logger.Success(fmt.Sprintf("Conectado al broker MQTT como %s", clientID), "MQTT")
			mc.resubscribe()
		}).
		SetConnectionLostHandler(func(c mqtt.Client, err error) {
			logger.Error(fmt.Sprintf("Conexión MQTT perdida: %v", err), "MQTT")
		})

	mc.client = mqtt.NewClient(opts)

	token := mc.client.Connect()
	if token.Wait() && token.Error() != nil {
		logger.Error(fmt.Sprintf("Error de conexión MQTT: %v", token.Error()), "MQTT")
	}

	return mc
}

// Destroy closes the MQTT connection
func (mc *MqttCommunicator) Destroy() {
	if mc.client != nil && mc.client.IsConnected() {
		mc.client.Disconnect(250)
		logger.System("Conexión MQTT cerrada exitosamente.", "MQTT")
	} else {
		logger.Warn("El cliente MQTT no estaba conectado, no se necesita cerrar.", "MQTT")
	}
}

// IsConnected returns true if connected to the broker
func (mc *MqttCommunicator) IsConnected() bool {
	return mc.client != nil && mc.client.IsConnected()
}

// Publish sends a JSON message to a topic
func (mc *MqttCommunicator) Publish(topic string, payload interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	token := mc.client.Publish(topic, 0, false, jsonData)
	token.Wait()
	return token.Error()
}

// Subscribe registers a handler for a topic
func (mc *MqttCommunicator) Subscribe(topic string, handler mqtt.MessageHandler) error {
	mc.mu.Lock()
	mc.subscriptions[topic] = handler
	mc.mu.Unlock()

	token := mc.client.Subscribe(topic, 0, handler)
	token.Wait()
	return token.Error()
}

// resubscribe restores subscriptions after a reconnection
func (mc *MqttCommunicator) resubscribe() {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	for topic, handler := range mc.subscriptions {
		token := mc.client.Subscribe(topic, 0, handler)
		token.Wait()
		if token.Error() != nil {
			logger.Warn(fmt.Sprintf("No se pudo restaurar la suscripción a '%s'", topic), "MQTT")
		}
	}
}
