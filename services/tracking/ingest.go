package tracking

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"fleetflow/logger"
	trackingTypes "fleetflow/types/tracking"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const telemetryTopic = "fleetflow/telemetry/+"

// Ingestor subscribes to the telemetry topic and feeds pings through the
// tracking service. Enabled only when MQTT_BROKER_URL is set.
type Ingestor struct {
	svc    *Service
	client mqtt.Client
}

// StartIngestor connects to the broker and subscribes to vehicle telemetry.
// Returns (nil, nil) when no broker is configured.
func StartIngestor(svc *Service) (*Ingestor, error) {
	brokerURL := os.Getenv("MQTT_BROKER_URL")
	if brokerURL == "" {
		return nil, nil
	}

	clientID := os.Getenv("MQTT_CLIENT_ID")
	if clientID == "" {
		clientID = "fleetflow-ingestor"
	}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	if username := os.Getenv("MQTT_USERNAME"); username != "" {
		opts.SetUsername(username)
		opts.SetPassword(os.Getenv("MQTT_PASSWORD"))
	}

	ing := &Ingestor{svc: svc}

	opts.SetOnConnectHandler(func(client mqtt.Client) {
		if token := client.Subscribe(telemetryTopic, 1, ing.handleMessage); token.Wait() && token.Error() != nil {
			logger.Error("Failed to subscribe to telemetry topic", token.Error())
			return
		}
		logger.Success("Subscribed to telemetry topic: " + telemetryTopic)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	ing.client = client
	return ing, nil
}

// Stop disconnects from the broker
func (i *Ingestor) Stop() {
	if i.client != nil && i.client.IsConnected() {
		i.client.Disconnect(250)
	}
}

// handleMessage validates one telemetry payload and persists it. Malformed or
// out-of-range payloads are logged and dropped; the subscription stays up.
func (i *Ingestor) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var req trackingTypes.LocationPingRequest
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		logger.Error("Dropping malformed telemetry payload on "+msg.Topic(), err)
		return
	}

	if _, err := i.svc.Record(&req); err != nil {
		logger.Error(fmt.Sprintf("Dropping telemetry for vehicle %d", req.VehicleID), err)
	}
}
