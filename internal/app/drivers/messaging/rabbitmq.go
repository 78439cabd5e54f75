package messaging

import (
	"fmt"
	"log"
	"net/url"

	"claimsync-service/internal/app/config"

	"github.com/rabbitmq/amqp091-go"
)

const connectionName = "claimsync-service"

// NewRabbitMQ opens the connection used to fan out claim status events.
func NewRabbitMQ(driverConfig *config.DriverConfig) *amqp091.Connection {
	uri := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(driverConfig.RabbitMQ.Username, driverConfig.RabbitMQ.Password),
		Host:   fmt.Sprintf("%s:%s", driverConfig.RabbitMQ.Host, driverConfig.RabbitMQ.Port),
		Path:   driverConfig.RabbitMQ.VHost,
	}

	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName(connectionName)

	conn, err := amqp091.DialConfig(uri.String(), amqp091.Config{
		Heartbeat:  driverConfig.RabbitMQ.Heartbeat,
		Properties: properties,
	})
	if err != nil {
		log.Fatalf("Failed to connect to rabbitMQ at %s: %s", uri.Redacted(), err.Error())
	}
	log.Printf("Successfully connected to rabbitMQ vhost %s", driverConfig.RabbitMQ.VHost)
	return conn
}
