package eventqueue

import (
	"context"
	"fmt"
	"sync"

	"claimsync-service/internal/app/models"
	"claimsync-service/internal/pkg/constvars"
	"claimsync-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ClaimStatusEventMessage is the payload published for every committed
// claim status transition.
type ClaimStatusEventMessage struct {
	ID                  string  `json:"id"`
	ClaimID             string  `json:"claim_id"`
	PreviousStatus      string  `json:"previous_status"`
	NewStatus           string  `json:"new_status"`
	Source              string  `json:"source"`
	ResponseCode        string  `json:"response_code,omitempty"`
	ResponseDescription string  `json:"response_description,omitempty"`
	PaymentAmount       *string `json:"payment_amount"`
	CreatedAt           string  `json:"created_at"`
}

func NewClaimStatusEventMessage(event *models.ClaimStatusEvent) ClaimStatusEventMessage {
	message := ClaimStatusEventMessage{
		ID:                  event.ID,
		ClaimID:             event.ClaimID,
		PreviousStatus:      string(event.PreviousStatus),
		NewStatus:           string(event.NewStatus),
		Source:              string(event.Source),
		ResponseCode:        event.ResponseCode,
		ResponseDescription: event.ResponseDescription,
		CreatedAt:           event.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if event.PaymentAmount.Valid {
		amount := event.PaymentAmount.Decimal.StringFixed(2)
		message.PaymentAmount = &amount
	}
	return message
}

// Service publishes claim status events to a durable queue.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	queue    string
	confirms chan amqp.Confirmation
	mu       sync.Mutex
}

// NewService opens a channel, declares the queue and enables publisher
// confirms.
func NewService(conn *amqp.Connection, log *zap.Logger, queue string) (*Service, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &Service{
		ch:       ch,
		log:      log,
		queue:    queue,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

// PublishStatusEvent publishes the event as a persistent message and waits
// for the broker confirm.
func (s *Service) PublishStatusEvent(ctx context.Context, event *models.ClaimStatusEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.log.Info("eventqueue.PublishStatusEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClaimIDKey, event.ClaimID),
		zap.String(constvars.LoggingNewStatusKey, string(event.NewStatus)),
	)

	body, err := json.Marshal(NewClaimStatusEventMessage(event))
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
	}

	if err := s.ch.PublishWithContext(ctx, "", s.queue, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queue)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), s.queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), s.queue)
	}
	return nil
}

func (s *Service) Close() error {
	return s.ch.Close()
}
