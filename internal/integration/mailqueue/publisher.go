package mailqueue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"

	"github.com/klimenko666/dptmptch/internal/domain/employer"
	"github.com/klimenko666/dptmptch/internal/domain/vacancy"
)

// Publisher delivers mail events to the queue the mail sender consumes.
// Delivery is best effort: callers fire it from a detached goroutine and
// drop the error after logging.
type Publisher interface {
	VacancyCreated(ctx context.Context, e employer.Employer, v vacancy.Vacancy) error
	VacancyClosed(ctx context.Context, e employer.Employer, v vacancy.Vacancy) error
}

type event struct {
	Type             string          `json:"type"`
	RecipientEmail   string          `json:"recipient_email"`
	RecipientName    string          `json:"recipient_name"`
	OrganizationName string          `json:"organization_name"`
	Vacancy          vacancy.Vacancy `json:"vacancy"`
}

type AMQPPublisher struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	queueName string
	cb        *gobreaker.CircuitBreaker
}

func NewAMQPPublisher(amqpURL, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	// Queue declaration is idempotent.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "mailqueue-publisher",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &AMQPPublisher{conn: conn, ch: ch, queueName: queueName, cb: cb}, nil
}

func (p *AMQPPublisher) VacancyCreated(ctx context.Context, e employer.Employer, v vacancy.Vacancy) error {
	return p.publish(ctx, event{
		Type:             "vacancy.created",
		RecipientEmail:   e.Email,
		RecipientName:    e.ContactName,
		OrganizationName: e.OrganizationName,
		Vacancy:          v,
	})
}

func (p *AMQPPublisher) VacancyClosed(ctx context.Context, e employer.Employer, v vacancy.Vacancy) error {
	return p.publish(ctx, event{
		Type:             "vacancy.closed",
		RecipientEmail:   e.Email,
		RecipientName:    e.ContactName,
		OrganizationName: e.OrganizationName,
		Vacancy:          v,
	})
}

func (p *AMQPPublisher) publish(ctx context.Context, evt event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.ch.PublishWithContext(ctx, "", p.queueName, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	})
	return err
}

func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		if err := p.ch.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops all events. It stands in when no AMQP broker is
// configured, so development setups run without mail delivery.
type NopPublisher struct{}

func (NopPublisher) VacancyCreated(context.Context, employer.Employer, vacancy.Vacancy) error {
	return nil
}

func (NopPublisher) VacancyClosed(context.Context, employer.Employer, vacancy.Vacancy) error {
	return nil
}
