package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/circlein/CIN-BookingService/internal/domain"
)

const dayChannelPrefix = "bookings:day:"

// Event снапшот расписания на дату, рассылаемый подписчикам при любом
// изменении броней этой даты. Доставка best-effort: подписчик при подключении
// получает актуальный снапшот отдельно, поэтому потерянное сообщение
// восстанавливается следующим изменением.
type Event struct {
	Date     string         `json:"date"` // YYYY-MM-DD
	Bookings []EventBooking `json:"bookings"`
}

// EventBooking бронирование в составе снапшота
type EventBooking struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	AmenityID int64     `json:"amenityId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayChannel возвращает имя redis-канала для даты
func DayChannel(date time.Time) string {
	return dayChannelPrefix + date.Format(domain.DateFormat)
}

// NewEvent собирает снапшот дня из доменных броней
func NewEvent(date time.Time, bookings []*domain.Booking) Event {
	event := Event{
		Date:     date.Format(domain.DateFormat),
		Bookings: make([]EventBooking, 0, len(bookings)),
	}
	for _, b := range bookings {
		event.Bookings = append(event.Bookings, EventBooking{
			ID:        b.ID,
			UserID:    b.UserID,
			AmenityID: b.AmenityID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
			CreatedAt: b.CreatedAt,
		})
	}
	return event
}

// Notifier канал изменений расписания поверх redis pub/sub.
// Публикация выполняется после коммита транзакции и не влияет на результат
// операции: ошибки публикации только логируются вызывающей стороной.
type Notifier struct {
	client *redis.Client
	logger Logger
}

// New создает notifier поверх подключения к redis
func New(client *redis.Client, logger Logger) *Notifier {
	return &Notifier{client: client, logger: logger}
}

// PublishDay публикует снапшот расписания даты в канал этой даты
func (n *Notifier) PublishDay(ctx context.Context, date time.Time, bookings []*domain.Booking) error {
	event := NewEvent(date, bookings)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notifier: failed to marshal day event: %w", err)
	}

	if err := n.client.Publish(ctx, DayChannel(date), payload).Err(); err != nil {
		return fmt.Errorf("notifier: failed to publish to %s: %w", DayChannel(date), err)
	}

	n.logger.Info("Notifier: published %d bookings to %s", len(event.Bookings), DayChannel(date))
	return nil
}

// SubscribeDay подписывается на изменения расписания даты.
// Возвращает канал событий и функцию отписки; канал закрывается после отписки
// или отмены контекста.
func (n *Notifier) SubscribeDay(ctx context.Context, date time.Time) (<-chan Event, func()) {
	pubsub := n.client.Subscribe(ctx, DayChannel(date))
	events := make(chan Event)

	go func() {
		defer close(events)

		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				n.logger.Warn("Notifier: failed to decode event from %s: %v", msg.Channel, err)
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	unsubscribe := func() {
		_ = pubsub.Close()
	}

	return events, unsubscribe
}
