// Package notify отправляет менеджеру уведомления о новых заказах через Telegram.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/fsdevblog/botshop/internal/logger"
	"github.com/fsdevblog/botshop/internal/transport/notify/client"
	"github.com/sirupsen/logrus"
)

const (
	defaultSendTimeout      = 10 * time.Second
	defaultWorkers     uint = 2
	defaultQueueSize        = 100
)

// Dispatcher принимает заказы в буферизированную очередь и рассылает уведомления в фоне.
// Отправка best-effort: ошибки только логируются.
type Dispatcher struct {
	sender      Sender
	chatID      int64
	queue       chan domain.Order
	workers     uint
	sendTimeout time.Duration
	loc         *time.Location
	l           *logrus.Entry
}

func New(sender Sender, chatID int64, l *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		sender:      sender,
		chatID:      chatID,
		queue:       make(chan domain.Order, defaultQueueSize),
		workers:     defaultWorkers,
		sendTimeout: defaultSendTimeout,
		loc:         time.UTC,
		l:           logger.Component(l, "notify", "dispatcher"),
	}
}

// SetWorkers устанавливает кол-во воркеров отправки.
func (d *Dispatcher) SetWorkers(workers uint) *Dispatcher {
	if workers > 0 {
		d.workers = workers
	}
	return d
}

// SetQueueSize меняет размер очереди. Вызывать до Run.
func (d *Dispatcher) SetQueueSize(size int) *Dispatcher {
	if size > 0 {
		d.queue = make(chan domain.Order, size)
	}
	return d
}

// SetSendTimeout устанавливает общий лимит времени на отправку одного уведомления, включая повтор.
func (d *Dispatcher) SetSendTimeout(timeout time.Duration) *Dispatcher {
	d.sendTimeout = timeout
	return d
}

// SetLocation задает часовой пояс времени создания заказа в сообщении.
func (d *Dispatcher) SetLocation(loc *time.Location) *Dispatcher {
	if loc != nil {
		d.loc = loc
	}
	return d
}

// Enqueue ставит заказ в очередь без блокировки. Если очередь заполнена, уведомление теряется
// и возвращается false.
func (d *Dispatcher) Enqueue(order domain.Order) bool {
	select {
	case d.queue <- order:
		return true
	default:
		d.l.WithField("orderID", order.ID).Warn("notification queue is full, dropping")
		return false
	}
}

// Run запускает воркеров и блокируется до отмены ctx.
func (d *Dispatcher) Run(ctx context.Context) {
	d.l.WithFields(logrus.Fields{
		"workers": d.workers,
		"chatID":  d.chatID,
	}).Info("Starting")

	wg := new(sync.WaitGroup)
	wg.Add(int(d.workers)) // nolint:gosec
	for i := range d.workers {
		go d.worker(ctx, wg, i+1)
	}
	wg.Wait()

	if pending := len(d.queue); pending > 0 {
		d.l.WithField("pending", pending).Warn("stopped with unsent notifications")
	}
	d.l.Info("Got stop signal, exiting...")
}

func (d *Dispatcher) worker(ctx context.Context, wg *sync.WaitGroup, workerID uint) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case order := <-d.queue:
			d.NotifyNewOrder(ctx, order, workerID)
		}
	}
}

// NotifyNewOrder отправляет уведомление о заказе в пределах sendTimeout. Возвращает true при успехе.
// При ответе 429 делает одну повторную попытку, если ожидание укладывается в лимит.
func (d *Dispatcher) NotifyNewOrder(ctx context.Context, order domain.Order, workerID uint) (ok bool) {
	l := d.l.WithFields(logrus.Fields{
		"worker":  workerID,
		"orderID": order.ID,
	})
	defer func() {
		if r := recover(); r != nil {
			l.WithField("panic", r).Error("notify new order")
			ok = false
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	if err := d.send(sendCtx, FormatNewOrder(order, d.loc)); err != nil {
		l.WithError(err).Error("notify new order")
		return false
	}
	l.Info("Success")
	return true
}

func (d *Dispatcher) send(ctx context.Context, text string) error {
	_, err := d.sender.SendMessage(ctx, d.chatID, text)
	if err == nil {
		return nil
	}

	var tooManyReq *client.TooManyRequestError
	if !errors.As(err, &tooManyReq) {
		return err //nolint:wrapcheck
	}
	if deadline, hasDeadline := ctx.Deadline(); hasDeadline && time.Until(deadline) < tooManyReq.RetryAfter {
		return fmt.Errorf("retry does not fit into send timeout: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-time.After(tooManyReq.RetryAfter):
	}

	if _, retryErr := d.sender.SendMessage(ctx, d.chatID, text); retryErr != nil {
		return fmt.Errorf("retry: %w", retryErr)
	}
	return nil
}
