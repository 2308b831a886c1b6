package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"campusms/internal/logger"
	"campusms/internal/metrics"
	"campusms/internal/user"
	"campusms/internal/wallet"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "notifications"
	failedKey = "notifications:failed"

	TypeBalanceChanged   = "balance_changed"
	TypeBookingConfirmed = "booking_confirmed"
)

type Job struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Dispatcher delivers fire-and-forget events over a redis queue. Callers on
// the transactional path only pay for an LPUSH; SMTP delivery happens in the
// worker loop and its failures never reach the ledger.
type Dispatcher struct {
	redis    *redis.Client
	users    user.Repository
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(users user.Repository, fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Dispatcher {
	return &Dispatcher{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		users:    users,
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, job Job) error {
	job.Tries = 0
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal notification job: %v", err)
		return err
	}

	if err := d.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue %s notification to %s: %v", job.Type, job.To, err)
		metrics.RecordNotification(job.Type, "queue_failed")
		return err
	}

	metrics.RecordNotification(job.Type, "queued")
	logger.Infof("Notification queued: %s to %s", job.Type, job.To)
	return nil
}

// BalanceChanged satisfies the payment engine's notifier contract.
func (d *Dispatcher) BalanceChanged(ctx context.Context, userID int, newBalanceCents int64, description string) error {
	u, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`Hi %s,

Your campus wallet balance has changed.

Activity: %s
New Balance: BDT %s

- CampusMS`, u.Name, description, wallet.FormatAmount(newBalanceCents))

	return d.enqueue(ctx, Job{
		Type:    TypeBalanceChanged,
		To:      u.Email,
		Name:    u.Name,
		Subject: "Wallet Balance Update",
		Body:    body,
	})
}

func (d *Dispatcher) BookingConfirmed(ctx context.Context, userID int, dateFrom, dateTo time.Time, meals string, amountCents int64) error {
	u, err := d.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	body := fmt.Sprintf(`Hi %s,

Your meal booking is confirmed!

Dates: %s to %s
Meals: %s
Charged: BDT %s

Show your booking QR code at the cafeteria counter.

- CampusMS`, u.Name,
		dateFrom.Format("Jan 2, 2006"), dateTo.Format("Jan 2, 2006"),
		meals, wallet.FormatAmount(amountCents))

	return d.enqueue(ctx, Job{
		Type:    TypeBookingConfirmed,
		To:      u.Email,
		Name:    u.Name,
		Subject: "Meal Booking Confirmed",
		Body:    body,
	})
}

func (d *Dispatcher) Start(ctx context.Context) {
	logger.Info("Notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification dispatcher stopped")
			return
		default:
			d.processNext(ctx)
		}
	}
}

func (d *Dispatcher) processNext(ctx context.Context) {
	result, err := d.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad notification data: %v", err)
		return
	}

	job.Tries++
	logger.Infof("Sending %s notification to %s (attempt %d)", job.Type, job.To, job.Tries)
	if err := d.sendNow(job); err != nil {
		logger.Errorf("Failed to send notification to %s: %v", job.To, err)

		if job.Tries < 3 {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			d.redis.LPush(context.Background(), queueKey, data)
		} else {
			logger.Errorf("Notification to %s failed after 3 attempts", job.To)
			metrics.RecordNotification(job.Type, "failed")
			d.saveFailed(job, err)
		}
		return
	}

	metrics.RecordNotification(job.Type, "sent")
	logger.Infof("Notification sent to %s", job.To)
}

func (d *Dispatcher) sendNow(job Job) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", d.fromName, d.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if d.smtpUser != "" && d.smtpPass != "" {
		auth = smtp.PlainAuth("", d.smtpUser, d.smtpPass, d.smtpHost)
	}

	addr := d.smtpHost + ":" + d.smtpPort
	return smtp.SendMail(addr, auth, d.from, []string{job.To}, []byte(message))
}

func (d *Dispatcher) saveFailed(job Job, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	d.redis.LPush(context.Background(), failedKey, data)
	logger.Errorf("Notification moved to failed queue: %s", job.To)
}

func (d *Dispatcher) QueueLength(ctx context.Context) int64 {
	length, _ := d.redis.LLen(ctx, queueKey).Result()
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}

func (d *Dispatcher) Close() error {
	return d.redis.Close()
}
