package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"storefront/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Order is the checkout payload posted to the webhook.
type Order struct {
	Email       string  `json:"email"`
	ProductIDs  []uint  `json:"productIds"`
	TotalAmount float64 `json:"totalAmount"`
}

// CheckoutNotifier posts completed checkouts to a webhook. Delivery is best
// effort: failures are logged and never reach the shopper.
type CheckoutNotifier struct {
	url    string
	client *http.Client
	log    *logrus.Logger
	wg     sync.WaitGroup
}

func NewCheckoutNotifier(url string, log *logrus.Logger) *CheckoutNotifier {
	return &CheckoutNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

func (n *CheckoutNotifier) Enabled() bool { return n != nil && n.url != "" }

// Send posts order and waits for the response.
func (n *CheckoutNotifier) Send(ctx context.Context, order Order) error {
	if order.ProductIDs == nil {
		order.ProductIDs = []uint{}
	}
	jsonData, err := json.Marshal(order)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("X-Request-ID", uuid.New().String())

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded %s", resp.Status)
	}
	return nil
}

// NotifyAsync sends order in the background and returns immediately.
func (n *CheckoutNotifier) NotifyAsync(order Order) {
	if !n.Enabled() {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		entry := n.log.WithFields(logrus.Fields{"email": order.Email, "items": len(order.ProductIDs)})
		if err := n.Send(context.Background(), order); err != nil {
			metrics.CheckoutNotifications.WithLabelValues("failed").Inc()
			entry.WithError(err).Warn("Checkout notification failed")
			return
		}
		metrics.CheckoutNotifications.WithLabelValues("sent").Inc()
		entry.Debug("Checkout notification sent")
	}()
}

// Wait blocks until every pending notification has finished.
func (n *CheckoutNotifier) Wait() {
	if n != nil {
		n.wg.Wait()
	}
}
