package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSendPostsOrderJSON(t *testing.T) {
	var (
		mu      sync.Mutex
		got     map[string]interface{}
		headers http.Header
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		headers = r.Header.Clone()
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewCheckoutNotifier(srv.URL, quietLogger())
	require.NoError(t, n.Send(context.Background(), Order{Email: "ada@example.com", ProductIDs: []uint{7, 7, 3}, TotalAmount: 450}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "ada@example.com", got["email"])
	assert.Equal(t, []interface{}{7.0, 7.0, 3.0}, got["productIds"])
	assert.Equal(t, 450.0, got["totalAmount"])
	assert.Contains(t, headers.Get("Content-Type"), "application/json")
	assert.NotEmpty(t, headers.Get("X-Request-ID"))
}

func TestSendEncodesEmptyCartAsArray(t *testing.T) {
	var (
		mu  sync.Mutex
		raw []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body json.RawMessage
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		raw = body
		mu.Unlock()
	}))
	defer srv.Close()

	n := NewCheckoutNotifier(srv.URL, quietLogger())
	require.NoError(t, n.Send(context.Background(), Order{Email: "ada@example.com"}))
	mu.Lock()
	defer mu.Unlock()
	assert.JSONEq(t, `{"email":"ada@example.com","productIds":[],"totalAmount":0}`, string(raw))
}

func TestSendReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewCheckoutNotifier(srv.URL, quietLogger())
	err := n.Send(context.Background(), Order{Email: "ada@example.com"})
	assert.Error(t, err)
}

func TestNotifyAsyncSwallowsFailures(t *testing.T) {
	n := NewCheckoutNotifier("http://127.0.0.1:1/unreachable", quietLogger())
	n.NotifyAsync(Order{Email: "ada@example.com", ProductIDs: []uint{1}})
	n.Wait()
}

func TestDisabledNotifierDoesNothing(t *testing.T) {
	n := NewCheckoutNotifier("", quietLogger())
	assert.False(t, n.Enabled())
	n.NotifyAsync(Order{Email: "ada@example.com"})
	n.Wait()

	var nilNotifier *CheckoutNotifier
	assert.False(t, nilNotifier.Enabled())
	nilNotifier.NotifyAsync(Order{})
	nilNotifier.Wait()
}
