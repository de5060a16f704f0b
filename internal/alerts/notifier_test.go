package alerts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crypto-trade-journal/internal/config"
	"crypto-trade-journal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMessage(t *testing.T) {
	a := models.PriceAlert{Symbol: "ETHUSDT", Condition: models.ConditionBelow, Price: 3000.5, Note: "add to swing"}

	assert.Equal(t, "ETHUSDT is below 3000.5 (last 2999): add to swing", Message(a, 2999))
}

func TestWebhookNotifier_Payloads(t *testing.T) {
	testCases := []struct {
		name    string
		path    string
		field   string
		content string
	}{
		{name: "Discord", path: "/discord/hook", field: "content", content: "[Bot] BTCUSDT is above 70000 (last 70001)"},
		{name: "Slack", path: "/services/hook", field: "text", content: "`[Bot] BTCUSDT is above 70000 (last 70001)`"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got map[string]string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			n := NewWebhookNotifier(server.URL+tc.path, "Bot")
			err := n.Notify(context.Background(), models.PriceAlert{Symbol: "BTCUSDT", Condition: models.ConditionAbove, Price: 70000}, 70001)

			require.NoError(t, err)
			assert.Equal(t, tc.content, got[tc.field])
			assert.Equal(t, "Bot", got["username"])
		})
	}
}

func TestWebhookNotifier_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := NewWebhookNotifier(server.URL, "").Notify(context.Background(), models.PriceAlert{Symbol: "BTCUSDT"}, 1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

type failingNotifier struct{ err error }

func (f failingNotifier) Notify(context.Context, models.PriceAlert, float64) error { return f.err }

func TestMulti(t *testing.T) {
	boom := errors.New("boom")
	mockNotifier := new(MockNotifier)
	mockNotifier.On("Notify", context.Background(), models.PriceAlert{Symbol: "BTCUSDT"}, 1.0).Return(nil)

	m := Multi{failingNotifier{err: boom}, NewLogNotifier(zap.NewNop()), mockNotifier}
	err := m.Notify(context.Background(), models.PriceAlert{Symbol: "BTCUSDT"}, 1)

	assert.ErrorIs(t, err, boom)
	mockNotifier.AssertExpectations(t)
}

func TestNotifierFor(t *testing.T) {
	n := NotifierFor(config.Alerts{}, zap.NewNop())
	assert.Len(t, n, 1)

	n = NotifierFor(config.Alerts{WebhookURL: "https://discord.com/api/webhooks/x"}, zap.NewNop())
	require.Len(t, n, 2)
	assert.IsType(t, &WebhookNotifier{}, n.(Multi)[1])
}

func TestPollInterval(t *testing.T) {
	assert.Equal(t, 30*time.Second, PollInterval(config.Alerts{}))
	assert.Equal(t, 5*time.Second, PollInterval(config.Alerts{PollInterval: 5}))
}
