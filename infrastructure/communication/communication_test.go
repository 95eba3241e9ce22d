package communication

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UmerHayat389/provemvp-umerhayat-design-portal/logging"
)

func slackServer(t *testing.T, body string, posted *string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		*posted = r.FormValue("text")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/"
}

func TestReportFailure(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		warning bool
	}{
		{"posted", `{"ok":true,"channel":"C1","ts":"1.0"}`, false},
		{"slack rejects", `{"ok":false,"error":"channel_not_found"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logging.Init(logging.Config{Level: "debug", Output: &buf})
			t.Cleanup(func() { logging.Init(logging.Config{}) })

			var posted string
			slack := NewSlack("xoxb-test", SlackOption{
				ErrorChannelID: "C1",
				APIURL:         slackServer(t, tt.body, &posted),
			})
			slack.ReportFailure(context.Background(), "attendance export", errors.New("bucket missing"))

			assert.Equal(t, "attendance export failed: bucket missing", posted)
			if tt.warning {
				assert.Contains(t, buf.String(), "failure notification failed")
				assert.Contains(t, buf.String(), "channel_not_found")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
