package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/pfrederiksen/powerball-results/internal/draw"
)

func testClient(serverURL string) *Client {
	return &Client{
		botToken:   "test-token",
		chatID:     "12345",
		baseURL:    serverURL + "/bot",
		httpClient: &http.Client{Timeout: time.Second},
	}
}

// TestSendMessage_Success tests successful message sending
func TestSendMessage_Success(t *testing.T) {
	var got sendMessageRequest
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":123}}`))
	}))
	defer server.Close()

	if err := testClient(server.URL).SendMessage(context.Background(), "Test message"); err != nil {
		t.Fatalf("SendMessage() unexpected error: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("path = %q, want /bottest-token/sendMessage", gotPath)
	}
	if got.ChatID != "12345" || got.Text != "Test message" || got.ParseMode != "HTML" || !got.DisableWebPagePreview {
		t.Errorf("request = %+v", got)
	}
}

func TestSendMessage_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", http.StatusOK, `{"ok":false,"description":"Bad Request: chat not found"}`, "Bad Request"},
		{"http error", http.StatusInternalServerError, "Internal Server Error", "status 500"},
		{"invalid json", http.StatusOK, "not json", "parsing response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := testClient(server.URL).SendMessage(context.Background(), "Test message")
			if err == nil {
				t.Fatal("SendMessage() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("SendMessage() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSendMessage_EmptyText(t *testing.T) {
	c := testClient("http://127.0.0.1:0")
	if err := c.SendMessage(context.Background(), ""); err == nil {
		t.Error("SendMessage() expected error for empty text")
	}
}

func TestSendMessage_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := testClient(server.URL).SendMessage(ctx, "Test message"); err == nil {
		t.Error("SendMessage() expected error for cancelled context")
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		chatID  string
		wantErr bool
	}{
		{"valid", "token", "123", false},
		{"missing token", "", "123", true},
		{"missing chat", "token", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.token, tt.chatID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && c.baseURL != apiBaseURL {
				t.Errorf("baseURL = %q, want %q", c.baseURL, apiBaseURL)
			}
		})
	}

	c, err := NewClient("token", "123", WithBaseURL("http://localhost:8081/bot"))
	if err != nil {
		t.Fatal(err)
	}
	if c.baseURL != "http://localhost:8081/bot" {
		t.Errorf("baseURL = %q, want override", c.baseURL)
	}
}

func TestNotify(t *testing.T) {
	var text string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		text = req.Text
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	if err := c.Notify(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if !strings.Contains(text, "5 - 12 - 23 - 41 - 60") {
		t.Errorf("message missing numbers:\n%s", text)
	}

	if err := c.Notify(context.Background(), nil); err == nil {
		t.Error("Notify(nil) expected error")
	}
}

func sampleSnapshot() *draw.Snapshot {
	return &draw.Snapshot{
		Draw: draw.DrawResult{
			Date:       "2026-02-04",
			Numbers:    []int{5, 12, 23, 41, 60},
			Special:    draw.IntPtr(9),
			Multiplier: draw.IntPtr(3),
		},
		Next: &draw.NextDraw{
			Date:      "2026-02-07",
			Estimated: draw.AmountPtr(120_000_000),
			Cash:      draw.AmountPtr(54_300_000),
		},
		UpdatedText: "Miércoles, 4 de Febrero de 2026 - 11:15 PM ET",
	}
}
