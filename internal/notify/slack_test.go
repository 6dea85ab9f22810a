package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codex-k8s/commitsum/internal/summary"
)

var report = summary.Report{
	PullRequest: summary.PullRequestRef{Owner: "octo", Repo: "hello", Number: 7},
	Results: []summary.CommitResult{
		{SHA: "0123456789", Outcome: summary.OutcomeCommented, Path: "a.go"},
		{SHA: "fedcba9876", Outcome: summary.OutcomeAlreadyCommented},
	},
}

func TestNewSlack_EmptyURL(t *testing.T) {
	s := NewSlack("  ")
	if s != nil {
		t.Fatalf("NewSlack = %+v, want nil", s)
	}
	if err := s.Notify(context.Background(), report); err != nil {
		t.Fatalf("nil notifier must be a no-op: %v", err)
	}
}

func TestMessage(t *testing.T) {
	msg, ok := Message(report)
	if !ok {
		t.Fatal("expected a message")
	}
	if !strings.Contains(msg.Text, "octo/hello#7") || !strings.Contains(msg.Text, "`0123456` on `a.go`") {
		t.Errorf("Text = %q", msg.Text)
	}
	if strings.Contains(msg.Text, "fedcba9") {
		t.Errorf("skipped commit listed: %q", msg.Text)
	}

	if _, ok := Message(summary.Report{}); ok {
		t.Error("empty report must not produce a message")
	}
}

func TestNotify_PostsWebhook(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	if err := NewSlack(server.URL).Notify(context.Background(), report); err != nil {
		t.Fatalf("Notify error: %v", err)
	}
	text, _ := got["text"].(string)
	if !strings.Contains(text, "octo/hello#7") {
		t.Errorf("text = %q", text)
	}
}

func TestNotify_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if err := NewSlack(server.URL).Notify(context.Background(), report); err == nil {
		t.Fatal("expected error for 500")
	}
}
