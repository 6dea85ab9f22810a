package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codex-k8s/commitsum/internal/summary"
)

var testRef = summary.PullRequestRef{Owner: "octo", Repo: "hello", Number: 7}

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	c, err := NewClient(nil, "test-token", server.URL)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	return c
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient(nil, "  ", ""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestListComments_Paginates(t *testing.T) {
	mux := http.NewServeMux()
	var serverURL string
	mux.HandleFunc("GET /repos/octo/hello/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"body":"second"}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octo/hello/issues/7/comments?page=2>; rel="next"`, serverURL))
		fmt.Fprint(w, `[{"body":"first"},{"body":null}]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	serverURL = server.URL

	c, err := NewClient(nil, "test-token", server.URL)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	got, err := c.ListComments(context.Background(), testRef)
	if err != nil {
		t.Fatalf("ListComments error: %v", err)
	}
	want := []summary.Comment{{Body: "first"}, {Body: ""}, {Body: "second"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
}

func TestListFiles_KeepsMissingPatchNil(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/hello/pulls/7/files", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %q, want 100", got)
		}
		fmt.Fprint(w, `[{"filename":"a.go","patch":"@@ -1 +1 @@\n+a"},{"filename":"logo.png"}]`)
	})
	c := newTestClient(t, mux)

	got, err := c.ListFiles(context.Background(), testRef)
	if err != nil {
		t.Fatalf("ListFiles error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d files, want 2", len(got))
	}
	if got[0].Patch == nil || *got[0].Patch != "@@ -1 +1 @@\n+a" {
		t.Errorf("a.go patch = %v", got[0].Patch)
	}
	if got[1].Filename != "logo.png" || got[1].Patch != nil {
		t.Errorf("logo.png entry = %+v", got[1])
	}
}

func TestListCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/hello/pulls/7/commits", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"sha":"c1"},{"sha":"c2"}]`)
	})
	c := newTestClient(t, mux)

	got, err := c.ListCommits(context.Background(), testRef)
	if err != nil {
		t.Fatalf("ListCommits error: %v", err)
	}
	want := []summary.Commit{{SHA: "c1"}, {SHA: "c2"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("commits mismatch (-want +got):\n%s", diff)
	}
}

func TestGetCommit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/octo/hello/commits/with-files", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"with-files","files":[{"filename":"a.go"},{"filename":"b.go"}]}`)
	})
	mux.HandleFunc("GET /repos/octo/hello/commits/empty", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"empty","files":[]}`)
	})
	mux.HandleFunc("GET /repos/octo/hello/commits/no-files", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sha":"no-files"}`)
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	detail, err := c.GetCommit(ctx, testRef, "with-files")
	if err != nil {
		t.Fatalf("GetCommit error: %v", err)
	}
	want := []summary.CommitFile{{Filename: "a.go"}, {Filename: "b.go"}}
	if diff := cmp.Diff(want, detail.Files); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}

	detail, err = c.GetCommit(ctx, testRef, "empty")
	if err != nil {
		t.Fatalf("GetCommit error: %v", err)
	}
	if detail.Files == nil || len(detail.Files) != 0 {
		t.Errorf("empty file list = %#v, want non-nil empty", detail.Files)
	}

	detail, err = c.GetCommit(ctx, testRef, "no-files")
	if err != nil {
		t.Fatalf("GetCommit error: %v", err)
	}
	if detail.Files != nil {
		t.Errorf("missing file list = %#v, want nil", detail.Files)
	}
}

func TestCreateReviewComment(t *testing.T) {
	var payload map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octo/hello/pulls/7/comments", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":1}`)
	})
	c := newTestClient(t, mux)

	err := c.CreateReviewComment(context.Background(), testRef, summary.ReviewComment{
		CommitID: "c2",
		Path:     "src/b.go",
		Line:     2,
		DiffHunk: "@@ -1,2 +1,3 @@\na\n+b\nc",
		Body:     "GPT summary of c2: src/b.go",
	})
	if err != nil {
		t.Fatalf("CreateReviewComment error: %v", err)
	}

	want := map[string]any{
		"commit_id": "c2",
		"path":      "src/b.go",
		"line":      float64(2),
		"diff_hunk": "@@ -1,2 +1,3 @@\na\n+b\nc",
		"body":      "GPT summary of c2: src/b.go",
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Errorf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateReviewComment_Rejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/octo/hello/pulls/7/comments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"Validation Failed"}`)
	})
	c := newTestClient(t, mux)

	err := c.CreateReviewComment(context.Background(), testRef, summary.ReviewComment{CommitID: "c1"})
	if err == nil {
		t.Fatal("expected error for 422")
	}
}
