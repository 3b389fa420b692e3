package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), zap.NewNop(), Config{APIURL: srv.URL, Token: "test-token"})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	return client
}

func TestUser(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"login":"octocat","name":"The Octocat","public_repos":8,"followers":10,"following":2,"created_at":"2015-01-02T03:04:05Z"}`))
	})

	user, err := newTestClient(t, mux).User(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Login != "octocat" || user.Name != "The Octocat" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.PublicRepos != 8 || user.Followers != 10 || user.Following != 2 {
		t.Fatalf("unexpected counters: %+v", user)
	}
	if want := time.Date(2015, 1, 2, 3, 4, 5, 0, time.UTC); !user.CreatedAt.Equal(want) {
		t.Fatalf("expected created_at %v, got %v", want, user.CreatedAt)
	}
}

func TestUserNotFound(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	})

	_, err := newTestClient(t, mux).User(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserUpstreamFailure(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := newTestClient(t, mux).User(context.Background(), "octocat")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("did not expect ErrNotFound for 502: %v", err)
	}
}

func TestRepositories(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("per_page") != "100" {
			t.Errorf("unexpected paging query: %s", r.URL.RawQuery)
		}
		if q.Get("sort") != "updated" || q.Get("direction") != "desc" {
			t.Errorf("unexpected sort query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name":"hello-world","owner":{"login":"octocat"},"description":"My first repo","language":"Go","stargazers_count":80,"forks_count":9,"updated_at":"2024-05-01T00:00:00Z"},
			{"name":"dotfiles","owner":{"login":"octocat"},"stargazers_count":1}
		]`))
	})

	repos, err := newTestClient(t, mux).Repositories(context.Background(), "octocat", 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repos) != 2 {
		t.Fatalf("expected 2 repositories, got %d", len(repos))
	}

	first := repos[0]
	if first.Name != "hello-world" || first.Owner != "octocat" || first.Language != "Go" {
		t.Fatalf("unexpected repository: %+v", first)
	}
	if first.Stars != 80 || first.Forks != 9 || first.UpdatedAt.IsZero() {
		t.Fatalf("unexpected repository counters: %+v", first)
	}

	second := repos[1]
	if second.Description != "" || second.Language != "" || !second.UpdatedAt.IsZero() {
		t.Fatalf("expected absent optional fields, got %+v", second)
	}
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello-world/languages", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Go":120000,"Shell":300}`))
	})

	langs, err := newTestClient(t, mux).Languages(context.Background(), "octocat", "hello-world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if langs["Go"] != 120000 || langs["Shell"] != 300 {
		t.Fatalf("unexpected languages: %v", langs)
	}
}
