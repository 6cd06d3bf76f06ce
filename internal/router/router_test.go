package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_RoutesByMethod(t *testing.T) {
	r := New()

	r.Get("/api/emails", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/api/reminders/send", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/emails", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET /api/emails: got status %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/reminders/send", nil))
	if w.Code != http.StatusAccepted {
		t.Errorf("POST /api/reminders/send: got status %d, want 202", w.Code)
	}

	// Wrong method falls through to the mux's 405.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/reminders/send", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on a POST route: got status %d, want 405", w.Code)
	}
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string
	record := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+" in")
				next.ServeHTTP(w, r)
				order = append(order, name+" out")
			})
		}
	}

	r := New(record("global"))
	r.Get("/x", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
	}, record("route"))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	want := []string{"global in", "route in", "handler", "route out", "global out"}
	if len(order) != len(want) {
		t.Fatalf("got call order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got call order %v, want %v", order, want)
		}
	}
}
