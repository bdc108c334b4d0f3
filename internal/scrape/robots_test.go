package scrape

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

const testUA = "ApexAnalysis/1.0 (Educational Use Only)"

// robotsServer serves the given robots.txt body and counts policy fetches.
func robotsServer(t *testing.T, robots string, robotsStatus int) (*httptest.Server, *int) {
	t.Helper()
	count := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			count++
			w.WriteHeader(robotsStatus)
			fmt.Fprint(w, robots)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	t.Cleanup(srv.Close)
	return srv, &count
}

func TestGateDisabled(t *testing.T) {
	g := NewGate(false, testUA, time.Second, testLogger())
	if !g.Allowed("http://127.0.0.1:1/anything") {
		t.Error("disabled gate must allow everything without a network call")
	}
}

func TestGateMalformedURL(t *testing.T) {
	g := NewGate(true, testUA, time.Second, testLogger())
	for _, u := range []string{"", "not a url", "/relative/path", "example.com/no-scheme"} {
		if g.Allowed(u) {
			t.Errorf("Allowed(%q) = true, want false for malformed URL", u)
		}
	}
}

func TestGateAllowsAndDisallows(t *testing.T) {
	srv, _ := robotsServer(t, "User-agent: *\nDisallow: /private/\n", http.StatusOK)
	g := NewGate(true, testUA, time.Second, testLogger())

	if !g.Allowed(srv.URL + "/public/story") {
		t.Error("expected public path to be allowed")
	}
	if g.Allowed(srv.URL + "/private/story") {
		t.Error("expected disallowed path to be blocked")
	}
	if !g.Allowed(srv.URL) {
		t.Error("expected bare host URL to be allowed (path defaults to /)")
	}
}

func TestGateFailClosedOnMissingRobots(t *testing.T) {
	srv, _ := robotsServer(t, "not found", http.StatusNotFound)
	g := NewGate(true, testUA, time.Second, testLogger())

	// A 404 robots.txt is not permission.
	if g.Allowed(srv.URL + "/story") {
		t.Error("expected fail-closed denial when robots.txt is 404")
	}
}

func TestGateFailClosedOnServerError(t *testing.T) {
	srv, _ := robotsServer(t, "", http.StatusInternalServerError)
	g := NewGate(true, testUA, time.Second, testLogger())

	if g.Allowed(srv.URL + "/story") {
		t.Error("expected fail-closed denial when robots.txt returns 500")
	}
}

func TestGateFailClosedOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	g := NewGate(true, testUA, time.Second, testLogger())
	if g.Allowed(url + "/story") {
		t.Error("expected fail-closed denial when robots.txt is unreachable")
	}
}

func TestGateCachesPolicyPerHost(t *testing.T) {
	srv, fetches := robotsServer(t, "User-agent: *\nAllow: /\n", http.StatusOK)
	g := NewGate(true, testUA, time.Second, testLogger())

	for i := 0; i < 3; i++ {
		if !g.Allowed(srv.URL + fmt.Sprintf("/story/%d", i)) {
			t.Fatalf("expected URL %d to be allowed", i)
		}
	}
	if *fetches != 1 {
		t.Errorf("expected 1 robots.txt fetch for repeated host, got %d", *fetches)
	}
}

func TestGateCachesDenial(t *testing.T) {
	srv, fetches := robotsServer(t, "", http.StatusNotFound)
	g := NewGate(true, testUA, time.Second, testLogger())

	for i := 0; i < 3; i++ {
		if g.Allowed(srv.URL + "/story") {
			t.Fatal("expected denial")
		}
	}
	if *fetches != 1 {
		t.Errorf("expected broken robots.txt to be fetched once, got %d", *fetches)
	}
}
