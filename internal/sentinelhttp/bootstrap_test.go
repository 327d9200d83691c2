package sentinelhttp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/racelabs/sentinel-connector/internal/sentinel"
)

// newTestClient wires a Client at a fast unlimited rate so tests don't
// wait on the limiter.
func newTestClient(baseURI string) *Client {
	return NewClient(http.DefaultClient, baseURI, "test-token", 0, 0, zerolog.Nop())
}

func TestBootstrapHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/devices", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization header = %q", got)
		}
		fmt.Fprint(w, `{"data":[{"id":"roo7gd1dldn3"}],"count":1,"total":1,"page":1,"pageCount":1}`)
	})
	mux.HandleFunc("/devices/roo7gd1dldn3/sensors", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"no":9,"deviceId":"roo7gd1dldn3","capabilities":["gps"]}],"count":1,"total":1,"page":1,"pageCount":1}`)
	})
	mux.HandleFunc("/devices/roo7gd1dldn3/sensors/9/gps", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "3" {
			t.Errorf("limit = %q, want 3", got)
		}
		fmt.Fprint(w, `{"data":[
			{"id":"crmWhFT3LMHdItHFTUGi","timeRecorded":"2023-01-29T19:33:00.000Z","sensorNo":9,"deviceId":"roo7gd1dldn3","evidences":[],"claims":[],"gps":{"latitude":34.1,"longitude":-118.2}},
			{"id":"older-1","timeRecorded":"2023-01-29T19:32:00.000Z","sensorNo":9,"deviceId":"roo7gd1dldn3","evidences":[],"claims":[],"gps":{"latitude":34.0,"longitude":-118.1}},
			{"id":"older-2","timeRecorded":"2023-01-29T19:31:00.000Z","sensorNo":9,"deviceId":"roo7gd1dldn3","evidences":[],"claims":[],"gps":{"latitude":33.9,"longitude":-118.0}}
		],"count":3,"total":3,"page":1,"pageCount":1}`)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(srv.URL)
	store, err := Bootstrap(context.Background(), c, 3)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	sen, err := store.SentinelOf("roo7gd1dldn3")
	if err != nil {
		t.Fatalf("SentinelOf: %v", err)
	}
	if len(sen.GPS) != 3 {
		t.Fatalf("len(GPS) = %d, want 3", len(sen.GPS))
	}
	if sen.GPS[0].ID != "crmWhFT3LMHdItHFTUGi" {
		t.Fatalf("GPS[0].ID = %s, want crmWhFT3LMHdItHFTUGi", sen.GPS[0].ID)
	}
}

func TestBootstrapUnknownDeviceInfoFallsBackToUnknown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/devices", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"dev-1"}],"count":1,"total":1,"page":1,"pageCount":1}`)
	})
	mux.HandleFunc("/devices/dev-1/sensors", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[],"count":0,"total":0,"page":1,"pageCount":1}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store, err := Bootstrap(context.Background(), newTestClient(srv.URL), 3)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	sen, err := store.SentinelOf("dev-1")
	if err != nil {
		t.Fatalf("SentinelOf: %v", err)
	}
	if sen.DeviceName != "unknown" {
		t.Fatalf("DeviceName = %q, want unknown", sen.DeviceName)
	}
}

func TestFetchLatestEmptyYieldsNoData(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/devices/dev-1/sensors/1/fire", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[],"count":0,"total":0,"page":1,"pageCount":1}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := FetchLatest[sentinel.FireData](context.Background(), newTestClient(srv.URL), "dev-1", 1)
	if !sentinel.Is(err, sentinel.KindNoData) {
		t.Fatalf("expected NoData error, got %v", err)
	}
}

func TestFetchRecordsMalformedJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/devices/dev-1/sensors/1/fire", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	_, err := FetchRecords[sentinel.FireData](context.Background(), newTestClient(srv.URL), "dev-1", 1, 1)
	if !sentinel.Is(err, sentinel.KindJSON) {
		t.Fatalf("expected Json error, got %v", err)
	}
}

func TestListDevicesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ListDevices(context.Background())
	if !sentinel.Is(err, sentinel.KindHTTP) {
		t.Fatalf("expected Http error, got %v", err)
	}
}
