package gandi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Septrum101/gandiDDNS/helper"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/domains/example.com", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"fqdn":"example.com","zone_uuid":"zone-1"}`)
	})
	mux.HandleFunc("/zones/zone-1/records/home/A", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `{"rrset_name":"home","rrset_type":"A","rrset_ttl":300,"rrset_values":["9.9.9.9"]}`)
		case http.MethodPut:
			if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("unexpected content type %q", ct)
			}
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Error(err)
			}
			if body["rrset_ttl"] != float64(600) {
				t.Errorf("unexpected ttl %v", body["rrset_ttl"])
			}
			if !reflect.DeepEqual(body["rrset_values"], []any{"1.2.3.4"}) {
				t.Errorf("unexpected values %v", body["rrset_values"])
			}
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"message":"DNS Record Created"}`)
		}
	})

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"code":401,"message":"The server could not verify that you authorized to access the document you requested.","object":"HTTPUnauthorized","cause":"Unauthorized"}`)
			return
		}
		mux.ServeHTTP(w, r)
	}))
}

func TestGandi(t *testing.T) {
	srv := newServer(t)
	defer srv.Close()

	g := New("secret", srv.URL, time.Second*5)
	ctx := context.Background()

	zone, err := g.ZoneID(ctx, "example.com")
	if err != nil {
		t.Fatal(err)
	}
	if zone != "zone-1" {
		t.Errorf("expected zone-1, got %s", zone)
	}

	values, err := g.Record(ctx, zone, "home", "A")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(values, []string{"9.9.9.9"}) {
		t.Errorf("unexpected values %v", values)
	}

	if err := g.UpdateRecord(ctx, zone, "home", "A", 600, []string{"1.2.3.4"}); err != nil {
		t.Fatal(err)
	}
}

func TestGandi_Unauthorized(t *testing.T) {
	srv := newServer(t)
	defer srv.Close()

	_, err := New("wrong", srv.URL, time.Second*5).ZoneID(context.Background(), "example.com")
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := helper.StatusCode(err); code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
	if !strings.HasPrefix(err.(*helper.HTTPError).Message, "Unauthorized: ") {
		t.Errorf("unexpected message %q", err)
	}
}

func TestGandi_RecordNotFound(t *testing.T) {
	srv := newServer(t)
	defer srv.Close()

	_, err := New("secret", srv.URL, time.Second*5).Record(context.Background(), "zone-1", "office", "A")
	if code := helper.StatusCode(err); code != http.StatusNotFound {
		t.Errorf("expected 404, got %d (%v)", code, err)
	}
}

func TestGandi_MissingZone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"fqdn":"example.com"}`)
	}))
	defer srv.Close()

	zone, err := New("secret", srv.URL, time.Second*5).ZoneID(context.Background(), "example.com")
	if err == nil {
		t.Fatalf("expected an error, got zone %q", zone)
	}
}
