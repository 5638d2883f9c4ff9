package fathom_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
	"github.com/felixgeelhaar/fathom-mcp/internal/infrastructure/fathom"
)

func strPtr(s string) *string { return &s }

func TestClient_ListMeetings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meetings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method: %s", r.Method)
		}
		if r.Header.Get("X-Api-Key") != "test-key" {
			t.Error("missing or wrong api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"title":"Sprint Planning","recording_id":101}],"next_cursor":"abc"}`))
	}))
	defer server.Close()

	client := fathom.NewClient(server.URL, server.Client(), "test-key")
	resp, err := client.ListMeetings(context.Background(), domain.MeetingQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(resp.Items))
	}
	if resp.Items[0].RecordingID != 101 {
		t.Errorf("got recording id %d", resp.Items[0].RecordingID)
	}
	if resp.NextCursor == nil || *resp.NextCursor != "abc" {
		t.Errorf("got cursor %v", resp.NextCursor)
	}
}

func TestClient_ListMeetings_RepeatedListParams(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		q := r.URL.Query()
		if got := q["teams"]; !reflect.DeepEqual(got, []string{"a", "b"}) {
			t.Errorf("teams: got %v", got)
		}
		if got := q["recorded_by"]; !reflect.DeepEqual(got, []string{"x@acme.com", "y@acme.com"}) {
			t.Errorf("recorded_by: got %v", got)
		}
		if got := q["calendar_invitees_domains[]"]; !reflect.DeepEqual(got, []string{"acme.com", "example.com"}) {
			t.Errorf("calendar_invitees_domains[]: got %v", got)
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	client := fathom.NewClient(server.URL, server.Client(), "k")
	_, err := client.ListMeetings(context.Background(), domain.MeetingQuery{
		Teams:          []string{"a", "b"},
		RecordedBy:     []string{"x@acme.com", "y@acme.com"},
		InviteeDomains: []string{"acme.com", "example.com"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(rawQuery, "a%2Cb") || strings.Contains(rawQuery, "a,b") {
		t.Errorf("list values were comma joined: %s", rawQuery)
	}
}

func TestEncodeQuery_OmitsAbsentOptions(t *testing.T) {
	params := fathom.EncodeQuery(domain.MeetingQuery{})
	if len(params) != 0 {
		t.Errorf("expected no params, got %v", params)
	}

	only := domain.DomainsOnlyInternal
	params = fathom.EncodeQuery(domain.MeetingQuery{
		Cursor:         strPtr("c-1"),
		CreatedAfter:   strPtr("2025-01-01T00:00:00Z"),
		IncludeSummary: true,
		DomainsType:    &only,
	})
	want := map[string]string{
		"cursor":                         "c-1",
		"created_after":                  "2025-01-01T00:00:00Z",
		"include_summary":                "true",
		"calendar_invitees_domains_type": "only_internal",
	}
	if len(params) != len(want) {
		t.Errorf("got %d params, want %d: %v", len(params), len(want), params)
	}
	for k, v := range want {
		if params.Get(k) != v {
			t.Errorf("%s: got %q, want %q", k, params.Get(k), v)
		}
	}
	for _, absent := range []string{"created_before", "include_transcript", "include_action_items", "teams", "recorded_by", "calendar_invitees_domains[]"} {
		if _, ok := params[absent]; ok {
			t.Errorf("expected %s to be absent", absent)
		}
	}
}

func TestClient_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal failure"))
	}))
	defer server.Close()

	client := fathom.NewClient(server.URL, server.Client(), "k")
	_, err := client.GetSummary(context.Background(), 1)

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("got %v, want *UpstreamError", err)
	}
	if upErr.Kind != domain.KindStatus || upErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("got kind %s status %d", upErr.Kind, upErr.StatusCode)
	}
	if upErr.Message != "internal failure" {
		t.Errorf("got message %q", upErr.Message)
	}
}

func TestClient_Unauthorized_EmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := fathom.NewClient(server.URL, server.Client(), "bad-key")
	_, err := client.ListMeetings(context.Background(), domain.MeetingQuery{})

	upErr, ok := domain.AsUpstream(err)
	if !ok {
		t.Fatalf("got %v, want *UpstreamError", err)
	}
	if upErr.Message != "Unauthorized" {
		t.Errorf("got message %q", upErr.Message)
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [`))
	}))
	defer server.Close()

	client := fathom.NewClient(server.URL, server.Client(), "k")
	_, err := client.ListMeetings(context.Background(), domain.MeetingQuery{})

	upErr, ok := domain.AsUpstream(err)
	if !ok {
		t.Fatalf("got %v, want *UpstreamError", err)
	}
	if upErr.Kind != domain.KindDecode {
		t.Errorf("got kind %s, want decode", upErr.Kind)
	}
}

func TestClient_WrongShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": "not-a-list"}`))
	}))
	defer server.Close()

	client := fathom.NewClient(server.URL, server.Client(), "k")
	_, err := client.ListMeetings(context.Background(), domain.MeetingQuery{})

	upErr, ok := domain.AsUpstream(err)
	if !ok || upErr.Kind != domain.KindDecode {
		t.Fatalf("got %v, want decode error", err)
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := fathom.NewClient(url, nil, "k")
	_, err := client.GetTranscript(context.Background(), 9)

	upErr, ok := domain.AsUpstream(err)
	if !ok {
		t.Fatalf("got %v, want *UpstreamError", err)
	}
	if upErr.Kind != domain.KindTransport || upErr.StatusCode != 0 {
		t.Errorf("got kind %s status %d", upErr.Kind, upErr.StatusCode)
	}
	if upErr.Message == "" {
		t.Error("expected non-empty message")
	}
}

func TestClient_Get_RawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recordings/42/summary" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"summary":null}`))
	}))
	defer server.Close()

	client := fathom.NewClient(server.URL+"/", server.Client(), "k")
	raw, err := client.Get(context.Background(), "/recordings/42/summary", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"summary":null}` {
		t.Errorf("got %s", raw)
	}
}
