package fathom

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

// DefaultBaseURL is the public Fathom external API.
const DefaultBaseURL = "https://api.fathom.ai/external/v1"

// APIKeyHeader carries the credential on every request.
const APIKeyHeader = "X-Api-Key"

// maxErrorBody bounds how much of a failed response ends up in an error message.
const maxErrorBody = 512

// Client wraps the Fathom REST API.
// It issues exactly one GET per call and never retries or caches.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
}

func NewClient(baseURL string, httpClient *http.Client, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		apiKey:     apiKey,
	}
}

func (c *Client) ListMeetings(ctx context.Context, query domain.MeetingQuery) (*MeetingListResponse, error) {
	var resp MeetingListResponse
	if err := c.getJSON(ctx, "/meetings", EncodeQuery(query), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetSummary(ctx context.Context, id domain.RecordingID) (*SummaryResponse, error) {
	var resp SummaryResponse
	if err := c.getJSON(ctx, recordingPath(id, "summary"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetTranscript(ctx context.Context, id domain.RecordingID) (*TranscriptResponse, error) {
	var resp TranscriptResponse
	if err := c.getJSON(ctx, recordingPath(id, "transcript"), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func recordingPath(id domain.RecordingID, resource string) string {
	return "/recordings/" + strconv.FormatInt(int64(id), 10) + "/" + resource
}

// EncodeQuery turns a MeetingQuery into upstream query parameters.
// Absent options produce no entry; list options produce one entry per element.
func EncodeQuery(q domain.MeetingQuery) url.Values {
	params := url.Values{}
	setOptional(params, "cursor", q.Cursor)
	setOptional(params, "created_after", q.CreatedAfter)
	setOptional(params, "created_before", q.CreatedBefore)
	if q.IncludeSummary {
		params.Set("include_summary", "true")
	}
	if q.IncludeTranscript {
		params.Set("include_transcript", "true")
	}
	if q.IncludeActionItems {
		params.Set("include_action_items", "true")
	}
	addEach(params, "recorded_by", q.RecordedBy)
	addEach(params, "teams", q.Teams)
	if q.DomainsType != nil {
		params.Set("calendar_invitees_domains_type", string(*q.DomainsType))
	}
	addEach(params, "calendar_invitees_domains[]", q.InviteeDomains)
	return params
}

func setOptional(params url.Values, key string, v *string) {
	if v != nil {
		params.Set(key, *v)
	}
}

func addEach(params url.Values, key string, values []string) {
	for _, v := range values {
		params.Add(key, v)
	}
}

// Get performs an authenticated GET and returns the raw JSON body.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Kind: domain.KindTransport, Message: fmt.Sprintf("creating request: %v", err), Err: err}
	}

	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Kind: domain.KindTransport, Message: fmt.Sprintf("executing request: %v", err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.UpstreamError{
			Kind:       domain.KindStatus,
			StatusCode: resp.StatusCode,
			Message:    statusMessage(resp.StatusCode, body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Kind: domain.KindTransport, StatusCode: resp.StatusCode, Message: fmt.Sprintf("reading response: %v", err), Err: err}
	}
	if !json.Valid(body) {
		return nil, &domain.UpstreamError{Kind: domain.KindDecode, StatusCode: resp.StatusCode, Message: "response body is not valid JSON"}
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, target interface{}) error {
	raw, err := c.Get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return &domain.UpstreamError{Kind: domain.KindDecode, StatusCode: http.StatusOK, Message: fmt.Sprintf("decoding response: %v", err), Err: err}
	}
	return nil
}

func statusMessage(status int, body []byte) string {
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}
