package mijnhost

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lite-lake/mijnhost-dns/internal/domain"
	"github.com/lite-lake/mijnhost-dns/internal/domain/entity"
)

const testAPIKey = "test-api-key"

type capturedRequest struct {
	Method      string
	EscapedPath string
	Header      http.Header
	Body        string
}

func newTestServer(t *testing.T, status int, body string) (*Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		captured = append(captured, capturedRequest{
			Method:      r.Method,
			EscapedPath: r.URL.EscapedPath(),
			Header:      r.Header.Clone(),
			Body:        string(data),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	c, err := New(testAPIKey, WithBaseURL(srv.URL+"/api/v2/"))
	require.NoError(t, err)
	return c, &captured
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestClient_StaticHeaders(t *testing.T) {
	c, captured := newTestServer(t, http.StatusOK, `{"status":200,"statusDescription":"ok","data":{"domains":[]}}`)

	_, err := c.ListDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, *captured, 1)

	h := (*captured)[0].Header
	assert.Equal(t, testAPIKey, h.Get("API-Key"))
	assert.Equal(t, "application/json", h.Get("Accept"))
	assert.Equal(t, DefaultUserAgent, h.Get("User-Agent"))
	assert.Equal(t, "/api/v2/domains/", (*captured)[0].EscapedPath)
}

func TestClient_UserAgentOverride(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		_, _ = io.WriteString(w, `{"status":200,"statusDescription":"ok","data":{"domains":[]}}`)
	}))
	defer srv.Close()

	c, err := New(testAPIKey, WithBaseURL(srv.URL+"/api/v2"), WithUserAgent("my-app/2.0"))
	require.NoError(t, err)
	_, err = c.ListDomains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "my-app/2.0", gotUA)
}

func TestClient_ListDomains(t *testing.T) {
	body := `{
		"status": 200,
		"statusDescription": "Request successful",
		"data": {"domains": [
			{"id": 1, "domain": "a.com", "renewalDate": "2027-01-01", "status": "Active", "statusId": 1, "tags": ["prod"]},
			{"id": 2, "domain": "b.com", "renewalDate": "2027-02-01", "status": "Active", "statusId": 1, "tags": []}
		]}
	}`
	c, _ := newTestServer(t, http.StatusOK, body)

	domains, err := c.ListDomains(context.Background())
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, entity.Domain{ID: 1, Domain: "a.com", RenewalDate: "2027-01-01", Status: "Active", StatusID: 1, Tags: []string{"prod"}}, domains[0])
	assert.Equal(t, "b.com", domains[1].Domain)
}

func TestClient_GetRecords(t *testing.T) {
	body := `{
		"status": 200,
		"statusDescription": "Request successful",
		"data": {"domain": "a.com", "records": [
			{"type": "A", "name": "a.com.", "value": "192.0.2.1", "ttl": 900},
			{"type": "CNAME", "name": "_acme-challenge.a.com.", "value": "x", "ttl": 60}
		]}
	}`
	c, captured := newTestServer(t, http.StatusOK, body)

	set, err := c.GetRecords(context.Background(), "a.com")
	require.NoError(t, err)
	assert.Equal(t, "a.com", set.Domain)
	require.Len(t, set.Records, 2)
	assert.Equal(t, entity.DNSRecord{Name: "_acme-challenge.a.com.", Type: entity.DNSRecordTypeCNAME, Value: "x", TTL: 60}, set.Records[1])
	assert.Equal(t, http.MethodGet, (*captured)[0].Method)
	assert.Equal(t, "/api/v2/domains/a.com/dns", (*captured)[0].EscapedPath)
}

func TestClient_GetRecordsFillsMissingDomain(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"status":200,"statusDescription":"ok","data":{"records":[]}}`)

	set, err := c.GetRecords(context.Background(), "a.com")
	require.NoError(t, err)
	assert.Equal(t, "a.com", set.Domain)
	assert.Empty(t, set.Records)
}

func TestClient_GetRecordsRequiresDomain(t *testing.T) {
	c, captured := newTestServer(t, http.StatusOK, `{}`)
	_, err := c.GetRecords(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrRequired)
	assert.Empty(t, *captured)
}

func TestClient_PathEncodingRoundTrip(t *testing.T) {
	domains := []string{
		"example.com",
		"xn--bcher-kva.example",
		"bücher.example",
		"odd name.com",
		"slash/inside.com",
		"percent%20.com",
		"query?and#hash.com",
	}

	for _, d := range domains {
		t.Run(d, func(t *testing.T) {
			c, captured := newTestServer(t, http.StatusOK, `{"status":200,"statusDescription":"ok","data":{"records":[]}}`)
			_, err := c.GetRecords(context.Background(), d)
			require.NoError(t, err)

			escaped := (*captured)[0].EscapedPath
			require.True(t, strings.HasPrefix(escaped, "/api/v2/domains/"), escaped)
			require.True(t, strings.HasSuffix(escaped, "/dns"), escaped)
			segment := strings.TrimSuffix(strings.TrimPrefix(escaped, "/api/v2/domains/"), "/dns")
			assert.NotContains(t, segment, "/")

			decoded, err := url.PathUnescape(segment)
			require.NoError(t, err)
			assert.Equal(t, d, decoded)
		})
	}
}

func TestDNSPath(t *testing.T) {
	assert.Equal(t, "domains/example.com/dns", DNSPath("example.com"))
	assert.Equal(t, "domains/a%2Fb.com/dns", DNSPath("a/b.com"))
}

func TestClient_PatchRecordBody(t *testing.T) {
	c, captured := newTestServer(t, http.StatusOK, `{"status":200,"statusDescription":"Request successful"}`)

	status, err := c.PatchRecord(context.Background(), "b.com",
		entity.NewChallengeRecord(entity.DNSRecordTypeCNAME, "b.com.acme.certservice.nl."))
	require.NoError(t, err)
	assert.True(t, status.OK())
	assert.Equal(t, "Request successful", status.StatusDescription)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"record":{"name":"_acme-challenge","type":"CNAME","value":"b.com.acme.certservice.nl.","ttl":60}}`, req.Body)
}

func TestClient_PatchRecordReturnsNonOKStatus(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"status":422,"statusDescription":"Record rejected"}`)

	status, err := c.PatchRecord(context.Background(), "b.com", entity.NewDNSRecord("www", entity.DNSRecordTypeA, "192.0.2.1"))
	require.NoError(t, err)
	assert.False(t, status.OK())
	assert.Equal(t, 422, status.Status)
}

func TestClient_ReplaceRecordsBody(t *testing.T) {
	c, captured := newTestServer(t, http.StatusOK, `{"status":200,"statusDescription":"Request successful"}`)

	records := []entity.DNSRecord{
		entity.NewDNSRecord("www", entity.DNSRecordTypeA, "192.0.2.1"),
		{Name: "@", Type: entity.DNSRecordTypeMX, Value: "10 mail.b.com.", TTL: 3600},
	}
	_, err := c.ReplaceRecords(context.Background(), "b.com", records)
	require.NoError(t, err)

	req := (*captured)[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.JSONEq(t, `{"records":[
		{"name":"www","type":"A","value":"192.0.2.1","ttl":900},
		{"name":"@","type":"MX","value":"10 mail.b.com.","ttl":3600}
	]}`, req.Body)
}

func TestClient_ReplaceRecordsNilSendsEmptyList(t *testing.T) {
	c, captured := newTestServer(t, http.StatusOK, `{"status":200,"statusDescription":"ok"}`)

	_, err := c.ReplaceRecords(context.Background(), "b.com", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, (*captured)[0].Body)
}

func TestClient_APIErrorWithParsableBody(t *testing.T) {
	body := `{"status":404,"statusDescription":"Domain not found"}`
	c, _ := newTestServer(t, http.StatusNotFound, body)

	_, err := c.GetRecords(context.Background(), "missing.com")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Domain not found", apiErr.StatusDescription)
	assert.Equal(t, body, apiErr.RawBody)
	assert.ErrorIs(t, err, domain.ErrAPIStatus)
}

func TestClient_APIErrorWithUnparsableBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"html", "<html>Bad Gateway</html>"},
		{"empty", ""},
		{"null", "null"},
		{"array", "[1,2,3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, http.StatusBadGateway, tt.body)

			_, err := c.PatchRecord(context.Background(), "a.com", entity.NewDNSRecord("www", entity.DNSRecordTypeA, "192.0.2.1"))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
			assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
			assert.Equal(t, -1, apiErr.Status)
			assert.Equal(t, "Unknown error", apiErr.StatusDescription)
			assert.Equal(t, tt.body, apiErr.RawBody)
		})
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "definitely not json"},
		{"null", "null"},
		{"missing data", `{"status":200,"statusDescription":"ok"}`},
		{"wrong shape", `{"status":200,"statusDescription":"ok","data":{"domains":"a.com"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, http.StatusOK, tt.body)

			_, err := c.ListDomains(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedResponse)

			var apiErr *APIError
			assert.False(t, errors.As(err, &apiErr))
		})
	}
}

func TestClient_NonOKAPIStatusOnRead(t *testing.T) {
	body := `{"status":403,"statusDescription":"Forbidden","data":null}`
	c, _ := newTestServer(t, http.StatusOK, body)

	_, err := c.ListDomains(context.Background())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusOK, apiErr.HTTPStatus)
	assert.Equal(t, 403, apiErr.Status)
	assert.Equal(t, body, apiErr.RawBody)
}

func TestClient_Cancellation(t *testing.T) {
	c, captured := newTestServer(t, http.StatusOK, `{"status":200,"statusDescription":"ok","data":{"domains":[]}}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListDomains(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *captured)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	c, err := New(testAPIKey, WithBaseURL(baseURL))
	require.NoError(t, err)

	_, err = c.ListDomains(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.NotErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestAPIError_KeyNeverInMessage(t *testing.T) {
	c, _ := newTestServer(t, http.StatusUnauthorized, `{"status":401,"statusDescription":"Invalid API key"}`)

	_, err := c.ListDomains(context.Background())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), testAPIKey)
}

func TestEnvelope_WireNames(t *testing.T) {
	data, err := json.Marshal(Envelope[recordsData]{Data: &recordsData{Records: []entity.DNSRecord{}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":0,"statusDescription":"","data":{"records":[]}}`, string(data))
}
