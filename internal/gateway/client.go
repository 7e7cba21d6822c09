// Package gateway wraps the remote expense collection's REST operations.
// There is exactly one gateway implementation with one configurable base URL.
package gateway

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"spendtrack/internal/core"
	"spendtrack/internal/log"
)

const (
	csrfHeader      = "X-CSRFToken"
	requestIDHeader = "X-Request-ID"
)

type Options struct {
	// BaseURL is the collection endpoint, e.g. "http://host/api/expenses/".
	// A missing trailing slash is added.
	BaseURL string

	// SessionCookie is a raw "name=value; name2=value2" string used to seed
	// the cookie jar, carrying the session and CSRF cookies.
	SessionCookie string

	// CSRFCookieName is the cookie whose value goes into the X-CSRFToken
	// header on mutating requests.
	CSRFCookieName string

	Timeout time.Duration
	Logger  *log.Logger
}

// Client issues the five collection operations. All requests carry the jar's
// cookies; mutating requests additionally carry the anti-forgery header.
type Client struct {
	base     *url.URL
	http     *http.Client
	csrfName string
	log      *log.Logger

	flight   singleflight.Group
	fetchSeq atomic.Uint64
}

type listResult struct {
	records []core.Expense
	seq     uint64
}

func New(opts Options) (*Client, error) {
	raw := opts.BaseURL
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if cookies := parseCookies(opts.SessionCookie); len(cookies) > 0 {
		jar.SetCookies(base, cookies)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentGateway)
	}

	csrfName := opts.CSRFCookieName
	if csrfName == "" {
		csrfName = "csrftoken"
	}
	if CookieValue(opts.SessionCookie, csrfName) == "" {
		logger.Warn("No anti-forgery token in session cookie, mutating requests may be rejected",
			"cookie_name", csrfName)
	}

	return &Client{
		base:     base,
		http:     &http.Client{Jar: jar, Timeout: timeout},
		csrfName: csrfName,
		log:      logger,
	}, nil
}

// Token returns the current anti-forgery token from the cookie jar, or ""
// when absent. Rotated tokens from Set-Cookie responses are picked up because
// the jar is consulted on every call.
func (c *Client) Token() string {
	for _, cookie := range c.http.Jar.Cookies(c.base) {
		if cookie.Name == c.csrfName {
			return strings.TrimSpace(cookie.Value)
		}
	}
	return ""
}

// List fetches the full record sequence in server order. The returned
// sequence number is monotonic over completed fetches; the store uses it to
// discard stale replacements. Overlapping calls are collapsed into one
// round trip.
func (c *Client) List(ctx context.Context) ([]core.Expense, uint64, error) {
	v, err, _ := c.flight.Do("list", func() (any, error) {
		var records []core.Expense
		if err := c.doJSON(ctx, http.MethodGet, c.base.String(), nil, &records); err != nil {
			return nil, &core.FetchError{Op: log.OpList, Status: statusOf(err), Err: causeOf(err)}
		}
		return listResult{records: records, seq: c.fetchSeq.Add(1)}, nil
	})
	if err != nil {
		return nil, 0, err
	}
	res := v.(listResult)
	c.log.DebugContext(ctx, "Fetched expense list", log.FieldCount, len(res.records), log.FieldFetchSeq, res.seq)
	return res.records, res.seq, nil
}

// Get fetches a single record, used to populate the edit form.
func (c *Client) Get(ctx context.Context, id int64) (core.Expense, error) {
	var rec core.Expense
	if err := c.doJSON(ctx, http.MethodGet, c.recordURL(id), nil, &rec); err != nil {
		return core.Expense{}, &core.FetchError{Op: log.OpGet, Status: statusOf(err), Err: causeOf(err)}
	}
	return rec, nil
}

// Create posts a new record and returns it with its server-assigned ID.
func (c *Client) Create(ctx context.Context, draft core.Draft) (core.Expense, error) {
	var rec core.Expense
	if err := c.doJSON(ctx, http.MethodPost, c.base.String(), &draft, &rec); err != nil {
		return core.Expense{}, &core.SaveError{Op: log.OpCreate, Status: statusOf(err), Err: causeOf(err)}
	}
	c.log.InfoContext(ctx, "Expense created", log.FieldExpenseID, rec.ID)
	return rec, nil
}

// Update replaces the full record under id.
func (c *Client) Update(ctx context.Context, id int64, draft core.Draft) (core.Expense, error) {
	var rec core.Expense
	if err := c.doJSON(ctx, http.MethodPut, c.recordURL(id), &draft, &rec); err != nil {
		return core.Expense{}, &core.SaveError{Op: log.OpUpdate, Status: statusOf(err), Err: causeOf(err)}
	}
	c.log.InfoContext(ctx, "Expense updated", log.FieldExpenseID, id)
	return rec, nil
}

// Delete removes the record under id. The response body has no contract
// beyond success or failure and is ignored.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.doJSON(ctx, http.MethodDelete, c.recordURL(id), nil, nil); err != nil {
		return &core.DeleteError{Status: statusOf(err), Err: causeOf(err)}
	}
	c.log.InfoContext(ctx, "Expense deleted", log.FieldExpenseID, id)
	return nil
}

func (c *Client) recordURL(id int64) string {
	return c.base.String() + strconv.FormatInt(id, 10) + "/"
}

// statusError carries a non-2xx response status through doJSON so the callers
// can build their typed error with it.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return "unexpected status " + strconv.Itoa(e.status)
}

func statusOf(err error) int {
	if se, ok := err.(*statusError); ok {
		return se.status
	}
	return 0
}

func causeOf(err error) error {
	if _, ok := err.(*statusError); ok {
		return nil
	}
	return err
}

// doJSON performs one round trip: encodes body when present, attaches the
// request ID and, for mutating methods, the anti-forgery header, then decodes
// the response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, rawURL string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := generateRequestID()
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set(csrfHeader, c.Token())
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "Request failed",
			log.FieldRequestID, requestID,
			log.FieldMethod, method,
			log.FieldURL, rawURL,
			log.FieldError, err)
		return err
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "Request completed",
		log.FieldRequestID, requestID,
		log.FieldMethod, method,
		log.FieldURL, rawURL,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &statusError{status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(buf)
}
