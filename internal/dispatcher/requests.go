package dispatcher

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"go-modguard/internal/logging"
)

const apiBase = "https://discord.com/api/v10"

// ErrForbidden marks a refusal by the platform (missing rights, hierarchy).
// Callers catch it, log, and continue; it never propagates as a crash.
var ErrForbidden = fmt.Errorf("forbidden")

// RequestExecutor performs the raw REST calls for punishments.
type RequestExecutor struct {
	pool  *HTTPPool
	token string
}

func NewRequestExecutor(pool *HTTPPool, token string) *RequestExecutor {
	return &RequestExecutor{pool: pool, token: token}
}

// ExecuteBan bans a user. Returns the round-trip time on success.
func (e *RequestExecutor) ExecuteBan(guildID, userID, reason string) (time.Duration, error) {
	url := fmt.Sprintf("%s/guilds/%s/bans/%s", apiBase, guildID, userID)
	body, _ := json.Marshal(map[string]interface{}{"delete_message_seconds": 0})
	return e.do(fasthttp.MethodPut, url, body, reason)
}

// ExecuteKick removes a user from the guild.
func (e *RequestExecutor) ExecuteKick(guildID, userID, reason string) (time.Duration, error) {
	url := fmt.Sprintf("%s/guilds/%s/members/%s", apiBase, guildID, userID)
	return e.do(fasthttp.MethodDelete, url, nil, reason)
}

func (e *RequestExecutor) do(method, url string, body []byte, reason string) (time.Duration, error) {
	start := time.Now()

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	req.Header.Set("Authorization", "Bot "+e.token)
	req.Header.Set("X-Audit-Log-Reason", reason)
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	if err := e.pool.GetClient().DoTimeout(req, resp, 5*time.Second); err != nil {
		return 0, err
	}

	elapsed := time.Since(start)
	status := resp.StatusCode()

	switch {
	case status >= 200 && status < 300:
		return elapsed, nil
	case status == fasthttp.StatusForbidden:
		return elapsed, ErrForbidden
	case status == fasthttp.StatusTooManyRequests:
		retry := string(resp.Header.Peek("Retry-After"))
		logging.Warn("[DISPATCH] rate limited on %s %s (retry after %s)", method, url, retry)
		return elapsed, fmt.Errorf("rate limited")
	default:
		return elapsed, fmt.Errorf("unexpected status %d", status)
	}
}
