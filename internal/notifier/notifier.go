// Package notifier triggers the external workflow engine after writes.
// Delivery is best effort: one POST, no retry, failures reported in the
// Result and never returned as errors.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Kind selects the workflow endpoint.
type Kind string

const (
	KindRegistration Kind = "registration"
	KindMentorship   Kind = "mentorship"
)

type Config struct {
	Endpoints map[Kind]string
	Timeout   time.Duration
}

// ConfigFromEnv reads webhook URLs; an unset URL disables that kind.
func ConfigFromEnv() Config {
	timeout := 10 * time.Second
	if d, err := time.ParseDuration(os.Getenv("NOTIFY_TIMEOUT")); err == nil && d > 0 {
		timeout = d
	}
	return Config{
		Endpoints: map[Kind]string{
			KindRegistration: os.Getenv("N8N_REGISTER_WEBHOOK"),
			KindMentorship:   os.Getenv("N8N_MENTORSHIP_WEBHOOK"),
		},
		Timeout: timeout,
	}
}

// Result is the outcome of one notification attempt.
type Result struct {
	Success bool            `json:"success"`
	Reason  string          `json:"reason,omitempty"`
	Error   string          `json:"error,omitempty"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

const ReasonNotConfigured = "not configured"

type Notifier struct {
	endpoints map[Kind]string
	client    *http.Client
	logger    *zap.SugaredLogger
}

func New(cfg Config, logger *zap.SugaredLogger) *Notifier {
	endpoints := make(map[Kind]string, len(cfg.Endpoints))
	for k, v := range cfg.Endpoints {
		if v != "" {
			endpoints[k] = v
		}
	}
	return &Notifier{endpoints: endpoints, client: &http.Client{Timeout: cfg.Timeout}, logger: logger}
}

// Notify POSTs payload as JSON to the endpoint configured for kind.
func (n *Notifier) Notify(ctx context.Context, kind Kind, payload any) Result {
	url, ok := n.endpoints[kind]
	if !ok {
		n.logger.Warnw("webhook not configured, skipping", "kind", kind)
		return Result{Success: false, Reason: ReasonNotConfigured}
	}
	res, err := n.post(ctx, url, payload)
	if err != nil {
		n.logger.Warnw("webhook trigger failed", "kind", kind, "err", err)
		return Result{Success: false, Error: err.Error()}
	}
	n.logger.Debugw("webhook triggered", "kind", kind)
	return res
}

func (n *Notifier) post(ctx context.Context, url string, payload any) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := n.client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	res := Result{Success: true}
	// the workflow engine may answer with an empty or non-JSON body
	if json.Valid(raw) {
		res.Detail = raw
	}
	return res, nil
}
