package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"dvdbackup/internal/config"
)

const userAgent = "dvdbackup-go/0.1.0"

// Service is the notification surface the CLI drives around a rip run.
type Service interface {
	NotifyRunStarted(ctx context.Context, device, targetDir string) error
	NotifyRunCompleted(ctx context.Context, targetDir string, filesFailed int, duration time.Duration) error
	NotifyVerificationMismatch(ctx context.Context, file string, sector uint64) error
	TestNotification(ctx context.Context) error
}

// NewService builds an ntfy-backed notifier when configured, or a no-op
// implementation otherwise.
func NewService(cfg *config.Config) Service {
	if cfg == nil || !cfg.Notifications.Enabled || strings.TrimSpace(cfg.Notifications.Topic) == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: cfg.Notifications.Topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title   string
	message string
	tags    []string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRunStarted(ctx context.Context, device, targetDir string) error {
	return n.send(ctx, payload{
		title:   "dvdbackup - rip started",
		message: fmt.Sprintf("Ripping %s to %s", device, targetDir),
		tags:    []string{"dvd", "rip", "started"},
	})
}

func (n *ntfyService) NotifyRunCompleted(ctx context.Context, targetDir string, filesFailed int, duration time.Duration) error {
	status := "completed"
	tags := []string{"dvd", "rip", "completed"}
	if filesFailed > 0 {
		status = fmt.Sprintf("completed with %d failed file(s)", filesFailed)
		tags = []string{"dvd", "rip", "warning"}
	}
	return n.send(ctx, payload{
		title:   "dvdbackup - rip finished",
		message: fmt.Sprintf("%s in %s (%s)", targetDir, duration.Round(time.Second), status),
		tags:    tags,
	})
}

func (n *ntfyService) NotifyVerificationMismatch(ctx context.Context, file string, sector uint64) error {
	return n.send(ctx, payload{
		title:   "dvdbackup - verification mismatch",
		message: fmt.Sprintf("%s: sector %d does not match the disc", file, sector),
		tags:    []string{"dvd", "warning"},
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:   "dvdbackup - test notification",
		message: "Notifications are configured correctly.",
		tags:    []string{"dvd", "test"},
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRunStarted(context.Context, string, string) error              { return nil }
func (noopService) NotifyRunCompleted(context.Context, string, int, time.Duration) error { return nil }
func (noopService) NotifyVerificationMismatch(context.Context, string, uint64) error     { return nil }
func (noopService) TestNotification(context.Context) error                              { return nil }
