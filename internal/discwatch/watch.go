// Package discwatch listens for udev netlink events and reports disc
// insertions for the configured optical drive, without requiring a udev
// rule to invoke the CLI as root.
package discwatch

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pilebones/go-udev/netlink"

	"dvdbackup/internal/config"
	"dvdbackup/internal/logging"
)

// DiscInsertedEvent describes a disc insertion detected on the watched
// device.
type DiscInsertedEvent struct {
	Device string
	Action string
}

// Handler is invoked whenever a disc insertion event matching the
// configured device is observed. It returns an error only for conditions
// the caller should log; the monitor itself never aborts because of it.
type Handler func(ctx context.Context, event DiscInsertedEvent) error

// Monitor listens for udev netlink events and calls Handler when a disc is
// inserted into the configured device.
type Monitor struct {
	logger  *slog.Logger
	handler Handler
	device  string

	mu      sync.Mutex
	conn    *netlink.UEventConn
	quit    chan struct{}
	running bool
}

// New creates a netlink monitor for the drive named in cfg.Drive.Device.
// It returns nil if no device is configured, letting callers treat netlink
// watching as an optional feature.
func New(cfg *config.Config, logger *slog.Logger, handler Handler) *Monitor {
	if cfg == nil {
		return nil
	}

	device := strings.TrimSpace(cfg.Drive.Device)
	if device == "" {
		return nil
	}

	return &Monitor{
		logger:  logging.NewComponentLogger(logger, "discwatch"),
		handler: handler,
		device:  device,
	}
}

// Start begins listening for udev netlink events. Failure to connect to the
// netlink socket is logged but non-fatal: callers can still poll the drive
// manually via discio.CheckDriveStatus.
func (m *Monitor) Start(ctx context.Context) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		m.logger.Warn("failed to connect to netlink socket; disc insertions will not be detected",
			logging.Error(err),
			logging.String("device", m.device),
		)
		return nil
	}

	m.conn = conn
	m.quit = make(chan struct{})
	m.running = true

	quit := m.quit
	go m.monitorLoop(ctx, quit)

	m.logger.Info("netlink monitor started", logging.String("device", m.device))

	return nil
}

// Stop shuts down the netlink monitor.
func (m *Monitor) Stop() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	if m.quit != nil {
		close(m.quit)
		m.quit = nil
	}

	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}

	m.running = false

	m.logger.Info("netlink monitor stopped")
}

// Running reports whether the netlink monitor is active.
func (m *Monitor) Running() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Monitor) monitorLoop(ctx context.Context, quit <-chan struct{}) {
	queue := make(chan netlink.UEvent)
	errs := make(chan error)

	matcher := m.buildMatcher()

	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()

	if conn == nil {
		return
	}

	monitorQuit := conn.Monitor(queue, errs, matcher)

	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			m.handleEvent(ctx, uevent)
		case err := <-errs:
			m.logger.Warn("netlink monitor error", logging.Error(err))
		}
	}
}

// buildMatcher matches disc insertion events for optical media:
// SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1, ACTION=change|add.
func (m *Monitor) buildMatcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

func (m *Monitor) handleEvent(ctx context.Context, uevent netlink.UEvent) {
	devname := extractDeviceName(uevent)
	if devname == "" {
		return
	}

	if devname != m.device {
		m.logger.Debug("ignoring event for non-configured device",
			logging.String("device", devname),
			logging.String("configured_device", m.device),
		)
		return
	}

	m.logger.Info("disc media detected via netlink",
		logging.String("device", devname),
		logging.String("action", string(uevent.Action)),
	)

	if m.handler == nil {
		return
	}

	event := DiscInsertedEvent{Device: devname, Action: string(uevent.Action)}
	if err := m.handler(ctx, event); err != nil {
		m.logger.Warn("disc insertion handler failed", logging.Error(err), logging.String("device", devname))
	}
}

func extractDeviceName(uevent netlink.UEvent) string {
	if devname := uevent.Env["DEVNAME"]; devname != "" {
		return devname
	}

	devpath := uevent.Env["DEVPATH"]
	if devpath == "" {
		return ""
	}

	parts := strings.Split(devpath, "/")
	if len(parts) == 0 {
		return ""
	}
	return "/dev/" + parts[len(parts)-1]
}
