package discwatch

import (
	"context"
	"testing"

	"github.com/pilebones/go-udev/netlink"

	"dvdbackup/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		m := New(nil, nil, nil)
		if m != nil {
			t.Error("expected nil monitor for nil config")
		}
	})

	t.Run("empty device returns nil", func(t *testing.T) {
		cfg := &config.Config{}
		m := New(cfg, nil, nil)
		if m != nil {
			t.Error("expected nil monitor for empty device")
		}
	})

	t.Run("valid config creates monitor", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"
		m := New(cfg, nil, nil)
		if m == nil {
			t.Fatal("expected non-nil monitor")
		}
		if m.device != "/dev/sr0" {
			t.Errorf("expected device /dev/sr0, got %s", m.device)
		}
	})
}

func TestMonitorRunning(t *testing.T) {
	t.Run("nil monitor returns false", func(t *testing.T) {
		var m *Monitor
		if m.Running() {
			t.Error("expected Running() to return false for nil monitor")
		}
	})

	t.Run("unstarted monitor returns false", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"
		m := New(cfg, nil, nil)
		if m.Running() {
			t.Error("expected Running() to return false for unstarted monitor")
		}
	})
}

func TestMonitorStopStartIdempotency(t *testing.T) {
	t.Run("stop on nil monitor is safe", func(t *testing.T) {
		var m *Monitor
		m.Stop()
	})

	t.Run("start on nil monitor is safe", func(t *testing.T) {
		var m *Monitor
		if err := m.Start(context.Background()); err != nil {
			t.Fatalf("Start on nil monitor should return nil, got: %v", err)
		}
	})

	t.Run("stop on unstarted monitor is safe", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"
		m := New(cfg, nil, nil)
		m.Stop()
		if m.Running() {
			t.Error("expected Running() to return false after Stop on unstarted monitor")
		}
	})

	t.Run("double stop is safe", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"
		m := New(cfg, nil, nil)
		m.Stop()
		m.Stop()
	})

	t.Run("start after stop without prior start is safe", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"
		m := New(cfg, nil, nil)
		m.Stop()
		_ = m.Start(context.Background())
	})
}

func TestBuildMatcher(t *testing.T) {
	cfg := &config.Config{}
	cfg.Drive.Device = "/dev/sr0"
	m := New(cfg, nil, nil)

	matcher := m.buildMatcher()
	if matcher == nil {
		t.Fatal("expected non-nil matcher")
	}

	validEvent := netlink.UEvent{
		Action: netlink.CHANGE,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	}
	if !matcher.Evaluate(validEvent) {
		t.Error("expected matcher to accept valid disc event")
	}

	addEvent := netlink.UEvent{
		Action: netlink.ADD,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	}
	if !matcher.Evaluate(addEvent) {
		t.Error("expected matcher to accept ADD action")
	}

	nonDiscEvent := netlink.UEvent{
		Action: netlink.CHANGE,
		Env: map[string]string{
			"SUBSYSTEM": "block",
			"ID_CDROM":  "1",
		},
	}
	if matcher.Evaluate(nonDiscEvent) {
		t.Error("expected matcher to reject event without ID_CDROM_MEDIA")
	}

	removeEvent := netlink.UEvent{
		Action: netlink.REMOVE,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	}
	if matcher.Evaluate(removeEvent) {
		t.Error("expected matcher to reject REMOVE action")
	}
}

func TestHandleEvent(t *testing.T) {
	t.Run("ignores event without device name", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"

		var handlerCalled bool
		handler := func(ctx context.Context, event DiscInsertedEvent) error {
			handlerCalled = true
			return nil
		}

		m := New(cfg, nil, handler)
		m.handleEvent(context.Background(), netlink.UEvent{
			Action: netlink.CHANGE,
			Env:    map[string]string{},
		})

		if handlerCalled {
			t.Error("handler should not be called for event without device name")
		}
	})

	t.Run("ignores event for non-configured device", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"

		var handlerCalled bool
		handler := func(ctx context.Context, event DiscInsertedEvent) error {
			handlerCalled = true
			return nil
		}

		m := New(cfg, nil, handler)
		m.handleEvent(context.Background(), netlink.UEvent{
			Action: netlink.CHANGE,
			Env: map[string]string{
				"DEVNAME": "/dev/sr1",
			},
		})

		if handlerCalled {
			t.Error("handler should not be called for non-configured device")
		}
	})

	t.Run("calls handler for valid event", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"

		var handlerCalled bool
		var receivedDevice string
		handler := func(ctx context.Context, event DiscInsertedEvent) error {
			handlerCalled = true
			receivedDevice = event.Device
			return nil
		}

		m := New(cfg, nil, handler)
		m.handleEvent(context.Background(), netlink.UEvent{
			Action: netlink.CHANGE,
			Env: map[string]string{
				"DEVNAME": "/dev/sr0",
			},
		})

		if !handlerCalled {
			t.Error("handler should be called for valid event")
		}
		if receivedDevice != "/dev/sr0" {
			t.Errorf("expected device /dev/sr0, got %s", receivedDevice)
		}
	})

	t.Run("extracts device from DEVPATH when DEVNAME missing", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Drive.Device = "/dev/sr0"

		var receivedDevice string
		handler := func(ctx context.Context, event DiscInsertedEvent) error {
			receivedDevice = event.Device
			return nil
		}

		m := New(cfg, nil, handler)
		m.handleEvent(context.Background(), netlink.UEvent{
			Action: netlink.CHANGE,
			Env: map[string]string{
				"DEVPATH": "/devices/pci0000:00/0000:00:1f.2/ata1/host0/target0:0:0/0:0:0:0/block/sr0",
			},
		})

		if receivedDevice != "/dev/sr0" {
			t.Errorf("expected device /dev/sr0 from DEVPATH, got %s", receivedDevice)
		}
	})
}
