package notify

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"

	appName = "taliesin"

	// queueSize bounds notifications waiting for the bus.
	queueSize = 8
	// sendTimeout bounds one Notify round-trip to the daemon.
	sendTimeout = 5 * time.Second
)

// Urgency levels of the freedesktop notification hints.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// DesktopNotification is the payload of an org.freedesktop.Notifications.Notify call.
type DesktopNotification struct {
	AppIcon       string
	Summary       string
	Body          string
	Urgency       byte
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// Desktop sends desktop notifications for playback outcomes.
// It rate limits per event kind to prevent notification floods. Bus calls
// run on Desktop's own goroutine so Notify never waits for the daemon.
type Desktop struct {
	mu     sync.Mutex
	logger *slog.Logger
	conn   *dbus.Conn

	send func(n DesktopNotification) error
	now  func() time.Time

	queue  chan DesktopNotification
	done   chan struct{}
	closed bool

	// Rate limiting
	lastNotifyTime map[Kind]time.Time
	minInterval    time.Duration
}

// NewDesktop connects to the session bus.
func NewDesktop(logger *slog.Logger) (*Desktop, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}

	obj := conn.Object(DBusInterface, DBusPath)
	send := func(n DesktopNotification) error {
		hints := map[string]dbus.Variant{
			"urgency":   dbus.MakeVariant(n.Urgency),
			"category":  dbus.MakeVariant("device"),
			"transient": dbus.MakeVariant(true),
		}
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		call := obj.CallWithContext(ctx, DBusInterface+".Notify", 0,
			appName, uint32(0), n.AppIcon, n.Summary, n.Body,
			[]string{}, hints, n.ExpireTimeout)
		return call.Err
	}

	d := newDesktop(logger, send)
	d.conn = conn
	return d, nil
}

func newDesktop(logger *slog.Logger, send func(n DesktopNotification) error) *Desktop {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Desktop{
		logger:         logger,
		send:           send,
		now:            time.Now,
		queue:          make(chan DesktopNotification, queueSize),
		done:           make(chan struct{}),
		lastNotifyTime: make(map[Kind]time.Time),
		minInterval:    2 * time.Second, // Don't repeat the same kind within 2 seconds
	}
	go d.run()
	return d
}

// run sends queued notifications until the queue is closed.
func (d *Desktop) run() {
	defer close(d.done)

	for n := range d.queue {
		if d.send == nil {
			continue
		}
		if err := d.send(n); err != nil {
			d.logger.Warn("failed to send desktop notification", "summary", n.Summary, "error", err)
		}
	}
}

// SetMinInterval sets the minimum interval between notifications of one kind.
func (d *Desktop) SetMinInterval(interval time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.minInterval = interval
}

// Notify queues Played and PlaybackFailed events unless rate limited. It does
// not block: when the queue is full the notification is dropped.
// Timer transitions are too frequent to be useful as popups.
func (d *Desktop) Notify(ev Event) {
	n, ok := desktopNotification(ev)
	if !ok {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	now := d.now()
	if last, seen := d.lastNotifyTime[ev.Kind]; seen && now.Sub(last) < d.minInterval {
		d.logger.Debug("desktop notification rate-limited", "kind", ev.Kind)
		return
	}
	d.lastNotifyTime[ev.Kind] = now

	select {
	case d.queue <- n:
	default:
		d.logger.Warn("desktop notification dropped, bus is busy", "kind", ev.Kind)
	}
}

// Close waits for queued notifications to be sent and releases the bus
// connection.
func (d *Desktop) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done

	if d.conn == nil {
		return nil
	}
	return d.conn.Close()
}

func desktopNotification(ev Event) (DesktopNotification, bool) {
	name := filepath.Base(ev.File)
	switch ev.Kind {
	case Played:
		return DesktopNotification{
			AppIcon:       "audio-volume-high",
			Summary:       "Played " + name,
			Body:          ev.File,
			Urgency:       UrgencyLow,
			ExpireTimeout: 3000,
		}, true
	case PlaybackFailed:
		body := ev.File
		if ev.Err != nil {
			body = ev.Err.Error()
		}
		return DesktopNotification{
			AppIcon:       "dialog-error",
			Summary:       "Could not play " + name,
			Body:          body,
			Urgency:       UrgencyCritical,
			ExpireTimeout: 5000,
		}, true
	default:
		return DesktopNotification{}, false
	}
}
