package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/x-xyz/auction/base/log"
	"github.com/x-xyz/auction/domain"
)

type logNotifier struct {
	logger log.Logger
}

// NewLog writes notifications to the log, errors at error level
func NewLog(logger log.Logger) domain.Notifier {
	return &logNotifier{logger.WithField("component", "notify")}
}

func (n *logNotifier) Notify(m domain.Notification) {
	l := n.logger.WithFields(log.Fields{"title": m.Title, "level": string(m.Level)})
	if m.Level == domain.LevelError {
		l.Error(m.Message)
		return
	}
	l.Info(m.Message)
}

type writerNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter prints one line per notification, the way a terminal shows toasts
func NewWriter(w io.Writer) domain.Notifier {
	return &writerNotifier{w: w}
}

func (n *writerNotifier) Notify(m domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch {
	case m.Message == "":
		fmt.Fprintf(n.w, "[%s] %s\n", m.Level, m.Title)
	case m.Title == "":
		fmt.Fprintf(n.w, "[%s] %s\n", m.Level, m.Message)
	default:
		fmt.Fprintf(n.w, "[%s] %s: %s\n", m.Level, m.Title, m.Message)
	}
}

// Recorder keeps notifications and routes in memory. It implements both
// domain.Notifier and domain.Navigator.
type Recorder struct {
	mu            sync.Mutex
	notifications []domain.Notification
	routes        []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

func (r *Recorder) Navigate(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.notifications...)
}

// Last returns the latest notification, false when there is none
func (r *Recorder) Last() (domain.Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return domain.Notification{}, false
	}
	return r.notifications[len(r.notifications)-1], true
}

func (r *Recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.routes...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = nil
	r.routes = nil
}

// Navigation logs routes and forwards them to f when set
type Navigation struct {
	logger log.Logger
	f      func(route string)
}

func NewNavigation(logger log.Logger, f func(route string)) *Navigation {
	return &Navigation{logger.WithField("component", "navigation"), f}
}

func (n *Navigation) Navigate(route string) {
	n.logger.WithField("route", route).Info("navigate")
	if n.f != nil {
		n.f(route)
	}
}

// Rejection tells the user why the backend refused a call. Transport
// failures are skipped since the client reported them already.
func Rejection(n domain.Notifier, err error) {
	if !domain.IsRejected(err) {
		return
	}
	n.Notify(domain.Notification{
		Level:   domain.LevelError,
		Title:   domain.MsgFail,
		Message: domain.MessageOf(err, domain.MsgFail),
	})
}
