package notification

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownChannel is returned by Registry.New for a channel with no factory.
var ErrUnknownChannel = errors.New("unknown notification channel")

// Factory builds a Notifier writing to out.
type Factory func(out io.Writer, logger *slog.Logger) Notifier

// Registry maps channel names to notifier factories. It is the composition
// root's extension point: adding a channel never touches existing variants
// or the registration service.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a Registry with the email and sms channels registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register(ChannelEmail, func(out io.Writer, logger *slog.Logger) Notifier {
		return NewEmailNotifier(out, logger)
	})
	r.Register(ChannelSMS, func(out io.Writer, logger *slog.Logger) Notifier {
		return NewSMSNotifier(out, logger)
	})
	return r
}

// Register adds or replaces the factory for channel.
func (r *Registry) Register(channel string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[normalizeChannel(channel)] = factory
}

// New builds the notifier registered for channel.
func (r *Registry) New(channel string, out io.Writer, logger *slog.Logger) (Notifier, error) {
	r.mu.RLock()
	factory, ok := r.factories[normalizeChannel(channel)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrUnknownChannel, channel, strings.Join(r.Channels(), ", "))
	}
	return factory(out, logger), nil
}

// Channels returns the registered channel names in sorted order.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeChannel(channel string) string {
	return strings.ToLower(strings.TrimSpace(channel))
}
