// Package notification defines the Notifier capability and its channel
// variants (email, SMS), a registry used to pick a variant by name, and a
// recorder that keeps a delivery log of every send.
package notification

// Notifier delivers a human-readable message through some channel.
// Send is fire-and-forget: it attempts delivery exactly once and reports
// nothing back to the caller.
type Notifier interface {
	Send(message string)
}

// Deliverer is implemented by notifiers that can report the outcome of a
// delivery attempt. Recorder uses it to log failed attempts.
type Deliverer interface {
	Deliver(message string) error
}

// Named is implemented by notifiers that know their channel name.
type Named interface {
	Name() string
}

// Func adapts an ordinary function to the Notifier interface.
type Func func(message string)

// Send calls f(message).
func (f Func) Send(message string) { f(message) }

// Name returns the channel name of n, or "custom" when n does not implement Named.
func Name(n Notifier) string {
	if named, ok := n.(Named); ok {
		return named.Name()
	}
	return "custom"
}
