package service

import (
	"io"
	"log/slog"
	"os"

	"github.com/shaharia-lab/regnotify/internal/notification"
)

// RegistrationService registers users and notifies them through an injected
// notification channel.
type RegistrationService interface {
	// Register performs the registration of username and then sends the
	// success notification. It reports nothing back to the caller.
	Register(username string)
	// Channel returns the name of the notification channel in use.
	Channel() string
}

// RegisteredLine returns the line emitted when username has been registered.
func RegisteredLine(username string) string {
	return username + " registered."
}

// SuccessMessage returns the notification text sent after registering username.
func SuccessMessage(username string) string {
	return username + " registration successful!"
}

// registrationServiceImpl implements RegistrationService.
type registrationServiceImpl struct {
	notifier  notification.Notifier
	out       io.Writer
	publisher EventPublisher
	logger    *slog.Logger
}

// NewRegistrationService creates a RegistrationService bound to notifier for
// its whole lifetime. out receives the registration line (nil means standard
// output). publisher is optional.
func NewRegistrationService(
	notifier notification.Notifier,
	out io.Writer,
	publisher EventPublisher,
	logger *slog.Logger,
) (RegistrationService, error) {
	if notifier == nil {
		return nil, &ValidationError{Field: "notifier", Message: "a notifier is required"}
	}
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &registrationServiceImpl{
		notifier:  notifier,
		out:       out,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Register emits the registration line, then sends the success message.
func (s *registrationServiceImpl) Register(username string) {
	if _, err := io.WriteString(s.out, RegisteredLine(username)+"\n"); err != nil {
		s.logger.Warn("failed to write registration line",
			slog.String("username", username),
			slog.Any("error", err),
		)
	}

	s.notifier.Send(SuccessMessage(username))

	channel := s.Channel()
	s.logger.Debug("user registered",
		slog.String("username", username),
		slog.String("channel", channel),
	)

	if s.publisher != nil {
		s.publisher.Publish(EventUserRegistered, map[string]string{
			"username": username,
			"channel":  channel,
		})
	}
}

// Channel returns the held notifier's channel name.
func (s *registrationServiceImpl) Channel() string {
	return notification.Name(s.notifier)
}
