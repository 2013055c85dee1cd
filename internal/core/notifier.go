package core

import (
	"github.com/botpanel/botpanel/internal/configuration"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/notifier"

	"go.uber.org/zap"
)

// NewNotifier returns nil when notifications are disabled.
func NewNotifier(config models.NotifierConfiguration) notifier.INotifier {
	var (
		n   notifier.INotifier
		err error
	)

	switch config.Type {
	case configuration.NotifierSMTP:
		n, err = notifier.NewSMTPNotifier(*config.SMTP)
	case configuration.NotifierFS:
		n, err = notifier.NewFilesystemNotifier(*config.Filesystem)
	default:
		zap.L().Info("Operator notifications disabled")
		return nil
	}

	if err != nil {
		zap.L().Fatal("Failed to initialize notifier", zap.String("type", config.Type), zap.Error(err))
	}
	return n
}
