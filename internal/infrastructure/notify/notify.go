package notify

import (
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// LogNotifier пишет уведомления витрины в лог сервиса.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(logger logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(level usecase.NotificationLevel, message string) {
	if level == usecase.NotifyError {
		n.logger.Warnf("notification [%s]: %s", level, message)
		return
	}
	n.logger.Debugf("notification [%s]: %s", level, message)
}
