package notifier

import (
	"github.com/x-xyz/marketengine/base/ctx"
)

type logImpl struct{}

// NewLog only writes alerts to the log, for deployments without a discord channel
func NewLog() Notifier {
	return logImpl{}
}

func (logImpl) Alert(c ctx.Ctx, alert Alert) error {
	c.WithFields(alert.Fields).WithField("level", alert.Level).Warn("alert: " + alert.Title + ": " + alert.Message)
	return nil
}
