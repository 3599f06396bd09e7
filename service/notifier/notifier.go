package notifier

import (
	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/log"
)

type Level string

const (
	LevelWarn     Level = "warn"
	LevelCritical Level = "critical"
)

// Alert is a message for operators
type Alert struct {
	Level   Level
	Title   string
	Message string
	Fields  log.Fields
}

type Notifier interface {
	Alert(c ctx.Ctx, alert Alert) error
}
