package chain

import (
	"github.com/charmbracelet/log"

	"github.com/relicta-tech/faultline/pkg/fault"
)

// LogPlugin reports every fault to a structured logger and always returns
// true: it observes, it never claims exclusivity.
type LogPlugin struct {
	logger *log.Logger
	level  log.Level
}

// NewLogPlugin creates a logging plugin. A nil logger uses the default
// logger; level is the severity faults are logged at.
func NewLogPlugin(logger *log.Logger, level log.Level) *LogPlugin {
	if logger == nil {
		logger = log.Default()
	}
	return &LogPlugin{logger: logger, level: level}
}

// Name implements Plugin.
func (p *LogPlugin) Name() string { return "log" }

// Handle implements Plugin.
func (p *LogPlugin) Handle(rep *fault.Report) bool {
	if rep == nil {
		return true
	}
	p.logger.Log(p.level, "uncaught fault",
		"kind", rep.Kind().Name(),
		"id", rep.ID(),
		"message", rep.Message(),
	)
	if tr := rep.Trace(); tr != nil {
		p.logger.Debug("fault trace", "trace", tr.String())
	}
	return true
}
