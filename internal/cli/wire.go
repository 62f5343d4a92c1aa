package cli

import (
	"github.com/charmbracelet/log"

	"github.com/relicta-tech/faultline/internal/config"
	"github.com/relicta-tech/faultline/internal/version"
	"github.com/relicta-tech/faultline/pkg/chain"
	"github.com/relicta-tech/faultline/pkg/deliver"
	"github.com/relicta-tech/faultline/pkg/fault"
	"github.com/relicta-tech/faultline/pkg/format"
	"github.com/relicta-tech/faultline/pkg/highlight"
)

// buildHook assembles the fault handling chain from configuration: formatter
// registry, delivery sinks, log and notify plugins, and the hook that ties
// them together. This is the single initialization entrypoint; the hook owns
// all otherwise-global state for its lifetime.
func buildHook(cfg *config.Config, logger *log.Logger) *chain.Hook {
	var hl highlight.Highlighter = highlight.Plain{}
	if cfg.Highlight.Enabled {
		hl = highlight.NewHTML(cfg.Highlight.Style)
	}

	registry := format.NewRegistry(format.WithHighlighter(hl))
	registry.Register(fault.KindDevice, format.NewStructuredPrefix(cfg.Highlight.ReasonPrefix))

	notify := chain.NewNotifyPlugin(registry, deliver.Multi(buildSinks(cfg, logger)...),
		chain.WithAppInfo(cfg.App.Name, version.Get()),
		chain.WithExclusive(cfg.Chain.Exclusive),
		chain.WithDeliveryTimeout(cfg.Chain.DeliveryTimeout),
	)

	root := chain.NewMultiplex("root").
		Append(chain.NewLogPlugin(logger, parseLevel(cfg.Log.FaultLevel))).
		Append(notify)

	opts := []chain.HookOption{}
	if !cfg.Chain.Passthrough {
		opts = append(opts, chain.WithPassthrough(nil))
	}
	return chain.NewHook(root, opts...)
}

// buildSinks creates the delivery sinks listed in chain.sinks, in order.
func buildSinks(cfg *config.Config, logger *log.Logger) []deliver.Sink {
	var sinks []deliver.Sink
	for _, name := range cfg.Chain.Sinks {
		switch name {
		case "log":
			sinks = append(sinks, deliver.NewLogSink(logger))
		case "webhook":
			sinks = append(sinks, deliver.NewWebhookSink(webhookEndpoints(cfg)...))
		case "smtp":
			sinks = append(sinks, deliver.NewSMTPSink(deliver.SMTPConfig{
				Host:          cfg.SMTP.Host,
				Port:          cfg.SMTP.Port,
				From:          cfg.SMTP.From,
				To:            cfg.SMTP.To,
				SubjectPrefix: cfg.SMTP.SubjectPrefix,
				Username:      cfg.SMTP.Username,
				Password:      cfg.SMTP.Password,
			}))
		case "clipboard":
			if cfg.Clipboard.Enabled {
				sinks = append(sinks, deliver.NewClipboardSink())
			}
		case "stderr":
			sinks = append(sinks, deliver.NewStderrSink(nil))
		}
	}
	if len(sinks) == 0 {
		sinks = append(sinks, deliver.NewLogSink(logger))
	}
	return sinks
}

func webhookEndpoints(cfg *config.Config) []deliver.Endpoint {
	eps := make([]deliver.Endpoint, 0, len(cfg.Webhooks))
	for _, wh := range cfg.Webhooks {
		eps = append(eps, deliver.Endpoint{
			Name:       wh.Name,
			URL:        wh.URL,
			Secret:     wh.Secret,
			Headers:    wh.Headers,
			Timeout:    wh.Timeout,
			RetryCount: wh.RetryCount,
			RetryDelay: wh.RetryDelay,
		})
	}
	return eps
}
