package linkcheck

import (
	"log/slog"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	"git.home.luguber.info/inful/sitecfg/internal/logfields"
)

// report applies the finding's policy. It returns false when the finding is dropped.
func report(logger *slog.Logger, f Finding) bool {
	attrs := []any{
		logfields.Kind(string(f.Kind)),
		logfields.Source(f.Source),
		logfields.Link(f.Target),
		slog.String("reason", f.Reason),
	}
	if f.Status != 0 {
		attrs = append(attrs, logfields.Status(f.Status))
	}
	switch f.Policy {
	case config.PolicyIgnore:
		return false
	case config.PolicyLog:
		logger.Info("Broken link", attrs...)
	case config.PolicyWarn:
		logger.Warn("Broken link", attrs...)
	default:
		logger.Error("Broken link", attrs...)
	}
	return true
}
