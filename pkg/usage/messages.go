package usage

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/schooldesk/schoolkit/pkg/catalog"
)

// msgPrinter renders quota messages with locale-aware number grouping, so
// limits read as "49,000 of 50,000" rather than raw digits.
var msgPrinter = message.NewPrinter(language.English)

func warningMessage(typ catalog.UsageType, percent float64, current, limit int64) string {
	return msgPrinter.Sprintf("%s usage at %.0f%% of limit (%d of %d)", typ, percent, current, limit)
}

func overageMessage(typ catalog.UsageType, overage int64, cost float64) string {
	return msgPrinter.Sprintf("%s limit exceeded by %d units (overage cost %.2f)", typ, overage, cost)
}

func blockedMessage(typ catalog.UsageType, amount, limit int64) string {
	return msgPrinter.Sprintf("adding %d would exceed the %s limit of %d", amount, typ, limit)
}
