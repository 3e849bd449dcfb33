package inventory

import (
	"strings"

	"github.com/invkit/recount/pkg/errors"
)

// Mode controls whether movable variances become transfer suggestions or an
// equivalent pair of adjustments.
type Mode string

// Reconciliation modes.
const (
	ModeTransfer Mode = "TRANSFER"
	ModeAdjust   Mode = "ADJUST"
)

// ParseMode parses a mode string, case-insensitively. An empty string
// defaults to ADJUST.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return ModeAdjust, nil
	case ModeTransfer:
		return ModeTransfer, nil
	case ModeAdjust:
		return ModeAdjust, nil
	default:
		return "", errors.NewValidationError("mode", s, "must be TRANSFER or ADJUST")
	}
}
