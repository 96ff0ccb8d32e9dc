package ui

import (
	"bufio"
	"io"
	"strings"

	"github.com/eridani8/MassEmailSender/internal/dispatch"
)

// Confirm returns the AwaitingStart gate: it shows the finalized plan and
// waits for the operator to type "s". Anything else declines the run.
func Confirm(in io.Reader, theme Theme) dispatch.Confirm {
	return func(p dispatch.PlanInfo) bool {
		theme.Messagef("Subject: %s", theme.Valuef("%s", p.Subject))
		theme.Messagef("Recipients queued: %s", theme.Valuef("%d", p.Recipients))
		if p.Skipped > 0 {
			theme.Messagef("Already sent (skipped): %s", theme.Valuef("%d", p.Skipped))
		}
		if p.Limit > 0 {
			theme.Messagef("Send limit: %s", theme.Valuef("%d", p.Limit))
		}
		theme.Messagef("Type 's' and press Enter to start sending...")

		sc := bufio.NewScanner(in)
		if !sc.Scan() {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(sc.Text()), "s")
	}
}
