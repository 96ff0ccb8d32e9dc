package ui

import (
	"github.com/schollz/progressbar/v3"

	"github.com/eridani8/MassEmailSender/internal/dispatch"
)

// NewProgress renders a live bar over send attempts and returns the engine
// callback that feeds it plus a finish func for the caller to defer.
func NewProgress(total int) (dispatch.Progress, func()) {
	if total == 0 {
		return func(string, error) {}, func() {}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("sending"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
	progress := func(email string, err error) {
		_ = bar.Add(1)
	}
	finish := func() { _ = bar.Finish() }
	return progress, finish
}
