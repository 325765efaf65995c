// pkg/progress/progress.go - cosmetic spinner for long-running blocking calls.
//
// The spinner runs on a background goroutine that repaints on a fixed interval
// and is always joined before the caller proceeds. It carries no state beyond
// its stop channel; correctness of the surrounding operation never depends on
// it.

package progress

import (
	"time"

	"github.com/schollz/progressbar/v3"
)

// Spinner repaints an indeterminate progress indicator until stopped.
type Spinner struct {
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

// NewSpinner starts a spinner with the given description.
func NewSpinner(description string) *Spinner {
	s := &Spinner{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetDescription(description),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetWidth(20),
			progressbar.OptionClearOnFinish(),
		),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Spinner) loop() {
	defer close(s.done)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			_ = s.bar.Finish()
			return
		case <-ticker.C:
			_ = s.bar.Add(1)
		}
	}
}

// Stop halts the spinner and waits for its goroutine to exit.
func (s *Spinner) Stop() {
	close(s.stop)
	<-s.done
}
