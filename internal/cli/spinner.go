package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a single status line while a remote source is fetched.
// The animation ends on Stop or when ctx is done, whichever comes first.
type spinner struct {
	ctx     context.Context
	w       io.Writer
	message string

	quit chan struct{}
	wg   sync.WaitGroup
	stop sync.Once
}

func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	return &spinner{ctx: ctx, w: w, message: message, quit: make(chan struct{})}
}

func (s *spinner) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *spinner) run() {
	defer s.wg.Done()
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame = (frame + 1) % len(spinnerFrames) {
		select {
		case <-s.ctx.Done():
			return
		case <-s.quit:
			return
		case <-tick.C:
			fmt.Fprintf(s.w, "\r%s %s", styleSpinner.Render(spinnerFrames[frame]), StyleDim.Render(s.message))
		}
	}
}

// Stop ends the animation and blanks the line. Extra calls are no-ops.
func (s *spinner) Stop() {
	s.stop.Do(func() {
		close(s.quit)
		s.wg.Wait()
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	})
}
