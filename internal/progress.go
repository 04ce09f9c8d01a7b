package internal

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// UIManager handles status output around the long-running pipeline stages
type UIManager interface {
	NewSpinner(description string) ProgressBar
}

// ProgressBar abstracts spinner operations
type ProgressBar interface {
	Finish()
}

// StandardUIManager draws spinners on stderr when it is a terminal
type StandardUIManager struct {
	quiet bool
	tty   bool
}

// NewUIManager creates a UI; quiet disables spinners
func NewUIManager(quiet bool) UIManager {
	return &StandardUIManager{
		quiet: quiet,
		tty:   isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// NewSpinner starts an indeterminate spinner
func (ui *StandardUIManager) NewSpinner(description string) ProgressBar {
	if ui.quiet || !ui.tty {
		return silentProgressBar{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetSpinnerChangeInterval(100*time.Millisecond),
	)
	_ = bar.RenderBlank()
	return &visibleProgressBar{bar: bar}
}

type visibleProgressBar struct {
	bar *progressbar.ProgressBar
}

func (v *visibleProgressBar) Finish() {
	_ = v.bar.Finish()
}

type silentProgressBar struct{}

func (silentProgressBar) Finish() {}
