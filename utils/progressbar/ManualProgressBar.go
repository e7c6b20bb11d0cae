// Package progressbar implements functionality of printing a progress
// bar to a terminal
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar which writes to
// out, is width characters wide and reaches 100% after max increments
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	if max <= 0 {
		panic(fmt.Sprintf("newManualProgressBar: max progress must be "+
			"positive, got %v", max))
	}
	return &ManualProgressBar{
		out:             out,
		width:           float64(width),
		maxProgress:     float64(max),
		currentProgress: 0,
		startTime:       time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	p.Add(1)
}

// Add advances the progress counter by n, saturating at the maximum
func (p *ManualProgressBar) Add(n int) {
	p.currentProgress += float64(n)
	if p.currentProgress > p.maxProgress {
		p.currentProgress = p.maxProgress
	}
}

// Fraction returns the completed fraction in [0, 1]
func (p *ManualProgressBar) Fraction() float64 {
	return p.currentProgress / p.maxProgress
}

// String returns the current progress bar line
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.Fraction() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	p.bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
		p.Fraction()*100, "%",
		time.Since(p.startTime).Truncate(time.Second)))

	return p.bar.String()
}

// Display redraws the progress bar in place
func (p *ManualProgressBar) Display() {
	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.String())
}

// Close moves the output past the progress bar
func (p *ManualProgressBar) Close() {
	fmt.Fprintln(p.out)
}
