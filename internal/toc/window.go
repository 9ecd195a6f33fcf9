package toc

import (
	"fmt"

	"git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
)

// Heading levels a window may span.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// Window is an inclusive heading level range.
type Window struct {
	Min int `yaml:"min_heading_level" json:"minHeadingLevel"`
	Max int `yaml:"max_heading_level" json:"maxHeadingLevel"`
}

// DefaultWindow shows h2 and h3 headings.
func DefaultWindow() Window {
	return Window{Min: 2, Max: 3}
}

// Validate checks that both bounds are real heading levels and Min <= Max.
func (w Window) Validate() error {
	if w.Min < MinHeadingLevel || w.Min > MaxHeadingLevel {
		return errors.ValidationError(fmt.Sprintf("min heading level %d out of range %d..%d", w.Min, MinHeadingLevel, MaxHeadingLevel)).
			WithContext("min_heading_level", w.Min).
			Build()
	}
	if w.Max < MinHeadingLevel || w.Max > MaxHeadingLevel {
		return errors.ValidationError(fmt.Sprintf("max heading level %d out of range %d..%d", w.Max, MinHeadingLevel, MaxHeadingLevel)).
			WithContext("max_heading_level", w.Max).
			Build()
	}
	if w.Min > w.Max {
		return errors.ValidationError(fmt.Sprintf("min heading level %d is greater than max heading level %d", w.Min, w.Max)).Build()
	}
	return nil
}

// Override returns w with any non-zero bound of o applied.
func (w Window) Override(o Window) Window {
	if o.Min != 0 {
		w.Min = o.Min
	}
	if o.Max != 0 {
		w.Max = o.Max
	}
	return w
}

// Apply runs FilteredAndTreeified with the window bounds.
func (w Window) Apply(items []Item) []*Node {
	return FilteredAndTreeified(items, w.Min, w.Max)
}
