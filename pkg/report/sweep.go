/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sweep.go
Description: Colour-cube sweeps. A sweep classifies every channel combination on a grid
over [0, 15]^3, tallies the labels and keeps the numeric outputs so their distribution
can be plotted.
*/

package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/google/uuid"
	"github.com/kleascm/akaylee-chroma/pkg/chroma"
)

// Entry is one classified grid point.
type Entry struct {
	Red        float64 `json:"red"`
	Green      float64 `json:"green"`
	Blue       float64 `json:"blue"`
	Hex        string  `json:"hex"`
	Color      string  `json:"color"`
	Degree     float64 `json:"degree"`
	Luminosity string  `json:"luminosity"`
	Brightness float64 `json:"brightness"`
	LedCode    float64 `json:"led_code"`
}

// Count is a label with the number of grid points it won.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Report is the outcome of one sweep.
type Report struct {
	ID               string        `json:"id"`
	RuleBase         string        `json:"rule_base"`
	Step             float64       `json:"step"`
	Samples          int           `json:"samples"`
	Unclassified     int           `json:"unclassified"`
	GeneratedAt      time.Time     `json:"generated_at"`
	Duration         time.Duration `json:"duration"`
	ColorCounts      []Count       `json:"color_counts"`
	LuminosityCounts []Count       `json:"luminosity_counts"`
	Entries          []Entry       `json:"entries,omitempty"`
}

// Sweep classifies every grid point with the given step (1 visits all 4096 integer colours).
// The classifier's snapshot is left at the last grid point.
func Sweep(c *chroma.Classifier, step float64, keepEntries bool) (*Report, error) {
	if step <= 0 || step > chroma.ChannelMax {
		return nil, fmt.Errorf("sweep step must be in (0, %g], got %g", chroma.ChannelMax, step)
	}

	start := time.Now()
	rep := &Report{
		ID:          uuid.New().String(),
		RuleBase:    c.Engine().Name(),
		Step:        step,
		GeneratedAt: start.UTC(),
	}
	colors := map[string]int{}
	lums := map[string]int{}

	grid := axis(step)
	for _, r := range grid {
		for _, g := range grid {
			for _, b := range grid {
				if err := c.SetColor(r, g, b); err != nil {
					return nil, fmt.Errorf("sweep at (%g, %g, %g): %w", r, g, b, err)
				}
				color := c.Color()
				lum := c.Luminosity()
				rep.Samples++
				if !color.Fired || !lum.Fired {
					rep.Unclassified++
				}
				if color.Fired {
					colors[color.Term]++
				}
				if lum.Fired {
					lums[lum.Term]++
				}
				if keepEntries {
					rep.Entries = append(rep.Entries, Entry{
						Red:        r,
						Green:      g,
						Blue:       b,
						Hex:        c.Hex(),
						Color:      color.Term,
						Degree:     color.Degree,
						Luminosity: lum.Term,
						Brightness: c.Brightness(),
						LedCode:    c.LedCode(),
					})
				}
			}
		}
	}

	rep.ColorCounts = orderedCounts(colors, chroma.ColorTerms)
	rep.LuminosityCounts = orderedCounts(lums, chroma.LuminosityTerms)
	rep.Duration = time.Since(start)
	return rep, nil
}

// axis returns 0, step, 2*step, ... and always ends on the channel maximum.
func axis(step float64) []float64 {
	var out []float64
	for i := 0; ; i++ {
		v := float64(i) * step
		if v >= chroma.ChannelMax {
			break
		}
		out = append(out, v)
	}
	return append(out, chroma.ChannelMax)
}

// orderedCounts lists known labels in their declared order, then any others by name.
// Labels that never won are omitted.
func orderedCounts(counts map[string]int, known []string) []Count {
	out := make([]Count, 0, len(counts))
	seen := make(map[string]bool, len(known))
	for _, label := range known {
		seen[label] = true
		if n := counts[label]; n > 0 {
			out = append(out, Count{Label: label, Count: n})
		}
	}
	var extra []string
	for label := range counts {
		if !seen[label] {
			extra = append(extra, label)
		}
	}
	sort.Strings(extra)
	for _, label := range extra {
		out = append(out, Count{Label: label, Count: counts[label]})
	}
	return out
}

// Count returns how many grid points a label won, 0 when absent.
func (r *Report) Count(label string) int {
	for _, c := range append(append([]Count(nil), r.ColorCounts...), r.LuminosityCounts...) {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}

// FprintHistogram plots the distribution of a numeric field of the kept entries.
// field is "brightness" or "led_code".
func (r *Report) FprintHistogram(w io.Writer, field string, bins, width int) error {
	if len(r.Entries) == 0 {
		return fmt.Errorf("report %s has no entries to plot", r.ID)
	}
	data := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		switch field {
		case "brightness":
			data[i] = e.Brightness
		case "led_code":
			data[i] = e.LedCode
		default:
			return fmt.Errorf("unknown histogram field %q", field)
		}
	}
	hist := histogram.Hist(bins, data)
	return histogram.Fprint(w, hist, histogram.Linear(width))
}
