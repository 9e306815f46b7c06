package targets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Metric names a computed CGM statistic.
type Metric string

const (
	AvgGlucose Metric = "avgGlucose"
	CV         Metric = "cv"
	TIR        Metric = "tir"
	Fasting    Metric = "fasting"
)

// Tier is the result of classifying a value.
type Tier string

const (
	Excellent Tier = "excellent"
	Good      Tier = "good"
	Fair      Tier = "fair"
	Poor      Tier = "poor"
)

// Bands lists the explicit tiers from best to worst.
var Bands = []Tier{Excellent, Good, Fair}

// Range is an inclusive [Low, High] interval.
type Range struct {
	Low  float64
	High float64
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

func (r Range) String() string {
	return formatNumber(r.Low) + "–" + formatNumber(r.High)
}

func (r Range) validate() error {
	if r.Low > r.High {
		return fmt.Errorf("%w: low %v is above high %v", ErrInvalidRange, r.Low, r.High)
	}
	return nil
}

// MarshalJSON encodes the range as a two element array.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Low, r.High})
}

// Target is the band set for one metric.
type Target struct {
	Metric    Metric
	Label     string
	Unit      string
	Excellent Range
	Good      Range
	Fair      Range
}

// Band returns the range for tier. Poor and unknown tiers have none.
func (t Target) Band(tier Tier) (Range, bool) {
	switch tier {
	case Excellent:
		return t.Excellent, true
	case Good:
		return t.Good, true
	case Fair:
		return t.Fair, true
	default:
		return Range{}, false
	}
}

// Classify returns the best band containing v, or Poor.
func (t Target) Classify(v float64) Tier {
	for _, tier := range Bands {
		if r, _ := t.Band(tier); r.Contains(v) {
			return tier
		}
	}
	return Poor
}

// DisplayName returns the label, deriving one from the metric name when unset.
func (t Target) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return humanize(string(t.Metric))
}

// Table is an ordered set of targets.
type Table struct {
	targets []Target
	index   map[Metric]int
}

// NewTable builds a table, rejecting duplicate metrics and inverted ranges.
func NewTable(targets ...Target) (*Table, error) {
	t := &Table{
		targets: make([]Target, 0, len(targets)),
		index:   make(map[Metric]int, len(targets)),
	}
	for _, target := range targets {
		if target.Metric == "" {
			return nil, fmt.Errorf("%w: empty metric name", ErrInvalidTable)
		}
		if _, dup := t.index[target.Metric]; dup {
			return nil, fmt.Errorf("%w: duplicate metric %q", ErrInvalidTable, target.Metric)
		}
		for _, tier := range Bands {
			r, _ := target.Band(tier)
			if err := r.validate(); err != nil {
				return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidTable, target.Metric, tier, err)
			}
		}
		t.index[target.Metric] = len(t.targets)
		t.targets = append(t.targets, target)
	}
	return t, nil
}

// Targets returns the targets in table order.
func (t *Table) Targets() []Target {
	out := make([]Target, len(t.targets))
	copy(out, t.targets)
	return out
}

// Metrics returns the metric names in table order.
func (t *Table) Metrics() []Metric {
	out := make([]Metric, len(t.targets))
	for i, target := range t.targets {
		out[i] = target.Metric
	}
	return out
}

// Lookup returns the target for metric.
func (t *Table) Lookup(metric Metric) (Target, error) {
	i, ok := t.index[metric]
	if !ok {
		return Target{}, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
	return t.targets[i], nil
}

// Classify maps a metric value to its tier.
func (t *Table) Classify(metric Metric, value float64) (Tier, error) {
	target, err := t.Lookup(metric)
	if err != nil {
		return "", err
	}
	return target.Classify(value), nil
}

type targetJSON struct {
	Label     string `json:"label"`
	Unit      string `json:"unit"`
	Excellent Range  `json:"excellent"`
	Good      Range  `json:"good"`
	Fair      Range  `json:"fair"`
}

// MarshalJSON encodes the table as an object keyed by metric, in table order.
func (t *Table) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, target := range t.targets {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(string(target.Metric))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(targetJSON{
			Label:     target.DisplayName(),
			Unit:      target.Unit,
			Excellent: target.Excellent,
			Good:      target.Good,
			Fair:      target.Fair,
		})
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

var titleCaser = cases.Title(language.English)

// humanize turns "avgGlucose" into "Avg Glucose".
func humanize(name string) string {
	var words []string
	start := 0
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, name[start:i])
			start = i
		}
	}
	words = append(words, name[start:])
	return titleCaser.String(strings.Join(words, " "))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
