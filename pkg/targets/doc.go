// Package targets holds the glucose target range table and classifies
// computed CGM statistics against it.
//
// Each metric carries a unit and three inclusive bands, checked from best to
// worst: excellent, good and fair. A value outside every band falls into the
// implicit poor tier.
//
//	table := targets.Default()
//	tier, err := table.Classify(targets.AvgGlucose, 128)
//	// tier == targets.Good
//
// Tables are YAML documents keyed by metric name, in display order:
//
//	avgGlucose:
//	  label: Average glucose
//	  unit: mg/dL
//	  excellent: [70, 117]
//	  good: [70, 140]
//	  fair: [70, 154]
//
// The JSON form served to the browser keeps the same shape.
package targets
