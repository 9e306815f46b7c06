package dexa

import (
	"strconv"
	"time"
)

// Form field names.
const (
	FieldScanDate    = "scan_date"
	FieldBodyFat     = "body_fat_pct"
	FieldLeanMass    = "lean_mass_kg"
	FieldVisceralFat = "visceral_fat_g"
	FieldBoneTScore  = "bone_t_score"
	FieldHbA1c       = "hba1c_pct"
)

// Field describes one input element of the lab form.
type Field struct {
	Name  string
	Label string
	Type  string
	Unit  string
	Min   string
	Max   string
	Step  string
	Value string
	Error string
}

// Initialize builds the lab form inputs, prefilled from in. Errors are keyed
// by field name and copied onto the matching input.
func Initialize(in Inputs, now time.Time, errs map[string]string) []Field {
	fields := []Field{
		{
			Name:  FieldScanDate,
			Label: "Scan date",
			Type:  "date",
			Max:   now.Format(time.DateOnly),
			Value: formatDate(in.ScanDate),
		},
		numberField(FieldBodyFat, "Body fat", "%", BodyFatRange, "0.1", in.BodyFatPct),
		numberField(FieldLeanMass, "Lean mass", "kg", LeanMassRange, "0.1", in.LeanMassKg),
		numberField(FieldVisceralFat, "Visceral fat", "g", VisceralFatRange, "1", in.VisceralFatG),
		numberField(FieldBoneTScore, "Bone density T-score", "", BoneTScoreRange, "0.1", in.BoneTScore),
		numberField(FieldHbA1c, "HbA1c", "%", HbA1cRange, "0.1", in.HbA1cPct),
	}
	for i := range fields {
		fields[i].Error = errs[fields[i].Name]
	}
	return fields
}

func numberField(name, label, unit string, limits [2]float64, step string, value float64) Field {
	return Field{
		Name:  name,
		Label: label,
		Type:  "number",
		Unit:  unit,
		Min:   strconv.FormatFloat(limits[0], 'f', -1, 64),
		Max:   strconv.FormatFloat(limits[1], 'f', -1, 64),
		Step:  step,
		Value: formatValue(value),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
