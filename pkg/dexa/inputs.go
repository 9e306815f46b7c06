package dexa

import (
	"strconv"
	"time"

	"github.com/dmitrymomot/cgmportal/pkg/validator"
)

// Inputs are the lab values from a DEXA scan and the matching HbA1c draw.
// Zero values mean "not entered".
type Inputs struct {
	ScanDate     time.Time `form:"scan_date" json:"scan_date"`
	BodyFatPct   float64   `form:"body_fat_pct" json:"body_fat_pct"`
	LeanMassKg   float64   `form:"lean_mass_kg" json:"lean_mass_kg"`
	VisceralFatG float64   `form:"visceral_fat_g" json:"visceral_fat_g"`
	BoneTScore   float64   `form:"bone_t_score" json:"bone_t_score"`
	HbA1cPct     float64   `form:"hba1c_pct" json:"hba1c_pct"`
}

// IsZero reports whether nothing has been entered.
func (in Inputs) IsZero() bool {
	return in == Inputs{}
}

// Limits for each numeric input, inclusive.
var (
	BodyFatRange     = [2]float64{2, 70}
	LeanMassRange    = [2]float64{10, 150}
	VisceralFatRange = [2]float64{0, 5000}
	BoneTScoreRange  = [2]float64{-5, 5}
	HbA1cRange       = [2]float64{3, 20}
)

// Validate checks the entered values. Fields left at zero are skipped, except
// that a bone T-score of 0 is a real reading and always within range. The
// scan date must not be later than now.
func (in Inputs) Validate(now time.Time) error {
	var rules []validator.Rule

	if in.BodyFatPct != 0 {
		rules = append(rules, validator.Between(FieldBodyFat, in.BodyFatPct, BodyFatRange[0], BodyFatRange[1]))
	}
	if in.LeanMassKg != 0 {
		rules = append(rules, validator.Between(FieldLeanMass, in.LeanMassKg, LeanMassRange[0], LeanMassRange[1]))
	}
	rules = append(rules,
		validator.Between(FieldVisceralFat, in.VisceralFatG, VisceralFatRange[0], VisceralFatRange[1]),
		validator.Between(FieldBoneTScore, in.BoneTScore, BoneTScoreRange[0], BoneTScoreRange[1]),
	)
	if in.HbA1cPct != 0 {
		rules = append(rules, validator.Between(FieldHbA1c, in.HbA1cPct, HbA1cRange[0], HbA1cRange[1]))
	}
	rules = append(rules, validator.NotAfter(FieldScanDate, in.ScanDate, now))

	return validator.Apply(rules...)
}

func formatValue(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
