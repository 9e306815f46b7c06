// Package validator provides small, composable validation rules.
//
// A Rule pairs a check with the ValidationError it reports. Apply runs rules
// in order and returns every failure as ValidationErrors, which keeps the
// field name next to a human-readable message so handlers can show the first
// problem to the user:
//
//	err := validator.Apply(
//		validator.Between("body_fat_pct", in.BodyFatPct, 2, 70),
//		validator.NotAfter("scan_date", in.ScanDate, now),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		msg := errs.First().Message
//	}
package validator
