// Package dexa models the DEXA scan and lab values a patient enters next to
// their CGM export, and prepares the form inputs that collect them.
package dexa
