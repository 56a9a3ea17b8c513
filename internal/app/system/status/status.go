// internal/app/system/status/status.go
//
// Package status holds the shared record-status values used by
// account and team documents.
package status

const (
	Active   = "active"
	Inactive = "inactive"
)

// IsValid reports whether s is a known record status.
func IsValid(s string) bool {
	return s == Active || s == Inactive
}
