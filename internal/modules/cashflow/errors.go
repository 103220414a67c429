package cashflow

import "fmt"

// ValidationError reports malformed period or date inputs. Structural
// errors fail fast: no periods are generated and no partial projection is
// returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports missing or contradictory lease, expense or
// escalation parameters. Unresolvable escalation surfaces here rather
// than as a silent zero rent.
type ConfigurationError struct {
	Subject string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %v", e.Subject, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DuplicateLeaseConflict reports two leases occupying the same unit in
// overlapping date ranges.
type DuplicateLeaseConflict struct {
	UnitID  string
	TenantA string
	TenantB string
}

func (e *DuplicateLeaseConflict) Error() string {
	return fmt.Sprintf("unit %s has overlapping leases for %q and %q", e.UnitID, e.TenantA, e.TenantB)
}
