package advisory

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/msabale-r7/openoffice-vc-plugin/shared"
)

func init() {
	// the anchored counterpart of the extraction pattern: "contains a CVE id"
	// is not enough for a record that names files after its identifier
	_ = shared.V.RegisterValidation("cveid", func(fl validator.FieldLevel) bool {
		return cveIDExactPattern.MatchString(fl.Field().String())
	})
}

// ValidationError marks a record that must not reach any rendered output.
type ValidationError struct {
	CVEID string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record %q: %v", e.CVEID, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateCVE checks a record before it is allowed downstream. Missing
// metadata is coerced to placeholders rather than rejected; a malformed
// identifier or an unparseable source URL rejects the whole record.
func ValidateCVE(record *CVE) error {
	if record.AffectedVersion == "" {
		record.AffectedVersion = "UNKNOWN"
	}
	if record.Description == "" {
		record.Description = "No description available"
	}

	if err := shared.V.Struct(record); err != nil {
		return &ValidationError{CVEID: record.CVEID, Err: err}
	}
	return nil
}
