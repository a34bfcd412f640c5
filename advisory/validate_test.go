package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() CVE {
	return CVE{
		CVEID:           "CVE-2021-33035",
		AffectedVersion: "4.1.8",
		Description:     "Buffer overflow in dmapper.",
		SourceURL:       "https://www.openoffice.org/security/cves/CVE-2021-33035.html",
	}
}

func TestValidateCVE(t *testing.T) {
	t.Run("well formed record passes", func(t *testing.T) {
		record := validRecord()
		assert.NoError(t, ValidateCVE(&record))
	})

	t.Run("malformed identifiers are rejected", func(t *testing.T) {
		for _, cveID := range []string{"", "CVE-20-1", "cve-2020-1", "CVE-2020-", "CVE-2020-1 trailing", "prefix CVE-2020-1"} {
			record := validRecord()
			record.CVEID = cveID

			err := ValidateCVE(&record)
			require.Error(t, err, "identifier %q must be rejected", cveID)

			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		}
	})

	t.Run("missing metadata is coerced, not rejected", func(t *testing.T) {
		record := validRecord()
		record.AffectedVersion = ""
		record.Description = ""

		require.NoError(t, ValidateCVE(&record))
		assert.Equal(t, "UNKNOWN", record.AffectedVersion)
		assert.Equal(t, "No description available", record.Description)
	})

	t.Run("empty source url is tolerated", func(t *testing.T) {
		record := validRecord()
		record.SourceURL = ""
		assert.NoError(t, ValidateCVE(&record))
	})

	t.Run("unparseable source url rejects the whole record", func(t *testing.T) {
		record := validRecord()
		record.SourceURL = "not a url"
		assert.Error(t, ValidateCVE(&record))
	})
}
