package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCVEIDs(t *testing.T) {
	t.Run("single identifier", func(t *testing.T) {
		assert.Equal(t, []string{"CVE-2021-9999"}, ExtractCVEIDs("CVE-2021-9999 buffer overflow"))
	})

	t.Run("multiple identifiers keep document order", func(t *testing.T) {
		got := ExtractCVEIDs("CVE-2020-13958 / CVE-2019-9853 fixed together")
		assert.Equal(t, []string{"CVE-2020-13958", "CVE-2019-9853"}, got)
	})

	t.Run("duplicates preserved", func(t *testing.T) {
		got := ExtractCVEIDs("CVE-2020-1 mentioned twice: CVE-2020-1")
		assert.Equal(t, []string{"CVE-2020-1", "CVE-2020-1"}, got)
	})

	t.Run("no identifiers", func(t *testing.T) {
		assert.Empty(t, ExtractCVEIDs("nothing to see here"))
		assert.Empty(t, ExtractCVEIDs(""))
	})

	t.Run("near misses", func(t *testing.T) {
		assert.Empty(t, ExtractCVEIDs("cve-2020-1234"))
		assert.Empty(t, ExtractCVEIDs("CVE-20-1234"))
		assert.Empty(t, ExtractCVEIDs("CVE-2020-"))
	})

	t.Run("identifier embedded in longer token", func(t *testing.T) {
		// the year must be exactly four digits, the suffix at least one
		assert.Equal(t, []string{"CVE-2020-13958"}, ExtractCVEIDs("see CVE-2020-13958."))
	})
}
