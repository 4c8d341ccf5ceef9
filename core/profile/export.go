package profile

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

var csvHeader = []string{"Name", "Email", "Status", "Referral Source", "Created At"}

// WriteCSV serializes profiles to CSV in input order: a header row, then
// one row per profile. Every field is wrapped in double quotes; embedded
// quotes are not escaped, matching what the dashboard has always exported.
func WriteCSV(w io.Writer, profiles []Profile) error {
	if err := writeCSVRow(w, csvHeader); err != nil {
		return errors.Wrap(err, "writing CSV header")
	}
	for _, p := range profiles {
		referral := "N/A"
		if p.ReferralSource.Valid && p.ReferralSource.String != "" {
			referral = p.ReferralSource.String
		}
		row := []string{
			p.FullName,
			p.Email,
			p.Metadata.CreditStatus(),
			referral,
			p.CreatedAt.Format("1/2/2006"),
		}
		if err := writeCSVRow(w, row); err != nil {
			return errors.Wrap(err, "writing CSV row")
		}
	}
	return nil
}

// CSV is WriteCSV into a string.
func CSV(profiles []Profile) string {
	var b strings.Builder
	_ = WriteCSV(&b, profiles) // strings.Builder never errors
	return b.String()
}

func writeCSVRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + f + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}
