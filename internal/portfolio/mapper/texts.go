package mapper

import (
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
)

// SiteTexts maps a key/value tab to copy overrides. Header lookup goes
// through sheets.NormalizeHeader, but keys themselves keep their spelling
// (homeButtonText stays camel case). A blank value cell leaves the default
// in place.
func SiteTexts(rows []sheets.Row, report *Report) map[string]string {
	out := make(map[string]string, len(rows))
	for i, row := range rows {
		if isHidden(row["hidden"]) {
			report.drop(i, ReasonHidden)
			continue
		}
		key := row.Get("key", "slot", "name")
		if key == "" {
			report.drop(i, ReasonMissingKey)
			continue
		}
		if v := row.Get("value", "text"); v != "" {
			out[key] = v
		}
		report.keep()
	}
	return out
}

// ResolveSiteTexts layers sheet overrides over the compiled-in defaults.
func ResolveSiteTexts(rows []sheets.Row, report *Report) domain.SiteTexts {
	return domain.Merge(domain.DefaultSiteTexts(), SiteTexts(rows, report))
}
