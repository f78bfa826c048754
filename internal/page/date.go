package page

import (
	"github.com/goodsign/monday"

	"github.com/mithrel/blogtech/internal/util"
)

// DefaultDateLayout renders "05 de março de 2024" under the pt_BR locale.
const DefaultDateLayout = "02 de January de 2006"

// DefaultLocale is the locale used for month names.
const DefaultLocale = "pt_BR"

// FormatDate renders an ISO date as a localized long-form date. Values that
// cannot be parsed are returned unchanged.
func FormatDate(iso, layout, locale string) string {
	if iso == "" {
		return ""
	}
	t, err := util.ParseDate(iso)
	if err != nil {
		return iso
	}
	return monday.Format(t, layout, monday.Locale(locale))
}

// KnownLocale reports whether monday ships month names for locale.
func KnownLocale(locale string) bool {
	for _, l := range monday.ListLocales() {
		if string(l) == locale {
			return true
		}
	}
	return false
}
