package locale

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// CurrencySymbol prefixes displayed donation amounts.
const CurrencySymbol = "₹"

// Message keys double as the English text.
const (
	MsgMinimumDonation = "Minimum donation is %d"
	MsgUnknownPreset   = "Preset %d is not available"
	MsgNoDonations     = "No donations yet. Be the first donor"
	MsgInvalidPayload  = "Invalid payload"
	MsgNotFound        = "Donation not found"
	MsgSubmitFailed    = "Could not record the donation, please try again"
	MsgSubmitted       = "Thank you! Donation %s is pending approval"
)

var supported = []language.Tag{language.English, language.Indonesian}

var (
	matcher = language.NewMatcher(supported)
	builder = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	id := map[string]string{
		MsgMinimumDonation: "Donasi minimal %d",
		MsgUnknownPreset:   "Nominal %d tidak tersedia",
		MsgNoDonations:     "Belum ada donasi. Jadilah donatur pertama",
		MsgInvalidPayload:  "Data tidak valid",
		MsgNotFound:        "Donasi tidak ditemukan",
		MsgSubmitFailed:    "Donasi gagal dicatat, silakan coba lagi",
		MsgSubmitted:       "Terima kasih! Donasi %s menunggu persetujuan",
	}
	for key, text := range id {
		_ = b.SetString(language.Indonesian, key, text)
		_ = b.SetString(language.English, key, key)
	}
	return b
}

// Tag resolves a locale string such as "id" or "en-US" to a supported tag.
func Tag(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return language.English
	}
	tag, _, _ := matcher.Match(language.Make(locale))
	base, _ := tag.Base()
	if base.String() == "id" {
		return language.Indonesian
	}
	return language.English
}

// Printer returns a message printer for locale backed by the donation catalog.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(Tag(locale), message.Catalog(builder))
}

// Sprintf formats a catalog message for locale.
func Sprintf(locale, key string, args ...any) string {
	return Printer(locale).Sprintf(key, args...)
}

// FormatAmount renders an amount with the currency symbol and the locale's
// digit grouping, e.g. "₹1,000" in English and "₹1.000" in Indonesian.
func FormatAmount(locale string, amount int64) string {
	return CurrencySymbol + Printer(locale).Sprint(number.Decimal(amount))
}
