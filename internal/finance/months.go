package finance

var monthShort = [13]string{"",
	"Gen", "Feb", "Mar", "Apr", "Mag", "Giu",
	"Lug", "Ago", "Set", "Ott", "Nov", "Dic",
}

var monthLong = [13]string{"",
	"Gennaio", "Febbraio", "Marzo", "Aprile", "Maggio", "Giugno",
	"Luglio", "Agosto", "Settembre", "Ottobre", "Novembre", "Dicembre",
}

// MonthShort returns the three-letter Italian month abbreviation, or an
// empty string for an out-of-range month.
func MonthShort(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthShort[month]
}

// MonthName returns the full Italian month name, or an empty string for an
// out-of-range month.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthLong[month]
}
