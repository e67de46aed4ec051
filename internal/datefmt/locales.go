package datefmt

import "golang.org/x/text/language"

type localeNames struct {
	weekdaysShort [7]string
	weekdaysLong  [7]string
	monthsShort   [12]string
	monthsLong    [12]string
	compose       func(p dateParts) string
}

// supported is ordered to line up with locales; the first entry is the
// fallback.
var supported = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

var locales = []*localeNames{english, german, french, spanish}

var english = &localeNames{
	weekdaysShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	weekdaysLong:  [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	monthsShort:   [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	monthsLong: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	// Mon, January 2, 2006 / 1/2/2006
	compose: func(p dateParts) string {
		if p.numeric {
			return prefix(p.weekday, ", ", join("/", p.month, p.day, p.year))
		}
		sep := ", "
		if p.day == "" {
			sep = " "
		}
		return prefix(p.weekday, ", ", join(sep, join(" ", p.month, p.day), p.year))
	},
}

var german = &localeNames{
	weekdaysShort: [7]string{"So.", "Mo.", "Di.", "Mi.", "Do.", "Fr.", "Sa."},
	weekdaysLong:  [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
	monthsShort:   [12]string{"Jan.", "Feb.", "März", "Apr.", "Mai", "Juni", "Juli", "Aug.", "Sept.", "Okt.", "Nov.", "Dez."},
	monthsLong: [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
	// Mo., 2. Januar 2006 / 2.1.2006
	compose: func(p dateParts) string {
		if p.numeric {
			return prefix(p.weekday, ", ", join(".", p.day, p.month, p.year))
		}
		day := p.day
		if day != "" {
			day += "."
		}
		return prefix(p.weekday, ", ", join(" ", day, p.month, p.year))
	},
}

var french = &localeNames{
	weekdaysShort: [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
	weekdaysLong:  [7]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	monthsShort:   [12]string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
	monthsLong: [12]string{"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	// lun. 2 janvier 2006 / 2/1/2006
	compose: func(p dateParts) string {
		if p.numeric {
			return prefix(p.weekday, " ", join("/", p.day, p.month, p.year))
		}
		return prefix(p.weekday, " ", join(" ", p.day, p.month, p.year))
	},
}

var spanish = &localeNames{
	weekdaysShort: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	weekdaysLong:  [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	monthsShort:   [12]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
	monthsLong: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	// lun, 2 de enero de 2006 / 2/1/2006
	compose: func(p dateParts) string {
		if p.numeric {
			return prefix(p.weekday, ", ", join("/", p.day, p.month, p.year))
		}
		return prefix(p.weekday, ", ", join(" de ", p.day, p.month, p.year))
	},
}
