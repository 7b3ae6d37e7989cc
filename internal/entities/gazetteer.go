package entities

var honorifics = map[string]struct{}{
	"Mr.": {}, "Mrs.": {}, "Ms.": {}, "Dr.": {}, "Prof.": {}, "Mr": {}, "Mrs": {}, "Ms": {}, "Dr": {},
	"Judge": {}, "Justice": {}, "Senator": {}, "President": {}, "Governor": {}, "Attorney": {},
}

var orgSuffixes = map[string]struct{}{
	"Inc.": {}, "Inc": {}, "LLC": {}, "L.L.C.": {}, "Ltd.": {}, "Ltd": {}, "Corp.": {}, "Corp": {},
	"Corporation": {}, "Company": {}, "Co.": {}, "LLP": {}, "PLC": {}, "GmbH": {}, "AG": {}, "S.A.": {},
	"Bank": {}, "University": {}, "College": {}, "Court": {}, "Council": {}, "Department": {},
	"Agency": {}, "Association": {}, "Foundation": {}, "Group": {}, "Partners": {}, "Commission": {},
	"Committee": {}, "Ministry": {}, "Authority": {}, "Institute": {}, "Board": {}, "Trust": {},
	"Holdings": {}, "Industries": {}, "Bureau": {}, "Office": {}, "Service": {}, "Services": {},
}

var lawSuffixes = map[string]struct{}{
	"Act": {}, "Code": {}, "Regulation": {}, "Directive": {}, "Treaty": {}, "Convention": {},
	"Constitution": {}, "Amendment": {}, "Statute": {},
}

var facilitySuffixes = map[string]struct{}{
	"Street": {}, "St.": {}, "Avenue": {}, "Ave.": {}, "Road": {}, "Rd.": {}, "Boulevard": {},
	"Lane": {}, "Drive": {}, "Square": {}, "Bridge": {}, "Airport": {}, "Building": {}, "Tower": {},
}

var places = map[string]struct{}{
	"U.S.": {}, "US": {}, "USA": {}, "U.S.A.": {}, "UK": {}, "U.K.": {}, "United States": {},
	"United Kingdom": {}, "America": {}, "Canada": {}, "Mexico": {}, "Brazil": {}, "Argentina": {},
	"France": {}, "Germany": {}, "Spain": {}, "Italy": {}, "Portugal": {}, "Ireland": {},
	"Netherlands": {}, "Belgium": {}, "Switzerland": {}, "Austria": {}, "Poland": {}, "Sweden": {},
	"Norway": {}, "Denmark": {}, "Finland": {}, "Russia": {}, "Ukraine": {}, "China": {}, "Japan": {},
	"India": {}, "Pakistan": {}, "Australia": {}, "New Zealand": {}, "South Africa": {}, "Nigeria": {},
	"Egypt": {}, "Israel": {}, "Turkey": {}, "Singapore": {}, "Korea": {}, "South Korea": {},
	"California": {}, "Texas": {}, "Florida": {}, "New York": {}, "Delaware": {}, "Illinois": {},
	"Washington": {}, "Massachusetts": {}, "Ohio": {}, "Georgia": {}, "Virginia": {}, "Nevada": {},
	"London": {}, "Paris": {}, "Berlin": {}, "Madrid": {}, "Rome": {}, "Tokyo": {}, "Beijing": {},
	"Chicago": {}, "Boston": {}, "Los Angeles": {}, "San Francisco": {}, "Seattle": {},
	"Toronto": {}, "Sydney": {}, "Dublin": {}, "Brussels": {}, "Geneva": {}, "Delhi": {},
	"New Delhi": {}, "Mumbai": {}, "Europe": {}, "Asia": {}, "Africa": {},
}

var calendarWords = map[string]struct{}{
	"January": {}, "February": {}, "March": {}, "April": {}, "May": {}, "June": {}, "July": {},
	"August": {}, "September": {}, "October": {}, "November": {}, "December": {},
	"Monday": {}, "Tuesday": {}, "Wednesday": {}, "Thursday": {}, "Friday": {}, "Saturday": {},
	"Sunday": {},
}

var connectors = map[string]struct{}{
	"of": {}, "and": {}, "&": {}, "the": {}, "for": {}, "de": {}, "del": {}, "van": {}, "von": {},
	"la": {}, "du": {},
}

// Abbreviations that keep their trailing period inside a span.
var keepPeriod = map[string]struct{}{
	"Inc.": {}, "Ltd.": {}, "Corp.": {}, "Co.": {}, "Jr.": {}, "Sr.": {}, "St.": {}, "Ave.": {},
	"Rd.": {}, "Mr.": {}, "Mrs.": {}, "Ms.": {}, "Dr.": {}, "Prof.": {}, "U.S.": {}, "U.K.": {},
	"U.S.A.": {}, "L.L.C.": {}, "S.A.": {},
}

func in(set map[string]struct{}, word string) bool {
	_, ok := set[word]
	return ok
}

// Capitalised only because they open a sentence.
var sentenceOpeners = map[string]struct{}{
	"a": {}, "an": {}, "all": {}, "after": {}, "although": {}, "and": {}, "any": {}, "as": {},
	"at": {}, "before": {}, "both": {}, "but": {}, "by": {}, "each": {}, "either": {}, "for": {},
	"following": {}, "from": {}, "he": {}, "her": {}, "his": {}, "i": {}, "if": {}, "in": {}, "it": {},
	"its": {}, "neither": {}, "no": {}, "notwithstanding": {}, "on": {}, "our": {}, "pursuant": {},
	"she": {}, "since": {}, "that": {}, "their": {}, "these": {}, "they": {}, "this": {}, "those": {},
	"to": {}, "today": {}, "under": {}, "upon": {}, "we": {}, "when": {}, "where": {}, "while": {},
	"with": {}, "yesterday": {}, "your": {},
}
