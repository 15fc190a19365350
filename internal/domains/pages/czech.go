package pages

import (
	"fmt"
	"strings"
	"time"
)

var czechWeekdays = [7]string{
	"Neděle", "Pondělí", "Úterý", "Středa", "Čtvrtek", "Pátek", "Sobota",
}

var czechMonthsGenitive = [12]string{
	"ledna", "února", "března", "dubna", "května", "června",
	"července", "srpna", "září", "října", "listopadu", "prosince",
}

// FormatCzechDate renders a date the way the header shows it,
// e.g. "Pondělí 1. ledna 2024".
func FormatCzechDate(t time.Time) string {
	return fmt.Sprintf("%s %d. %s %d",
		czechWeekdays[t.Weekday()],
		t.Day(),
		czechMonthsGenitive[t.Month()-1],
		t.Year(),
	)
}

// Feb 29 in a non-leap year never happens on a real clock, but the
// table lookup must not panic if handed such a date.
const leapDayFallback = "Horymír"

// FormatNameDay renders the header name-day line for a date,
// e.g. "Svátek má Lukáš". State holidays carry their own full
// sentence in the table, marked with a leading underscore.
func FormatNameDay(t time.Time) string {
	name := nameDay(t)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "_") {
		return strings.TrimPrefix(name, "_")
	}
	return "Svátek má " + name
}

func nameDay(t time.Time) string {
	month := int(t.Month())
	day := t.Day()
	if month == 2 && day == 29 && !isLeapYear(t.Year()) {
		return leapDayFallback
	}
	days := nameDays[month-1]
	if day < 1 || day > len(days) {
		return ""
	}
	return days[day-1]
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Czech civil name-day calendar. Entries starting with "_" are state
// holidays rendered verbatim instead of the "Svátek má" form.
var nameDays = [12][]string{
	{ // leden
		"_je Nový rok, státní svátek", "Karina", "Radmila", "Diana", "Dalimil",
		"Tři králové", "Vilma", "Čestmír", "Vladan", "Břetislav",
		"Bohdana", "Pravoslav", "Edita", "Radovan", "Alice",
		"Ctirad", "Drahoslav", "Vladislav", "Doubravka", "Ilona",
		"Běla", "Slavomír", "Zdeněk", "Milena", "Miloš",
		"Zora", "Ingrid", "Otýlie", "Zdislava", "Robin", "Marika",
	},
	{ // únor
		"Hynek", "Nela", "Blažej", "Jarmila", "Dobromila",
		"Vanda", "Veronika", "Milada", "Apolena", "Mojmír",
		"Božena", "Slavěna", "Věnceslav", "Valentýn", "Jiřina",
		"Ljuba", "Miloslava", "Gizela", "Patrik", "Oldřich",
		"Lenka", "Petr", "Svatopluk", "Matěj", "Liliana",
		"Dorota", "Alexandr", "Lumír", "Horymír",
	},
	{ // březen
		"Bedřich", "Anežka", "Kamil", "Stela", "Kazimír",
		"Miroslav", "Tomáš", "Gabriela", "Františka", "Viktorie",
		"Anděla", "Řehoř", "Růžena", "Rút", "Ida",
		"Elena", "Vlastimil", "Eduard", "Josef", "Světlana",
		"Radek", "Leona", "Ivona", "Gabriel", "Marián",
		"Emanuel", "Dita", "Soňa", "Taťána", "Arnošt", "Kvido",
	},
	{ // duben
		"Hugo", "Erika", "Richard", "Ivana", "Miroslava",
		"Vendula", "Heřman", "Ema", "Dušan", "Darja",
		"Izabela", "Julius", "Aleš", "Vincenc", "Anastázie",
		"Irena", "Rudolf", "Valérie", "Rostislav", "Marcela",
		"Alexandra", "Evženie", "Vojtěch", "Jiří", "Marek",
		"Oto", "Jaroslav", "Vlastislav", "Robert", "Blahoslav",
	},
	{ // květen
		"_je Svátek práce", "Zikmund", "Alexej", "Květoslav", "Klaudie",
		"Radoslav", "Stanislav", "_je Den vítězství, státní svátek", "Ctibor", "Blažena",
		"Svatava", "Pankrác", "Servác", "Bonifác", "Žofie",
		"Přemysl", "Aneta", "Nataša", "Ivo", "Zbyšek",
		"Monika", "Emil", "Vladimír", "Jana", "Viola",
		"Filip", "Valdemar", "Vilém", "Maxmilián", "Ferdinand", "Kamila",
	},
	{ // červen
		"Laura", "Jarmil", "Tamara", "Dalibor", "Dobroslav",
		"Norbert", "Iveta", "Medard", "Stanislava", "Gita",
		"Bruno", "Antonie", "Antonín", "Roland", "Vít",
		"Zbyněk", "Adolf", "Milan", "Leoš", "Květa",
		"Alois", "Pavla", "Zdeňka", "Jan", "Ivan",
		"Adriana", "Ladislav", "Lubomír", "Petr a Pavel", "Šárka",
	},
	{ // červenec
		"Jaroslava", "Patricie", "Radomír", "Prokop",
		"_je Den slovanských věrozvěstů Cyrila a Metoděje, státní svátek",
		"_je Den upálení mistra Jana Husa, státní svátek",
		"Bohuslava", "Nora", "Drahoslava", "Libuše",
		"Olga", "Bořek", "Markéta", "Karolína", "Jindřich",
		"Luboš", "Martina", "Drahomíra", "Čeněk", "Ilja",
		"Vítězslav", "Magdaléna", "Libor", "Kristýna", "Jakub",
		"Anna", "Věroslav", "Viktor", "Marta", "Bořivoj", "Ignác",
	},
	{ // srpen
		"Oskar", "Gustav", "Miluše", "Dominik", "Kristián",
		"Oldřiška", "Lada", "Soběslav", "Roman", "Vavřinec",
		"Zuzana", "Klára", "Alena", "Alan", "Hana",
		"Jáchym", "Petra", "Helena", "Ludvík", "Bernard",
		"Johana", "Bohuslav", "Sandra", "Bartoloměj", "Radim",
		"Luděk", "Otakar", "Augustýn", "Evelína", "Vladěna", "Pavlína",
	},
	{ // září
		"Linda", "Adéla", "Bronislav", "Jindřiška", "Boris",
		"Boleslav", "Regína", "Mariana", "Daniela", "Irma",
		"Denisa", "Marie", "Lubor", "Radka", "Jolana",
		"Ludmila", "Naděžda", "Kryštof", "Zita", "Oleg",
		"Matouš", "Darina", "Berta", "Jaromír", "Zlata",
		"Andrea", "Jonáš", "Václav", "Michal", "Jeroným",
	},
	{ // říjen
		"Igor", "Olívie", "Bohumil", "František", "Eliška",
		"Hanuš", "Justýna", "Věra", "Štefan", "Marina",
		"Andrej", "Marcel", "Renáta", "Agáta", "Tereza",
		"Havel", "Hedvika", "Lukáš", "Michaela", "Vendelín",
		"Brigita", "Sabina", "Teodor", "Nina", "Beáta",
		"Erik", "Šarlota",
		"_je Den vzniku samostatného československého státu, státní svátek",
		"Silvie", "Tadeáš", "Štěpánka",
	},
	{ // listopad
		"Felix", "Památka zesnulých", "Hubert", "Karel", "Miriam",
		"Liběna", "Saskie", "Bohumír", "Bohdan", "Evžen",
		"Martin", "Benedikt", "Tibor", "Sáva", "Leopold",
		"Otmar", "Mahulena", "Romana", "Alžběta", "Nikola",
		"Albert", "Cecílie", "Klement", "Emílie", "Kateřina",
		"Artur", "Xenie", "René", "Zina", "Ondřej",
	},
	{ // prosinec
		"Iva", "Blanka", "Svatoslav", "Barbora", "Jitka",
		"Mikuláš", "Ambrož", "Květoslava", "Vratislav", "Julie",
		"Dana", "Simona", "Lucie", "Lýdie", "Radana",
		"Albína", "Daniel", "Miloslav", "Ester", "Dagmar",
		"Natálie", "Šimon", "Vlasta", "Adam a Eva",
		"_je 1. svátek vánoční, státní svátek",
		"Štěpán", "Žaneta", "Bohumila", "Judita", "David", "Silvestr",
	},
}
