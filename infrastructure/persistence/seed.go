package persistence

import "github.com/campuslogs/crimelog/domain/incident"

// CanonicalCampuses returns the 23 Penn State campuses that publish daily
// crime logs, keyed by the codes their incident numbers carry. Alternate
// codes that appear in the wild (HN, ER, BKT, ...) are deliberately absent:
// those rows are created by resolution drift and removed by reconciliation.
func CanonicalCampuses() []incident.Campus {
	return []incident.Campus{
		incident.NewCampus("UP", "University Park", "University Park", "PA"),
		incident.NewCampus("AB", "Abington", "Abington", "PA"),
		incident.NewCampus("AL", "Altoona", "Altoona", "PA"),
		incident.NewCampus("BK", "Beaver", "Monaca", "PA"),
		incident.NewCampus("BE", "Erie (Behrend)", "Erie", "PA"),
		incident.NewCampus("BR", "Berks", "Reading", "PA"),
		incident.NewCampus("BW", "Brandywine", "Media", "PA"),
		incident.NewCampus("DL", "Dickinson Law", "Carlisle", "PA"),
		incident.NewCampus("DB", "DuBois", "DuBois", "PA"),
		incident.NewCampus("FA", "Fayette", "Lemont Furnace", "PA"),
		incident.NewCampus("GA", "Greater Allegheny", "McKeesport", "PA"),
		incident.NewCampus("GV", "Great Valley", "Malvern", "PA"),
		incident.NewCampus("HB", "Harrisburg", "Middletown", "PA"),
		incident.NewCampus("HZ", "Hazleton", "Hazleton", "PA"),
		incident.NewCampus("HS", "Hershey", "Hershey", "PA"),
		incident.NewCampus("LV", "Lehigh Valley", "Center Valley", "PA"),
		incident.NewCampus("MA", "Mont Alto", "Mont Alto", "PA"),
		incident.NewCampus("NK", "New Kensington", "New Kensington", "PA"),
		incident.NewCampus("SK", "Schuylkill", "Schuylkill Haven", "PA"),
		incident.NewCampus("SH", "Shenango", "Sharon", "PA"),
		incident.NewCampus("WB", "Wilkes-Barre", "Lehman", "PA"),
		incident.NewCampus("WS", "Worthington Scranton", "Dunmore", "PA"),
		incident.NewCampus("YK", "York", "York", "PA"),
	}
}

// CampusPageFilters maps the page filter values the source site accepts to
// campus display names. Fetching iterates this set when no campus filter is
// given.
func CampusPageFilters() map[string]string {
	return map[string]string{
		"Univ Park":     "University Park",
		"Abington":      "Abington",
		"Altoona":       "Altoona",
		"Beaver":        "Beaver",
		"Behrend":       "Erie (Behrend)",
		"Berks":         "Berks",
		"Brandywine":    "Brandywine",
		"Dickinson Law": "Dickinson Law",
		"DuBois":        "DuBois",
		"Fayette":       "Fayette",
		"Grtr Algny":    "Greater Allegheny",
		"Grt Valley":    "Great Valley",
		"Harrisburg":    "Harrisburg",
		"Hazleton":      "Hazleton",
		"Hershey":       "Hershey",
		"Lehigh Val":    "Lehigh Valley",
		"Mont Alto":     "Mont Alto",
		"New Ken":       "New Kensington",
		"Schuylkill":    "Schuylkill",
		"Shenango":      "Shenango",
		"Wlks-Barre":    "Wilkes-Barre",
		"Wrthn Scrn":    "Worthington Scranton",
		"York":          "York",
	}
}

// CampusNameToCode maps canonical campus display names back to their codes,
// used when an incident number carries no recognizable code prefix.
func CampusNameToCode() map[string]string {
	byName := make(map[string]string)
	for _, c := range CanonicalCampuses() {
		byName[c.Name()] = c.Code()
	}
	return byName
}
