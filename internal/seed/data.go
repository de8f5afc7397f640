package seed

import (
	"github.com/PetA199003/GBU-Management/internal/model"
	"github.com/PetA199003/GBU-Management/internal/risk"
)

type seedUser struct {
	Username  string
	Email     string
	Password  string
	Role      string
	FirstName string
	LastName  string
}

var defaultUsers = []seedUser{
	{"admin", "admin@gbu-app.de", "admin123", model.RoleAdmin, "System", "Administrator"},
	{"projektleiter", "projektleiter@gbu-app.de", "user123", model.RoleProjektleiter, "Max", "Mustermann"},
	{"mitarbeiter", "mitarbeiter@gbu-app.de", "user123", model.RoleUser, "Lisa", "Musterfrau"},
}

var defaultBereiche = []string{"Bühne", "Licht", "Ton", "Rigging", "Video", "Logistik"}

var defaultHazards = []model.Hazard{
	{Name: "Elektrische Gefährdung", Description: "Stromschlag durch defekte oder unsachgemäß verwendete Elektrogeräte",
		Category: model.HazardElektrik, DefaultLikelihood: 2, DefaultSeverity: 5, LegalRefs: []string{"DGUV Vorschrift 3", "VDE 0100"}},
	{Name: "Absturzgefahr", Description: "Sturz von erhöhten Arbeitsplätzen oder Bühnen",
		Category: model.HazardHoehe, DefaultLikelihood: 3, DefaultSeverity: 5, LegalRefs: []string{"DGUV Regel 112-198", "PSAgA"}},
	{Name: "Wetter und Unwetter", Description: "Gefährdung durch Wind, Regen und Blitz bei Outdoor-Veranstaltungen",
		Category: model.HazardWetter, DefaultLikelihood: 4, DefaultSeverity: 4, LegalRefs: []string{"DIN EN 13782"}},
	{Name: "Kohlenmonoxid-Vergiftung", Description: "CO-Vergiftung durch Generatoren oder Heizgeräte",
		Category: model.HazardChemisch, DefaultLikelihood: 2, DefaultSeverity: 5, LegalRefs: []string{"TRGS 900"}},
	{Name: "Fahrzeugverkehr", Description: "Gefährdung durch rangierende oder fahrende Fahrzeuge",
		Category: model.HazardVerkehr, DefaultLikelihood: 3, DefaultSeverity: 4, LegalRefs: []string{"StVO", "DGUV Regel 114-016"}},
	{Name: "Lärmbelastung", Description: "Gehörschädigung durch hohe Schallpegel",
		Category: model.HazardLaerm, DefaultLikelihood: 4, DefaultSeverity: 3, LegalRefs: []string{"LärmVibrationsArbSchV"}},
	{Name: "Brandgefahr", Description: "Brand durch elektrische Geräte, Pyrotechnik oder offenes Feuer",
		Category: model.HazardBrand, DefaultLikelihood: 2, DefaultSeverity: 5, LegalRefs: []string{"Versammlungsstättenverordnung"}},
	{Name: "Stolper- und Sturzgefahr", Description: "Verletzungen durch Kabel, unebenen Untergrund oder Hindernisse",
		Category: model.HazardMechanisch, DefaultLikelihood: 4, DefaultSeverity: 2, LegalRefs: []string{"DGUV Information 208-016"}},
}

var defaultMeasures = []model.ControlMeasure{
	{Name: "Prüfung durch Elektrofachkraft", Description: "Prüfung der elektrischen Anlagen durch Elektrofachkraft",
		Type: model.MeasureTechnisch, HazardCategory: model.HazardElektrik, Mandatory: true},
	{Name: "FI-Schutzschalter", Description: "Verwendung von FI-Schutzschaltern",
		Type: model.MeasureTechnisch, HazardCategory: model.HazardElektrik, Mandatory: true},
	{Name: "Unterweisung Elektrogeräte", Description: "Unterweisung im Umgang mit elektrischen Geräten",
		Type: model.MeasureOrganisatorisch, HazardCategory: model.HazardElektrik, Mandatory: true},
	{Name: "Absturzsicherungen", Description: "Absturzsicherungen wie Geländer und Netze",
		Type: model.MeasureTechnisch, HazardCategory: model.HazardHoehe, Mandatory: true},
	{Name: "PSA gegen Absturz", Description: "Persönliche Schutzausrüstung gegen Absturz",
		Type: model.MeasurePPE, HazardCategory: model.HazardHoehe, Mandatory: true},
	{Name: "Unterweisung Höhenarbeit", Description: "Unterweisung in Höhenarbeit",
		Type: model.MeasureOrganisatorisch, HazardCategory: model.HazardHoehe, Mandatory: true},
}

var defaultCriteria = []model.CriteriaCategory{
	{Key: "is_outdoor", Name: "Outdoor-Veranstaltung", Type: "boolean", Category: "location", Description: "Veranstaltung findet im Freien statt"},
	{Key: "has_electricity", Name: "Elektrische Anlagen vorhanden", Type: "boolean", Category: "project", Description: "Projekt verwendet elektrische Anlagen"},
	{Key: "has_generator", Name: "Generatoren/Notstromaggregate", Type: "boolean", Category: "project", Description: "Verwendung von Generatoren oder Notstromaggregaten"},
	{Key: "has_work_above_2m", Name: "Arbeiten über 2 m Höhe", Type: "boolean", Category: "project", Description: "Arbeiten mit Absturzgefahr"},
	{Key: "has_public_access", Name: "Publikumsverkehr", Type: "boolean", Category: "location", Description: "Bereiche sind für Besucher zugänglich"},
	{Key: "has_night_work", Name: "Nachtarbeit", Type: "boolean", Category: "project", Description: "Arbeiten bei Dunkelheit"},
	{Key: "has_traffic_area", Name: "Verkehrsbereich", Type: "boolean", Category: "location", Description: "Fahrzeugverkehr auf dem Gelände"},
	{Key: "has_hazardous_materials", Name: "Gefahrstoffe", Type: "boolean", Category: "project", Description: "Umgang mit Gefahrstoffen"},
}

var allSeasons = []risk.Season{risk.SeasonFruehling, risk.SeasonSommer, risk.SeasonHerbst, risk.SeasonWinter}

var defaultAssessments = []model.RiskAssessment{
	{Activity: "Elektrische Arbeiten", Process: "Installation und Wartung", Hazard: "Stromschlag",
		HazardFactors: "Defekte Kabel, Feuchtigkeit, unsachgemäße Handhabung",
		Severity:      5, Probability: 3, Technical: true, Organizational: true, Personal: true,
		Measures:      "FI-Schutzschalter, Prüfung durch Elektrofachkraft, isolierte Werkzeuge",
		SeverityAfter: 5, ProbabilityAfter: 1, Group: "Elektrik",
		AutoSelect: risk.Criteria{HasElectricity: true}},
	{Activity: "Arbeiten in der Höhe", Process: "Rigging und Montage", Hazard: "Absturz",
		HazardFactors: "Ungesicherte Arbeitsplätze, defekte Ausrüstung",
		Severity:      5, Probability: 3, Technical: true, Organizational: true, Personal: true,
		Measures:      "Absturzsicherung, PSA gegen Absturz, Unterweisung",
		SeverityAfter: 5, ProbabilityAfter: 1, Group: "Höhenarbeit",
		AutoSelect: risk.Criteria{HasWorkAbove2m: true}},
	{Activity: "Betrieb von Generatoren", Process: "Stromversorgung", Hazard: "Kohlenmonoxid, Brand",
		HazardFactors: "Abgase, Kraftstofflagerung, heiße Oberflächen",
		Severity:      5, Probability: 2, Technical: true, Organizational: true,
		Measures:      "Aufstellung im Freien mit Abstand, Feuerlöscher, Betankung nur im Stillstand",
		SeverityAfter: 5, ProbabilityAfter: 1, Group: "Generatoren",
		AutoSelect: risk.Criteria{HasGenerator: true}},
	{Activity: "Outdoor-Veranstaltung", Process: "Aufbau und Durchführung", Hazard: "Wettergefährdung",
		HazardFactors: "Wind, Regen, Blitz, Temperaturschwankungen",
		Severity:      4, Probability: 4, Technical: true, Organizational: true,
		Measures:      "Wetterüberwachung, Windlastberechnungen, Blitzschutz",
		SeverityAfter: 4, ProbabilityAfter: 2, Group: "Wetter",
		AutoSelect: risk.Criteria{IsOutdoor: true, Seasons: allSeasons}},
}
