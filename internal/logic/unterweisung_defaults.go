package logic

import "github.com/PetA199003/GBU-Management/internal/model"

// 默认安全交底内容
const (
	defaultUnterweisungTitle = "Regeln für Arbeiten bei Produktionen und Veranstaltungen"

	defaultOrganisation = "• Verantwortlich bei Produktionen ist der Technische Leiter\n" +
		"• Verantwortlich für Einzelgewerke ist der Gewerkeleiter / Bereichsleiter\n" +
		"• Den Anweisungen des Verantwortlichen ist Folge zu leisten\n" +
		"• Die Sicherheitskennzeichnungen sind zu beachten\n" +
		"• Die Kommunikationskette ist einzuhalten"

	defaultAllgemeineHinweise = "• Alle Arbeitsanweisungen müssen eingehalten werden\n" +
		"• Bei Unklarheiten zu einer Aufgabe unbedingt nachfragen\n" +
		"• Anweisungen zu unsicheren Arbeiten müssen nicht befolgt werden!\n" +
		"• Alle Arbeiten sind sicher auszuführen!\n" +
		"• Achtet auf Euch und Andere!\n" +
		"• Die rechtlichen Bestimmungen sind einzuhalten\n" +
		"• Die Arbeitsschutzvorschriften und Gefährdungsbeurteilungen sind im Produktionsbüro einsehbar\n" +
		"• Alle Beschäftigten haben das Recht und die Pflicht, Probleme, Schwachstellen und unnötige Belastungen " +
		"im Arbeitsablauf anzusprechen und gemeinsam nach Verbesserungsmöglichkeiten zu suchen\n" +
		"• Alkohol, Drogen oder andere berauschende Mittel sind vor und während der Arbeit verboten\n" +
		"• Das Rauchen ist ausschließlich an den dafür vorgesehenen Orten gestattet"

	defaultNotfaelleRaeumung = "• Alle Verkehrswege, z.B. Türen und Tore müssen freigehalten werden\n" +
		"• Flucht- und Rettungswege, bzw. Notausgänge oder Feuerlöscheinrichtungen dürfen nicht verstellt werden\n" +
		"• Bei Unfällen ist sofort Hilfe zu leisten, Ersthelfer/Sanitäter herbei zu holen! " +
		"Notfallalarmierung durchführen! (CH 144/EU 112)\n" +
		"• Notrufnummern sind anzuwenden\n" +
		"• Unfälle und Beinahe-Unfälle müssen sofort dem direkten Ansprechpartner gemeldet werden\n" +
		"• Brände sind sofort zu melden (CH 118/EU 112) und mit den Feuerlöscheinrichtungen zu bekämpfen\n" +
		"• Bei einer notwendigen Räumung ist hilflosen und Personen mit Beeinträchtigung zu helfen\n" +
		"• Alle Mitarbeiter sammeln sich, im Falle einer Räumung, ausschließlich an der Sammelstelle, " +
		"welche bei Arbeitsbeginn vom Verantwortlichen bekanntgegeben wurde"
)

// 条目所属段落
const (
	SectionAllgemeineHinweise = "allgemeine_hinweise"
	SectionNotfaelle          = "notfaelle"
)

// defaultUnterweisungItems 带图标的标准条目
func defaultUnterweisungItems() []model.UnterweisungItem {
	return []model.UnterweisungItem{
		{Section: SectionAllgemeineHinweise, IconType: "info", SortOrder: 1,
			Content: "Alle Arbeitsanweisungen müssen eingehalten werden"},
		{Section: SectionAllgemeineHinweise, IconType: "info", SortOrder: 2,
			Content: "Bei Unklarheiten zu einer Aufgabe unbedingt nachfragen"},
		{Section: SectionAllgemeineHinweise, IconType: "prohibited", SortOrder: 3,
			Content: "Alkohol, Drogen oder andere berauschende Mittel sind vor und während der Arbeit verboten"},
		{Section: SectionAllgemeineHinweise, IconType: "no_smoking", SortOrder: 4,
			Content: "Das Rauchen ist ausschließlich an den dafür vorgesehenen Orten gestattet"},
		{Section: SectionNotfaelle, IconType: "no_blocking", SortOrder: 1,
			Content: "Alle Verkehrswege, z.B. Türen und Tore müssen freigehalten werden"},
		{Section: SectionNotfaelle, IconType: "phone", SortOrder: 2,
			Content: "Bei Unfällen ist sofort Hilfe zu leisten, Ersthelfer/Sanitäter herbei zu holen!"},
		{Section: SectionNotfaelle, IconType: "fire", SortOrder: 3,
			Content: "Brände sind sofort zu melden (CH 118/EU 112)"},
		{Section: SectionNotfaelle, IconType: "exit", SortOrder: 4,
			Content: "Bei einer notwendigen Räumung ist hilflosen und Personen mit Beeinträchtigung zu helfen"},
		{Section: SectionNotfaelle, IconType: "assembly", SortOrder: 5,
			Content: "Alle Mitarbeiter sammeln sich, im Falle einer Räumung, ausschließlich an der Sammelstelle"},
	}
}
