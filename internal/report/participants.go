package report

import (
	"strconv"

	"github.com/PetA199003/GBU-Management/internal/model"
)

// 纸质签名用的空行数
const blankParticipantRows = 10

var participantColumns = []column{
	{title: "Nr.", width: 10, align: "C", center: true},
	{title: "Name", width: 32},
	{title: "Vorname", width: 30},
	{title: "Firma", width: 32},
	{title: "Position", width: 26},
	{title: "Unterschrift", width: 26},
	{title: "Datum", width: 24},
}

// ParticipantsPDF 纵向 A4 的签到表，已签名的行显示签名方式和日期，末尾追加空行
func ParticipantsPDF(project *model.Project, participants []model.Participant) ([]byte, error) {
	d := newDocument("P", 15)
	d.title("Teilnehmerliste - " + project.Name)
	projectInfo(d, project, false)

	t := &table{doc: d, columns: participantColumns, fontSize: 9}
	t.header()
	for i := range participants {
		p := &participants[i]
		signature, date := "", ""
		if p.Signed() {
			signature = p.SignatureType
			if p.SignedAt != nil {
				date = p.SignedAt.German()
			}
		}
		t.row([]cell{
			{text: strconv.Itoa(i + 1)},
			{text: p.LastName},
			{text: p.FirstName},
			{text: p.Company},
			{text: p.Position},
			{text: signature},
			{text: date},
		})
	}
	for i := 0; i < blankParticipantRows; i++ {
		t.row(nil)
	}
	return d.bytes()
}
