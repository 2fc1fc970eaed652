package invoice

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"

	"snackspace/internal/domain"
)

//go:embed templates/invoice.html templates/invoice.txt
var templateFS embed.FS

var htmlFuncs = htmltemplate.FuncMap{
	"isEven": func(i int) bool { return i%2 == 0 },
}

var (
	htmlTemplate = htmltemplate.Must(
		htmltemplate.New("invoice.html").Funcs(htmlFuncs).ParseFS(templateFS, "templates/invoice.html"))
	textTemplate = texttemplate.Must(
		texttemplate.ParseFS(templateFS, "templates/invoice.txt"))
)

// tableRow is one transaction pre-formatted for the HTML table.
type tableRow struct {
	Date        string
	Type        string
	Description string
	Amount      string
}

// bodyData is the template context shared by the HTML and text bodies.
type bodyData struct {
	Subject      string
	MemberName   string
	Month        string
	Balance      string // magnitude only; InCredit carries the sign
	InCredit     bool
	Transactions []tableRow
	TextTable    string
}

// RenderBodies produces the HTML and plain-text invoice bodies. The
// balance renders as its magnitude; the in-credit flag (from the raw sign:
// negative means owed) selects the wording.
func RenderBodies(job domain.InvoiceJob, txns []domain.Transaction, textTable string) (htmlBody, textBody string, err error) {
	data := bodyData{
		Subject:    job.Month + " Snackspace invoice",
		MemberName: job.Name,
		Month:      job.Month,
		Balance:    job.Balance.Abs().String(),
		InCredit:   job.Balance.InCredit(),
		TextTable:  textTable,
	}
	for _, t := range txns {
		data.Transactions = append(data.Transactions, tableRow{
			Date:        t.RecordedAt.Format(dateLayout),
			Type:        t.Type,
			Description: t.Description,
			Amount:      t.Amount.String(),
		})
	}

	var html bytes.Buffer
	if err := htmlTemplate.Execute(&html, data); err != nil {
		return "", "", &domain.Error{Code: domain.EINTERNAL, Op: "invoice.render", Message: "render html body failed", Err: err}
	}

	var text bytes.Buffer
	if err := textTemplate.Execute(&text, data); err != nil {
		return "", "", &domain.Error{Code: domain.EINTERNAL, Op: "invoice.render", Message: "render text body failed", Err: err}
	}

	return html.String(), text.String(), nil
}
