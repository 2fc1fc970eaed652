package invoice

import (
	"fmt"
	"strings"

	"snackspace/internal/domain"
)

// Column headers of the plain-text transaction table.
const (
	headerDate   = "Transaction date"
	headerType   = "Transaction type"
	headerDesc   = "Transaction description"
	headerAmount = "Amount"
)

const dateLayout = "2006-01-02 15:04:05"

// TransactionTable renders transactions as a fixed-width text table for
// the plain-text invoice body. Column widths are computed per invoice:
// the description column grows to the longest description, so nothing is
// ever truncated.
func TransactionTable(txns []domain.Transaction) string {
	dateW := max(len(headerDate), len(dateLayout))
	typeW := len(headerType)
	descW := len(headerDesc)
	amountW := max(len(headerAmount), 10)

	for _, t := range txns {
		descW = max(descW, len(t.Description))
		typeW = max(typeW, len(t.Type))
		amountW = max(amountW, len(t.Amount.String()))
	}

	var b strings.Builder
	border := fmt.Sprintf("+%s+%s+%s+%s+\n",
		strings.Repeat("-", dateW+2),
		strings.Repeat("-", typeW+2),
		strings.Repeat("-", descW+2),
		strings.Repeat("-", amountW+2))

	row := func(date, typ, desc, amount string) {
		fmt.Fprintf(&b, "| %-*s | %-*s | %-*s | %-*s |\n",
			dateW, date, typeW, typ, descW, desc, amountW, amount)
	}

	b.WriteString(border)
	row(headerDate, headerType, headerDesc, headerAmount)
	b.WriteString(border)
	for _, t := range txns {
		row(t.RecordedAt.Format(dateLayout), t.Type, t.Description, t.Amount.String())
	}
	b.WriteString(border)

	return b.String()
}
