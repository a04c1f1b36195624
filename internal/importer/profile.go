package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format names a CSV layout accepted by the importer.
type Format string

const (
	// FormatLedger is the app's own layout: comma separated, ISO dates and
	// plain decimal amounts, with optional category and type columns.
	FormatLedger Format = "ledger"
	// FormatExtrato is a pt-BR bank statement: semicolon separated,
	// dd/mm/yyyy dates and "1.234,56" amounts.
	FormatExtrato Format = "extrato"
	// FormatCartao is a pt-BR card statement with separate debit and credit
	// columns.
	FormatCartao Format = "cartao"
)

// Profile describes the column layout of one Format. Column names are
// matched case-insensitively.
type Profile struct {
	Format      Format
	Comma       rune
	DateCol     string
	DateLayouts []string
	DescCol     string
	AmountCol   string // signed amount; empty when DebitCol/CreditCol are used
	DebitCol    string
	CreditCol   string
	CategoryCol string // optional
	TypeCol     string // optional
	ParseAmount func(string) (decimal.Decimal, error)
	// StrictDates rejects described rows whose date does not parse instead
	// of skipping them as statement noise.
	StrictDates bool
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}
	if p.AmountCol != "" {
		return append(cols, p.AmountCol)
	}

	return append(cols, p.DebitCol, p.CreditCol)
}

// profiles is tried in order during detection; more specific layouts first.
var profiles = []Profile{
	{
		Format:      FormatLedger,
		Comma:       ',',
		DateCol:     "date",
		DateLayouts: []string{"2006-01-02"},
		DescCol:     "description",
		AmountCol:   "amount",
		CategoryCol: "category",
		TypeCol:     "type",
		ParseAmount: parsePlainAmount,
		StrictDates: true,
	},
	{
		Format:      FormatCartao,
		Comma:       ';',
		DateCol:     "data",
		DateLayouts: []string{"02/01/2006", "02-01-2006"},
		DescCol:     "descrição",
		DebitCol:    "débito",
		CreditCol:   "crédito",
		CategoryCol: "categoria",
		ParseAmount: parseBRAmount,
	},
	{
		Format:      FormatExtrato,
		Comma:       ';',
		DateCol:     "data",
		DateLayouts: []string{"02/01/2006", "02-01-2006"},
		DescCol:     "descrição",
		AmountCol:   "valor",
		CategoryCol: "categoria",
		ParseAmount: parseBRAmount,
	},
}

func lookupProfile(f Format) (Profile, bool) {
	for _, p := range profiles {
		if p.Format == f {
			return p, true
		}
	}

	return Profile{}, false
}

// parsePlainAmount parses "1234.56" or "-1234.56".
func parsePlainAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// parseBRAmount parses pt-BR amounts such as "1.234,56", "-588,74" or
// "R$ 10,00".
func parseBRAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}
