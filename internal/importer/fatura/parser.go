package fatura

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/ricardofs/confere/internal/encoding"
	"github.com/ricardofs/confere/internal/statement"
)

// Parser reads the text dump of a Brazilian credit card statement (fatura)
// and extracts the billing period, the declared total and the candidate
// expense lines. Statement dumps are messy: every field is best-effort, and
// lines with unparseable amounts are skipped rather than failing the import.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// monthNames maps Portuguese month names and their three-letter
// abbreviations to month numbers. "marco" covers dumps that lost the
// cedilla in text extraction.
var monthNames = map[string]int{
	"janeiro": 1, "fevereiro": 2, "março": 3, "marco": 3, "abril": 4,
	"maio": 5, "junho": 6, "julho": 7, "agosto": 8,
	"setembro": 9, "outubro": 10, "novembro": 11, "dezembro": 12,
	"jan": 1, "fev": 2, "mar": 3, "abr": 4, "mai": 5, "jun": 6,
	"jul": 7, "ago": 8, "set": 9, "out": 10, "nov": 11, "dez": 12,
}

var (
	// "Fatura de Janeiro/2024", "JAN/24", "março 2024"
	monthYearPattern = regexp.MustCompile(`(?i)(?:fatura\s+(?:de\s+)?)?(\p{L}+)[/\s-]+(\d{2,4})`)

	// "01/2024" fallback when no month name is present
	numericPeriodPattern = regexp.MustCompile(`(\d{2})[/-](\d{4})`)

	// "Total: R$ 1.234,56", "Valor Total R$1234,56", "Saldo Devedor 1.234,56"
	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total\s*(?:da\s*fatura)?[:\s]*R?\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)valor\s*total[:\s]*R?\$?\s*([\d.,]+)`),
		regexp.MustCompile(`(?i)saldo\s*(?:devedor)?[:\s]*R?\$?\s*([\d.,]+)`),
	}

	// "15/01/2024 UBER TRIP 45,00" (year optional)
	expenseLinePattern = regexp.MustCompile(`(\d{2}[/-]\d{2}(?:[/-]\d{2,4})?)\s+(.+?)\s+(?:R?\$?\s*)?([\d.,]+)(?:\s|$)`)

	dateSeparator = regexp.MustCompile(`[/-]`)
)

func (p *Parser) Parse(r io.Reader) (*statement.ParsedStatement, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement text: %w", err)
	}

	text := string(raw)

	parsed := &statement.ParsedStatement{RawText: text}

	parsed.PeriodMonth, parsed.PeriodYear = parsePeriod(text)
	parsed.DeclaredTotal = parseDeclaredTotal(text)
	parsed.Expenses = parseExpenseLines(text)

	return parsed, nil
}

// parsePeriod looks for a Portuguese month name first, then falls back to a
// numeric MM/YYYY. Returns zeros when neither is present.
func parsePeriod(text string) (month, year int) {
	for _, m := range monthYearPattern.FindAllStringSubmatch(text, -1) {
		num, ok := monthNames[strings.ToLower(m[1])]
		if !ok {
			continue
		}

		y, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		if y < 100 {
			y += 2000
		}

		return num, y
	}

	if m := numericPeriodPattern.FindStringSubmatch(text); m != nil {
		num, _ := strconv.Atoi(m[1])
		if num >= 1 && num <= 12 {
			y, _ := strconv.Atoi(m[2])
			return num, y
		}
	}

	return 0, 0
}

// parseDeclaredTotal tries the known total labels in order of specificity
// and keeps the first positive amount.
func parseDeclaredTotal(text string) decimal.Decimal {
	for _, pattern := range totalPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		value, err := parseBrazilianAmount(m[1])
		if err != nil || !value.IsPositive() {
			continue
		}

		return value
	}

	return decimal.Zero
}

// parseExpenseLines scans each line for a date + description + amount
// triple. Lines with amounts that do not parse, non-positive amounts, or
// descriptions too short to mean anything are skipped.
func parseExpenseLines(text string) []statement.ParsedExpense {
	var expenses []statement.ParsedExpense

	for _, line := range strings.Split(text, "\n") {
		m := expenseLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		desc := strings.TrimSpace(m[2])
		if len(desc) <= 2 {
			continue
		}

		value, err := parseBrazilianAmount(m[3])
		if err != nil || !value.IsPositive() {
			continue
		}

		expenses = append(expenses, statement.ParsedExpense{
			Description: desc,
			Value:       value,
			Date:        parseExpenseDate(m[1]),
		})
	}

	return expenses
}

// parseExpenseDate parses DD/MM, DD/MM/YY or DD/MM/YYYY. A missing year
// defaults to the current one; an implausible day or month yields nil.
func parseExpenseDate(s string) *time.Time {
	parts := dateSeparator.Split(s, -1)
	if len(parts) < 2 {
		return nil
	}

	day, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])

	year := time.Now().Year()

	if len(parts) >= 3 {
		year, _ = strconv.Atoi(parts[2])
		if year < 100 {
			year += 2000
		}
	}

	if day < 1 || day > 31 || month < 1 || month > 12 {
		return nil
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	return &d
}
