package report

import (
	"fmt"
	"html/template"
	"strings"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`<html>
<head>
  <style>
    table {
      border-collapse: collapse;
      width: 50%;
      margin-top: 10px;
      font-family: Arial, sans-serif;
    }
    th, td {
      border: 1px solid #ddd;
      padding: 8px;
      text-align: left;
    }
    th {
      background-color: #f2f2f2;
      font-weight: bold;
    }
    tr:nth-child(even) { background-color: #f9f9f9; }
  </style>
</head>
<body>
  <h3>Latest month ({{.Label}})</h3>
  <table border="1">
    <tr>
      <th>Category</th>
      <th>Amount ($)</th>
    </tr>
{{- range .Rows}}
    <tr>
      <td>{{.Category}}</td>
      <td>{{.Amount}}</td>
    </tr>
{{- end}}
  </table>
  <p>Attached is the category trend chart over the reported history.</p>
</body>
</html>
`))

type summaryRow struct {
	Category string
	Amount   string
}

// SummaryHTML renders the latest-month table for the email body, with
// categories in taxonomy order.
func SummaryHTML(latest MonthlyBreakdown, categories []string) (string, error) {
	rows := make([]summaryRow, 0, len(categories))
	for _, name := range categories {
		rows = append(rows, summaryRow{
			Category: name,
			Amount:   FormatAmount(latest.Totals[name]),
		})
	}

	var buf strings.Builder
	err := summaryTemplate.Execute(&buf, struct {
		Label string
		Rows  []summaryRow
	}{Label: latest.Label, Rows: rows})
	if err != nil {
		return "", fmt.Errorf("rendering summary for %s: %w", latest.Month, err)
	}
	return buf.String(), nil
}

// FormatAmount renders a value with dot thousands separators and a comma
// decimal point, the convention the statements themselves use: 1234.56
// becomes "1.234,56".
func FormatAmount(value float64) string {
	s := fmt.Sprintf("%.2f", value)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return sign + strings.Join(groups, ".") + "," + decPart
}
