package render

import (
	"html/template"
	"strings"

	"github.com/xdranel/Menu-Ordering/services"
)

var reportTmpl = template.Must(template.New("report").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Sales Report {{.StartDate}} to {{.EndDate}}</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 0 auto; }
table { width: 100%; border-collapse: collapse; margin-bottom: 1.5em; }
td, th { padding: 4px 8px; border-bottom: 1px solid #ddd; text-align: left; }
.right { text-align: right; }
</style>
</head>
<body>
<h1>Sales Report</h1>
<p>{{.StartDate}} to {{.EndDate}}</p>
<table>
<tr><td>Total Orders</td><td class="right">{{.TotalOrders}}</td></tr>
<tr><td>Completed</td><td class="right">{{.CompletedOrders}}</td></tr>
<tr><td>Cancelled</td><td class="right">{{.CancelledOrders}}</td></tr>
<tr><td>Paid (Cash / QR)</td><td class="right">{{.CashPayments}} / {{.QRPayments}}</td></tr>
<tr><td>Total Revenue</td><td class="right">{{rupiah .TotalRevenue}}</td></tr>
<tr><td>Total Tax (10%)</td><td class="right">{{rupiah .TotalTax}}</td></tr>
</table>
<h2>Top Selling Items</h2>
<table>
<tr><th>Menu</th><th class="right">Qty</th><th class="right">Revenue</th></tr>
{{range .TopItems}}<tr><td>{{.MenuName}}</td><td class="right">{{.Quantity}}</td><td class="right">{{rupiah .Revenue}}</td></tr>
{{else}}<tr><td colspan="3">No sales in this period</td></tr>
{{end}}</table>
</body>
</html>
`))

// Report renders the sales report page for a period.
func Report(r *services.SalesReport) (string, error) {
	var b strings.Builder
	if err := reportTmpl.Execute(&b, r); err != nil {
		return "", err
	}
	return b.String(), nil
}
