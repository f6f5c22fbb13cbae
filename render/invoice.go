// Package render turns order/report snapshots into printable markup. It is
// pure data-in, markup-out; nothing here talks to the backend.
package render

import (
	"html/template"
	"strings"

	"github.com/xdranel/Menu-Ordering/entity"
	"github.com/xdranel/Menu-Ordering/utils"
)

var funcs = template.FuncMap{
	"rupiah": utils.FormatRupiah,
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(funcs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.InvoiceNumber}}</title>
<style>
body { font-family: monospace; max-width: 420px; margin: 0 auto; }
table { width: 100%; border-collapse: collapse; }
td, th { padding: 2px 4px; text-align: left; }
.right { text-align: right; }
.total { border-top: 1px dashed #000; font-weight: bold; }
.center { text-align: center; }
</style>
</head>
<body>
<h2 class="center">ChopChop Restaurant</h2>
<p class="center">Invoice {{.InvoiceNumber}}<br>
Order {{.OrderNumber}}<br>
{{.CreatedAt.Format "02 Jan 2006 15:04"}}</p>
{{if .Order}}{{if .Order.CustomerName}}<p>Customer: {{.Order.CustomerName}}</p>{{end}}
<table>
<tr><th>Item</th><th class="right">Qty</th><th class="right">Subtotal</th></tr>
{{range .Order.Items}}<tr><td>{{.MenuName}}</td><td class="right">{{.Quantity}}</td><td class="right">{{rupiah .Subtotal}}</td></tr>
{{end}}</table>
{{end}}<table>
<tr><td>Subtotal</td><td class="right">{{rupiah .TotalAmount}}</td></tr>
<tr><td>Tax (10%)</td><td class="right">{{rupiah .TaxAmount}}</td></tr>
<tr class="total"><td>Total</td><td class="right">{{rupiah .FinalAmount}}</td></tr>
<tr><td>Payment</td><td class="right">{{.PaymentMethod}}</td></tr>
</table>
{{if .CashierName}}<p>Cashier: {{.CashierName}}</p>{{end}}
<p class="center">Thank you for your order!</p>
</body>
</html>
`))

// Invoice renders the printable receipt for an immutable invoice record.
func Invoice(inv *entity.Invoice) (string, error) {
	var b strings.Builder
	if err := invoiceTmpl.Execute(&b, inv); err != nil {
		return "", err
	}
	return b.String(), nil
}
