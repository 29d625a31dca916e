package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AppHatchery-01/kirana-pos-easy/internal/application/dto"
)

// ReceiptWidth characters per line on a 58mm thermal roll.
const ReceiptWidth = 40

var (
	ist    = time.FixedZone("IST", 5*60*60+30*60)
	indian = language.MustParse("en-IN")
)

// RenderReceipt lays the invoice out in ReceiptWidth columns. Amounts use
// Indian digit grouping and times are shown in IST.
func RenderReceipt(inv dto.InvoiceResponse) string {
	var b strings.Builder
	rule := strings.Repeat("-", ReceiptWidth) + "\n"

	center(&b, strings.ToUpper(inv.Store.Name))
	if inv.Store.Address != "" {
		center(&b, inv.Store.Address)
	}
	if inv.Store.Phone != "" {
		center(&b, "Ph: "+inv.Store.Phone)
	}
	if inv.Store.GSTNumber != "" {
		center(&b, "GSTIN: "+inv.Store.GSTNumber)
	}
	b.WriteString(rule)
	fmt.Fprintf(&b, "Bill: %s\n", inv.SaleNumber)
	fmt.Fprintf(&b, "Date: %s\n", inv.Date.In(ist).Format("02-01-2006 15:04"))
	switch {
	case inv.CustomerName != "" && inv.CustomerPhone != "":
		fmt.Fprintf(&b, "Customer: %s (%s)\n", inv.CustomerName, inv.CustomerPhone)
	case inv.CustomerName != "":
		fmt.Fprintf(&b, "Customer: %s\n", inv.CustomerName)
	case inv.CustomerPhone != "":
		fmt.Fprintf(&b, "Customer: %s\n", inv.CustomerPhone)
	}
	b.WriteString(rule)
	fmt.Fprintf(&b, "%-16s%4s%10s%10s\n", "Item", "Qty", "Rate", "Amount")
	b.WriteString(rule)
	for _, it := range inv.Items {
		fmt.Fprintf(&b, "%-16s%4d%10s%10s\n", truncate(it.ProductName, 16), it.Quantity, Money(it.UnitPrice), Money(it.TotalPrice))
		if it.TaxRate.IsPositive() {
			fmt.Fprintf(&b, "  GST %s%%\n", it.TaxRate.String())
		}
	}
	b.WriteString(rule)
	total(&b, "Subtotal", Money(inv.Subtotal))
	total(&b, "GST", Money(inv.TaxAmount))
	if inv.Discount != nil {
		total(&b, "Discount", "-"+Money(*inv.Discount))
	}
	total(&b, "TOTAL", "Rs. "+Money(inv.Total))
	fmt.Fprintf(&b, "Payment: %s\n", strings.ToUpper(inv.PaymentMethod))
	b.WriteString(rule)
	center(&b, "Thank you! Visit again.")
	return b.String()
}

// Money formats a rupee amount with two decimals and Indian grouping.
func Money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	rupees, _ := strconv.ParseInt(s[:len(s)-3], 10, 64)
	out := message.NewPrinter(indian).Sprintf("%d", rupees) + "." + s[len(s)-2:]
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

func center(b *strings.Builder, s string) {
	if pad := (ReceiptWidth - len([]rune(s))) / 2; pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(s)
	b.WriteByte('\n')
}

func total(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-20s%20s\n", label, value)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
