package notifier

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/chumbawanba/Stock-agent-ai/internal/model"
)

// QuoteURL returns the public quote page for a ticker.
func QuoteURL(ticker string) string {
	return "https://finance.yahoo.com/quote/" + url.PathEscape(ticker)
}

// FormatEmailHTML renders the Buy and Sell rows of a report as an HTML
// table, each ticker linked to its quote page. Returns the empty string
// when the report has no actionable rows.
func FormatEmailHTML(report *model.Report) string {
	actionable := report.Actionable()
	if len(actionable) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("<h2>Stock signals for %s</h2>\n", report.GeneratedAt.Format("2006-01-02")))
	b.WriteString(`<table border="1" cellpadding="6" cellspacing="0">` + "\n")
	b.WriteString("<tr><th>Ticker</th><th>Price</th><th>RSI14</th><th>MA50</th><th>MA200</th><th>Signal</th></tr>\n")

	for _, rec := range actionable {
		b.WriteString("<tr>")
		b.WriteString(fmt.Sprintf(`<td><a href="%s">%s</a></td>`, QuoteURL(rec.Ticker), html.EscapeString(rec.Ticker)))
		b.WriteString(fmt.Sprintf("<td>%.2f</td>", rec.Snapshot.LatestPrice))
		b.WriteString(fmt.Sprintf("<td>%s</td>", htmlOptional(rec.Snapshot.RSI14)))
		b.WriteString(fmt.Sprintf("<td>%s</td>", htmlOptional(rec.Snapshot.MA50)))
		b.WriteString(fmt.Sprintf("<td>%s</td>", htmlOptional(rec.Snapshot.MA200)))
		b.WriteString(fmt.Sprintf("<td><b>%s</b></td>", rec.Signal))
		b.WriteString("</tr>\n")
	}

	b.WriteString("</table>\n")
	b.WriteString("</body></html>\n")
	return b.String()
}

// FormatTelegram renders the Buy and Sell rows as a Telegram HTML
// message. Returns the empty string when there is nothing actionable.
func FormatTelegram(report *model.Report) string {
	actionable := report.Actionable()
	if len(actionable) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Stock signals</b> | %s\n\n", report.GeneratedAt.Format("2006-01-02")))

	for _, rec := range actionable {
		emoji := "🟢"
		if rec.Signal == model.SignalSell {
			emoji = "🔴"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> %s @ %.2f\n", emoji, rec.Signal, html.EscapeString(rec.Ticker), rec.Snapshot.LatestPrice))
		b.WriteString(fmt.Sprintf(`<a href="%s">chart</a>`+"\n\n", QuoteURL(rec.Ticker)))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func htmlOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}
