// Package mailer sends transactional email over SMTP. Receipt
// dispatch is best-effort: reconciliation never fails because the
// relay is down, so errors are returned for logging only.
package mailer

import (
    "fmt"
    "net/smtp"
    "strings"

    "github.com/iliyamo/court-reservation/internal/config"
)

// Mailer holds SMTP relay settings. A zero SMTP host disables
// dispatch entirely, which keeps local development quiet.
type Mailer struct {
    host string
    port string
    user string
    pass string
    from string
}

// New builds a Mailer from application config.
func New(cfg config.Config) *Mailer {
    return &Mailer{
        host: cfg.SMTPHost,
        port: cfg.SMTPPort,
        user: cfg.SMTPUser,
        pass: cfg.SMTPPass,
        from: cfg.SMTPFrom,
    }
}

// Enabled reports whether a relay is configured.
func (m *Mailer) Enabled() bool { return m.host != "" }

// ReceiptLine is one court booking on the receipt.
type ReceiptLine struct {
    CourtName string
    Date      string
    StartTime string
    EndTime   string
}

// SendReceipt emails a payment receipt to the customer after the
// webhook reconciler has recorded the reservation and payment.
func (m *Mailer) SendReceipt(to, name string, lines []ReceiptLine, amount float64, paymentRef string) error {
    if !m.Enabled() {
        return nil
    }
    var body strings.Builder
    fmt.Fprintf(&body, "Hi %s,\r\n\r\n", name)
    body.WriteString("Thank you for your payment. Your booking is confirmed:\r\n\r\n")
    for _, l := range lines {
        fmt.Fprintf(&body, "  %s on %s, %s - %s\r\n", l.CourtName, l.Date, l.StartTime, l.EndTime)
    }
    fmt.Fprintf(&body, "\r\nAmount paid: PHP %.2f\r\nPayment reference: %s\r\n", amount, paymentRef)
    body.WriteString("\r\nSee you on the court!\r\n")

    msg := strings.Join([]string{
        "From: " + m.from,
        "To: " + to,
        "Subject: Your court reservation receipt",
        "MIME-Version: 1.0",
        "Content-Type: text/plain; charset=utf-8",
        "",
        body.String(),
    }, "\r\n")

    addr := m.host + ":" + m.port
    var auth smtp.Auth
    if m.user != "" {
        auth = smtp.PlainAuth("", m.user, m.pass, m.host)
    }
    return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
