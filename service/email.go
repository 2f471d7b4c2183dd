package service

import (
	"fmt"
	"html"
	"io"

	"ledger/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务，发送月度报表
type EmailService struct {
	cfg    *config.EmailConfig
	sender func(m *gomail.Message) error
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.sender = s.dialAndSend
	return s
}

// Enabled 是否启用
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendMonthlyReport 将报表工作簿作为附件发送
func (s *EmailService) SendMonthlyReport(toEmail, username string, report *MonthlyReport, workbook []byte) error {
	if !s.Enabled() {
		return NewValidationError("email delivery is not enabled")
	}
	if toEmail == "" {
		return NewValidationError("recipient email is required")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[Ledger] Expense report %04d-%02d", report.Year, report.Month))
	m.SetBody("text/html", s.generateReportEmailBody(username, report))
	m.Attach(ReportFileName(report.Month, report.Year), gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(workbook)
		return err
	}))

	if err := s.sender(m); err != nil {
		return serverError("send report email", err)
	}
	return nil
}

// generateReportEmailBody 生成报表邮件内容
func (s *EmailService) generateReportEmailBody(username string, report *MonthlyReport) string {
	summary := report.Summary
	if summary == nil {
		summary = &MonthlySummary{}
	}
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: #2563eb; color: white; padding: 24px; text-align: center; }
        .content { padding: 30px; color: #333; line-height: 1.8; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 6px 0; border-bottom: 1px solid #eee; }
        .footer { background: #f8f9fa; padding: 16px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Expense report %04d-%02d</h1></div>
        <div class="content">
            <p>Hello <strong>%s</strong>,</p>
            <p>Your monthly report is attached.</p>
            <table>
                <tr><td>Expenses</td><td>%d</td></tr>
                <tr><td>Total</td><td>%s</td></tr>
                <tr><td>Fixed</td><td>%s</td></tr>
                <tr><td>Variable</td><td>%s</td></tr>
                <tr><td>Installment</td><td>%s</td></tr>
            </table>
        </div>
        <div class="footer"><p>This message was sent automatically, please do not reply.</p></div>
    </div>
</body>
</html>
`, report.Year, report.Month, html.EscapeString(username), summary.TotalExpenses,
		summary.TotalAmount.StringFixed(2), summary.FixedExpenses.StringFixed(2),
		summary.VariableExpenses.StringFixed(2), summary.InstallmentExpenses.StringFixed(2))
}

func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}
