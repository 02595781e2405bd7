package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"certstock/config"
	"certstock/database"
	"certstock/models"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Certificate Stock <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		Log.Errorf("Error sending email: %v", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the shared HTML layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message from the certificate stock system.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendLowStockAlert mails the configured admin address when a branch's medal
// stock reaches the low stock threshold
func SendLowStockAlert(branchID uint, quantity int) {
	if config.AppConfig.AlertEmail == "" {
		return
	}

	var branch models.Branch
	if err := database.Database.Db.First(&branch, branchID).Error; err != nil {
		Log.Errorf("Low stock alert: branch %d lookup failed: %v", branchID, err)
		return
	}

	subject := fmt.Sprintf("Low Medal Stock at %s", branch.Name)
	body := getEmailTemplate("Low Medal Stock", fmt.Sprintf(`
		<h2>Medal stock is running low</h2>
		<p>Branch <strong>%s (%s)</strong> has <strong>%d</strong> medals left.</p>
		<div class="info-box">Prints that include a medal will start failing once the stock hits zero. Transfer or add stock to keep printing.</div>`,
		branch.Name, branch.Code, quantity))

	if err := SendEmail([]string{config.AppConfig.AlertEmail}, subject, body); err == nil {
		Log.Infof("Low stock alert sent for branch %s (%d left)", branch.Code, quantity)
	}
}
