package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rashinkp/byway-sub000/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Byway <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E1B4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E1B4B; line-height: 1.6; }
			.content h2 { color: #1E1B4B; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6366F1; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>BYWAY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Byway. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Byway"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Byway</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. You can now browse the catalog and start learning.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Enrollment confirmation
func SendEnrollmentEmail(email, name, courseName string) {
	subject := "Enrollment Confirmed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have successfully enrolled in <strong>%s</strong>.</p>
		<p>You can now access all the course content. Complete every lesson to earn your certificate.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Head to your dashboard and start with the first lesson.
		</div>
	`, name, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Successful", body))
}

// 3. Order confirmation after checkout
func SendOrderEmail(email, name, orderNumber string, total float64) {
	subject := "Order Confirmed: " + orderNumber
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for your purchase. Your order <strong>%s</strong> has been confirmed.</p>
		<div class="info-box">
			<strong>Total Paid:</strong> $%.2f
		</div>
		<p>The purchased courses are already available in your dashboard.</p>
	`, name, orderNumber, total)

	go SendEmail([]string{email}, subject, getEmailTemplate("Order Confirmed", body))
}

// 4. Certificate issued
func SendCertificateEmail(email, name, courseName, certificateNumber string) {
	subject := "Course Completion Certificate - Byway"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations on completing <strong>%s</strong>!</p>
		<div class="info-box">
			<strong>Your Certificate Number:</strong> %s
		</div>
		<p>Your certificate has been issued and is now available for download. Anyone can verify it with the certificate number above.</p>
	`, name, courseName, certificateNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Certificate of Completion", body))
}

// 5. Nudge for stalled courses
func SendCompletionReminderEmail(email, name, courseName string, progress float64) {
	subject := "Keep going: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are <strong>%.0f%%</strong> of the way through <strong>%s</strong>.</p>
		<p>Finish the remaining lessons to earn your completion certificate.</p>
	`, name, progress, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Your Course Is Waiting", body))
}
