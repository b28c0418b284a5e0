package utils

import (
	"elearn/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a transactional email through SendGrid. When no API key
// is configured the message is logged instead, so local development works
// without a mail account.
func SendEmail(toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SENDGRID_API_KEY not set, skipping email to %s: %s", toEmail, subject)
		return nil
	}

	from := sgmail.NewEmail("LearnHub", config.AppConfig.EmailSender)
	to := sgmail.NewEmail("", toEmail)
	message := sgmail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Email to %s rejected, status: %d, body: %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("email rejected with status %d", resp.StatusCode)
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
			.header { background-color: #1A237E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A237E; line-height: 1.6; }
			.content h2 { color: #1A237E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #43A047; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.otp { text-align: center; color: #43A047; font-size: 40px; margin: 20px 0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #43A047; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 LearnHub. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendOTPEmail mails the 6-digit registration code
func SendOTPEmail(email, name, otp string) error {
	subject := "OTP Verification Code for LearnHub"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your One Time Password (OTP) is:</p>
		<h1 class="otp">%s</h1>
		<p>The code expires in 5 minutes. Do not share this OTP with anyone.</p>
	`, name, otp)

	return SendEmail(email, subject, getEmailTemplate("Verify Your Email", body))
}

// SendForgotPasswordEmail mails the password reset link
func SendForgotPasswordEmail(email, token string) error {
	subject := "Reset Your LearnHub Password"
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", config.AppConfig.FrontendURL, token)
	body := fmt.Sprintf(`
		<p>We received a request to reset your password.</p>
		<p>Click the button below to choose a new one. The link expires in 5 minutes.</p>
		<a href="%s" class="btn">Reset Password</a>
		<p>If you did not request this, you can safely ignore this email.</p>
	`, resetURL)

	return SendEmail(email, subject, getEmailTemplate("Password Reset", body))
}

// SendPurchaseEmail confirms a completed course purchase
func SendPurchaseEmail(email, name, courseTitle string) {
	subject := "Course Purchase Confirmation - LearnHub"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You now have full access to:</p>
		<h3 style="text-align: center; color: #43A047; margin: 20px 0;">%s</h3>
		<div class="info-box">
			All lectures are unlocked. Track your progress and complete the course quizzes.
		</div>
		<p>Happy Learning!</p>
	`, name, courseTitle)

	go func() {
		if err := SendEmail(email, subject, getEmailTemplate("Purchase Successful", body)); err != nil {
			log.Printf("Error sending purchase email to %s: %v", email, err)
		}
	}()
}
