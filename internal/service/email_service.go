package service

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"wewillshine/internal/models"
)

// sesClient is the part of the SES client the email service uses
type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService sends achievement notifications via Amazon SES
type EmailService struct {
	client       sesClient
	fromEmail    string
	fromName     string
	teacherEmail string
	enabled      bool
	debug        bool
}

// NewEmailService creates a new email service. Without a sender or a teacher
// address the service is disabled and every send is a no-op.
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, teacherEmail string, debug bool) (*EmailService, error) {
	if fromEmail == "" || teacherEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL or TEACHER_EMAIL not configured")
		return &EmailService{enabled: false, debug: debug}, nil
	}

	if debug {
		log.Printf("[DEBUG] Initializing email service: region=%s from=%s teacher=%s", awsRegion, fromEmail, teacherEmail)
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)
	return newEmailService(sesv2.NewFromConfig(cfg), fromEmail, fromName, teacherEmail, debug), nil
}

func newEmailService(client sesClient, fromEmail, fromName, teacherEmail string, debug bool) *EmailService {
	return &EmailService{
		client:       client,
		fromEmail:    fromEmail,
		fromName:     fromName,
		teacherEmail: teacherEmail,
		enabled:      true,
		debug:        debug,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s != nil && s.enabled
}

// SendAchievementEmail tells the teacher that a student unlocked an achievement
func (s *EmailService) SendAchievementEmail(ctx context.Context, studentName, studentCode string, a models.Achievement) error {
	if !s.IsEnabled() {
		if s != nil && s.debug {
			log.Printf("[DEBUG] Skipping achievement email (service disabled): %s %s", studentCode, a.ID)
		}
		return nil
	}

	subject := fmt.Sprintf("%s %s membuka pencapaian \"%s\"", a.Icon, studentName, a.Name)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #f59e0b; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #fffbeb; padding: 30px; border-radius: 0 0 5px 5px; }
		.badge { font-size: 48px; text-align: center; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Pencapaian Baru!</h1>
		</div>
		<div class="content">
			<p class="badge">%s</p>
			<p><strong>%s</strong> (%s) baru saja membuka pencapaian <strong>%s</strong>.</p>
			<p>%s</p>
		</div>
		<div class="footer">
			<p>Email otomatis dari We Will Shine. Mohon tidak membalas.</p>
		</div>
	</div>
</body>
</html>
`, html.EscapeString(a.Icon), html.EscapeString(studentName), html.EscapeString(studentCode),
		html.EscapeString(a.Name), html.EscapeString(a.Description))

	textBody := fmt.Sprintf(`%s (%s) baru saja membuka pencapaian "%s".

%s

---
Email otomatis dari We Will Shine. Mohon tidak membalas.
`, studentName, studentCode, a.Name, a.Description)

	return s.sendEmail(ctx, s.teacherEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using AWS SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		log.Printf("[DEBUG] sendEmail: from=%s to=%s subject=%s", fromAddress, toEmail, subject)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	if s.debug && result != nil && result.MessageId != nil {
		log.Printf("[DEBUG] Message ID: %s", *result.MessageId)
	}
	log.Printf("Email sent successfully: to=%s, subject=%s", toEmail, subject)
	return nil
}
