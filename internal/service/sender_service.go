package service

import (
	"fmt"
	"log"
	"os"

	"carrental/internal/entities"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const timeLayout = "02 Jan 2006 15:04 MST"

// SenderService sends booking confirmations. Delivery is best effort: a
// failed email or SMS is logged and never fails the booking.
type SenderService struct{}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingEmail(c entities.BookingConfirmation) {
	subject := fmt.Sprintf("Your booking is confirmed - Code: %s", c.Code)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking has been confirmed.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Vehicle: %s %s (Plate: %s)\n"+
			"Pick-up: %s\n"+
			"Return: %s\n\n"+
			"Thank you for booking with us.",
		c.UserName, c.Code, c.VehicleMake, c.VehicleModel, c.VehiclePlate,
		c.StartDate.Format(timeLayout), c.EndDate.Format(timeLayout),
	)

	go func() {
		if err := SendEmailWithSendGrid(c.UserEmail, c.UserName, subject, body); err != nil {
			log.Printf("confirmation email for booking %s failed: %v", c.Code, err)
		}
	}()
}

// SendBookingSMS texts the confirmation when the user registered a phone
// number.
func (s *SenderService) SendBookingSMS(c entities.BookingConfirmation) {
	if c.UserPhone == "" {
		return
	}
	message := fmt.Sprintf("Booking %s confirmed!\nPick-up: %s.\nMore details in your email.",
		c.Code, c.StartDate.Format("02/01 15:04"))

	go func() {
		if err := SendSMS(c.UserPhone, message); err != nil {
			log.Printf("confirmation SMS for booking %s to %s failed: %v", c.Code, c.UserPhone, err)
		}
	}()
}

func SendEmailWithSendGrid(toEmail, toName, subject, plainBody string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if apiKey == "" || fromEmail == "" {
		return fmt.Errorf("sendgrid not configured")
	}

	from := mail.NewEmail(os.Getenv("SENDGRID_FROM_NAME"), fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainBody, "")
	client := sendgrid.NewSendClient(apiKey)

	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func SendSMS(to, message string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM_NUMBER")

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(message)

	_, err := client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
