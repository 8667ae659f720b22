// services/notify_service.go
package services

import (
	"fmt"
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"curtainpro-backend/models"
)

// NotifyService sends the customer an SMS confirmation after their order is
// saved. It is best effort: the order is already committed when this runs,
// and delivery failures are only logged.
type NotifyService struct {
	client *twilio.RestClient
	from   string
}

func NewNotifyService() *NotifyService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotifyService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

// Enabled reports whether Twilio credentials are configured. Without them
// the service stays silent.
func (s *NotifyService) Enabled() bool {
	return os.Getenv("TWILIO_ACCOUNT_SID") != "" && s.from != ""
}

// SendOrderConfirmation texts the customer that their order was recorded.
func (s *NotifyService) SendOrderConfirmation(customer models.Customer, order models.Order) {
	if !s.Enabled() || customer.Phone == "" {
		return
	}

	body := fmt.Sprintf(
		"Hi %s, your curtain order (%d windows) has been recorded. Reference: %s",
		customer.Name, len(order.Entries), order.Reference,
	)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(customer.Phone)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Failed to send order confirmation to %s: %v", customer.Phone, err)
		return
	}
	log.Printf("Order confirmation sent to %s for order %s", customer.Phone, order.ID)
}
