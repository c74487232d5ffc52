package smtp

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/nhu-hockey/nhu-app/internal/domain/entity"
	"github.com/nhu-hockey/nhu-app/pkg/logger/types"
)

// Sender delivers composed messages. *gomail.Dialer implements it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client is the union's outgoing mail client.
type Client struct {
	sender Sender
	from   string
	domain string
	logger *types.Logger
}

func NewClient(sender Sender, from, domain string, logger *types.Logger) *Client {
	return &Client{
		sender: sender,
		from:   from,
		domain: domain,
		logger: logger,
	}
}

// Send sends a plain text message with an optional attachment.
func (c *Client) Send(to, subject, body string, attachmentName string, attachment *bytes.Buffer) error {
	msg := c.newMessage(to, subject)
	msg.SetBody("text/plain", body)
	if attachment != nil {
		msg.Attach(attachmentName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment.Bytes())
			return err
		}))
	}
	if err := c.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	c.logger.Infof("Email sent (to=%s, subject=%s)", to, subject)
	return nil
}

// SendRoleDecision tells the applicant how their role change request was decided.
func (c *Client) SendRoleDecision(request *entity.RoleChangeRequest) error {
	var subject, body string
	switch request.Status {
	case entity.RequestApproved:
		subject = "Your role change request was approved"
		body = fmt.Sprintf("Hello %s,\n\nyou now have the %s role in the NHU app.", request.UserName, request.RequestedRole)
	case entity.RequestRejected:
		subject = "Your role change request was declined"
		body = fmt.Sprintf("Hello %s,\n\nyour request for the %s role was declined.", request.UserName, request.RequestedRole)
	default:
		return fmt.Errorf("request %s has not been reviewed", request.ID)
	}
	if request.ReviewNotes != "" {
		body += "\n\nReviewer notes: " + request.ReviewNotes
	}
	return c.Send(request.UserEmail, subject, body, "", nil)
}

func (c *Client) newMessage(to, subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(c.domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	return msg
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
