package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"

	mw "github.com/restroiq/crm-api/internal/infra/http/middleware"
)

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendConversionAlert tells the sales inbox that a lead just converted.
func (s *EmailSender) SendConversionAlert(to, restaurantName, contactPerson, city, phone string) error {
	data := ConversionAlertData{
		RestaurantName: restaurantName,
		ContactPerson:  contactPerson,
		City:           city,
		Phone:          phone,
	}
	tmplPath := filepath.Join("templates", "conversion_alert.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parse mail template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("render mail template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Lead converted: %s (%s)", data.RestaurantName, data.City))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		mw.RecordIntegrationError("smtp")
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
