package mail

type ConversionAlertData struct {
	RestaurantName string
	ContactPerson  string
	City           string
	Phone          string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
