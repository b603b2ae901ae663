package email

// Message - письмо для отправки
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Имена встроенных шаблонов
const (
	TemplateVerification        = "verification"
	TemplatePasswordReset       = "password_reset"
	TemplateWelcome             = "welcome"
	TemplateContactNotification = "contact_notification"
)

// VerificationData - данные для письма подтверждения email
type VerificationData struct {
	Name      string
	VerifyURL string
}

// PasswordResetData - данные для письма сброса пароля
type PasswordResetData struct {
	Name       string
	ResetURL   string
	TTLMinutes int
}

// WelcomeData - данные для приветственного письма
type WelcomeData struct {
	Name     string
	LoginURL string
}

// ContactNotificationData - данные для уведомления о новом сообщении
type ContactNotificationData struct {
	Name    string
	Email   string
	Message string
}
