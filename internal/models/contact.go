package models

// ContactMessage - сообщение из формы обратной связи
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null;index" json:"email"`
	Message string `gorm:"type:text;not null" json:"message"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
