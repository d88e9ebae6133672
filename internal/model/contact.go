package model

import "time"

// ContactMessage is an append-only record of a contact form submission
type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255)"`
	Phone     string    `json:"phone" gorm:"type:varchar(32)"`
	Subject   string    `json:"subject" gorm:"type:varchar(255)"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}
