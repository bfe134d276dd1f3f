package models

// User — профиль пользователя, как его возвращает шлюз.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email" validate:"email"`
	LastName    string `json:"lastName"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	PhoneNumber string `json:"phoneNumber"`
}
