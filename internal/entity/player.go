package entity

// TelegramUser - the sender of a chat command.
type TelegramUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
}

type TelegramChat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type Players struct {
	X *TelegramUser `json:"x,omitempty"`
	O *TelegramUser `json:"o,omitempty"`
}

// DisplayName - first name, falling back to the username.
func (that *TelegramUser) DisplayName() string {
	if that.FirstName != "" {
		return that.FirstName
	}
	return that.Username
}
