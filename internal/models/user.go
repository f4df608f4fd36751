package models

// User is a chat registered with the bot.
type User struct {
	ChatID   int64  `json:"chat_id" db:"chat_id"`   // Platform chat identity, ownership key
	Username string `json:"username" db:"username"` // Display name at registration time
}

// Row converts the user into a users table row.
func (u User) Row() Row {
	return Row{
		"chat_id":  u.ChatID,
		"username": u.Username,
	}
}

// UserFromRow reads a users table row.
func UserFromRow(r Row) (User, error) {
	var (
		u   User
		err error
	)
	if u.ChatID, err = r.Int64("chat_id"); err != nil {
		return User{}, err
	}
	if u.Username, err = r.String("username"); err != nil {
		return User{}, err
	}
	return u, nil
}
