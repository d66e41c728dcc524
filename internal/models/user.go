package models

// User is a Filmorate account.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"notblank,nospaces"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday" validate:"notfuture"`
}

// DisplayName returns the name to show for the user, falling back to the login.
func (u *User) DisplayName() string {
	if u.Name == "" {
		return u.Login
	}
	return u.Name
}
