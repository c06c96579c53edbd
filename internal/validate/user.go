package validate

import (
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
)

// Register проверяет данные регистрации пользователя.
func Register(args repoargs.CreateUser) error {
	c := newChecker()
	c.tag("Username", args.Username, "min=3,max=25", MsgUsernameLength)
	c.tag("Username", args.Username, "alphanum", MsgUsernameChars)
	c.tag("Email", args.Email, "required,email,max=100", MsgEmail)
	c.tag("Password", args.Password, "min=6", MsgPassword)
	return c.err()
}

// Login проверяет только наличие полей, остальное проверяется поиском пользователя.
func Login(identity, password string) error {
	c := newChecker()
	c.tag("Identity", identity, "required", "Identity is required.")
	c.tag("Password", password, "required", "Password is required.")
	return c.err()
}

// IsEmail используется при входе чтобы определить, передан email или username.
func IsEmail(identity string) bool {
	return instance().Var(identity, "email") == nil
}
