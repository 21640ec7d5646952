package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото листа
	StateProcessing    UserState = "processing"     // Идёт диагностика
)

// User представляет пользователя бота
type User struct {
	ID     int64     // Telegram User ID
	ChatID int64     // Telegram Chat ID
	State  UserState // Текущее состояние пользователя

	LastPlant   string // Растение из последней диагностики
	LastDisease string // Болезнь из последней диагностики
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// Remember запоминает метки последней диагностики, чтобы /remedy и /about работали без аргументов.
func (u *User) Remember(ident *Identification) {
	if ident == nil {
		return
	}
	u.LastPlant = ident.PlantName
	u.LastDisease = ident.Label()
}

// LastLabel возвращает последнюю известную метку: болезнь, иначе растение.
func (u *User) LastLabel() string {
	if u.LastDisease != "" {
		return u.LastDisease
	}
	return u.LastPlant
}
