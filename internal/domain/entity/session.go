package entity

// SessionState состояние пользователя в диалоге
type SessionState string

const (
	StateMainMenu      SessionState = "main_menu"      // В главном меню
	StateAwaitingPhoto SessionState = "awaiting_photo" // Ожидание фото трещины
	StateProcessing    SessionState = "processing"     // Идёт измерение
)

// Session представляет пользователя бота и его настройки оптики
type Session struct {
	UserID int64            // Telegram User ID
	ChatID int64            // Telegram Chat ID
	State  SessionState     // Текущее состояние
	Optics OpticalConstants // Оптика, с которой снимает пользователь
}

// NewSession создаёт сессию с оптикой по умолчанию
func NewSession(userID, chatID int64) *Session {
	return &Session{
		UserID: userID,
		ChatID: chatID,
		State:  StateMainMenu,
		Optics: DefaultOpticalConstants(),
	}
}

// SetState обновляет состояние
func (s *Session) SetState(state SessionState) {
	s.State = state
}

// SetOptics заменяет оптику после проверки
func (s *Session) SetOptics(o OpticalConstants) error {
	if err := o.Validate(); err != nil {
		return err
	}
	s.Optics = o
	return nil
}

// ResetOptics возвращает оптику по умолчанию
func (s *Session) ResetOptics() {
	s.Optics = DefaultOpticalConstants()
}
