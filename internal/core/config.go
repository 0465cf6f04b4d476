package core

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
