package health

import "context"

// CheckerInterface определяет интерфейс проверки готовности к загрузке
type CheckerInterface interface {
	// Check проверяет все компоненты и возвращает итоговый статус
	Check(ctx context.Context) Status
}

// Pinger проверяет доступность хранилища
type Pinger interface {
	PingContext(ctx context.Context) error
}
