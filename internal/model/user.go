// Package model содержит модели данных.
//
// Группа: ENTITIES - Основные сущности
// Содержит: User
package model

import (
	"github.com/uptrace/bun"
)

// User представляет пользователя сервиса.
// Уровень подписки фиксируется при первой вставке и не обновляется.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID    int64  `bun:"user_id,pk,type:integer" json:"user_id"`
	FirstName string `bun:"first_name,type:varchar" json:"first_name"`
	LastName  string `bun:"last_name,type:varchar" json:"last_name"`
	Gender    string `bun:"gender,type:char(1)" json:"gender"`
	Level     string `bun:"level,type:varchar(5)" json:"level"`
}
