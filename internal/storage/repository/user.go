// Package repository содержит репозитории для работы с базой данных.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sparkify/internal/model"

	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserRepository реализует вставку и чтение пользователей
type UserRepository struct {
	db     bun.IDB
	logger *zap.Logger
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db bun.IDB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// InsertIgnore вставляет пользователей. Существующий user_id не обновляется:
// первая запись выигрывает, в том числе по уровню подписки.
func (r *UserRepository) InsertIgnore(ctx context.Context, users []model.User) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}

	res, err := r.insertQuery(users).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to insert users: %w", err)
	}

	return rowsAffected(res), nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	user := new(model.User)

	err := r.db.NewSelect().
		Model(user).
		Where("user_id = ?", userID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user by ID: %w", err)
	}

	return user, nil
}

// insertQuery строит INSERT без обновления существующих user_id
func (r *UserRepository) insertQuery(users []model.User) *bun.InsertQuery {
	return r.db.NewInsert().
		Model(&users).
		On("CONFLICT (user_id) DO NOTHING")
}
