package postgres

import (
	"whispr/internal/diary/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	entryRepo repositories.EntryRepository
	userRepo  repositories.UserRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPool) *RepositoryFactory {
	return &RepositoryFactory{
		entryRepo: NewEntryRepository(pool),
		userRepo:  NewUserRepository(pool),
	}
}

// EntryRepository возвращает репозиторий записей.
func (f *RepositoryFactory) EntryRepository() repositories.EntryRepository {
	return f.entryRepo
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}
