package app

import "time"

// SetClock подменяет часы сервиса изображений в тестах.
func (uc *ImageUseCaseImpl) SetClock(now func() time.Time) { uc.now = now }

// SetIDGenerator подменяет генератор идентификаторов объектов в тестах.
func (uc *ImageUseCaseImpl) SetIDGenerator(newID func() string) { uc.newID = newID }
