package entity

import "errors"

var (
	// ErrNoResult: идентификатор не смог ничего распознать на фото.
	ErrNoResult = errors.New("no identification result")

	// ErrPoorImage: фото не прошло проверку качества.
	ErrPoorImage = errors.New("image quality is too low")

	// ErrInvalidTable: таблица средств собрана из некорректных данных.
	ErrInvalidTable = errors.New("invalid remedy table")
)
