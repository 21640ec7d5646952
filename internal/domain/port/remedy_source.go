package port

import "crop-doctor/internal/domain/entity"

// RemedySource отдаёт текущий снимок таблицы средств.
// Снимок неизменяем; источник может заменить его целиком.
type RemedySource interface {
	Current() *entity.RemedyTable
}
