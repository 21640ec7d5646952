package env

import (
	"os"
	"strings"
)

// Variable: переменная окружения, задающая режим запуска.
const Variable = "CROP_DOCTOR_ENV"

// Environment: режим запуска приложения.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// FromEnv читает режим из CROP_DOCTOR_ENV. По умолчанию development.
func FromEnv() Environment {
	return Parse(os.Getenv(Variable))
}

// Parse разбирает строку режима; неизвестные значения считаются development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return Production
	default:
		return Development
	}
}

// IsProduction сообщает, запущены ли мы в production.
func (e Environment) IsProduction() bool {
	return e == Production
}
