package service

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError — ошибка валидации входных данных. Несёт
// человекочитаемое сообщение первого нарушенного поля; такие ошибки
// не ретраятся и транслируются клиенту как 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// firstValidationMessage переводит ошибку validator в сообщение первого
// нарушенного поля. Сообщения ищутся по ключам "Поле.тег" и "Поле",
// иначе подставляется generic-текст.
func firstValidationMessage(err error, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return msg
		}
		if msg, ok := messages[fe.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("%s is required", fe.Field())
	}
	return "validation error"
}
