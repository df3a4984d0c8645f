package service

import "fmt"

// TransportError описывает ошибку доставки ответа в чат.
// Повторная отправка не выполняется.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
