// Package parser разбирает текст сообщения в пакет запросов на этикетки.
//
// Каждая непустая строка должна иметь вид "<код>, <название>, <место>":
// ровно три поля через запятую, каждое непустое после обрезки пробелов.
// Проверка выполняется по принципу "всё или ничего": одна некорректная строка
// отклоняет всё сообщение.
package parser

import (
	"fmt"
	"strings"

	"github.com/InQaaaaGit/label_bot.git/internal/models"
)

const (
	fieldSeparator = ","
	fieldCount     = 3
)

// Parser разбирает сообщения. Нулевое значение готово к использованию и не ограничивает размер пакета.
type Parser struct {
	maxLabels int
}

// New создает Parser. maxLabels <= 0 означает отсутствие лимита.
func New(maxLabels int) *Parser {
	return &Parser{maxLabels: maxLabels}
}

// Parse разбирает сырой текст в пакет этикеток с сохранением порядка строк.
// При любой ошибке формата возвращает *FormatError и nil вместо пакета.
func (p *Parser) Parse(raw string) (models.LabelBatch, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &FormatError{Err: ErrEmptyInput}
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	batch := make(models.LabelBatch, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		req, err := parseLine(line)
		if err != nil {
			return nil, &FormatError{Line: i + 1, Content: line, Err: err}
		}
		batch = append(batch, req)

		if p.maxLabels > 0 && len(batch) > p.maxLabels {
			return nil, &FormatError{
				Err: fmt.Errorf("%w: limit is %d", ErrTooManyLabels, p.maxLabels),
			}
		}
	}

	return batch, nil
}

// Parse разбирает сообщение без ограничения размера пакета.
func Parse(raw string) (models.LabelBatch, error) {
	return (&Parser{}).Parse(raw)
}

func parseLine(line string) (models.LabelRequest, error) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) != fieldCount {
		return models.LabelRequest{}, fmt.Errorf("%w: want %d, got %d", errFieldCount, fieldCount, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
		if fields[i] == "" {
			return models.LabelRequest{}, fmt.Errorf("%w: field %d", errEmptyField, i+1)
		}
	}

	return models.LabelRequest{
		Code:     fields[0],
		Name:     fields[1],
		Location: fields[2],
	}, nil
}
