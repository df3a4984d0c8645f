package models

import "strings"

const (
	// FileNameSeparator разделяет коды в имени файла документа.
	FileNameSeparator = ","
	// FileNameSuffix добавляется к имени файла документа.
	FileNameSuffix = "_labels.pdf"
)

// LabelBatch представляет упорядоченный набор этикеток из одного сообщения.
// Каждой записи соответствует одна страница документа, порядок сохраняется.
type LabelBatch []LabelRequest

// Codes возвращает коды всех записей пакета в исходном порядке.
func (b LabelBatch) Codes() []string {
	codes := make([]string, 0, len(b))
	for _, r := range b {
		codes = append(codes, r.Code)
	}
	return codes
}

// FileName возвращает имя файла документа: коды через запятую и суффикс "_labels.pdf".
func (b LabelBatch) FileName() string {
	return strings.Join(b.Codes(), FileNameSeparator) + FileNameSuffix
}

// RenderedDocument представляет готовый PDF-документ.
// Живёт только в памяти в рамках одного запроса.
type RenderedDocument struct {
	FileName string
	Data     []byte
	Pages    int
}
