package scoring

import (
	"context"

	"github.com/google/uuid"
	"github.com/shaiso/feedback/internal/domain"
)

// DataTypeNumeric — тип score в backend.
const DataTypeNumeric = "NUMERIC"

// Client — транспорт score до backend.
//
// Реализации: HTTPClient, AMQPClient.
type Client interface {
	// Score отправляет одну запись. Повторов нет.
	Score(ctx context.Context, rec Record) error

	// Close освобождает ресурсы транспорта.
	Close() error
}

// Record — запись score в формате backend.
type Record struct {
	// ID — идентификатор записи для ingestion API.
	ID string `json:"id"`

	// TraceID — оцениваемый trace.
	TraceID string `json:"traceId"`

	// Name — имя score, всегда domain.ScoreName.
	Name string `json:"name"`

	// Value — значение в [0.0, 1.0].
	Value float64 `json:"value"`

	// Comment — необязательный комментарий.
	Comment string `json:"comment,omitempty"`

	// DataType — всегда NUMERIC.
	DataType string `json:"dataType"`
}

// NewRecord конвертирует domain.ScoreEvent в Record.
func NewRecord(event domain.ScoreEvent) Record {
	comment, _ := event.Comment()
	return Record{
		ID:       uuid.New().String(),
		TraceID:  event.TraceID(),
		Name:     domain.ScoreName,
		Value:    event.Value(),
		Comment:  comment,
		DataType: DataTypeNumeric,
	}
}
