package feedback

import "github.com/shaiso/feedback/internal/domain"

// State — состояние контрола.
//
// Жизненный цикл:
//
//	IDLE → REFINING(p) → IDLE (submit, cancel, повторный клик по p)
//	       REFINING(p1) → REFINING(p2) (клик по другой кнопке)
//
// SELECTED существует только как промежуточная точка: выбор polarity сразу
// открывает панель уточнения.
type State string

const (
	// StateIdle — ничего не выбрано.
	StateIdle State = "IDLE"

	// StateSelected — polarity выбрана, панель закрыта.
	StateSelected State = "SELECTED"

	// StateRefining — polarity выбрана, открыта панель score/comment.
	StateRefining State = "REFINING"
)

// Selection — временное состояние UI для одного контрола.
// Не сохраняется и не разделяется между trace.
type Selection struct {
	// Polarity — текущая выбранная кнопка.
	Polarity domain.Polarity `json:"polarity"`

	// RefinementOpen — видна ли панель score/comment.
	RefinementOpen bool `json:"refinement_open"`

	// DraftComment — черновик комментария (как ввёл пользователь).
	DraftComment string `json:"draft_comment"`

	// DraftScore — черновик score, сырой текст без валидации.
	DraftScore string `json:"draft_score"`
}

// State вычисляет состояние автомата из полей Selection.
func (s Selection) State() State {
	switch {
	case s.Polarity == domain.PolarityNone:
		return StateIdle
	case s.RefinementOpen:
		return StateRefining
	default:
		return StateSelected
	}
}

// reset возвращает Selection в состояние покоя.
func (s *Selection) reset() {
	*s = Selection{}
}
