package telemetry

// Environment сообщает, где выполняется код.
//
// Клиент телеметрии создаётся только в клиентском контексте (процесс,
// обслуживающий контролы пользователя). В остальных контекстах, например
// при пререндеринге или в служебных командах, Registry не инициализируется.
type Environment interface {
	IsClientContext() bool
}

// EnvironmentFunc позволяет использовать функцию как Environment.
type EnvironmentFunc func() bool

// IsClientContext вызывает f().
func (f EnvironmentFunc) IsClientContext() bool {
	return f()
}

// staticEnvironment — Environment с фиксированным ответом.
type staticEnvironment bool

func (e staticEnvironment) IsClientContext() bool {
	return bool(e)
}

// Готовые окружения.
var (
	// ClientContext — процесс обслуживает контролы пользователя.
	ClientContext Environment = staticEnvironment(true)

	// ServerContext — телеметрия недоступна, инициализация не выполняется.
	ServerContext Environment = staticEnvironment(false)
)
