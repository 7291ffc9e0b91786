package engine

// localKey gives each Local a unique identity; only its address matters.
type localKey struct{ _ byte }

// initializing marks a cell whose GetOrInit is still running, so
// re-entrant initialization fails fast instead of recursing.
type initializing struct{}

// Local is a typed per-engine cell. Declare one at package level and use
// it from any code holding an Access; each engine gets its own value.
//
//	var sessions = engine.NewLocal[*SessionTable]()
type Local[T any] struct {
	key *localKey
}

// NewLocal declares a new cell identity.
func NewLocal[T any]() *Local[T] {
	return &Local[T]{key: new(localKey)}
}

// Get returns the cell's value for this engine, if initialized.
// Must be called on the engine goroutine.
func (l *Local[T]) Get(access *Access) (T, bool) {
	var zero T
	v, ok := access.eng.locals[l.key]
	if !ok {
		return zero, false
	}
	if _, mid := v.(initializing); mid {
		panic("engine: Local accessed during its own initialization")
	}
	return v.(T), true
}

// GetOrInit returns the cell's value, initializing it with init on first
// use. init runs with the same Access; initializing the same cell from
// within its own init panics. Must be called on the engine goroutine.
func (l *Local[T]) GetOrInit(access *Access, init func(*Access) (T, error)) (T, error) {
	var zero T
	e := access.eng
	if e.locals == nil {
		e.locals = make(map[*localKey]any)
	}

	if v, ok := e.locals[l.key]; ok {
		if _, mid := v.(initializing); mid {
			panic("engine: Local reinitialized during its own initialization")
		}
		return v.(T), nil
	}

	e.locals[l.key] = initializing{}
	v, err := init(access)
	if err != nil {
		delete(e.locals, l.key)
		return zero, err
	}
	e.locals[l.key] = v
	return v, nil
}
