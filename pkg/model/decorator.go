package model

// Decorator enriches a form spec after it has been declared or loaded, for
// example to bind option lists or resolve widget hints.
type Decorator interface {
	Decorate(*FormSpec) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormSpec) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormSpec) error {
	return fn(form)
}
