package console

// Notifier is the console's toast surface. Success and failure of every user
// action end up here, regardless of whether the action changed anything.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Confirmer asks the interactive yes/no question before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }
