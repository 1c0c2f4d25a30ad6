package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует терминал для CLI и терминального представления ленты
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	Write(p []byte) (n int, err error)
	// IsTerminal сообщает, подключен ли вывод к терминалу
	IsTerminal() bool
	// Width возвращает ширину терминала в колонках или 0, если она неизвестна
	Width() int
}
