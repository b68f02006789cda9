// Package iocli абстрагирует терминальный ввод-вывод команд клиента.
package iocli

// IO ввод-вывод CLI. Write позволяет использовать IO как io.Writer для cobra.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
