package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх стандартных потоков процесса
// Один bufio.Reader на весь процесс: иначе буферизованный ввод теряется между запросами
type Stdio struct {
	in  *bufio.Reader
	out *os.File
}

func NewStdio() IO {
	return newStdio(os.Stdin, os.Stdout)
}

func newStdio(in io.Reader, out *os.File) *Stdio {
	return &Stdio{in: bufio.NewReader(in), out: out}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) IsTerminal() bool {
	return term.IsTerminal(int(s.out.Fd()))
}

func (s *Stdio) Width() int {
	if !s.IsTerminal() {
		return 0
	}
	width, _, err := term.GetSize(int(s.out.Fd()))
	if err != nil {
		return 0
	}
	return width
}
