package iocli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func newFileStdio(t *testing.T, input string) (*Stdio, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := os.Create(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return newStdio(strings.NewReader(input), f), path
}

func TestStdio_Output(t *testing.T) {
	stdio, path := newFileStdio(t, "")

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s\n", 1, "abc")
	_, err := stdio.Write([]byte("raw"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world\ntest 1 abc\nraw", string(data))
}

// Тест ReadInput: читаем из буфера вместо os.Stdin
func TestStdio_ReadInput(t *testing.T) {
	stdio, _ := newFileStdio(t, "  user input \nsecond\n")

	result, err := stdio.ReadInput("Prompt: ")
	assert.NoError(t, err)
	assert.Equal(t, "user input", result)
}

func TestStdio_ReadInput_Sequential(t *testing.T) {
	stdio, _ := newFileStdio(t, "first\nsecond\n")

	first, err := stdio.ReadInput("")
	require.NoError(t, err)
	second, err := stdio.ReadInput("")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
}

func TestStdio_ReadInput_NoTrailingNewline(t *testing.T) {
	stdio, _ := newFileStdio(t, "last line")

	result, err := stdio.ReadInput("")
	assert.NoError(t, err)
	assert.Equal(t, "last line", result)
}

func TestStdio_ReadInput_Empty(t *testing.T) {
	stdio, _ := newFileStdio(t, "")

	_, err := stdio.ReadInput("")
	assert.Error(t, err)
}

// Обычный файл не является терминалом
func TestStdio_NotTerminal(t *testing.T) {
	stdio, _ := newFileStdio(t, "")

	assert.False(t, stdio.IsTerminal())
	assert.Equal(t, 0, stdio.Width())
}
