package retry

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"syscall"
	"time"
)

// backoffIntervals описывает интервалы ожидания между повторными попытками.
var backoffIntervals = []time.Duration{50 * time.Millisecond, 150 * time.Millisecond, 300 * time.Millisecond}

// IsRetriableFileError проверяет, можно ли считать ошибку при работе с файлом временной.
func IsRetriableFileError(err error) bool {
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) {
		var linkErr *os.LinkError
		if !errors.As(err, &linkErr) {
			return false
		}
	}
	if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.EINTR) {
		return true
	}
	// Например, если в тексте ошибки есть "busy" или "temporarily", считаем её временной.
	lowerMsg := strings.ToLower(err.Error())
	return strings.Contains(lowerMsg, "busy") || strings.Contains(lowerMsg, "temporarily")
}

// DoWithRetry делает до 4 попыток вызвать fn(), повторяя только временные файловые ошибки.
func DoWithRetry(fn func() error) error {
	var lastErr error
	for i := 0; i <= len(backoffIntervals); i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetriableFileError(err) {
			return err
		}

		if i < len(backoffIntervals) {
			time.Sleep(backoffIntervals[i])
		}
	}

	return lastErr
}
