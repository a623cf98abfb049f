package probe

import (
	"log"      // want `пакет log запрещён во внутренних пакетах, используйте logrus`
	"log/slog" // want `пакет log/slog запрещён во внутренних пакетах, используйте logrus`
)

func Report(msg string) {
	log.Println(msg)
	slog.Info(msg)
}
