package clean

import (
	"fmt"
	"os"
)

func Report(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}
