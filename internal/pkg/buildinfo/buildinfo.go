// Package buildinfo prints the version stamped into the dashboard binary.
package buildinfo

import "fmt"

// Задаются через -ldflags "-X .../buildinfo.Version=..." при сборке.
var (
	Version string
	Date    string
	Commit  string
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// Print выводит информацию о сборке в stdout.
func Print(version, date, commit string) {
	fmt.Printf("Build version: %s\n", orNA(version))
	fmt.Printf("Build date: %s\n", orNA(date))
	fmt.Printf("Build commit: %s\n", orNA(commit))
}

func PrintSelf() {
	Print(Version, Date, Commit)
}
