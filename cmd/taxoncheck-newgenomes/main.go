// cmd/taxoncheck-newgenomes/main.go
package main

import (
	"taxoncheck/internal/appshell"
	"taxoncheck/internal/newgenomesapp"
)

func main() {
	appshell.Main(newgenomesapp.RunContext)
}
