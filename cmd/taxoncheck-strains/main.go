// cmd/taxoncheck-strains/main.go
package main

import (
	"taxoncheck/internal/appshell"
	"taxoncheck/internal/strainsapp"
)

func main() {
	appshell.Main(strainsapp.RunContext)
}
