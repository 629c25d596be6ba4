// cmd/taxoncheck-misclass/main.go
package main

import (
	"taxoncheck/internal/appshell"
	"taxoncheck/internal/misclassapp"
)

func main() {
	appshell.Main(misclassapp.RunContext)
}
