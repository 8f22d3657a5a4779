// Command schema prints the Postgres DDL for the service's models, for use as
// an atlas "external_schema" data source.
package main

import (
	"fmt"
	"io"
	"os"
	"shareit/src/models"

	"ariga.io/atlas-provider-gorm/gormschema"
)

func main() {
	stmts, err := gormschema.New("postgres").Load(models.All()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load gorm schema: %v\n", err)
		os.Exit(1)
	}
	io.WriteString(os.Stdout, stmts)
}
