// splitctl computes a bill split offline from a YAML bill file and
// prints the per-diner breakdown.
package main

import (
	"fmt"
	"os"

	"github.com/smartsplit-app/smartsplit-backend/internal/cli"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/allocator"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/validator"
)

func main() {
	flags := cli.ParseSplitFlags()

	bill, err := cli.LoadBillFile(flags.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	totals := allocator.Split(bill.Receipt, bill.Diners, bill.Assignments)
	validation := validator.ValidateSplit(bill.Receipt, bill.Assignments, totals)

	cli.PrintBillSummary(os.Stdout, bill)
	cli.PrintSplit(os.Stdout, totals, validation)

	if !validation.Valid {
		os.Exit(1)
	}
}
