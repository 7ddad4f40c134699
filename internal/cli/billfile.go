package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smartsplit-app/smartsplit-backend/internal/domain/money"
	"github.com/smartsplit-app/smartsplit-backend/internal/domain/receipt"
)

// BillFile is the YAML shape consumed by the offline split calculator.
// Items reference diners by name, since a hand-written file has no ids:
//
//	title: Friday dinner
//	currency: GBP
//	service_rate: "0.1"
//	diners: [Alice, Bob]
//	items:
//	  - name: Pizza
//	    price: "12.00"
//	    diners: [Alice, Bob]
type BillFile struct {
	Title       string         `yaml:"title"`
	Currency    string         `yaml:"currency"`
	ServiceRate string         `yaml:"service_rate"`
	Diners      []string       `yaml:"diners"`
	Items       []BillFileItem `yaml:"items"`
}

// BillFileItem is one line item in a bill file. An empty price means the
// price has not been entered.
type BillFileItem struct {
	Name   string   `yaml:"name"`
	Price  string   `yaml:"price"`
	Diners []string `yaml:"diners"`
}

// Bill is a fully parsed bill file, ready for the allocation engine.
type Bill struct {
	Title       string
	Currency    string
	Receipt     receipt.Receipt
	Diners      []receipt.Diner
	Assignments receipt.Assignments
}

// LoadBillFile reads and resolves a YAML bill file. Diner names must be
// unique ignoring case; item diner references must resolve.
func LoadBillFile(path string) (*Bill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file BillFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return resolveBillFile(&file)
}

func resolveBillFile(file *BillFile) (*Bill, error) {
	bill := &Bill{
		Title:       file.Title,
		Currency:    strings.ToUpper(file.Currency),
		Assignments: receipt.Assignments{},
	}
	if bill.Currency == "" {
		bill.Currency = "GBP"
	}

	dinersByName := make(map[string]receipt.Diner, len(file.Diners))
	for _, name := range file.Diners {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if _, exists := dinersByName[key]; exists {
			return nil, fmt.Errorf("duplicate diner name %q", name)
		}
		diner := receipt.NewDiner(name)
		dinersByName[key] = diner
		bill.Diners = append(bill.Diners, diner)
	}

	items := make([]receipt.LineItem, 0, len(file.Items))
	for _, fi := range file.Items {
		item := receipt.NewLineItem()
		item.Name = fi.Name
		if fi.Price != "" {
			price, err := money.ParsePrice(fi.Price)
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", fi.Name, err)
			}
			item.Price = &price
		}
		for _, dinerName := range fi.Diners {
			diner, ok := dinersByName[strings.ToLower(strings.TrimSpace(dinerName))]
			if !ok {
				return nil, fmt.Errorf("item %q references unknown diner %q", fi.Name, dinerName)
			}
			bill.Assignments.Toggle(item.ID, diner.ID)
		}
		items = append(items, item)
	}

	bill.Receipt = receipt.New(items)
	if file.ServiceRate != "" {
		rate, err := money.ParseRate(file.ServiceRate)
		if err != nil {
			return nil, err
		}
		bill.Receipt.ServiceRate = rate
	}

	return bill, nil
}
