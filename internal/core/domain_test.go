package core

import "testing"

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Amount:        12.5,
		Description:   "groceries",
		PaymentMethod: "Cash",
		Category:      "Food",
		Date:          "2024-01-05",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Amount: -1, Description: "a", PaymentMethod: "p", Category: "c", Date: "2024-01-05"},
		{Amount: 1, Description: "", PaymentMethod: "p", Category: "c", Date: "2024-01-05"},
		{Amount: 1, Description: "a", PaymentMethod: "", Category: "c", Date: "2024-01-05"},
		{Amount: 1, Description: "a", PaymentMethod: "p", Category: "", Date: "2024-01-05"},
		{Amount: 1, Description: "a", PaymentMethod: "p", Category: "c", Date: " "},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestIncomeValidate(t *testing.T) {
	good := Income{Amount: 1000, Source: "Salary", Type: "Regular", Date: "2024-01-31"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Income{
		{Amount: -5, Source: "s", Type: "t", Date: "2024-01-31"},
		{Amount: 5, Source: "", Type: "t", Date: "2024-01-31"},
		{Amount: 5, Source: "s", Type: "", Date: "2024-01-31"},
		{Amount: 5, Source: "s", Type: "t", Date: ""},
	}
	for i, in := range bads {
		if err := in.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
