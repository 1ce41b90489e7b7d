package domain

import "time"

// FairStatus indicates the lifecycle state of a fair.
type FairStatus string

const (
	FairActive   FairStatus = "Active"
	FairPlanning FairStatus = "Planning"
	FairArchived FairStatus = "Archived"
)

// Fair is a trade-show event. It exclusively owns its clients and the real
// expense transactions imputed against them.
type Fair struct {
	FairID       string        `json:"id"`
	Name         string        `json:"name"`
	Status       FairStatus    `json:"status"`
	Date         time.Time     `json:"date"`
	Clients      []Client      `json:"clients"`
	RealExpenses []RealExpense `json:"realExpenses"`
}

// FindClient returns the client with the given ID, or nil.
func (f *Fair) FindClient(clientID string) *Client {
	for i := range f.Clients {
		if f.Clients[i].ClientID == clientID {
			return &f.Clients[i]
		}
	}
	return nil
}

// FindExpense returns the real expense with the given ID, or nil.
func (f *Fair) FindExpense(expenseID string) *RealExpense {
	for i := range f.RealExpenses {
		if f.RealExpenses[i].ExpenseID == expenseID {
			return &f.RealExpenses[i]
		}
	}
	return nil
}

// Dataset is the whole persisted document: every fair with its clients and
// transactions. Storage treats it as an atomic read/replace unit.
type Dataset struct {
	Fairs []Fair `json:"fairs"`
}

// FindFair returns the fair with the given ID, or nil.
func (d *Dataset) FindFair(fairID string) *Fair {
	for i := range d.Fairs {
		if d.Fairs[i].FairID == fairID {
			return &d.Fairs[i]
		}
	}
	return nil
}
