package listview

import (
	"fmt"
	"strconv"
	"time"
)

type payment struct {
	ID        string
	FullName  string
	Email     string
	Status    string
	Amount    float64
	Paid      bool
	CreatedAt time.Time
	Note      string
}

func paymentDescriptor() Descriptor[payment] {
	return Descriptor[payment]{
		Name: "coin payments",
		ID:   func(p payment) string { return p.ID },
		Fields: map[string]Field[payment]{
			"id":         String(func(p payment) string { return p.ID }),
			"full_name":  String(func(p payment) string { return p.FullName }),
			"email":      String(func(p payment) string { return p.Email }),
			"status":     String(func(p payment) string { return p.Status }),
			"amount":     Number(func(p payment) float64 { return p.Amount }),
			"paid":       Bool(func(p payment) bool { return p.Paid }),
			"created_at": Time(func(p payment) time.Time { return p.CreatedAt }),
			"note":       String(func(p payment) string { return p.Note }),
		},
		SearchFields: []string{"full_name", "email", "id"},
		Filters: []FilterDef{
			{Key: "status", Field: "status", Kind: FilterEnum},
			{Key: "paid", Field: "paid", Kind: FilterEnum},
			{Key: "amount", Field: "amount", Kind: FilterRange},
			{Key: "created", Field: "created_at", Kind: FilterDateRange},
		},
		SortFields:  []string{"created_at", "amount", "full_name", "paid"},
		DefaultSort: Sort{Field: "created_at", Dir: Desc},
		Columns: []Column[payment]{
			{Header: "ID", Value: func(p payment) string { return p.ID }},
			{Header: "Name", Value: func(p payment) string { return p.FullName }, SortField: "full_name"},
			{Header: "Amount", Value: func(p payment) string { return fmt.Sprintf("$%.2f", p.Amount) }, Export: func(p payment) string { return strconv.FormatFloat(p.Amount, 'f', -1, 64) }, SortField: "amount"},
			{Header: "Note", Value: func(p payment) string { return p.Note }},
		},
		PageSize: 10,
	}
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 12, 0, 0, 0, time.UTC)
}

func ids(records []payment) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.ID
	}
	return out
}

func makePayments(n int) []payment {
	out := make([]payment, n)
	for i := range out {
		out[i] = payment{
			ID:        fmt.Sprintf("p%02d", i),
			FullName:  fmt.Sprintf("User %d", i),
			Amount:    float64(i * 10),
			CreatedAt: day(time.January, 1).Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}
