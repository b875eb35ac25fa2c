package models

import "time"

// MealType is the closed set of meal categories carried by the invoice feed.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
)

// MealTypes lists the meal categories in reporting order. total_sales and the
// schema ENUM both follow this sequence.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

// Valid reports whether the value is one of the declared meal categories.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// PartOfDay is the derived time-of-day bucket for a meal. The six values
// partition all 24 hours; see transform.ClassifyTimeOfDay.
type PartOfDay string

const (
	EarlyMorning   PartOfDay = "Early Morning"
	LateMorning    PartOfDay = "Late Morning"
	EarlyAfternoon PartOfDay = "Early Afternoon"
	Evening        PartOfDay = "Evening"
	Night          PartOfDay = "Night"
	LateNight      PartOfDay = "Late Night"
)

// PartsOfDay lists every bucket. The stored ENUM declares all six; an earlier
// revision of the schema omitted Evening, which rejected every 16:00-19:59
// meal at insert time.
var PartsOfDay = []PartOfDay{EarlyMorning, LateMorning, EarlyAfternoon, Evening, Night, LateNight}

// Order is one sales-lead row. Identity is (OrderID, CompanyID); rows are
// immutable once loaded.
type Order struct {
	OrderID     string
	CompanyID   string
	CompanyName string
	OrderDate   time.Time
	OrderValue  int
	Converted   int // 1 = converted to a sale, 0 = not
}

// Invoice is one billed meal event. OrderID must reference an Order and is
// unique across the table, so an order carries at most one invoice.
type Invoice struct {
	OrderID          string
	ServiceDate      time.Time
	MealID           string
	CompanyID        string
	MealDatetime     time.Time // naive local time, source UTC offset discarded
	RawParticipants  string
	MealPrice        int
	MealType         MealType
	PartOfDay        PartOfDay
	ParticipantCount int
}

// SalesAssignment links a sales rep to a company. Duplicates are legal; the
// table carries no primary key.
type SalesAssignment struct {
	SalesRep    string
	SalesRepID  string
	CompanyName string
	CompanyID   string
}

// CustomerOrderLink is one (order, participant) pair extracted from an
// invoice's raw participant field. CustomerID is a run-scoped sequential
// identity: the first distinct name seen across the whole dataset gets "1".
type CustomerOrderLink struct {
	OrderID         string
	ParticipantName string
	CustomerID      string
	LastUpdated     time.Time // load date
}

// Dataset is the fully staged output of the transform layer, ready for a
// single destructive load. Slice order is the insert order.
type Dataset struct {
	Orders        []Order
	Invoices      []Invoice
	SalesTeam     []SalesAssignment
	CustomerLinks []CustomerOrderLink
}
