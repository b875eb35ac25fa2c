package transform

import (
	"strconv"
	"time"

	"cartload/internal/source"
	"cartload/pkg/errors"
	"cartload/pkg/models"
)

// Stage runs the full transform layer over the three raw tables and returns
// the staged dataset. Nothing is written anywhere: a staging failure leaves
// the target database untouched.
func Stage(invoices, orderLeads, salesTeam *source.RawTable, loadDate time.Time) (*models.Dataset, error) {
	NormalizeColumns(invoices)
	NormalizeColumns(orderLeads)
	NormalizeColumns(salesTeam)

	orders, err := BuildOrders(orderLeads)
	if err != nil {
		return nil, err
	}

	invoiceRows, err := BuildInvoices(invoices)
	if err != nil {
		return nil, err
	}

	reps, err := BuildSalesTeam(salesTeam)
	if err != nil {
		return nil, err
	}

	return &models.Dataset{
		Orders:        orders,
		Invoices:      invoiceRows,
		SalesTeam:     reps,
		CustomerLinks: BuildCustomerLinks(invoiceRows, loadDate),
	}, nil
}

// BuildOrders types the normalized order-leads table.
func BuildOrders(t *source.RawTable) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(t.Rows))

	for _, row := range t.Rows {
		fields, err := rowFields(t, row, "Order_Id", "Company_Id", "Company_Name", "Date", "Order_Value", "Converted")
		if err != nil {
			return nil, err
		}

		date, err := ParseOrderDate(t.Name, "Date", fields["Date"])
		if err != nil {
			return nil, err
		}

		value, err := parseInt(t.Name, "Order_Value", fields["Order_Value"])
		if err != nil {
			return nil, err
		}

		converted, err := parseFlag(t.Name, "Converted", fields["Converted"])
		if err != nil {
			return nil, err
		}

		orders = append(orders, models.Order{
			OrderID:     fields["Order_Id"],
			CompanyID:   fields["Company_Id"],
			CompanyName: fields["Company_Name"],
			OrderDate:   date,
			OrderValue:  value,
			Converted:   converted,
		})
	}

	return orders, nil
}

// BuildInvoices types the normalized invoice table and derives Part_of_Day
// and the participant count.
func BuildInvoices(t *source.RawTable) ([]models.Invoice, error) {
	invoices := make([]models.Invoice, 0, len(t.Rows))

	for _, row := range t.Rows {
		fields, err := rowFields(t, row, "Order_Id", "Date", "Meal_Id", "Company_Id", "Date_of_Meal", "Participants", "Meal_Price", "Type_of_Meal")
		if err != nil {
			return nil, err
		}

		serviceDate, err := ParseOrderDate(t.Name, "Date", fields["Date"])
		if err != nil {
			return nil, err
		}

		mealTime, err := ParseMealDatetime(t.Name, "Date_of_Meal", fields["Date_of_Meal"])
		if err != nil {
			return nil, err
		}

		price, err := parseInt(t.Name, "Meal_Price", fields["Meal_Price"])
		if err != nil {
			return nil, err
		}

		mealType := models.MealType(fields["Type_of_Meal"])
		if !mealType.Valid() {
			return nil, errors.New(errors.ErrCodeEnumDomain, "unknown meal type").
				WithContext("table", t.Name).
				WithContext("value", fields["Type_of_Meal"])
		}

		raw := fields["Participants"]
		invoices = append(invoices, models.Invoice{
			OrderID:          fields["Order_Id"],
			ServiceDate:      serviceDate,
			MealID:           fields["Meal_Id"],
			CompanyID:        fields["Company_Id"],
			MealDatetime:     mealTime,
			RawParticipants:  raw,
			MealPrice:        price,
			MealType:         mealType,
			PartOfDay:        ClassifyTimeOfDay(mealTime),
			ParticipantCount: len(ExtractParticipants(raw)),
		})
	}

	return invoices, nil
}

// BuildSalesTeam types the normalized sales-team table.
func BuildSalesTeam(t *source.RawTable) ([]models.SalesAssignment, error) {
	reps := make([]models.SalesAssignment, 0, len(t.Rows))

	for _, row := range t.Rows {
		fields, err := rowFields(t, row, "Sales_Rep", "Sales_Rep_Id", "Company_Name", "Company_Id")
		if err != nil {
			return nil, err
		}

		reps = append(reps, models.SalesAssignment{
			SalesRep:    fields["Sales_Rep"],
			SalesRepID:  fields["Sales_Rep_Id"],
			CompanyName: fields["Company_Name"],
			CompanyID:   fields["Company_Id"],
		})
	}

	return reps, nil
}

func rowFields(t *source.RawTable, row []string, columns ...string) (map[string]string, error) {
	fields := make(map[string]string, len(columns))
	for _, col := range columns {
		value, err := t.Get(row, col)
		if err != nil {
			return nil, err
		}
		fields[col] = value
	}
	return fields, nil
}

func parseInt(table, column, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.MalformedInputError(table, column, value, err)
	}
	return n, nil
}

func parseFlag(table, column, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || (n != 0 && n != 1) {
		return 0, errors.MalformedInputError(table, column, value, err)
	}
	return n, nil
}
