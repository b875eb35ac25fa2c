package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	"cartload/pkg/errors"
	"cartload/pkg/models"
)

const (
	insertOrder = `INSERT INTO orders
    (Order_Id, Company_Id, Company_Name, Date, Order_Value, Converted)
    VALUES (?, ?, ?, ?, ?, ?)`

	insertInvoice = `INSERT INTO invoice
    (Order_Id, Date, Meal_Id, Company_Id, Date_of_Meal, Participants, Meal_Price, Type_of_Meal, Part_of_Day, Number_of_Participants)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertSalesAssignment = `INSERT INTO salesteam
    (Sales_Rep, Sales_Rep_Id, Company_Name, Company_Id)
    VALUES (?, ?, ?, ?)`

	insertCustomerLink = `INSERT INTO customer_order
    (Order_Id, Participant_Name, Customer_Id, Last_Updated)
    VALUES (?, ?, ?, ?)`
)

// LoadResult reports how many rows each table received.
type LoadResult struct {
	Orders        int
	Invoices      int
	SalesTeam     int
	CustomerLinks int
}

// Load inserts the staged dataset inside a single transaction, in dependency
// order: orders before everything that references it. The first failed row
// rolls the whole transaction back; there are no partial commits.
func (s *Service) Load(ctx context.Context, ds *models.Dataset) (*LoadResult, error) {
	if !s.connected {
		return nil, errors.New(errors.ErrCodeConnectionFailed, "Not connected to database").
			WithSuggestions("Call Connect() before loading")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSQLTransaction, "Failed to begin transaction")
	}

	use := fmt.Sprintf("USE `%s`", s.config.Database)
	if _, err := tx.ExecContext(ctx, use); err != nil {
		_ = tx.Rollback()
		return nil, errors.SQLError("Failed to select database", use, err)
	}

	result, err := loadAll(ctx, tx, ds)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSQLTransaction, "Failed to commit transaction")
	}

	return result, nil
}

func loadAll(ctx context.Context, tx *sql.Tx, ds *models.Dataset) (*LoadResult, error) {
	result := &LoadResult{}

	if err := insertRows(ctx, tx, insertOrder, len(ds.Orders), func(i int) []interface{} {
		o := ds.Orders[i]
		return []interface{}{o.OrderID, o.CompanyID, o.CompanyName, o.OrderDate, o.OrderValue, o.Converted}
	}); err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "Failed to load orders table")
	}
	result.Orders = len(ds.Orders)

	if err := insertRows(ctx, tx, insertInvoice, len(ds.Invoices), func(i int) []interface{} {
		inv := ds.Invoices[i]
		return []interface{}{
			inv.OrderID, inv.ServiceDate, inv.MealID, inv.CompanyID, inv.MealDatetime,
			inv.RawParticipants, inv.MealPrice, string(inv.MealType), string(inv.PartOfDay), inv.ParticipantCount,
		}
	}); err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "Failed to load invoice table")
	}
	result.Invoices = len(ds.Invoices)

	if err := insertRows(ctx, tx, insertSalesAssignment, len(ds.SalesTeam), func(i int) []interface{} {
		r := ds.SalesTeam[i]
		return []interface{}{r.SalesRep, r.SalesRepID, r.CompanyName, r.CompanyID}
	}); err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "Failed to load salesteam table")
	}
	result.SalesTeam = len(ds.SalesTeam)

	if err := insertRows(ctx, tx, insertCustomerLink, len(ds.CustomerLinks), func(i int) []interface{} {
		l := ds.CustomerLinks[i]
		return []interface{}{l.OrderID, l.ParticipantName, l.CustomerID, l.LastUpdated}
	}); err != nil {
		return nil, errors.Wrap(err, errors.GetErrorCode(err), "Failed to load customer_order table")
	}
	result.CustomerLinks = len(ds.CustomerLinks)

	return result, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, query string, n int, args func(int) []interface{}) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return errors.SQLError("Failed to prepare insert", query, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return errors.SQLError("Failed to insert row", query, err).
				WithContext("row", i+1).
				WithContext("total_rows", n)
		}
	}

	return nil
}
