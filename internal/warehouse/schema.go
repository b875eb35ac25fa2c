package warehouse

import (
	"context"
	"fmt"

	"cartload/pkg/errors"
)

// Base table DDL. Creation is idempotent (IF NOT EXISTS), but a run always
// drops the whole database first so every load starts from a fresh snapshot.
//
// Part_of_Day declares all six derived labels. An earlier schema revision
// left out 'Evening', which made every 16:00-19:59 meal an insert-time enum
// violation; the domain was extended rather than remapping the label.
const (
	createOrdersTable = `CREATE TABLE IF NOT EXISTS orders (
    Order_Id VARCHAR(100) NOT NULL,
    Company_Id VARCHAR(100) NOT NULL,
    Company_Name VARCHAR(255),
    Date DATE,
    Order_Value SMALLINT,
    Converted TINYINT UNSIGNED,
    PRIMARY KEY (Order_Id, Company_Id),
    INDEX (Company_Id),
    INDEX (Order_Id)
)`

	createInvoiceTable = `CREATE TABLE IF NOT EXISTS invoice (
    Order_Id VARCHAR(100) NOT NULL,
    Date DATE NOT NULL,
    Meal_Id VARCHAR(100) NOT NULL,
    Company_Id VARCHAR(100) NOT NULL,
    Date_of_Meal DATETIME NOT NULL,
    Participants VARCHAR(255),
    Meal_Price SMALLINT,
    Type_of_Meal ENUM('Breakfast', 'Lunch', 'Dinner'),
    Part_of_Day ENUM('Early Morning', 'Late Morning', 'Early Afternoon', 'Evening', 'Night', 'Late Night'),
    Number_of_Participants TINYINT,
    PRIMARY KEY (Order_Id, Date),
    FOREIGN KEY (Order_Id) REFERENCES orders(Order_Id),
    FOREIGN KEY (Company_Id) REFERENCES orders(Company_Id),
    INDEX (Date),
    UNIQUE INDEX unique_order_id (Order_Id)
)`

	createSalesTeamTable = `CREATE TABLE IF NOT EXISTS salesteam (
    Sales_Rep VARCHAR(255),
    Sales_Rep_Id VARCHAR(100),
    Company_Name VARCHAR(255),
    Company_Id VARCHAR(100),
    FOREIGN KEY (Company_Id) REFERENCES orders(Company_Id),
    INDEX (Sales_Rep),
    INDEX (Company_Name)
)`

	createCustomerOrderTable = `CREATE TABLE IF NOT EXISTS customer_order (
    Order_Id VARCHAR(100),
    Participant_Name VARCHAR(255),
    Customer_Id VARCHAR(255),
    Last_Updated DATE,
    FOREIGN KEY (Order_Id) REFERENCES orders(Order_Id),
    INDEX (Participant_Name)
)`
)

// tableDDL lists the base tables in creation order: orders first, since every
// other table carries a foreign key into it.
var tableDDL = []struct {
	name string
	ddl  string
}{
	{"orders", createOrdersTable},
	{"invoice", createInvoiceTable},
	{"salesteam", createSalesTeamTable},
	{"customer_order", createCustomerOrderTable},
}

// Rebuild drops and recreates the target database and its four base tables.
// The reload is destructive by design: each run replaces the entire dataset.
// Table DDL runs inside a transaction so the USE statement and the creates
// share one pooled connection.
func (s *Service) Rebuild(ctx context.Context) error {
	if !s.connected {
		return errors.New(errors.ErrCodeConnectionFailed, "Not connected to database").
			WithSuggestions("Call Connect() before rebuilding the schema")
	}

	for _, stmt := range []string{
		fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", s.config.Database),
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", s.config.Database),
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.SQLError("Failed to rebuild database", stmt, err).
				WithContext("database", s.config.Database)
		}
	}

	statements := make([]string, 0, len(tableDDL))
	for _, t := range tableDDL {
		statements = append(statements, t.ddl)
	}

	if err := s.execInTx(ctx, statements); err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), "Failed to create base tables")
	}

	return nil
}

// execInTx runs statements in the target database on a single connection:
// BeginTx pins one, USE selects the database there, and the statements follow.
func (s *Service) execInTx(ctx context.Context, statements []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSQLTransaction, "Failed to begin transaction")
	}

	use := fmt.Sprintf("USE `%s`", s.config.Database)
	if _, err := tx.ExecContext(ctx, use); err != nil {
		_ = tx.Rollback()
		return errors.SQLError("Failed to select database", use, err)
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return errors.SQLError("Failed to execute statement", stmt, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrCodeSQLTransaction, "Failed to commit transaction")
	}

	return nil
}
