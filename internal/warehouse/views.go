package warehouse

import (
	"context"

	"cartload/pkg/errors"
)

// View is one derived relation over the base tables. Views are pure derived
// state: the store recomputes them on demand and nothing in the pipeline
// caches their results.
type View struct {
	Name string
	SQL  string
}

// Views lists the ten analytical views in creation order. The aggregation
// semantics here are the pipeline's externally visible contract.
var Views = []View{
	{
		Name: "customer_stats",
		SQL: `CREATE OR REPLACE VIEW customer_stats
    (customer_name, number_of_orders, total_spent, average_spent)
    AS
    SELECT co.Participant_Name, COUNT(*), SUM(i.Meal_Price), AVG(i.Meal_Price)
    FROM customer_order AS co
        INNER JOIN invoice AS i
            ON co.Order_Id = i.Order_Id
    GROUP BY co.Participant_Name`,
	},
	{
		Name: "company_metrics",
		SQL: `CREATE OR REPLACE VIEW company_metrics
    (company_name, year, month, meal_type,
    monthly_total, monthly_average, number_of_sales, year_to_date, yearly_total)
    AS
    SELECT o.Company_Name, YEAR(i.Date), MONTHNAME(i.Date), i.Type_of_Meal,
        SUM(i.Meal_Price),
        AVG(i.Meal_Price),
        COUNT(*),
        SUM(SUM(i.Meal_Price))
            OVER (PARTITION BY o.Company_Name, YEAR(i.Date)
                    ORDER BY MONTH(i.Date)
                    ROWS UNBOUNDED PRECEDING),
        SUM(SUM(i.Meal_Price))
            OVER (PARTITION BY o.Company_Name, YEAR(i.Date))
    FROM orders AS o
        INNER JOIN invoice AS i
            ON o.Order_Id = i.Order_Id
    GROUP BY o.Company_Name, YEAR(i.Date), MONTH(i.Date), MONTHNAME(i.Date), i.Type_of_Meal
    ORDER BY o.Company_Name, YEAR(i.Date), MONTH(i.Date)`,
	},
	{
		Name: "sales_rep_performance",
		SQL: `CREATE OR REPLACE VIEW sales_rep_performance
    (sales_rep, sales_rep_id, company_name, company_id,
    profit_by_sales_rep, min_sale, max_sale)
    AS
    SELECT s.Sales_Rep, s.Sales_Rep_Id, s.Company_Name, s.Company_Id,
        SUM(i.Meal_Price),
        MIN(i.Meal_Price),
        MAX(i.Meal_Price)
    FROM salesteam AS s
        INNER JOIN orders AS o
            ON s.Company_Id = o.Company_Id
        INNER JOIN invoice AS i
            ON o.Order_Id = i.Order_Id
    GROUP BY s.Sales_Rep, s.Sales_Rep_Id, s.Company_Name, s.Company_Id`,
	},
	{
		Name: "customer_purchases",
		SQL: `CREATE OR REPLACE VIEW customer_purchases
    (customer_name, meal_type, part_of_day, company_name,
    number_of_purchases, total_spent, avg_spent_per_meal)
    AS
    SELECT c.Participant_Name, i.Type_of_Meal, i.Part_of_Day, s.Company_Name,
        COUNT(i.Order_Id),
        SUM(i.Meal_Price),
        AVG(i.Meal_Price)
    FROM invoice AS i
        INNER JOIN customer_order AS c
            ON i.Order_Id = c.Order_Id
        INNER JOIN salesteam AS s
            ON s.Company_Id = i.Company_Id
    GROUP BY c.Participant_Name, i.Type_of_Meal, i.Part_of_Day, s.Company_Name`,
	},
	{
		Name: "sales_by_year",
		SQL: `CREATE OR REPLACE VIEW sales_by_year
    AS
    SELECT YEAR(Date) AS year, COUNT(*) AS total_invoices
    FROM invoice
    GROUP BY YEAR(Date)`,
	},
	{
		Name: "percent_converted",
		SQL: `CREATE OR REPLACE VIEW percent_converted
    AS
    SELECT Company_Name,
        COUNT(Converted) AS converted_total,
        SUM(IF(Converted = 1, Converted, 0)) AS converted_to_order,
        (COUNT(Converted) - SUM(IF(Converted = 1, Converted, 0))) AS not_converted,
        ROUND(((SUM(Converted) / COUNT(*)) * 100), 2) AS percent_converted
    FROM orders
    GROUP BY Company_Name`,
	},
	{
		Name: "avg_meal_price",
		SQL: `CREATE OR REPLACE VIEW avg_meal_price
    AS
    SELECT Type_of_Meal,
        ROUND(AVG(Meal_Price), 2) AS average_meal_price
    FROM invoice
    GROUP BY Type_of_Meal`,
	},
	{
		Name: "total_sales",
		SQL: `CREATE OR REPLACE VIEW total_sales
    AS
    SELECT YEAR(Date) AS year,
        Type_of_Meal,
        SUM(Meal_Price) AS total_sales
    FROM invoice
    GROUP BY YEAR(Date), Type_of_Meal
    ORDER BY year ASC,
        FIELD(Type_of_Meal, 'Breakfast', 'Lunch', 'Dinner')`,
	},
	{
		Name: "avg_participants",
		SQL: `CREATE OR REPLACE VIEW avg_participants
    AS
    SELECT Type_of_Meal,
        AVG(Number_of_Participants) AS average_participants_per_meal
    FROM invoice
    GROUP BY Type_of_Meal`,
	},
	{
		Name: "difference_days",
		SQL: `CREATE OR REPLACE VIEW difference_days
    AS
    SELECT Order_Id,
        Date,
        Date_of_Meal,
        DATEDIFF(Date, Date_of_Meal) AS days_between
    FROM invoice`,
	},
}

// CreateViews creates all ten analytical views over the freshly loaded base
// tables. CREATE OR REPLACE keeps the step idempotent.
func (s *Service) CreateViews(ctx context.Context) error {
	if !s.connected {
		return errors.New(errors.ErrCodeConnectionFailed, "Not connected to database").
			WithSuggestions("Call Connect() before creating views")
	}

	statements := make([]string, 0, len(Views))
	for _, view := range Views {
		statements = append(statements, view.SQL)
	}

	if err := s.execInTx(ctx, statements); err != nil {
		return errors.Wrap(err, errors.GetErrorCode(err), "Failed to create views")
	}

	return nil
}
