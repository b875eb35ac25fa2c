package transform

import (
	"strconv"
	"time"

	"cartload/pkg/models"
)

// BuildCustomerLinks decomposes every invoice's raw participant field into
// (order, participant) rows. Customer identities are run-scoped: each
// distinct name string, in first-seen order across the whole dataset, gets
// the next sequential id starting at 1, so a name appearing in several
// orders always resolves to the same id within a run. There is no persistent
// identity resolution across runs.
func BuildCustomerLinks(invoices []models.Invoice, loadDate time.Time) []models.CustomerOrderLink {
	ids := make(map[string]int)
	next := 1

	var links []models.CustomerOrderLink
	for _, inv := range invoices {
		for _, name := range ExtractParticipants(inv.RawParticipants) {
			id, ok := ids[name]
			if !ok {
				id = next
				ids[name] = id
				next++
			}

			links = append(links, models.CustomerOrderLink{
				OrderID:         inv.OrderID,
				ParticipantName: name,
				CustomerID:      strconv.Itoa(id),
				LastUpdated:     loadDate,
			})
		}
	}

	return links
}
