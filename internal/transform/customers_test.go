package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cartload/pkg/models"
)

func invoiceWithParticipants(orderID, raw string) models.Invoice {
	return models.Invoice{OrderID: orderID, RawParticipants: raw}
}

func TestBuildCustomerLinksFirstSeenIdentity(t *testing.T) {
	loadDate := time.Date(2023, 2, 27, 0, 0, 0, 0, time.UTC)
	invoices := []models.Invoice{
		invoiceWithParticipants("ORD-1", "['Alice Mann', 'Bob Day']"),
		invoiceWithParticipants("ORD-2", "['Carol Vu', 'Alice Mann']"),
		invoiceWithParticipants("ORD-3", "['Bob Day']"),
	}

	links := BuildCustomerLinks(invoices, loadDate)
	require.Len(t, links, 5)

	// First distinct name gets "1", second "2", and so on, globally across
	// the dataset; repeats reuse their identifier.
	assert.Equal(t, models.CustomerOrderLink{OrderID: "ORD-1", ParticipantName: "Alice Mann", CustomerID: "1", LastUpdated: loadDate}, links[0])
	assert.Equal(t, "2", links[1].CustomerID) // Bob Day
	assert.Equal(t, "3", links[2].CustomerID) // Carol Vu
	assert.Equal(t, "1", links[3].CustomerID) // Alice Mann again
	assert.Equal(t, "2", links[4].CustomerID) // Bob Day again
	assert.Equal(t, "ORD-3", links[4].OrderID)
}

func TestBuildCustomerLinksRowCountMatchesExtraction(t *testing.T) {
	invoices := []models.Invoice{
		invoiceWithParticipants("ORD-1", "['A', 'B', 'C']"),
		invoiceWithParticipants("ORD-2", "[]"),
		invoiceWithParticipants("ORD-3", "['D']"),
	}

	links := BuildCustomerLinks(invoices, time.Now())

	want := 0
	for _, inv := range invoices {
		want += len(ExtractParticipants(inv.RawParticipants))
	}
	assert.Len(t, links, want)

	// ORD-2 contributed nothing.
	for _, link := range links {
		assert.NotEqual(t, "ORD-2", link.OrderID)
	}
}

func TestBuildCustomerLinksPreservesOrderWithinInvoice(t *testing.T) {
	links := BuildCustomerLinks([]models.Invoice{
		invoiceWithParticipants("ORD-1", "['Zed', 'Amy', 'Mia']"),
	}, time.Now())

	require.Len(t, links, 3)
	assert.Equal(t, "Zed", links[0].ParticipantName)
	assert.Equal(t, "Amy", links[1].ParticipantName)
	assert.Equal(t, "Mia", links[2].ParticipantName)
}

func TestBuildCustomerLinksEmpty(t *testing.T) {
	assert.Empty(t, BuildCustomerLinks(nil, time.Now()))
}
