package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"ticketdesk/internal/app/accounts"
	"ticketdesk/internal/app/events"
	"ticketdesk/internal/app/orders"
	"ticketdesk/internal/app/promos"
	"ticketdesk/internal/listview"
)

// Terminal renderers standing in for the admin UI. Each one draws the
// current page slice, the summary and the pagination state it was
// handed; it never reaches back into console state.

const dateLayout = "2006-01-02"

func header(title string) {
	fmt.Printf("\n== %s ==\n", title)
}

func pageFooter(number, totalPages, totalItems int) {
	if totalItems == 0 {
		fmt.Println("   (no results)")
		return
	}
	fmt.Printf("   page %d/%d, %d records\n", number, totalPages, totalItems)
}

func loadingLine(title string, active bool) {
	if active {
		fmt.Printf("-- %s: loading...\n", title)
	}
}

type accountsRenderer struct{}

func (accountsRenderer) RenderPage(page listview.Page[accounts.Account], summary accounts.Summary) {
	header("Accounts")
	fmt.Printf("   total %d | new this week %d | organizers %d | suspended %d\n",
		summary.Total, summary.NewThisWeek, summary.Organizers, summary.Suspended)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "   ID\tNAME\tEMAIL\tROLES\tSTATUS\tJOINED")
	for _, a := range page.Items {
		fmt.Fprintf(w, "   %s\t%s\t%s\t%v\t%s\t%s\n",
			a.ID, a.Name, a.Email, a.Roles, a.Status, a.JoinedAt.Format(dateLayout))
	}
	w.Flush()
	pageFooter(page.Number, page.TotalPages, page.TotalItems)
}

func (accountsRenderer) RenderLoading(active bool) {
	loadingLine("Accounts", active)
}

type eventsRenderer struct{}

func (eventsRenderer) RenderPage(page listview.Page[events.Listing], summary events.Summary) {
	header("Events")
	fmt.Printf("   total %d | pending %d | approved %d | tickets sold %d\n",
		summary.Total, summary.PendingApproval, summary.Approved, summary.TicketsSold)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "   ID\tNAME\tORGANIZER\tDATE\tSOLD\tSTATUS")
	for _, l := range page.Items {
		fmt.Fprintf(w, "   %s\t%s\t%s\t%s\t%d\t%s\n",
			l.ID, l.Name, l.Organizer, l.StartsAt.Format(dateLayout), l.TicketsSold, l.Status)
	}
	w.Flush()
	pageFooter(page.Number, page.TotalPages, page.TotalItems)
}

func (eventsRenderer) RenderLoading(active bool) {
	loadingLine("Events", active)
}

type ordersRenderer struct{}

func (ordersRenderer) RenderPage(page listview.Page[orders.Order], summary orders.Summary) {
	header("Orders")
	fmt.Printf("   total %d | pending %d | paid today %d\n",
		summary.Total, summary.Pending, summary.PaidToday)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "   ID\tCUSTOMER\tEVENT\tPLACED\tTOTAL\tSTATUS")
	for _, o := range page.Items {
		fmt.Fprintf(w, "   %s\t%s\t%s\t%s\t%d\t%s\n",
			o.ID, o.CustomerName, o.Event, o.PlacedAt.Format(dateLayout), o.Total(), o.Status)
	}
	w.Flush()
	pageFooter(page.Number, page.TotalPages, page.TotalItems)
}

func (ordersRenderer) RenderLoading(active bool) {
	loadingLine("Orders", active)
}

type promosRenderer struct {
	now func() time.Time
}

func (r promosRenderer) RenderPage(page listview.Page[promos.Code], summary promos.Summary) {
	header("Promo codes")
	fmt.Printf("   total %d | active %d | expired %d\n",
		summary.Total, summary.Active, summary.Expired)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "   CODE\tKIND\tVALUE\tUSED\tEXPIRES\tSTATUS")
	for _, c := range page.Items {
		fmt.Fprintf(w, "   %s\t%s\t%d\t%d/%d\t%s\t%s\n",
			c.Code, c.Kind, c.Value, c.Used, c.Limit,
			c.ExpiresAt.Format(dateLayout), c.Status(r.now()))
	}
	w.Flush()
	pageFooter(page.Number, page.TotalPages, page.TotalItems)
}

func (r promosRenderer) RenderLoading(active bool) {
	loadingLine("Promo codes", active)
}
