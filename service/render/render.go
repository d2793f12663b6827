package render

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/x-xyz/auction/domain"
)

const missing = "--"

func orMissing(s string) string {
	if s == "" {
		return missing
	}
	return s
}

func bidderName(b domain.Bid) string {
	if b.Bidder != nil {
		if b.Bidder.FullName != "" {
			return b.Bidder.FullName
		}
		if b.Bidder.Username != "" {
			return b.Bidder.Username
		}
	}
	if id := b.BidderID(); id != 0 {
		return fmt.Sprintf("#%d", id)
	}
	return missing
}

// Detail writes the item page as evaluated at now, times shown in loc
func Detail(w io.Writer, item *domain.Item, bids []domain.Bid, now time.Time, loc *time.Location) error {
	if item == nil {
		_, err := fmt.Fprintln(w, domain.MsgNotFound)
		return err
	}

	status := item.Status(now)
	seller := missing
	if item.Seller != nil {
		seller = orMissing(item.Seller.FullName)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t[%s]\n", orMissing(item.Title), status)
	fmt.Fprintf(tw, "Description:\t%s\n", orMissing(item.Description))
	fmt.Fprintf(tw, "Seller:\t%s\n", seller)
	fmt.Fprintf(tw, "Starting bid:\t%s\n", domain.FormatAmount(item.MinimumBid))
	fmt.Fprintf(tw, "Bid increment:\t%s\n", domain.FormatAmount(item.BidIncrement))
	fmt.Fprintf(tw, "Current bid:\t%s\n", domain.FormatAmount(item.Floor()))
	fmt.Fprintf(tw, "Starts:\t%s\n", item.BidStartDate.Display(loc))
	fmt.Fprintf(tw, "Ends:\t%s\n", item.BidEndDate.Display(loc))
	fmt.Fprintf(tw, "Action:\t%s\n", status.Label())
	if err := tw.Flush(); err != nil {
		return err
	}

	return History(w, bids, loc)
}

// History writes the bid rows in the given order
func History(w io.Writer, bids []domain.Bid, loc *time.Location) error {
	if len(bids) == 0 {
		_, err := fmt.Fprintln(w, "\nNo bids yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nBidder\tAmount\tDate")
	for _, b := range bids {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", bidderName(b), domain.FormatAmount(b.BidAmount), b.BidDate.Display(loc))
	}
	return tw.Flush()
}

// Cards writes one line per list card
func Cards(w io.Writer, cards []domain.Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, "No items.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, cd := range cards {
		fmt.Fprintf(tw, "#%d\t%s\t[%s]\t%s\t%s\n", cd.Id, orMissing(cd.Title), cd.Status, cd.Window, cd.Status.Label())
	}
	return tw.Flush()
}
