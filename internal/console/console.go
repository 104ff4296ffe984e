// Package console drives a single donation session from line-oriented text
// input, for operators without a browser.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"reliefdesk/internal/domain"
	"reliefdesk/internal/donation"
	"reliefdesk/internal/locale"
)

const helpText = `commands:
  presets            list preset amounts
  preset N           select preset amount N (clears custom amount)
  amount S           set custom amount
  name S | email S | message S
  draft              show the current draft
  submit             submit the draft
  approve ID         approve a pending donation
  reject ID          reject a pending donation
  list               show all donations
  help | quit`

// Console reads commands and applies them to one donation manager.
type Console struct {
	manager *donation.Manager
	locale  string
	out     io.Writer
}

// New returns a console bound to m, printing messages for loc.
func New(m *donation.Manager, loc string, out io.Writer) *Console {
	return &Console{manager: m, locale: loc, out: out}
}

// Run processes commands until input ends, "quit" is read or ctx is done.
// Cancellation is noticed while waiting for input; the reader goroutine is
// left blocked on in until it returns.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(c.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case err := <-readErr:
			fmt.Fprintln(c.out)
			return err
		case line := <-lines:
			if quit := c.Exec(line); quit {
				return nil
			}
		}
	}
}

// Exec runs one command line and reports whether the session should end.
func (c *Console) Exec(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(c.out, helpText)
	case "presets":
		for _, p := range c.manager.Presets() {
			fmt.Fprintln(c.out, locale.FormatAmount(c.locale, p))
		}
	case "preset":
		amount, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			fmt.Fprintf(c.out, "preset needs a number, got %q\n", arg)
			break
		}
		if _, err := c.manager.SelectPreset(amount); err != nil {
			fmt.Fprintln(c.out, locale.Sprintf(c.locale, locale.MsgUnknownPreset, amount))
			break
		}
		c.printDraft()
	case "amount":
		c.patch(domain.DraftPatch{CustomAmount: &arg})
	case "name":
		c.patch(domain.DraftPatch{Name: &arg})
	case "email":
		c.patch(domain.DraftPatch{Email: &arg})
	case "message":
		c.patch(domain.DraftPatch{Message: &arg})
	case "draft":
		c.printDraft()
	case "submit":
		c.submit()
	case "approve":
		c.review(arg, domain.DecisionApprove)
	case "reject":
		c.review(arg, domain.DecisionReject)
	case "list":
		c.list()
	default:
		fmt.Fprintf(c.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (c *Console) patch(p domain.DraftPatch) {
	if _, err := c.manager.UpdateDraft(p); err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	c.printDraft()
}

func (c *Console) submit() {
	record, err := c.manager.Submit()
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		fmt.Fprintln(c.out, locale.Sprintf(c.locale, locale.MsgMinimumDonation, domain.MinimumAmount))
	case err != nil:
		fmt.Fprintln(c.out, locale.Sprintf(c.locale, locale.MsgSubmitFailed))
	default:
		fmt.Fprintln(c.out, locale.Sprintf(c.locale, locale.MsgSubmitted, record.ID))
	}
}

func (c *Console) review(id string, decision domain.Decision) {
	record, applied, found := c.manager.Review(id, decision)
	switch {
	case !found:
		fmt.Fprintln(c.out, locale.Sprintf(c.locale, locale.MsgNotFound))
	case !applied:
		fmt.Fprintf(c.out, "%s already %s\n", record.ID, record.Status)
	default:
		fmt.Fprintf(c.out, "%s %s\n", record.ID, record.Status)
	}
}

func (c *Console) list() {
	records := c.manager.Donations()
	if len(records) == 0 {
		fmt.Fprintln(c.out, locale.Sprintf(c.locale, locale.MsgNoDonations))
		return
	}
	for _, d := range records {
		fmt.Fprintf(c.out, "%-12s %-20s %10s  %s\n", d.ID, d.DonorName, locale.FormatAmount(c.locale, d.Amount), d.Status)
	}
	sum := c.manager.Summary()
	fmt.Fprintf(c.out, "pending %d, approved %d (%s), rejected %d\n",
		sum.Pending, sum.Approved, locale.FormatAmount(c.locale, sum.ApprovedAmount), sum.Rejected)
}

func (c *Console) printDraft() {
	d := c.manager.Draft()
	amount := locale.FormatAmount(c.locale, d.Preset)
	if d.CustomAmount != "" {
		amount = fmt.Sprintf("custom %q", d.CustomAmount)
	}
	fmt.Fprintf(c.out, "draft: amount=%s name=%q email=%q message=%q\n", amount, d.Name, d.Email, d.Message)
}
