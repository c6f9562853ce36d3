package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/OscarDom1/community-resource-platform/internal/client/api"
	"github.com/OscarDom1/community-resource-platform/internal/server/models"
)

// List prints resources. Optional args: mine, available, unavailable.
func (a *App) List(ctx context.Context, args []string) error {
	var opts api.ListOptions
	for _, arg := range args {
		switch arg {
		case "mine":
			if !a.requireLogin() {
				return nil
			}
			opts.OwnerID = a.user.ID
		case "available":
			b := true
			opts.Available = &b
		case "unavailable":
			b := false
			opts.Available = &b
		default:
			a.println("Usage: list [mine] [available|unavailable]")
			return nil
		}
	}

	out, err := a.api.ListResources(ctx, opts)
	if err != nil {
		return a.report(err)
	}
	if len(out) == 0 {
		a.println("No resources.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAVAILABLE\tOWNER")
	for _, r := range out {
		owner := r.OwnerID
		if a.user != nil && owner == a.user.ID {
			owner = "me"
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", r.ID, r.Title, r.Available, owner)
	}
	return tw.Flush()
}

func (a *App) Show(ctx context.Context, id string) error {
	r, err := a.api.GetResource(ctx, id)
	if err != nil {
		return a.report(err)
	}
	a.printResource(r)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	desc, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	avail, err := GetBool(a.reader, "Available now?", a.out)
	if err != nil {
		a.println(err)
		return err
	}

	r, err := a.api.CreateResource(ctx, a.token, api.NewResource{Title: title, Description: desc, Available: avail})
	if err != nil {
		return a.report(err)
	}
	a.println("Created", r.ID)
	return nil
}

// Edit changes title, description or availability; skipped answers keep
// the stored value.
func (a *App) Edit(ctx context.Context, id string) error {
	if !a.requireLogin() {
		return nil
	}
	var upd api.ResourceUpdate
	var err error
	if upd.Title, err = GetOptionalText(a.reader, "New title", a.out); err != nil {
		return err
	}
	if upd.Description, err = GetOptionalText(a.reader, "New description", a.out); err != nil {
		return err
	}
	if upd.Available, err = GetBool(a.reader, "Available?", a.out); err != nil {
		a.println(err)
		return err
	}

	r, err := a.api.UpdateResource(ctx, a.token, id, upd)
	if err != nil {
		return a.report(err)
	}
	a.printResource(r)
	return nil
}

// Toggle flips availability of an owned resource.
func (a *App) Toggle(ctx context.Context, id string) error {
	if !a.requireLogin() {
		return nil
	}
	cur, err := a.api.GetResource(ctx, id)
	if err != nil {
		return a.report(err)
	}
	next := !cur.Available
	r, err := a.api.UpdateResource(ctx, a.token, id, api.ResourceUpdate{Available: &next})
	if err != nil {
		return a.report(err)
	}
	a.println(fmt.Sprintf("%s is now available=%t", r.Title, r.Available))
	return nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	if !a.requireLogin() {
		return nil
	}
	if err := a.api.DeleteResource(ctx, a.token, id); err != nil {
		return a.report(err)
	}
	a.println("Deleted", id)
	return nil
}

func (a *App) printResource(r *models.Resource) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "id: %s\nowner: %s\navailable: %t\ncreated: %s\n", r.ID, r.OwnerID, r.Available, r.CreatedAt.Format("2006-01-02 15:04"))
	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}
	fmt.Fprint(a.out, b.String())
}
