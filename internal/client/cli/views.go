package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/akimovd/wastepoint/internal/client/guard"
	"github.com/akimovd/wastepoint/internal/client/userstate"
)

// textView is a placeholder page; real content is fetched by per-page service
// calls outside this subsystem.
type textView struct {
	name string
	body string
}

func (v textView) Name() string { return v.name }

func (v textView) Render(ctx context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, v.body)
	return err
}

// guardedView couples a view with the permissions it requires.
type guardedView struct {
	view     guard.View
	required []userstate.Permission
}

// views is the navigable page table. Permission requirements mirror the
// role → capability mapping: e.g. reports are a municipality/admin page,
// pickups a household page.
var views = map[string]guardedView{
	"reports": {
		view:     textView{name: "reports", body: "Collection reports"},
		required: []userstate.Permission{userstate.PermViewReports},
	},
	"collectors": {
		view:     textView{name: "collectors", body: "Collector management"},
		required: []userstate.Permission{userstate.PermManageCollectors},
	},
	"schedule": {
		view:     textView{name: "schedule", body: "Pickup schedule"},
		required: []userstate.Permission{userstate.PermViewSchedule},
	},
	"requests": {
		view:     textView{name: "requests", body: "Service requests"},
		required: []userstate.Permission{userstate.PermViewServiceRequests},
	},
	"pickups": {
		view:     textView{name: "pickups", body: "Request a pickup"},
		required: []userstate.Permission{userstate.PermRequestPickup},
	},
	"payments": {
		view:     textView{name: "payments", body: "Payment history"},
		required: []userstate.Permission{userstate.PermViewPaymentHistory},
	},
}

// Open resolves the named view through the route guard and renders whatever
// the guard decided: the page itself, a loading placeholder, or a redirect.
func (a *App) Open(ctx context.Context, name string) error {
	gv, ok := views[name]
	if !ok {
		fmt.Fprintf(a.out, "Unknown view: %s\n", name)
		return nil
	}
	return a.guard.Resolve(gv.view, gv.required...).Render(ctx, a.out)
}
