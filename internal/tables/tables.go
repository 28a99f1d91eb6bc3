// Package tables lists the portal's tables and their header rows.
package tables

import (
	evententity "github.com/ovaphlow/pitchfork/service-engagement/internal/event/entity"
	mentorentity "github.com/ovaphlow/pitchfork/service-engagement/internal/mentorship/entity"
	regentity "github.com/ovaphlow/pitchfork/service-engagement/internal/registration/entity"
	reviewentity "github.com/ovaphlow/pitchfork/service-engagement/internal/review/entity"
	"github.com/ovaphlow/pitchfork/service-engagement/internal/sheet"
	userentity "github.com/ovaphlow/pitchfork/service-engagement/internal/user/entity"
)

// Names in the order tooling should present them.
var Names = []string{
	userentity.Users.Table,
	evententity.Events.Table,
	regentity.Registrations.Table,
	mentorentity.Requests.Table,
	mentorentity.Mentors.Table,
	reviewentity.Queue.Table,
}

// Layout returns the header row of every table. Event_Registrations carries
// the trailing approved column the review workflow adds to the sheet.
func Layout() sheet.Layout {
	regHeader := append(append([]string{}, regentity.Registrations.Columns...), regentity.DecisionColumns[0])
	return sheet.Layout{
		userentity.Users.Table:        header(userentity.Users.Columns),
		evententity.Events.Table:      header(evententity.Events.Columns),
		regentity.Registrations.Table: regHeader,
		mentorentity.Requests.Table:   header(mentorentity.Requests.Columns),
		mentorentity.Mentors.Table:    header(mentorentity.Mentors.Columns),
		reviewentity.Queue.Table:      header(reviewentity.Queue.Columns),
	}
}

func header(cols []string) []string { return append([]string{}, cols...) }
