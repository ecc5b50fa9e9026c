package projections

import (
	"context"

	participantStore "absensi/internal/adapters/storage/participant"
	"absensi/internal/application/listutil"
	"absensi/internal/domain/account"
	"absensi/internal/domain/participant"
)

// GetParticipantListQuery carries query parameters. Unit is the admin's
// dropdown filter; unit-scoped actors are always restricted to their own
// unit regardless of it.
type GetParticipantListQuery struct {
	Search  string
	Unit    string
	Page    int
	PerPage int
	Actor   account.User
}

// GetParticipantListResult carries the paginated list plus the distinct
// units for the admin filter dropdown.
type GetParticipantListResult struct {
	Participants []participant.Participant `json:"participants"`
	PageInfo     listutil.PageInfo         `json:"pageInfo"`
	Units        []string                  `json:"units"`
}

// GetParticipantListDeps holds dependencies for GetParticipantList.
type GetParticipantListDeps struct {
	ParticipantStore participantStore.Store
}

// QueryGetParticipantList retrieves participants with search, unit filtering
// and pagination.
// PRE: Valid query parameters
// POST: Unit-scoped actors only ever see their own unit's participants
func QueryGetParticipantList(ctx context.Context, query GetParticipantListQuery, deps GetParticipantListDeps) (GetParticipantListResult, error) {
	unit := query.Unit
	if query.Actor.IsUnitScoped() {
		unit = query.Actor.Unit
	}

	perPage := query.PerPage
	if perPage < 1 {
		perPage = listutil.DefaultPerPage
	}
	page := query.Page
	if page < 1 {
		page = 1
	}

	filter := participantStore.ListFilter{
		Unit:   unit,
		Search: query.Search,
	}

	total, err := deps.ParticipantStore.Count(ctx, filter)
	if err != nil {
		return GetParticipantListResult{}, err
	}
	pageInfo := listutil.NewPageInfo(page, perPage, total)

	filter.Limit = pageInfo.PerPage
	filter.Offset = (pageInfo.Page - 1) * pageInfo.PerPage
	participants, err := deps.ParticipantStore.List(ctx, filter)
	if err != nil {
		return GetParticipantListResult{}, err
	}
	if participants == nil {
		participants = []participant.Participant{}
	}

	units, err := deps.ParticipantStore.ListUnits(ctx)
	if err != nil {
		return GetParticipantListResult{}, err
	}
	if query.Actor.IsUnitScoped() {
		units = []string{query.Actor.Unit}
	}

	return GetParticipantListResult{
		Participants: participants,
		PageInfo:     pageInfo,
		Units:        units,
	}, nil
}
