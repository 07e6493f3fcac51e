package properties

import (
	"context"

	"staysia/internal/app/dto"
	"staysia/internal/app/handlers/support"
	"staysia/internal/app/queries"
	"staysia/internal/app/uow"
	domainproperties "staysia/internal/domain/properties"
)

const (
	searchPropertiesKey = "properties.search"
	getPropertyKey      = "properties.get"
	homeSectionsKey     = "properties.sections"
)

type SearchPropertiesQuery struct {
	City   string
	Type   string
	Guests int
	Pets   *bool
	Sort   string
	Limit  int
	Offset int
}

func (q SearchPropertiesQuery) Key() string { return searchPropertiesKey }

type SearchPropertiesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *SearchPropertiesHandler) Handle(ctx context.Context, q SearchPropertiesQuery) ([]dto.Property, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	items, err := unit.Properties().Search(execCtx, domainproperties.SearchParams{
		City:   q.City,
		Type:   q.Type,
		Guests: q.Guests,
		Pets:   q.Pets,
		Sort:   domainproperties.CatalogSort(q.Sort),
		Limit:  q.Limit,
		Offset: q.Offset,
	}.Normalized())
	if err != nil {
		return nil, err
	}
	return dto.MapProperties(items), nil
}

type GetPropertyQuery struct {
	ID domainproperties.PropertyID
}

func (q GetPropertyQuery) Key() string { return getPropertyKey }

type GetPropertyHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetPropertyHandler) Handle(ctx context.Context, q GetPropertyQuery) (dto.Property, error) {
	if q.ID <= 0 {
		return dto.Property{}, domainproperties.ErrInvalidID
	}
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Property{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	p, err := unit.Properties().ByID(execCtx, q.ID)
	if err != nil {
		return dto.Property{}, err
	}
	return dto.MapProperty(p), nil
}

// HomeSectionsQuery builds the home page carousels from the top rated catalog page.
type HomeSectionsQuery struct {
	City string
}

func (q HomeSectionsQuery) Key() string { return homeSectionsKey }

type HomeSectionsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *HomeSectionsHandler) Handle(ctx context.Context, q HomeSectionsQuery) ([]dto.Section, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	items, err := unit.Properties().Search(execCtx, domainproperties.SearchParams{
		City:  q.City,
		Sort:  domainproperties.SortByRating,
		Limit: domainproperties.DefaultSearchLimit,
	}.Normalized())
	if err != nil {
		return nil, err
	}
	return dto.MapSections(domainproperties.BuildSections(items)), nil
}

var (
	_ queries.Handler[SearchPropertiesQuery, []dto.Property] = (*SearchPropertiesHandler)(nil)
	_ queries.Handler[GetPropertyQuery, dto.Property]        = (*GetPropertyHandler)(nil)
	_ queries.Handler[HomeSectionsQuery, []dto.Section]      = (*HomeSectionsHandler)(nil)
)
