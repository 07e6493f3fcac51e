package properties

import "sort"

// SectionSize caps the number of properties in one carousel.
const SectionSize = 12

const maxSections = 3

type Section struct {
	Title      string
	Properties []*Property
}

type group struct {
	key   string
	items []*Property
}

// BuildSections groups a catalog page into home carousels: the most popular city, then the second
// city (or the most common type), then the third city (or guest favorites and 4.5+ ratings).
func BuildSections(items []*Property) []Section {
	if len(items) == 0 {
		return nil
	}
	cities := groupBy(items, func(p *Property) string { return p.City })

	sections := []Section{{Title: "Stays in " + cities[0].key, Properties: head(cities[0].items)}}

	if len(cities) > 1 {
		sections = append(sections, Section{Title: "Available homes in " + cities[1].key, Properties: head(cities[1].items)})
	} else {
		types := groupBy(items, func(p *Property) string { return p.Type })
		sections = append(sections, Section{Title: types[0].key + "s", Properties: head(types[0].items)})
	}

	if len(cities) > 2 {
		sections = append(sections, Section{Title: "Places to stay in " + cities[2].key, Properties: head(cities[2].items)})
	} else {
		var favorites []*Property
		for _, p := range items {
			if p.IsGuestFavorite || p.Rating >= 4.5 {
				favorites = append(favorites, p)
			}
		}
		if len(favorites) > 0 {
			sections = append(sections, Section{Title: "Guest favorites", Properties: head(favorites)})
		}
	}

	if len(sections) > maxSections {
		sections = sections[:maxSections]
	}
	return sections
}

// groupBy keeps first-seen order for groups of equal size.
func groupBy(items []*Property, key func(*Property) string) []group {
	var groups []group
	pos := make(map[string]int)
	for _, p := range items {
		k := key(p)
		i, ok := pos[k]
		if !ok {
			i = len(groups)
			pos[k] = i
			groups = append(groups, group{key: k})
		}
		groups[i].items = append(groups[i].items, p)
	}
	sort.SliceStable(groups, func(i, j int) bool { return len(groups[i].items) > len(groups[j].items) })
	return groups
}

func head(items []*Property) []*Property {
	if len(items) > SectionSize {
		return items[:SectionSize]
	}
	return items
}
