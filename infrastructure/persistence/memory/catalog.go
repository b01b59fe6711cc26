package memory

import (
	"sort"
	"strings"

	"soundmap/domain/graph"
	apperrors "soundmap/pkg/errors"
)

// CatalogArtist is one entry in the seeded artist catalog.
type CatalogArtist struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture_medium,omitempty"`
}

// CatalogTrack is an artist's representative track.
type CatalogTrack struct {
	Title      string `json:"title_short"`
	PreviewURL string `json:"preview"`
	CoverURL   string `json:"cover"`
}

// Catalog is a fixed artist-relation dataset the development server walks
// instead of an external music API. Relations are symmetric.
type Catalog struct {
	artists  map[string]CatalogArtist // keyed by lower-cased name
	byID     map[int64]string
	related  map[string][]string // canonical name -> canonical neighbor names
	topTrack map[string]CatalogTrack
}

// NewCatalog builds the seeded catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		artists:  make(map[string]CatalogArtist),
		byID:     make(map[int64]string),
		related:  make(map[string][]string),
		topTrack: make(map[string]CatalogTrack),
	}

	var nextID int64
	add := func(name string) {
		nextID++
		c.artists[strings.ToLower(name)] = CatalogArtist{ID: nextID, Name: name}
		c.byID[nextID] = name
	}
	link := func(a, b string) {
		c.related[a] = append(c.related[a], b)
		c.related[b] = append(c.related[b], a)
	}

	for _, name := range []string{
		"Oasis", "Blur", "Pulp", "Suede", "The Verve", "Radiohead",
		"Coldplay", "Travis", "Muse", "Keane", "Stereophonics",
		"Supergrass", "Elastica", "Kasabian", "Arctic Monkeys",
		"The Stone Roses", "The Charlatans", "Manic Street Preachers",
	} {
		add(name)
	}

	link("Oasis", "Blur")
	link("Oasis", "The Verve")
	link("Oasis", "The Stone Roses")
	link("Oasis", "Kasabian")
	link("Blur", "Pulp")
	link("Blur", "Suede")
	link("Blur", "Elastica")
	link("Pulp", "Suede")
	link("Suede", "Elastica")
	link("The Verve", "Radiohead")
	link("The Verve", "The Charlatans")
	link("Radiohead", "Muse")
	link("Radiohead", "Coldplay")
	link("Coldplay", "Keane")
	link("Coldplay", "Travis")
	link("Travis", "Stereophonics")
	link("Stereophonics", "Manic Street Preachers")
	link("Supergrass", "Blur")
	link("Kasabian", "Arctic Monkeys")
	link("The Stone Roses", "The Charlatans")

	c.topTrack["Oasis"] = CatalogTrack{Title: "Wonderwall", PreviewURL: "https://cdn.example.com/previews/wonderwall.mp3", CoverURL: "https://cdn.example.com/covers/oasis.jpg"}
	c.topTrack["Blur"] = CatalogTrack{Title: "Song 2", PreviewURL: "https://cdn.example.com/previews/song2.mp3", CoverURL: "https://cdn.example.com/covers/blur.jpg"}
	c.topTrack["Pulp"] = CatalogTrack{Title: "Common People", PreviewURL: "https://cdn.example.com/previews/common-people.mp3", CoverURL: "https://cdn.example.com/covers/pulp.jpg"}
	c.topTrack["Radiohead"] = CatalogTrack{Title: "Creep", PreviewURL: "https://cdn.example.com/previews/creep.mp3", CoverURL: "https://cdn.example.com/covers/radiohead.jpg"}
	c.topTrack["Coldplay"] = CatalogTrack{Title: "Yellow", PreviewURL: "https://cdn.example.com/previews/yellow.mp3", CoverURL: "https://cdn.example.com/covers/coldplay.jpg"}

	return c
}

// Search returns catalog artists whose name contains the query,
// case-insensitively, exact matches first then alphabetical.
func (c *Catalog) Search(query string) []CatalogArtist {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []CatalogArtist
	for key, a := range c.artists {
		if strings.Contains(key, q) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		iExact := strings.EqualFold(out[i].Name, query)
		jExact := strings.EqualFold(out[j].Name, query)
		if iExact != jExact {
			return iExact
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Lookup finds an artist by exact name, case-insensitively.
func (c *Catalog) Lookup(name string) (CatalogArtist, bool) {
	a, ok := c.artists[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// LookupID finds an artist by catalog id.
func (c *Catalog) LookupID(id int64) (CatalogArtist, bool) {
	name, ok := c.byID[id]
	if !ok {
		return CatalogArtist{}, false
	}
	return c.artists[strings.ToLower(name)], true
}

// TopTrack returns the artist's representative track.
func (c *Catalog) TopTrack(id int64) (CatalogTrack, error) {
	a, ok := c.LookupID(id)
	if !ok {
		return CatalogTrack{}, apperrors.NewNotFoundError("artist")
	}
	track, ok := c.topTrack[a.Name]
	if !ok {
		return CatalogTrack{}, apperrors.NewNotFoundError("track")
	}
	return track, nil
}

// BuildGraph expands the relation graph around the named artist out to
// level hops. Node groups carry the hop distance from the center; edges
// connect each visited artist to its visited neighbors.
func (c *Catalog) BuildGraph(name string, level int) (graph.Graph, error) {
	center, ok := c.Lookup(name)
	if !ok {
		return graph.Graph{}, apperrors.NewNotFoundError("artist")
	}
	if level < 1 {
		level = 1
	}

	distance := map[string]int{center.Name: 0}
	frontier := []string{center.Name}
	for hop := 1; hop <= level; hop++ {
		var next []string
		for _, cur := range frontier {
			for _, neighbor := range c.related[cur] {
				if _, seen := distance[neighbor]; seen {
					continue
				}
				distance[neighbor] = hop
				next = append(next, neighbor)
			}
		}
		frontier = next
	}

	nodes := make([]graph.Node, 0, len(distance))
	for artist, hop := range distance {
		nodes = append(nodes, graph.Node{ID: artist, DistanceGroup: hop})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].DistanceGroup != nodes[j].DistanceGroup {
			return nodes[i].DistanceGroup < nodes[j].DistanceGroup
		}
		return nodes[i].ID < nodes[j].ID
	})

	var edges []graph.Edge
	for _, n := range nodes {
		for _, neighbor := range c.related[n.ID] {
			if hop, seen := distance[neighbor]; seen {
				// Each pair once, closer-or-equal endpoint first
				if distance[n.ID] < hop || (distance[n.ID] == hop && n.ID < neighbor) {
					edges = append(edges, graph.Edge{SourceID: n.ID, TargetID: neighbor})
				}
			}
		}
	}

	return graph.New(nodes, edges), nil
}
