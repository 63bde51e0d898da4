package schedule

import (
	"sort"
	"strings"
	"time"
)

// ServiceSpec is the time a single appointment occupies on the calendar.
type ServiceSpec struct {
	Name            string
	DurationMinutes int
	PreBufferMin    int
	PostBufferMin   int
}

func (s ServiceSpec) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

func (s ServiceSpec) PreBuffer() time.Duration {
	return time.Duration(s.PreBufferMin) * time.Minute
}

func (s ServiceSpec) PostBuffer() time.Duration {
	return time.Duration(s.PostBufferMin) * time.Minute
}

// Catalog is the fixed service table. Unknown names are never rejected; they
// get the fallback duration.
type Catalog struct {
	durations        map[string]int
	fallbackDuration int
	preBuffer        int
	postBuffer       int
}

func NewCatalog(durations map[string]int, fallbackMinutes, preBufferMin, postBufferMin int) *Catalog {
	copied := make(map[string]int, len(durations))
	for name, d := range durations {
		name = strings.TrimSpace(name)
		if name == "" || d <= 0 {
			continue
		}
		copied[name] = d
	}
	if fallbackMinutes <= 0 {
		fallbackMinutes = 60
	}
	return &Catalog{
		durations:        copied,
		fallbackDuration: fallbackMinutes,
		preBuffer:        max(preBufferMin, 0),
		postBuffer:       max(postBufferMin, 0),
	}
}

func (c *Catalog) Lookup(name string) ServiceSpec {
	name = strings.TrimSpace(name)
	d, ok := c.durations[name]
	if !ok {
		d = c.fallbackDuration
	}
	return ServiceSpec{
		Name:            name,
		DurationMinutes: d,
		PreBufferMin:    c.preBuffer,
		PostBufferMin:   c.postBuffer,
	}
}

func (c *Catalog) Known(name string) bool {
	_, ok := c.durations[strings.TrimSpace(name)]
	return ok
}

// Services lists the configured services ordered by name.
func (c *Catalog) Services() []ServiceSpec {
	out := make([]ServiceSpec, 0, len(c.durations))
	for name := range c.durations {
		out = append(out, c.Lookup(name))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
