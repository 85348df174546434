package results

import (
	"strconv"
	"strings"
)

// KeySeparator joins key parts in display labels.
const KeySeparator = "-"

// Key is the ordered tuple of a row's values at the group-by columns.
type Key []string

// Label is the display form of the key, its parts joined by KeySeparator.
// Distinct keys may share a label when a part contains the separator.
func (k Key) Label() string { return strings.Join(k, KeySeparator) }

func (k Key) String() string { return k.Label() }

// id encodes the key without ambiguity: every part is length prefixed.
func (k Key) id() string {
	var b strings.Builder
	for _, part := range k {
		b.WriteString(strconv.Itoa(len(part)))
		b.WriteByte(':')
		b.WriteString(part)
	}
	return b.String()
}

// Bucket holds the output values of the rows sharing one key, in row order.
type Bucket struct {
	Key    Key
	Values []float64
}

func (b Bucket) Label() string { return b.Key.Label() }

// Groups maps keys to buckets and remembers the order keys first appeared in.
type Groups struct {
	By      []string
	Output  string
	buckets []*Bucket
	index   map[string]int
}

// Group buckets the rows of t by their values at the by columns, collecting
// the out column as numbers. A cell of out that is not a number fails the
// whole grouping.
func (t *Table) Group(by []string, out string) (*Groups, error) {
	byIdxs, err := t.index.LookupAll(by)
	if err != nil {
		return nil, err
	}
	outIdx, err := t.index.Lookup(out)
	if err != nil {
		return nil, err
	}

	g := &Groups{
		By:     append([]string(nil), by...),
		Output: out,
		index:  make(map[string]int),
	}
	for r, row := range t.rows {
		v, err := ParseFloat(out, r, row[outIdx])
		if err != nil {
			return nil, err
		}
		key := make(Key, len(byIdxs))
		for i, idx := range byIdxs {
			key[i] = row[idx]
		}
		g.add(key, v)
	}
	return g, nil
}

func (g *Groups) add(key Key, v float64) {
	id := key.id()
	i, ok := g.index[id]
	if !ok {
		i = len(g.buckets)
		g.index[id] = i
		g.buckets = append(g.buckets, &Bucket{Key: key})
	}
	g.buckets[i].Values = append(g.buckets[i].Values, v)
}

// Len is the number of distinct keys.
func (g *Groups) Len() int { return len(g.buckets) }

// Buckets returns the buckets in order of first appearance.
func (g *Groups) Buckets() []Bucket {
	out := make([]Bucket, len(g.buckets))
	for i, b := range g.buckets {
		out[i] = Bucket{Key: append(Key(nil), b.Key...), Values: append([]float64(nil), b.Values...)}
	}
	return out
}

// Get returns the values collected for the key made of parts.
func (g *Groups) Get(parts ...string) ([]float64, bool) {
	i, ok := g.index[Key(parts).id()]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), g.buckets[i].Values...), true
}

// Labels returns the display labels in order of first appearance.
func (g *Groups) Labels() []string {
	labels := make([]string, len(g.buckets))
	for i, b := range g.buckets {
		labels[i] = b.Key.Label()
	}
	return labels
}
