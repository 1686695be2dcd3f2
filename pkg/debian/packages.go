package debian

// Merge combines the records of several indices.
func Merge(indices ...*Index) []Record {
	var out []Record
	for _, idx := range indices {
		if idx == nil {
			continue
		}
		out = append(out, idx.Records()...)
	}
	return out
}

func (p *Package) String() string {
	return p.Package + "=" + p.Version.String()
}
