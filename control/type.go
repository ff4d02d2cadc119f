package control

// Type identifies a control block by its fixed prefix bits. Mask selects the
// bits available for data in the first byte.
type Type struct {
	Prefix byte
	Mask   byte
	Abbr   string
}

// Match returns true if this control type matches the given byte.
func (t Type) Match(b byte) bool {
	return b&^t.Mask == t.Prefix
}

func (t Type) String() string {
	if t.Abbr == "" {
		return "?"
	}

	return t.Abbr
}

// IsData returns true for the block types that carry data bytes.
func (t Type) IsData() bool {
	switch t {
	case Data, DataSize, Data1, Data2, DataSizeSize:
		return true
	}

	return false
}

type types []Type

// Match returns the type of a control byte. Lookups go through a table built
// from Types once at start up.
func (ts types) Match(b byte) (t Type, ok bool) {
	t = byControlByte[b]

	return t, t != Unknown
}

var byControlByte = func() (table [256]Type) {
	for b := range table {
		for _, t := range Types {
			if t.Match(byte(b)) {
				table[b] = t
				break
			}
		}
	}

	return table
}()

var (
	Unknown      = Type{}
	Data         = Type{0b_1000_0000, 0b_0111_1111, "d"}
	DataSize     = Type{0b_0100_0000, 0b_0011_1111, "dz"}
	Data1        = Type{0b_0010_0000, 0b_0001_1111, "d1"}
	Data2        = Type{0b_0001_0000, 0b_0000_1111, "d2"}
	DataSizeSize = Type{0b_0000_1000, 0b_0000_0111, "dzz"}
	Empty        = Type{0b_0000_0001, 0b_0000_0000, "e"}
	Null         = Type{0b_0000_0000, 0b_0000_0000, "n"}

	Types = types{
		Data,
		DataSize,
		Data1,
		Data2,
		DataSizeSize,
		Empty,
		Null,
	}
)
