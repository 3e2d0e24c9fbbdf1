package layout

// DefaultQuirkColumn is the one odd column on the lamp panel that was wired
// running the same direction as the even columns.
const DefaultQuirkColumn = 7

// Serpentine describes a column-major zig-zag panel: even columns run up,
// odd columns run down, except QuirkColumn (set it to -1 for a clean panel).
type Serpentine struct {
	Width       int
	Height      int
	QuirkColumn int
}

// New returns a layout with the lamp's wiring quirk.
func New(width, height int) Serpentine {
	return Serpentine{Width: width, Height: height, QuirkColumn: DefaultQuirkColumn}
}

// Index maps logical x,y -> physical LED index (0..N-1).
// Callers bounds-check; Index does not.
func (l Serpentine) Index(x, y int) int {
	if x%2 == 1 && x != l.QuirkColumn {
		return x*l.Height + (l.Height - y - 1)
	}
	return x*l.Height + y
}

func (l Serpentine) Contains(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

func (l Serpentine) Count() int {
	return l.Width * l.Height
}
