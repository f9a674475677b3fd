package motion

var (
	Category10 Palette
	Tableau10  Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

type Palette []string

// Pick returns the colour at i, wrapping around the palette.
func (p Palette) Pick(i int) string {
	if len(p) == 0 {
		return ""
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

func (p Palette) Reverse() Palette {
	x := make(Palette, len(p))
	for i := range p {
		x[len(p)-1-i] = p[i]
	}
	return x
}

func (p Palette) Len() int {
	return len(p)
}

func splitColorString(str string) Palette {
	var arr Palette
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}
