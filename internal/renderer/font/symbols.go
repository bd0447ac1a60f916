package font

// symbolArt holds hand-drawn glyphs for the U+2660 block, used where a
// scalable font has no outline. Each glyph is 7 columns by 9 rows.
var symbolArt = []struct {
	r    rune
	rows [9]string
}{
	{'♠', [9]string{
		"...#...",
		"..###..",
		".#####.",
		"#######",
		"#######",
		".##.##.",
		"...#...",
		"..###..",
		".......",
	}},
	{'♡', [9]string{
		".......",
		".##.##.",
		"#..#..#",
		"#.....#",
		"#.....#",
		".#...#.",
		"..#.#..",
		"...#...",
		".......",
	}},
	{'♢', [9]string{
		"...#...",
		"..#.#..",
		".#...#.",
		"#.....#",
		".#...#.",
		"..#.#..",
		"...#...",
		".......",
		".......",
	}},
	{'♣', [9]string{
		"..###..",
		"..###..",
		"###.###",
		"#######",
		"###.###",
		"...#...",
		"..###..",
		".......",
		".......",
	}},
	{'♤', [9]string{
		"...#...",
		"..#.#..",
		".#...#.",
		"#.....#",
		"#.....#",
		".##.##.",
		"...#...",
		"..###..",
		".......",
	}},
	{'♥', [9]string{
		".......",
		".##.##.",
		"#######",
		"#######",
		"#######",
		".#####.",
		"..###..",
		"...#...",
		".......",
	}},
	{'♦', [9]string{
		"...#...",
		"..###..",
		".#####.",
		"#######",
		".#####.",
		"..###..",
		"...#...",
		".......",
		".......",
	}},
	{'♧', [9]string{
		"..###..",
		"..#.#..",
		"###.###",
		"#.....#",
		"###.###",
		"...#...",
		"..###..",
		".......",
		".......",
	}},
	{'♨', [9]string{
		".#.#.#.",
		"#.#.#..",
		".#.#.#.",
		"#.#.#..",
		".......",
		"#.....#",
		"#.....#",
		".#####.",
		".......",
	}},
	{'♩', [9]string{
		"...#...",
		"...#...",
		"...#...",
		"...#...",
		"...#...",
		".###...",
		"####...",
		".##....",
		".......",
	}},
	{'♪', [9]string{
		"...##..",
		"...#.#.",
		"...#..#",
		"...#...",
		"...#...",
		".###...",
		"####...",
		".##....",
		".......",
	}},
	{'♫', [9]string{
		".######",
		".#....#",
		".#....#",
		".#....#",
		".#....#",
		"##...##",
		"##...##",
		".......",
		".......",
	}},
	{'♬', [9]string{
		".######",
		".#....#",
		".######",
		".#....#",
		".#....#",
		"##...##",
		"##...##",
		".......",
		".......",
	}},
	{'♭', [9]string{
		".#.....",
		".#.....",
		".#.....",
		".#.##..",
		".##..#.",
		".#..#..",
		".#.#...",
		".##....",
		".......",
	}},
	{'♮', [9]string{
		".#.....",
		".#.....",
		".#...#.",
		".#####.",
		".#...#.",
		".#####.",
		".#...#.",
		".....#.",
		".....#.",
	}},
	{'♯', [9]string{
		"..#..#.",
		"..#..#.",
		".######",
		"..#..#.",
		"..#..#.",
		"######.",
		"..#..#.",
		"..#..#.",
		".......",
	}},
	{'♰', [9]string{
		"..###..",
		"...#...",
		"#.###.#",
		"#######",
		"#.###.#",
		"...#...",
		"...#...",
		"..###..",
		".......",
	}},
	{'♱', [9]string{
		"...#...",
		"...#...",
		".#.#.#.",
		"#######",
		".#.#.#.",
		"...#...",
		"...#...",
		"...#...",
		".......",
	}},
	{'♲', [9]string{
		"...#...",
		"..#.#..",
		".#...#.",
		"##...##",
		"#.....#",
		"#.....#",
		"##.#.##",
		".......",
		".......",
	}},
	{'♺', [9]string{
		"...#...",
		"..#.#..",
		".#...#.",
		".#...#.",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
		".......",
	}},
	{'♻', [9]string{
		"...#...",
		"..###..",
		".#####.",
		".##.##.",
		"###.###",
		"##...##",
		"#######",
		".......",
		".......",
	}},
	{'♼', [9]string{
		".#####.",
		"#..#..#",
		"#.#.#.#",
		"#.#.#.#",
		"##...##",
		"#.###.#",
		".#####.",
		".......",
		".......",
	}},
	{'♽', [9]string{
		".#####.",
		"#######",
		"###.#.#",
		"##.#..#",
		"#.....#",
		"#.....#",
		".#####.",
		".......",
		".......",
	}},
	{'♾', [9]string{
		".......",
		".......",
		".##.##.",
		"#..#..#",
		"#..#..#",
		".##.##.",
		".......",
		".......",
		".......",
	}},
	{'♿', [9]string{
		"..#....",
		".......",
		"..#....",
		"..###..",
		".##....",
		"#..###.",
		"#...#.#",
		".###..#",
		".......",
	}},
}

// plasticDigits are 3x5 digits 1 to 7 for the resin code triangles
// U+2673 to U+2679.
var plasticDigits = [7][5]string{
	{".#.", "##.", ".#.", ".#.", "###"},
	{"##.", "..#", ".#.", "#..", "###"},
	{"##.", "..#", ".#.", "..#", "##."},
	{"#.#", "#.#", "###", "..#", "..#"},
	{"###", "#..", "##.", "..#", "##."},
	{".##", "#..", "###", "#.#", "###"},
	{"###", "..#", ".#.", ".#.", ".#."},
}

func artRows(art []string) []uint16 {
	rows := make([]uint16, len(art))
	for y, line := range art {
		for x, c := range line {
			if c == '#' {
				rows[y] |= 0x8000 >> uint(x)
			}
		}
	}
	return rows
}

// plasticRows draws digit d (1 to 7) inside a triangle outline.
func plasticRows(d int) []uint16 {
	rows := artRows([]string{
		"...#...",
		"..#.#..",
		".#...#.",
		".#...#.",
		"#.....#",
		"#.....#",
		"#.....#",
		"#######",
		".......",
	})
	digit := artRows(plasticDigits[d-1][:])
	for y, bits := range digit {
		rows[y+2] |= bits >> 2
	}
	return rows
}

// addSymbols fills the U+2660 block from the symbol table wherever b has
// no glyph, centring the art vertically in a cell of the given height.
func (b *Bitmap) addSymbols(height int) {
	top := (height - 9) / 2
	if top < 0 {
		top = 0
	}
	place := func(r rune, art []uint16) {
		if b.Has(r) {
			return
		}
		rows := make([]uint16, top+len(art))
		copy(rows[top:], art)
		b.add(r, rows)
	}
	for _, s := range symbolArt {
		place(s.r, artRows(s.rows[:]))
	}
	for d := 1; d <= 7; d++ {
		place(rune(0x2672+d), plasticRows(d))
	}
}
