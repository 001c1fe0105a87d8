package tilemap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

const sheetsFixture = `<sheets>
  <tileSize width="16" height="16"/>
  <sheet>sheet0.png</sheet>
  <sheet>sheet1.png</sheet>
</sheets>`

const groupsFixture = `<groups>
  <group name="ground" type="range" sheet="0" start="0" end="3"/>
  <group name="water" type="sheet" sheet="1"/>
  <group name="spike">
    <tile sheet="0" number="5"/>
    <tile sheet="0" number="2"/>
  </group>
</groups>`

// pngBytes encodes a w x h image whose pixels encode their position.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

// levelFS holds two 4x2 sheets of 16x16 tiles with their configs under
// levels/.
func levelFS(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"levels/sheets.xml": {Data: []byte(sheetsFixture)},
		"levels/groups.xml": {Data: []byte(groupsFixture)},
		"levels/sheet0.png": {Data: pngBytes(t, 64, 32)},
		"levels/sheet1.png": {Data: pngBytes(t, 64, 32)},
	}
}

func newLoadedMap(t *testing.T, w, h int) *Map {
	t.Helper()
	m := New(levelFS(t))
	if err := m.LoadSheets("levels/sheets.xml"); err != nil {
		t.Fatalf("LoadSheets: %v", err)
	}
	if err := m.LoadGroups("levels/groups.xml"); err != nil {
		t.Fatalf("LoadGroups: %v", err)
	}
	if err := m.Create(w, h); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return m
}

func place(t *testing.T, m *Map, tx, ty, sheet, number int) *Tile {
	t.Helper()
	tile := m.CreateTile()
	tile.SetSheet(sheet)
	tile.SetNumber(number)
	if err := m.SetTile(tx, ty, tile); err != nil {
		t.Fatalf("SetTile(%d, %d): %v", tx, ty, err)
	}
	return tile
}
