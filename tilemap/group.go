package tilemap

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"sync"
)

// Group is a named classification of tiles, such as "ground" or "water".
type Group struct {
	Name string
	Predicate
}

// Predicate decides group membership for a tile.
type Predicate interface {
	Contains(tile *Tile) bool
}

// sheetReferencer is implemented by predicates that name sheet indices, so
// the loader can reject references to sheets that do not exist.
type sheetReferencer interface {
	SheetRefs() []int
}

// TileRef identifies a tile of a sheet.
type TileRef struct {
	Sheet  int
	Number int
}

// GroupConfig is one declared group as read from a groups config.
type GroupConfig struct {
	Name  string
	Type  string
	Attrs map[string]string
	Tiles []TileRef
}

// PredicateFactory builds the predicate of a declared group.
type PredicateFactory func(cfg GroupConfig) (Predicate, error)

var (
	predicatesMu sync.RWMutex
	predicates   = map[string]PredicateFactory{
		"range": newRangePredicate,
		"sheet": newSheetPredicate,
		"tiles": newTilesPredicate,
	}
)

// RegisterPredicate makes a predicate type available to groups configs.
func RegisterPredicate(typ string, f PredicateFactory) {
	if f == nil {
		panic("tilemap: nil predicate factory for type " + typ)
	}
	predicatesMu.Lock()
	defer predicatesMu.Unlock()
	predicates[typ] = f
}

func predicateFor(typ string) (PredicateFactory, error) {
	if typ == "" {
		typ = "tiles"
	}
	predicatesMu.RLock()
	defer predicatesMu.RUnlock()
	f, ok := predicates[typ]
	if !ok {
		return nil, fmt.Errorf("group type %q: %w", typ, ErrUnknownKind)
	}
	return f, nil
}

// RangePredicate matches tile numbers Start..End (inclusive) of one sheet.
type RangePredicate struct {
	Sheet, Start, End int
}

func (p RangePredicate) Contains(tile *Tile) bool {
	return tile.Sheet == p.Sheet && tile.Number >= p.Start && tile.Number <= p.End
}

func (p RangePredicate) SheetRefs() []int { return []int{p.Sheet} }

// SheetPredicate matches every tile of one sheet.
type SheetPredicate struct {
	Sheet int
}

func (p SheetPredicate) Contains(tile *Tile) bool { return tile.Sheet == p.Sheet }

func (p SheetPredicate) SheetRefs() []int { return []int{p.Sheet} }

// TilesPredicate matches an explicit set of tiles.
type TilesPredicate map[TileRef]struct{}

func (p TilesPredicate) Contains(tile *Tile) bool {
	_, ok := p[TileRef{Sheet: tile.Sheet, Number: tile.Number}]
	return ok
}

func (p TilesPredicate) SheetRefs() []int {
	seen := make(map[int]struct{})
	var out []int
	for ref := range p {
		if _, ok := seen[ref.Sheet]; !ok {
			seen[ref.Sheet] = struct{}{}
			out = append(out, ref.Sheet)
		}
	}
	sort.Ints(out)
	return out
}

func newRangePredicate(cfg GroupConfig) (Predicate, error) {
	sheet, err := intAttr(cfg, "sheet")
	if err != nil {
		return nil, err
	}
	start, err := intAttr(cfg, "start")
	if err != nil {
		return nil, err
	}
	end, err := intAttr(cfg, "end")
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, fmt.Errorf("group %s: range %d..%d: %w", cfg.Name, start, end, ErrInvalidArgument)
	}
	return RangePredicate{Sheet: sheet, Start: start, End: end}, nil
}

func newSheetPredicate(cfg GroupConfig) (Predicate, error) {
	sheet, err := intAttr(cfg, "sheet")
	if err != nil {
		return nil, err
	}
	return SheetPredicate{Sheet: sheet}, nil
}

func newTilesPredicate(cfg GroupConfig) (Predicate, error) {
	p := make(TilesPredicate, len(cfg.Tiles))
	for _, ref := range cfg.Tiles {
		p[ref] = struct{}{}
	}
	return p, nil
}

func intAttr(cfg GroupConfig, name string) (int, error) {
	raw, ok := cfg.Attrs[name]
	if !ok {
		return 0, fmt.Errorf("group %s: missing attribute %s", cfg.Name, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("group %s: attribute %s: %w", cfg.Name, name, err)
	}
	return v, nil
}

// LoadGroups reads a groups config, replaces the group registry and assigns
// every placed tile to the first declared group containing it.
func (m *Map) LoadGroups(configPath string) error {
	log.Printf("Loading groups from: %s", configPath)

	loader, err := formatFor(configPath)
	if err != nil {
		return &ConfigError{Path: configPath, Err: err}
	}
	decls, err := loader.Groups(m.fsys, configPath)
	if err != nil {
		return err
	}

	groups := make(map[string]*Group, len(decls))
	order := make([]*Group, 0, len(decls))
	for _, decl := range decls {
		if decl.Name == "" {
			return configErr(configPath, "group without name: %w", ErrInvalidArgument)
		}
		if _, dup := groups[decl.Name]; dup {
			return configErr(configPath, "group %s declared twice: %w", decl.Name, ErrInvalidArgument)
		}
		factory, err := predicateFor(decl.Type)
		if err != nil {
			return &ConfigError{Path: configPath, Err: err}
		}
		pred, err := factory(decl)
		if err != nil {
			return &ConfigError{Path: configPath, Err: err}
		}
		if err := m.checkSheetRefs(pred); err != nil {
			return &ConfigError{Path: configPath, Err: fmt.Errorf("group %s: %w", decl.Name, err)}
		}
		g := &Group{Name: decl.Name, Predicate: pred}
		groups[g.Name] = g
		order = append(order, g)
	}

	m.groupsConfig = configPath
	m.groups = groups
	m.groupOrder = order
	m.assignGroups()
	return nil
}

// checkSheetRefs rejects predicates naming unknown sheets once sheets are
// loaded.
func (m *Map) checkSheetRefs(pred Predicate) error {
	refs, ok := pred.(sheetReferencer)
	if !ok || len(m.sheets) == 0 {
		return nil
	}
	for _, sheet := range refs.SheetRefs() {
		if _, err := m.Sheet(sheet); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map) assignGroups() {
	m.Each(func(_, _ int, tile *Tile) {
		tile.Group = m.groupOf(tile)
	})
}

func (m *Map) groupOf(tile *Tile) string {
	for _, g := range m.groupOrder {
		if g.Contains(tile) {
			return g.Name
		}
	}
	return ""
}

// AddGroup appends a group after the declared ones and reassigns tiles.
func (m *Map) AddGroup(g *Group) error {
	if g == nil || g.Name == "" || g.Predicate == nil {
		return fmt.Errorf("add group: %w", ErrInvalidArgument)
	}
	if _, dup := m.groups[g.Name]; dup {
		return fmt.Errorf("add group %s: already declared: %w", g.Name, ErrInvalidArgument)
	}
	m.groups[g.Name] = g
	m.groupOrder = append(m.groupOrder, g)
	m.assignGroups()
	return nil
}

// Group returns the group registered under name.
func (m *Map) Group(name string) (*Group, error) {
	g, ok := m.groups[name]
	if !ok {
		return nil, fmt.Errorf("group %s: %w", name, ErrGroupMissing)
	}
	return g, nil
}

// Groups returns the groups in declaration order.
func (m *Map) Groups() []*Group {
	out := make([]*Group, len(m.groupOrder))
	copy(out, m.groupOrder)
	return out
}

// SetTileGroup labels the tile at (tx, ty). An empty name clears the label.
func (m *Map) SetTileGroup(tx, ty int, name string) error {
	tile := m.Tile(tx, ty)
	if tile == nil {
		return fmt.Errorf("set group of %d,%d: %w", tx, ty, ErrOutOfBounds)
	}
	if name != "" {
		if _, err := m.Group(name); err != nil {
			return err
		}
	}
	tile.Group = name
	return nil
}
